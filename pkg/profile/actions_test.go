package profile

import (
	"testing"
	"time"

	"github.com/ssargent/caresave/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAction(t *testing.T) {
	tests := []struct {
		input string
		want  string
		care  int64
	}{
		{"self_care", "self_care", 10},
		{"Self Care", "self_care", 10},
		{"  HELP_OTHERS ", "help_others", 15},
		{"complete quest", "complete_quest", 25},
		{"buy_egg", "buy_egg", -50},
		{"unlock_story", "unlock_story", -20},
		{"tap", "tap", 25},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := LookupAction(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Name)
			assert.Equal(t, tt.care, a.Care)
		})
	}

	_, err := LookupAction("dance")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), "self_care")
}

func TestActionNamesSorted(t *testing.T) {
	names := ActionNames()
	assert.Len(t, names, len(actions))
	assert.IsIncreasing(t, names)
}

func TestDocument_ApplyEarns(t *testing.T) {
	doc := NewDocument("a@example.com", "uid", now)
	later := now.Add(time.Hour)

	require.NoError(t, doc.Apply(mustAction(t, "self_care"), later))
	require.NoError(t, doc.Apply(mustAction(t, "tap"), later))

	assert.Equal(t, int64(35), doc.Balance())
	assert.Equal(t, int64(2), *doc.LifetimeActions)
	assert.True(t, doc.LastLogin.Equal(later))
}

func TestDocument_ApplySpendRejected(t *testing.T) {
	doc := NewDocument("a@example.com", "uid", now)
	doc.CareBalance = Int(19)

	err := doc.Apply(mustAction(t, "unlock_story"), now)

	assert.ErrorIs(t, err, ErrInsufficientCare)
	assert.Equal(t, int64(19), doc.Balance())
	assert.Equal(t, int64(0), *doc.LifetimeActions)
}

func TestDocument_BuyEgg(t *testing.T) {
	doc := NewDocument("a@example.com", "uid", now)
	doc.CareBalance = Int(60)
	doc.EggSessionsRemaining = Int(0)

	require.NoError(t, doc.Apply(mustAction(t, "buy_egg"), now))
	assert.Equal(t, int64(10), doc.Balance())
	assert.Equal(t, codec.StatusIncubating, doc.Status())
	assert.Equal(t, int64(10), *doc.EggSessionsRemaining)

	doc.CareBalance = Int(100)
	err := doc.Apply(mustAction(t, "buy_egg"), now)
	assert.ErrorIs(t, err, ErrAlreadyHasCompanion)
	assert.Equal(t, int64(100), doc.Balance())
}

func TestDocument_CompanionInteractions(t *testing.T) {
	doc := NewDocument("a@example.com", "uid", now)

	err := doc.Apply(mustAction(t, "feed"), now)
	assert.ErrorIs(t, err, ErrCompanionNotHatched)

	doc.EggStatus = "hatched"
	doc.DragonHunger = Int(90)
	doc.DragonMood = Int(50)

	require.NoError(t, doc.Apply(mustAction(t, "feed"), now))
	require.NoError(t, doc.Apply(mustAction(t, "play"), now))

	assert.Equal(t, int64(100), *doc.DragonHunger)
	assert.Equal(t, int64(65), *doc.DragonMood)
	assert.Equal(t, int64(18), doc.Balance())
}

func TestDocument_CompleteSessionHatches(t *testing.T) {
	doc := NewDocument("a@example.com", "uid", now)
	doc.EggStatus = "incubating"
	doc.EggSessionsRemaining = Int(2)

	doc.CompleteSession(now)
	assert.Equal(t, codec.StatusIncubating, doc.Status())
	assert.Equal(t, int64(1), *doc.EggSessionsRemaining)

	doc.CompleteSession(now)
	assert.Equal(t, codec.StatusHatched, doc.Status())
	assert.Equal(t, int64(0), *doc.EggSessionsRemaining)
	assert.Equal(t, int64(2), *doc.LifetimeSessions)

	doc.CompleteSession(now)
	assert.Equal(t, codec.StatusHatched, doc.Status())
	assert.Equal(t, int64(3), *doc.LifetimeSessions)
}

func mustAction(t *testing.T, name string) Action {
	t.Helper()
	a, err := LookupAction(name)
	require.NoError(t, err)
	return a
}
