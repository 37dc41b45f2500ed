package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/caresave/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *ProfileStore {
	t.Helper()
	s, err := NewProfileStore(filepath.Join(t.TempDir(), "profiles"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileStore_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)

	doc, err := s.Create(profile.NewDocument("scarlet@example.com", "", now))
	require.NoError(t, err)

	_, err = ksuid.Parse(doc.UID)
	require.NoError(t, err, "account id should be a ksuid")

	got, err := s.Get(doc.UID)
	require.NoError(t, err)
	assert.Equal(t, "scarlet@example.com", got.Email)
	assert.Equal(t, doc.UID, got.UID)
	assert.Equal(t, int64(10), *got.EggSessionsRemaining)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestProfileStore_PutOverwrites(t *testing.T) {
	s := setupTestStore(t)

	doc := profile.NewDocument("a@example.com", "uid-1", now)
	require.NoError(t, s.Put(doc))

	doc.CareBalance = profile.Int(250)
	doc.DragonName = "Ember"
	require.NoError(t, s.Put(doc))

	got, err := s.Get("uid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.Balance())
	assert.Equal(t, "Ember", got.DragonName)
}

func TestProfileStore_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	err = s.Delete("missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileStore_InvalidID(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []string{"", "a/b", "nul\x00"} {
		_, err := s.Get(id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
		assert.ErrorIs(t, s.Put(&profile.Document{UID: id}), ErrInvalidID, "id %q", id)
	}
}

func TestProfileStore_DeleteAndList(t *testing.T) {
	s := setupTestStore(t)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Put(profile.NewDocument(id+"@example.com", id, now)))
	}

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, s.Delete("b"))

	ids, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileStore_ListEmpty(t *testing.T) {
	s := setupTestStore(t)

	ids, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProfileStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles")

	s, err := NewProfileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(profile.NewDocument("a@example.com", "uid-1", now)))
	require.NoError(t, s.Close())

	s, err = NewProfileStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("uid-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestProfileStore_ConcurrentPuts(t *testing.T) {
	s := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(profile.NewDocument("c@example.com", "", now))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ids, err := s.List()
	require.NoError(t, err)
	assert.Len(t, ids, 20)
}
