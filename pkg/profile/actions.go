package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ssargent/caresave/pkg/codec"
)

// Errors
var (
	ErrUnknownAction       = errors.New("unknown care action")
	ErrInsufficientCare    = errors.New("insufficient CARE balance")
	ErrCompanionNotHatched = errors.New("companion is not hatched")
	ErrAlreadyHasCompanion = errors.New("user already has a companion")
)

// Action is something a user does that earns or spends CARE
type Action struct {
	Name            string `json:"name"`
	Care            int64  `json:"care"`
	Hunger          int64  `json:"hunger,omitempty"`
	Mood            int64  `json:"mood,omitempty"`
	RequiresHatched bool   `json:"requiresHatched,omitempty"`
	GrantsEgg       bool   `json:"grantsEgg,omitempty"`
}

var actions = map[string]Action{
	"self_care":      {Name: "self_care", Care: 10},
	"help_others":    {Name: "help_others", Care: 15},
	"complete_quest": {Name: "complete_quest", Care: 25},
	"feed_dragon":    {Name: "feed_dragon", Care: 5},
	"rest":           {Name: "rest", Care: 8},
	"buy_egg":        {Name: "buy_egg", Care: -50, GrantsEgg: true},
	"unlock_story":   {Name: "unlock_story", Care: -20},
	"tap":            {Name: "tap", Care: 25},
	"feed":           {Name: "feed", Care: 10, Hunger: 20, RequiresHatched: true},
	"play":           {Name: "play", Care: 8, Mood: 15, RequiresHatched: true},
}

// LookupAction finds an action by name. Names are case-insensitive and
// spaces are treated as underscores.
func LookupAction(name string) (Action, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	a, ok := actions[key]
	if !ok {
		return Action{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownAction, name, strings.Join(ActionNames(), ", "))
	}
	return a, nil
}

// ActionNames lists the known actions in sorted order
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func capVital(p *int64, delta int64) *int64 {
	v := valueOr(p, DefaultVital) + delta
	if v > MaxVital {
		v = MaxVital
	}
	return Int(v)
}

// Apply performs a on d. The document is left untouched when the action is
// rejected.
func (d *Document) Apply(a Action, now time.Time) error {
	if a.RequiresHatched && d.Status() != codec.StatusHatched {
		return fmt.Errorf("%s: %w", a.Name, ErrCompanionNotHatched)
	}
	if a.GrantsEgg && d.Status() != codec.StatusNone {
		return fmt.Errorf("%s: %w", a.Name, ErrAlreadyHasCompanion)
	}

	balance := d.Balance() + a.Care
	if balance < 0 {
		return fmt.Errorf("%s costs %d, balance %d: %w", a.Name, -a.Care, d.Balance(), ErrInsufficientCare)
	}

	d.CareBalance = Int(balance)
	if a.Hunger != 0 {
		d.DragonHunger = capVital(d.DragonHunger, a.Hunger)
	}
	if a.Mood != 0 {
		d.DragonMood = capVital(d.DragonMood, a.Mood)
	}
	if a.GrantsEgg {
		d.EggStatus = codec.StatusIncubating.String()
		d.EggSessionsRemaining = Int(DefaultSessionsRemaining)
	}
	d.LifetimeActions = Int(valueOr(d.LifetimeActions, 0) + 1)
	d.touch(now)

	return nil
}

// CompleteSession records a finished session. An incubating egg counts
// down and hatches when no sessions remain.
func (d *Document) CompleteSession(now time.Time) {
	d.LifetimeSessions = Int(valueOr(d.LifetimeSessions, 0) + 1)

	if d.Status() == codec.StatusIncubating {
		remaining := valueOr(d.EggSessionsRemaining, DefaultSessionsRemaining) - 1
		if remaining <= 0 {
			remaining = 0
			d.EggStatus = codec.StatusHatched.String()
			d.DragonLevel = Int(DefaultCompanionLevel)
		}
		d.EggSessionsRemaining = Int(remaining)
	}
	d.touch(now)
}

func (d *Document) touch(now time.Time) {
	t := now.UTC()
	d.LastLogin = &t
}
