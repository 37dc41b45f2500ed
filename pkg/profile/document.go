// Package profile models the stored user document that feeds the save codec.
package profile

import (
	"math"
	"time"

	"github.com/ssargent/caresave/pkg/codec"
)

// Defaults applied when a stored document omits a field
const (
	DefaultSessionsRemaining = 10
	DefaultCompanionLevel    = 1
	DefaultVital             = 100
	MaxVital                 = 100
)

// Document is a user's stored profile. Optional fields are pointers so a
// missing field can be told apart from an explicit zero.
type Document struct {
	Email string `json:"email"`
	UID   string `json:"uid"`

	CareBalance *int64 `json:"careBalance,omitempty"`
	CareSilver  *int64 `json:"careSilver,omitempty"`
	CareGold    *int64 `json:"careGold,omitempty"`

	EggStatus            string `json:"eggStatus,omitempty"`
	EggSessionsRemaining *int64 `json:"eggSessionsRemaining,omitempty"`

	DragonID     string `json:"dragonId,omitempty"`
	DragonName   string `json:"dragonName,omitempty"`
	DragonLevel  *int64 `json:"dragonLevel,omitempty"`
	DragonHunger *int64 `json:"dragonHunger,omitempty"`
	DragonMood   *int64 `json:"dragonMood,omitempty"`
	DragonHealth *int64 `json:"dragonHealth,omitempty"`

	LifetimeActions  *int64 `json:"lifetimeActions,omitempty"`
	LifetimeSessions *int64 `json:"lifetimeSessions,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Int returns a pointer to v
func Int(v int64) *int64 {
	return &v
}

func valueOr(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}

// NewDocument returns the fallback document created for a user that has none
func NewDocument(email, uid string, now time.Time) *Document {
	created := now.UTC()
	return &Document{
		Email:                email,
		UID:                  uid,
		CareBalance:          Int(0),
		EggStatus:            codec.StatusNone.String(),
		EggSessionsRemaining: Int(DefaultSessionsRemaining),
		DragonLevel:          Int(DefaultCompanionLevel),
		DragonHunger:         Int(DefaultVital),
		DragonMood:           Int(DefaultVital),
		DragonHealth:         Int(DefaultVital),
		LifetimeActions:      Int(0),
		LifetimeSessions:     Int(0),
		CreatedAt:            &created,
		LastLogin:            &created,
	}
}

// Clamp records a field whose stored value did not fit its record width
type Clamp struct {
	Field  string `json:"field"`
	Value  int64  `json:"value"`
	Stored uint64 `json:"stored"`
}

// saturate narrows v into [0, limit]. ok is false when v had to be clamped.
func saturate(v int64, limit uint64) (n uint64, ok bool) {
	switch {
	case v < 0:
		return 0, false
	case uint64(v) > limit:
		return limit, false
	}
	return uint64(v), true
}

type narrower struct {
	clamps []Clamp
}

func (n *narrower) narrow(field string, v int64, limit uint64) uint64 {
	out, ok := saturate(v, limit)
	if !ok {
		n.clamps = append(n.clamps, Clamp{Field: field, Value: v, Stored: out})
	}
	return out
}

func (n *narrower) u32(field string, v int64) uint32 {
	return uint32(n.narrow(field, v, math.MaxUint32))
}

func (n *narrower) u8(field string, v int64) uint8 {
	return uint8(n.narrow(field, v, math.MaxUint8))
}

// ToRecord converts d into a codec record, applying defaults for missing
// fields. Numbers that do not fit their fixed width saturate and are listed
// in the returned clamps; nothing wraps. now stands in for a missing
// creation time.
func (d *Document) ToRecord(now time.Time) (*codec.UserRecord, []Clamp) {
	n := &narrower{}

	created := now
	if d.CreatedAt != nil {
		created = *d.CreatedAt
	}

	r := &codec.UserRecord{
		Email:             d.Email,
		AccountID:         d.UID,
		CareCopper:        n.u32("careBalance", valueOr(d.CareBalance, 0)),
		CareSilver:        n.u32("careSilver", valueOr(d.CareSilver, 0)),
		CareGold:          n.u32("careGold", valueOr(d.CareGold, 0)),
		Status:            codec.ParseCompanionStatus(d.EggStatus),
		SessionsRemaining: n.u8("eggSessionsRemaining", valueOr(d.EggSessionsRemaining, DefaultSessionsRemaining)),
		CompanionID:       d.DragonID,
		CompanionName:     d.DragonName,
		CompanionLevel:    n.u8("dragonLevel", valueOr(d.DragonLevel, DefaultCompanionLevel)),
		CreatedAt:         created,
		LifetimeActions:   n.u32("lifetimeActions", valueOr(d.LifetimeActions, 0)),
		LifetimeSessions: uint32(n.narrow("lifetimeSessions",
			valueOr(d.LifetimeSessions, 0), codec.MaxLifetimeSessions)),
	}

	return r, n.clamps
}

// Status returns the companion status, defaulting to none
func (d *Document) Status() codec.CompanionStatus {
	return codec.ParseCompanionStatus(d.EggStatus)
}

// Balance returns the copper CARE balance, defaulting to 0
func (d *Document) Balance() int64 {
	return valueOr(d.CareBalance, 0)
}
