package codec

import (
	"fmt"
	"math"
	"time"
)

// CompanionStatus is the lifecycle stage of a user's companion
type CompanionStatus uint8

const (
	StatusNone CompanionStatus = iota
	StatusIncubating
	StatusHatched
)

var statusNames = [...]string{
	StatusNone:       "none",
	StatusIncubating: "incubating",
	StatusHatched:    "hatched",
}

func (s CompanionStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("CompanionStatus(%d)", uint8(s))
}

// Valid reports whether s is one of the three recognized statuses
func (s CompanionStatus) Valid() bool {
	return int(s) < len(statusNames)
}

// ParseCompanionStatus maps a stored status tag to its enum value. Unknown
// tags map to StatusNone.
func ParseCompanionStatus(tag string) CompanionStatus {
	for i, name := range statusNames {
		if name == tag {
			return CompanionStatus(i)
		}
	}
	return StatusNone
}

// statusCode is the on-wire byte for s. Unrecognized statuses encode as none.
func statusCode(s CompanionStatus) byte {
	if !s.Valid() {
		return byte(StatusNone)
	}
	return byte(s)
}

// statusFromCode is the inverse of statusCode
func statusFromCode(code byte) CompanionStatus {
	s := CompanionStatus(code)
	if !s.Valid() {
		return StatusNone
	}
	return s
}

// UserRecord is the logical content of a user save.
//
// On encode, Email, AccountID and CompanionID are hashed and LastSync is
// ignored. On decode those three strings are empty and the hashes are
// returned in IdentityHash and CompanionHash instead.
type UserRecord struct {
	Email     string
	AccountID string

	CareCopper uint32
	CareSilver uint32
	CareGold   uint32

	Status            CompanionStatus
	SessionsRemaining uint8
	CompanionID       string
	CompanionName     string
	CompanionLevel    uint8

	CreatedAt time.Time
	LastSync  time.Time

	LifetimeActions  uint32
	LifetimeSessions uint32

	// Populated by Decode
	Version       byte
	IdentityHash  Digest
	CompanionHash Digest
}

// epochSeconds narrows t to the 32-bit Unix seconds field. The zero time
// maps to 0; out of range values saturate.
func epochSeconds(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}
	sec := t.Unix()
	switch {
	case sec < 0:
		return 0
	case sec > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(sec)
}

// fromEpochSeconds converts a stored field back to a UTC time; 0 is the
// zero time.
func fromEpochSeconds(sec uint32) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}
