package api

import (
	"time"

	"github.com/ssargent/caresave/pkg/codec"
	"github.com/ssargent/caresave/pkg/profile"
	"github.com/ssargent/caresave/pkg/usersave"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr   string
	APIKey string
}

// ProfileStore defines the profile persistence the handlers need
type ProfileStore interface {
	Create(doc *profile.Document) (*profile.Document, error)
	Get(accountID string) (*profile.Document, error)
	Put(doc *profile.Document) error
	Delete(accountID string) error
	List() ([]string, error)
}

// SaveService defines the user save operations the handlers need
type SaveService interface {
	Generate(accountID string) (*usersave.Summary, error)
	Load(text string) (*codec.UserRecord, error)
	Verify(record *codec.UserRecord, accountID string) (bool, error)
}

// CreateProfileRequest creates the fallback profile for a new user
type CreateProfileRequest struct {
	Email string `json:"email"`
}

// ActionRequest names the CARE action to apply
type ActionRequest struct {
	Action string `json:"action"`
}

// DecodeRequest carries a save in transport form. When AccountID is set the
// response reports whether the save belongs to that profile.
type DecodeRequest struct {
	Base64    string `json:"base64"`
	AccountID string `json:"account_id,omitempty"`
}

// DecodedSave is the JSON view of a decoded user record. Email and account
// id are not recoverable from a save and are omitted.
type DecodedSave struct {
	Version           uint8      `json:"version"`
	IdentityHash      string     `json:"identity_hash"`
	CareCopper        uint32     `json:"care_copper"`
	CareSilver        uint32     `json:"care_silver"`
	CareGold          uint32     `json:"care_gold"`
	CompanionStatus   string     `json:"companion_status"`
	SessionsRemaining uint8      `json:"sessions_remaining"`
	CompanionHash     string     `json:"companion_hash,omitempty"`
	CompanionName     string     `json:"companion_name"`
	CompanionLevel    uint8      `json:"companion_level"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	LastSync          *time.Time `json:"last_sync,omitempty"`
	LifetimeActions   uint32     `json:"lifetime_actions"`
	LifetimeSessions  uint32     `json:"lifetime_sessions"`
	IdentityMatch     *bool      `json:"identity_match,omitempty"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// NewDecodedSave builds the JSON view of r
func NewDecodedSave(r *codec.UserRecord) *DecodedSave {
	d := &DecodedSave{
		Version:           r.Version,
		IdentityHash:      r.IdentityHash.String(),
		CareCopper:        r.CareCopper,
		CareSilver:        r.CareSilver,
		CareGold:          r.CareGold,
		CompanionStatus:   r.Status.String(),
		SessionsRemaining: r.SessionsRemaining,
		CompanionName:     r.CompanionName,
		CompanionLevel:    r.CompanionLevel,
		CreatedAt:         optionalTime(r.CreatedAt),
		LastSync:          optionalTime(r.LastSync),
		LifetimeActions:   r.LifetimeActions,
		LifetimeSessions:  r.LifetimeSessions,
	}
	if !r.CompanionHash.IsZero() {
		d.CompanionHash = r.CompanionHash.String()
	}
	return d
}
