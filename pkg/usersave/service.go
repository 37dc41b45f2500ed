// Package usersave generates and loads portable user saves.
package usersave

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/ssargent/caresave/pkg/codec"
	"github.com/ssargent/caresave/pkg/profile"
	"go.uber.org/zap"
)

// FormatLabel names the save format in summaries
const FormatLabel = "USER_SAVE v1.0"

// ProfileSource supplies stored profile documents
type ProfileSource interface {
	Get(accountID string) (*profile.Document, error)
}

// TagWriter is a write target with a hard capacity
type TagWriter interface {
	Write(payload []byte) error
	Capacity() int
}

// TagReader reads a tag image
type TagReader interface {
	Read() ([]byte, error)
}

// Summary describes a generated save
type Summary struct {
	AccountID     string          `json:"account_id"`
	Format        string          `json:"format"`
	Size          int             `json:"size"`
	TagCapacity   int             `json:"tag_capacity"`
	TagCompatible bool            `json:"tag_compatible"`
	Data          SummaryData     `json:"data"`
	Base64        string          `json:"base64"`
	Clamps        []profile.Clamp `json:"clamps,omitempty"`
}

// SummaryData is the human-readable headline of a save
type SummaryData struct {
	CareBalance      uint32 `json:"care_balance"`
	CompanionStatus  string `json:"companion_status"`
	CompanionName    string `json:"companion_name"`
	LifetimeSessions uint32 `json:"lifetime_sessions"`
}

// Service ties the profile source to the record codec
type Service struct {
	profiles    ProfileSource
	codec       *codec.RecordCodec
	clock       clockwork.Clock
	logger      *zap.Logger
	tagCapacity int
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the clock used for missing creation times
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTagCapacity sets the capacity summaries are checked against
func WithTagCapacity(capacity int) Option {
	return func(s *Service) {
		s.tagCapacity = capacity
	}
}

// NewService creates a save service
func NewService(profiles ProfileSource, c *codec.RecordCodec, opts ...Option) *Service {
	s := &Service{
		profiles:    profiles,
		codec:       c,
		clock:       clockwork.NewRealClock(),
		logger:      zap.NewNop(),
		tagCapacity: codec.TagCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// encode loads the profile and produces its binary save
func (s *Service) encode(accountID string) ([]byte, *codec.UserRecord, []profile.Clamp, error) {
	doc, err := s.profiles.Get(accountID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	record, clamps := doc.ToRecord(s.clock.Now())
	for _, c := range clamps {
		s.logger.Warn("profile field saturated to fit user save",
			zap.String("account_id", accountID),
			zap.String("field", c.Field),
			zap.Int64("value", c.Value),
			zap.Uint64("stored", c.Stored),
		)
	}

	data, err := s.codec.Encode(record)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode user save: %w", err)
	}
	return data, record, clamps, nil
}

// Generate builds the save for accountID and summarizes it
func (s *Service) Generate(accountID string) (*Summary, error) {
	s.logger.Debug("generating user save", zap.String("account_id", accountID))

	data, record, clamps, err := s.encode(accountID)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(accountID, data, record, clamps)
	s.logger.Info("generated user save",
		zap.String("account_id", accountID),
		zap.Int("size", summary.Size),
		zap.Bool("tag_compatible", summary.TagCompatible),
	)
	return summary, nil
}

func (s *Service) summarize(accountID string, data []byte, record *codec.UserRecord, clamps []profile.Clamp) *Summary {
	name := record.CompanionName
	if name == "" {
		name = "N/A"
	}

	return &Summary{
		AccountID:     accountID,
		Format:        FormatLabel,
		Size:          len(data),
		TagCapacity:   s.tagCapacity,
		TagCompatible: len(data) <= s.tagCapacity,
		Data: SummaryData{
			CareBalance:      record.CareCopper,
			CompanionStatus:  record.Status.String(),
			CompanionName:    name,
			LifetimeSessions: record.LifetimeSessions,
		},
		Base64: codec.ToText(data),
		Clamps: clamps,
	}
}

// Load decodes a save from its Base64 text
func (s *Service) Load(text string) (*codec.UserRecord, error) {
	record, err := s.codec.DecodeText(text)
	if err != nil {
		s.logger.Warn("failed to load user save", zap.Stringer("kind", codec.KindOf(err)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("loaded user save", zap.Stringer("identity", record.IdentityHash))
	return record, nil
}

// WriteTag encodes the save for accountID onto t
func (s *Service) WriteTag(accountID string, t TagWriter) (*Summary, error) {
	data, record, clamps, err := s.encode(accountID)
	if err != nil {
		return nil, err
	}
	if len(data) > t.Capacity() {
		return nil, fmt.Errorf("user save is %d bytes, tag holds %d", len(data), t.Capacity())
	}
	if err := t.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write tag: %w", err)
	}

	s.logger.Info("wrote user save to tag", zap.String("account_id", accountID), zap.Int("size", len(data)))
	return s.summarize(accountID, data, record, clamps), nil
}

// ReadTag decodes the save stored on t
func (s *Service) ReadTag(t TagReader) (*codec.UserRecord, error) {
	image, err := t.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read tag: %w", err)
	}
	record, err := s.codec.Decode(image)
	if err != nil {
		s.logger.Warn("tag does not hold a valid user save", zap.Stringer("kind", codec.KindOf(err)), zap.Error(err))
		return nil, err
	}
	return record, nil
}

// Verify reports whether a decoded save belongs to accountID
func (s *Service) Verify(record *codec.UserRecord, accountID string) (bool, error) {
	doc, err := s.profiles.Get(accountID)
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	return s.codec.IdentityMatches(record, doc.Email, doc.UID), nil
}
