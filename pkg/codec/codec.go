package codec

import (
	"bytes"
	"crypto"
	"crypto/subtle"
	"encoding/binary"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// RecordCodec handles serialization and deserialization of user saves
type RecordCodec struct {
	hasher        IdentityHasher
	clock         clockwork.Clock
	logger        *zap.Logger
	strictVersion bool
}

// Option configures a RecordCodec
type Option func(*RecordCodec)

// WithClock sets the clock used to stamp LastSync
func WithClock(clock clockwork.Clock) Option {
	return func(c *RecordCodec) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for version warnings
func WithLogger(logger *zap.Logger) Option {
	return func(c *RecordCodec) {
		c.logger = logger
	}
}

// WithHasher replaces the identity hasher
func WithHasher(h IdentityHasher) Option {
	return func(c *RecordCodec) {
		c.hasher = h
	}
}

// WithStrictVersion makes Decode reject unknown versions with
// ErrVersionMismatch instead of logging a warning.
func WithStrictVersion() Option {
	return func(c *RecordCodec) {
		c.strictVersion = true
	}
}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec(opts ...Option) *RecordCodec {
	c := &RecordCodec{
		hasher: NewIdentityHasher(crypto.SHA256),
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes r into a fresh RecordSize-byte buffer. LastSync is
// taken from the codec's clock, not from r.
func (c *RecordCodec) Encode(r *UserRecord) ([]byte, error) {
	if !c.hasher.Available() {
		return nil, ErrEncodingUnavailable
	}

	l := currentLayout()
	buf := make([]byte, l.size)

	binary.BigEndian.PutUint32(buf[0:], Magic)
	buf[4] = l.version

	identity := c.hasher.Identity(r.Email, r.AccountID)
	copy(buf[l.identity.off:l.identity.end()], identity[:])

	binary.BigEndian.PutUint32(buf[l.careCopper.off:], r.CareCopper)
	binary.BigEndian.PutUint32(buf[l.careSilver.off:], r.CareSilver)
	binary.BigEndian.PutUint32(buf[l.careGold.off:], r.CareGold)

	buf[l.status.off] = statusCode(r.Status)
	buf[l.sessions.off] = r.SessionsRemaining

	companion := c.hasher.Companion(r.CompanionID)
	copy(buf[l.companionHash.off:l.companionHash.end()], companion[:])

	// copy truncates at the field width, possibly mid code point
	copy(buf[l.companionName.off:l.companionName.end()], r.CompanionName)
	buf[l.level.off] = r.CompanionLevel

	binary.BigEndian.PutUint32(buf[l.createdAt.off:], epochSeconds(r.CreatedAt))
	binary.BigEndian.PutUint32(buf[l.lastSync.off:], epochSeconds(c.clock.Now()))

	binary.BigEndian.PutUint32(buf[l.actions.off:], r.LifetimeActions)
	sessions := r.LifetimeSessions
	if sessions > MaxLifetimeSessions {
		c.logger.Warn("lifetime sessions exceed field width, saturating",
			zap.Uint32("value", sessions),
			zap.Uint32("max", MaxLifetimeSessions),
		)
		sessions = MaxLifetimeSessions
	}
	putUint24(buf[l.sessionsTotal.off:], sessions)

	p := l.protected()
	binary.BigEndian.PutUint16(buf[l.checksum.off:], CRC16(buf[p.off:p.end()]))

	return buf, nil
}

// Decode deserializes a binary user save. Validation runs in order: length,
// magic, version, checksum. Nothing is returned unless every check passes.
func (c *RecordCodec) Decode(data []byte) (*UserRecord, error) {
	if len(data) < RecordSize {
		return nil, newError(KindMalformedRecord, "data too short for record: %d < %d", len(data), RecordSize)
	}

	if magic := binary.BigEndian.Uint32(data[0:4]); magic != Magic {
		return nil, newError(KindInvalidMagic, "invalid magic number: %#08x", magic)
	}

	version := data[4]
	l, ok := layoutFor(version)
	if !ok {
		if c.strictVersion {
			return nil, newError(KindVersionMismatch, "unsupported record version: %d", version)
		}
		c.logger.Warn("user save version mismatch, decoding with current layout",
			zap.Stringer("kind", KindVersionMismatch),
			zap.Uint8("expected", CurrentVersion),
			zap.Uint8("got", version),
		)
		l = currentLayout()
	}
	if len(data) < l.size {
		return nil, newError(KindMalformedRecord, "data too short for version %d record: %d < %d", version, len(data), l.size)
	}

	r := &UserRecord{Version: version}
	copy(r.IdentityHash[:], data[l.identity.off:l.identity.end()])

	r.CareCopper = binary.BigEndian.Uint32(data[l.careCopper.off:])
	r.CareSilver = binary.BigEndian.Uint32(data[l.careSilver.off:])
	r.CareGold = binary.BigEndian.Uint32(data[l.careGold.off:])

	r.Status = statusFromCode(data[l.status.off])
	r.SessionsRemaining = data[l.sessions.off]
	copy(r.CompanionHash[:], data[l.companionHash.off:l.companionHash.end()])

	// string() copies, so the record never aliases data
	r.CompanionName = string(bytes.TrimRight(data[l.companionName.off:l.companionName.end()], "\x00"))
	r.CompanionLevel = data[l.level.off]

	r.CreatedAt = fromEpochSeconds(binary.BigEndian.Uint32(data[l.createdAt.off:]))
	r.LastSync = fromEpochSeconds(binary.BigEndian.Uint32(data[l.lastSync.off:]))

	r.LifetimeActions = binary.BigEndian.Uint32(data[l.actions.off:])
	r.LifetimeSessions = uint24(data[l.sessionsTotal.off:])

	p := l.protected()
	stored := data[l.checksum.off:l.checksum.end()]
	var computed [2]byte
	binary.BigEndian.PutUint16(computed[:], CRC16(data[p.off:p.end()]))
	if !bytes.Equal(stored, computed[:]) {
		return nil, newError(KindChecksumMismatch, "checksum mismatch: stored %x, computed %x", stored, computed)
	}

	return r, nil
}

// EncodeText encodes r and returns its Base64 transport form
func (c *RecordCodec) EncodeText(r *UserRecord) (string, error) {
	data, err := c.Encode(r)
	if err != nil {
		return "", err
	}
	return ToText(data), nil
}

// DecodeText decodes the Base64 transport form of a record
func (c *RecordCodec) DecodeText(text string) (*UserRecord, error) {
	data, err := FromText(text)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

func putUint24(b []byte, v uint32) {
	_ = b[2] // bounds check hint to compiler
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// IdentityMatches reports whether a decoded record was issued for the given
// email and account id. The stored hash is compared, never reversed.
func (c *RecordCodec) IdentityMatches(r *UserRecord, email, accountID string) bool {
	if !c.hasher.Available() {
		return false
	}
	want := c.hasher.Identity(email, accountID)
	return subtle.ConstantTimeCompare(r.IdentityHash[:], want[:]) == 1
}
