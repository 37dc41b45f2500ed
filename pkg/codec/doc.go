// Package codec provides the portable user-save record format for CARE.
//
// The codec packs a user's CARE balances and companion state into a fixed
// 63-byte binary record that fits comfortably on a capacity-constrained tag
// (NTAG 216 class, 868 bytes), and unpacks it again with integrity checking.
//
// # Record Format
//
// All multi-byte integers are big-endian. Version 1 layout:
//
//	[Magic(4)][Version(1)][IdentityHash(8)]
//	[Copper(4)][Silver(4)][Gold(4)]
//	[Status(1)][SessionsRemaining(1)][CompanionHash(8)][CompanionName(10)][Level(1)]
//	[CreatedAt(4)][LastSync(4)]
//	[LifetimeActions(4)][LifetimeSessions(3)]
//	[CRC16(2)]
//
// Fields:
//   - Magic: the constant 0x43415245 ("CARE")
//   - Version: layout version, currently 0x01
//   - IdentityHash: first 8 bytes of SHA-256("{email}:{accountId}")
//   - CompanionHash: first 8 bytes of SHA-256(companionId), zero when absent
//   - CompanionName: UTF-8, zero padded, truncated to 10 bytes
//   - CreatedAt, LastSync: Unix seconds
//   - LifetimeSessions: 24-bit, saturating at MaxLifetimeSessions
//   - CRC16: checksum over bytes [0, 61)
//
// The identity and companion hashes are one-way. Emails, account ids and
// companion ids cannot be recovered from a record.
//
// # CRC16 Calculation
//
// The checksum is the reflected CRC-16 with initial value 0xFFFF and
// polynomial 0xA001, computed bit by bit with no final xor (CRC-16/MODBUS).
// It detects corruption; it is not a cryptographic integrity guarantee.
//
// # Usage
//
//	c := codec.NewRecordCodec(codec.WithLogger(logger))
//
//	data, err := c.Encode(&codec.UserRecord{
//	    Email:         "ember@example.com",
//	    AccountID:     "2a9f...",
//	    CareCopper:    1500,
//	    Status:        codec.StatusIncubating,
//	    CompanionName: "Ember",
//	})
//	if err != nil {
//	    return err
//	}
//
//	text := codec.ToText(data) // Base64 for clipboard or QR transfer
//
//	record, err := c.DecodeText(text)
//	if errors.Is(err, codec.ErrChecksumMismatch) {
//	    return err // corrupted save
//	}
//
// # Error Handling
//
// Failures are reported as *Error values carrying a Kind. Use errors.Is with
// the exported sentinels (ErrMalformedRecord, ErrInvalidMagic, ...) or KindOf
// to classify them. A record is either fully decoded or not returned at all.
//
// # Versioning
//
// Each version byte maps to its own layout. A record carrying a version the
// codec does not know is decoded with the current layout and a warning is
// logged, unless the codec was built WithStrictVersion.
//
// # Thread Safety
//
// RecordCodec instances are immutable after construction and safe for
// concurrent use. Every Encode allocates a fresh buffer and every Decode
// returns a fresh UserRecord that shares no memory with its input.
package codec
