package codec

import (
	"crypto"
	_ "crypto/sha256" // registers crypto.SHA256
	"encoding/hex"
)

// HashSize is the width of a truncated digest in bytes
const HashSize = 8

// Digest is a truncated one-way hash. There is deliberately no way back to
// the seed it was computed from.
type Digest [HashSize]byte

// IsZero reports whether d is the all-zero "absent" digest
func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IdentityHasher derives short deterministic identifiers from seed strings
type IdentityHasher struct {
	hash crypto.Hash
}

// NewIdentityHasher returns a hasher over h. SHA-256 is the record format's
// primitive; other values exist for tests of the unavailable path.
func NewIdentityHasher(h crypto.Hash) IdentityHasher {
	return IdentityHasher{hash: h}
}

// Available reports whether the underlying hash is linked into the binary
func (h IdentityHasher) Available() bool {
	return h.hash.Available()
}

// Sum hashes the UTF-8 bytes of seed and keeps the first HashSize bytes.
// Callers must check Available first.
func (h IdentityHasher) Sum(seed string) Digest {
	hh := h.hash.New()
	_, _ = hh.Write([]byte(seed))

	var d Digest
	copy(d[:], hh.Sum(nil))
	return d
}

// Identity hashes the "{email}:{accountId}" pair
func (h IdentityHasher) Identity(email, accountID string) Digest {
	return h.Sum(email + ":" + accountID)
}

// Companion hashes a companion id; an empty id yields the zero digest
func (h IdentityHasher) Companion(companionID string) Digest {
	if companionID == "" {
		return Digest{}
	}
	return h.Sum(companionID)
}
