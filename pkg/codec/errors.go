package codec

import (
	"errors"
	"fmt"
)

// Kind classifies codec failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMalformedTransport
	KindMalformedRecord
	KindInvalidMagic
	KindChecksumMismatch
	KindVersionMismatch
	KindEncodingUnavailable
)

var kindNames = map[Kind]string{
	KindUnknown:             "Unknown",
	KindMalformedTransport:  "MalformedTransport",
	KindMalformedRecord:     "MalformedRecord",
	KindInvalidMagic:        "InvalidMagic",
	KindChecksumMismatch:    "ChecksumMismatch",
	KindVersionMismatch:     "VersionMismatch",
	KindEncodingUnavailable: "EncodingUnavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is the failure type returned by the codec
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. The message is
// not compared.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Errors
var (
	ErrMalformedTransport  = &Error{Kind: KindMalformedTransport, Message: "malformed transport text"}
	ErrMalformedRecord     = &Error{Kind: KindMalformedRecord, Message: "malformed record"}
	ErrInvalidMagic        = &Error{Kind: KindInvalidMagic, Message: "invalid magic number"}
	ErrChecksumMismatch    = &Error{Kind: KindChecksumMismatch, Message: "checksum mismatch"}
	ErrVersionMismatch     = &Error{Kind: KindVersionMismatch, Message: "version mismatch"}
	ErrEncodingUnavailable = &Error{Kind: KindEncodingUnavailable, Message: "hash primitive unavailable"}
)

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
