package illumium

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the message codecs and helpers
var (
	// ErrUnexpectedType reports a missing or mismatched Content-Type
	ErrUnexpectedType = errors.New("unexpected media type")

	// ErrInvalidData reports a body that cannot be decoded
	ErrInvalidData = errors.New("invalid message data")

	// ErrBodyTooLarge reports a body that exceeds the configured read limit
	ErrBodyTooLarge = errors.New("message body too large")

	// ErrUnknownSubtype reports a chain subtype with no registered codec
	ErrUnknownSubtype = errors.New("no codec registered for subtype")

	// ErrInvalidKeySize reports key material of the wrong length
	ErrInvalidKeySize = errors.New("invalid key size")
)

// CodecError describes a failed encode or decode step
type CodecError struct {
	Subtype string // Codec subtype tag ("json", "base64", "sealedbox", ...)
	Op      string // "encode" or "decode"
	Err     error  // Underlying error
}

func (e *CodecError) Error() string {
	if e.Subtype != "" {
		return fmt.Sprintf("%s %s: %v", e.Subtype, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// NewCodecError creates a new codec error for the given subtype and operation
func NewCodecError(subtype, op string, err error) error {
	return &CodecError{
		Subtype: subtype,
		Op:      op,
		Err:     err,
	}
}

// IsCodecError checks if an error is a codec error
func IsCodecError(err error) bool {
	var ce *CodecError
	return errors.As(err, &ce)
}

// decodeErr and encodeErr keep error wrapping uniform across codecs
func decodeErr(subtype string, err error) error {
	return &CodecError{Subtype: subtype, Op: "decode", Err: err}
}

func encodeErr(subtype string, err error) error {
	return &CodecError{Subtype: subtype, Op: "encode", Err: err}
}
