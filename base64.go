package illumium

import (
	"encoding/base64"
)

// Base64Codec armors binary bodies as standard padded base64, making
// encrypted payloads safe to embed in JSON or text transports
type Base64Codec struct{}

// Subtype implements Codec
func (Base64Codec) Subtype() string { return SubtypeBase64 }

// Encode implements Codec
func (Base64Codec) Encode(body []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(body)))
	base64.StdEncoding.Encode(out, body)
	return out, nil
}

// Decode implements Codec
func (Base64Codec) Decode(body []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
	n, err := base64.StdEncoding.Decode(out, body)
	if err != nil {
		return nil, ErrInvalidData
	}
	return out[:n], nil
}
