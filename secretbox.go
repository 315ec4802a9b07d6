package illumium

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// SecretBoxOverhead is the number of bytes a secret box adds to a body:
// the prepended nonce plus the Poly1305 authenticator
const SecretBoxOverhead = NonceSize + secretbox.Overhead

// SecretBoxCodec encrypts bodies with a shared symmetric key
// (XSalsa20-Poly1305). The wire format is nonce || box with a fresh
// random nonce per message, so encoding the same body twice yields
// different bytes.
type SecretBoxCodec struct {
	Key Key
}

// NewSecretBoxCodec creates a codec bound to a shared key
func NewSecretBoxCodec(key Key) *SecretBoxCodec {
	return &SecretBoxCodec{Key: key}
}

// Subtype implements Codec
func (c *SecretBoxCodec) Subtype() string { return SubtypeSecretBox }

// Encode implements Codec, sealing body under a fresh nonce
func (c *SecretBoxCodec) Encode(body []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, SecretBoxOverhead+len(body))
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, body, &nonce, (*[KeySize]byte)(&c.Key)), nil
}

// Decode implements Codec, splitting off the nonce and opening the box
func (c *SecretBoxCodec) Decode(body []byte) ([]byte, error) {
	if len(body) < SecretBoxOverhead {
		return nil, ErrInvalidData
	}

	var nonce [NonceSize]byte
	copy(nonce[:], body[:NonceSize])

	out, ok := secretbox.Open(nil, body[NonceSize:], &nonce, (*[KeySize]byte)(&c.Key))
	if !ok {
		return nil, ErrInvalidData
	}
	return out, nil
}
