package illumium

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// SealedBoxOverhead is the number of bytes a sealed box adds to a body:
// an ephemeral public key plus the Poly1305 authenticator
const SealedBoxOverhead = box.AnonymousOverhead

// SealedBoxCodec encrypts bodies to a recipient keypair using anonymous
// NaCl sealed boxes (X25519 + XSalsa20-Poly1305). Encoding uses only
// the public key, so clients that never decode may leave Secret zero.
type SealedBoxCodec struct {
	Public PublicKey
	Secret SecretKey
}

// NewSealedBoxCodec creates a codec bound to a recipient keypair
func NewSealedBoxCodec(public PublicKey, secret SecretKey) *SealedBoxCodec {
	return &SealedBoxCodec{Public: public, Secret: secret}
}

// NewSealOnlyCodec creates an encode-only codec from a public key.
// Decode always fails with ErrInvalidData.
func NewSealOnlyCodec(public PublicKey) *SealedBoxCodec {
	return &SealedBoxCodec{Public: public}
}

// Subtype implements Codec
func (c *SealedBoxCodec) Subtype() string { return SubtypeSealedBox }

// Encode implements Codec, sealing body to the recipient public key
// with a fresh ephemeral keypair
func (c *SealedBoxCodec) Encode(body []byte) ([]byte, error) {
	out, err := box.SealAnonymous(nil, body, (*[KeySize]byte)(&c.Public), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to seal body: %w", err)
	}
	return out, nil
}

// Decode implements Codec, opening a sealed body with the recipient
// keypair
func (c *SealedBoxCodec) Decode(body []byte) ([]byte, error) {
	out, ok := box.OpenAnonymous(nil, body, (*[KeySize]byte)(&c.Public), (*[KeySize]byte)(&c.Secret))
	if !ok {
		return nil, ErrInvalidData
	}
	return out, nil
}
