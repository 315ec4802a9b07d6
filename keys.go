package illumium

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

const (
	// KeySize is the length in bytes of every key type: Curve25519
	// points and scalars and XSalsa20-Poly1305 keys are all 32 bytes
	KeySize = 32

	// NonceSize is the length in bytes of a secret box nonce
	NonceSize = 24
)

// PublicKey is the public half of a box keypair. Clients seal request
// bodies to it; it is safe to publish.
type PublicKey [KeySize]byte

// SecretKey is the private half of a box keypair
type SecretKey [KeySize]byte

// Key is a shared symmetric key for secret box codecs
type Key [KeySize]byte

// GenerateKeypair creates a fresh box keypair from crypto/rand
func GenerateKeypair() (PublicKey, SecretKey, error) {
	public, secret, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return PublicKey{}, SecretKey{}, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return PublicKey(*public), SecretKey(*secret), nil
}

// GenerateKey creates a fresh symmetric key from crypto/rand
func GenerateKey() (Key, error) {
	var key Key
	if _, err := rand.Read(key[:]); err != nil {
		return Key{}, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// PublicKeyFromBytes copies raw key material into a PublicKey
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var key PublicKey
	if len(b) != KeySize {
		return key, ErrInvalidKeySize
	}
	copy(key[:], b)
	return key, nil
}

// SecretKeyFromBytes copies raw key material into a SecretKey
func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	var key SecretKey
	if len(b) != KeySize {
		return key, ErrInvalidKeySize
	}
	copy(key[:], b)
	return key, nil
}

// KeyFromBytes copies raw key material into a Key
func KeyFromBytes(b []byte) (Key, error) {
	var key Key
	if len(b) != KeySize {
		return key, ErrInvalidKeySize
	}
	copy(key[:], b)
	return key, nil
}

// Bytes returns a copy of the raw key material
func (k PublicKey) Bytes() []byte { return append([]byte(nil), k[:]...) }

// Bytes returns a copy of the raw key material
func (k SecretKey) Bytes() []byte { return append([]byte(nil), k[:]...) }

// Bytes returns a copy of the raw key material
func (k Key) Bytes() []byte { return append([]byte(nil), k[:]...) }

// IsZero reports whether the key is all zero bytes
func (k PublicKey) IsZero() bool { return k == PublicKey{} }

// IsZero reports whether the key is all zero bytes
func (k SecretKey) IsZero() bool { return k == SecretKey{} }

// IsZero reports whether the key is all zero bytes
func (k Key) IsZero() bool { return k == Key{} }

// Keys marshal as standard padded base64 in JSON, YAML and anything
// else that honors encoding.TextMarshaler.

// MarshalText implements encoding.TextMarshaler
func (k PublicKey) MarshalText() ([]byte, error) { return marshalKeyText(k[:]), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PublicKey) UnmarshalText(text []byte) error { return unmarshalKeyText(k[:], text) }

// MarshalText implements encoding.TextMarshaler
func (k SecretKey) MarshalText() ([]byte, error) { return marshalKeyText(k[:]), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (k *SecretKey) UnmarshalText(text []byte) error { return unmarshalKeyText(k[:], text) }

// MarshalText implements encoding.TextMarshaler
func (k Key) MarshalText() ([]byte, error) { return marshalKeyText(k[:]), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Key) UnmarshalText(text []byte) error { return unmarshalKeyText(k[:], text) }

func marshalKeyText(key []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(key)))
	base64.StdEncoding.Encode(out, key)
	return out
}

// unmarshalKeyText decodes base64 text into dst, leaving dst untouched
// unless the text decodes to exactly len(dst) bytes
func unmarshalKeyText(dst []byte, text []byte) error {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, text)
	if err != nil {
		return fmt.Errorf("failed to decode key: %w", err)
	}
	if n != len(dst) {
		return ErrInvalidKeySize
	}
	copy(dst, raw[:n])
	return nil
}
