package illumium

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/absfs/absfs"
)

// Keyring holds the server-side key material for the sealed transport:
// the box keypair clients seal request bodies to, and the symmetric key
// that protects server-issued tokens.
type Keyring struct {
	Public PublicKey `json:"public_key"`
	Secret SecretKey `json:"secret_key"`
	Token  Key       `json:"token_key"`
}

// GenerateKeyring creates a keyring with fresh random keys
func GenerateKeyring() (*Keyring, error) {
	public, secret, err := GenerateKeypair()
	if err != nil {
		return nil, err
	}
	token, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Keyring{
		Public: public,
		Secret: secret,
		Token:  token,
	}, nil
}

// Validate checks the keyring holds usable key material
func (k *Keyring) Validate() error {
	if k == nil {
		return errors.New("keyring cannot be nil")
	}
	if k.Public.IsZero() || k.Secret.IsZero() {
		return errors.New("keyring box keypair cannot be zero")
	}
	if k.Token.IsZero() {
		return errors.New("keyring token key cannot be zero")
	}
	return nil
}

// Chain builds the codec chain a server runs over this keyring:
// base64 armor, sealed box for request bodies, secret box for tokens
func (k *Keyring) Chain() *Chain {
	return NewChain(
		Base64Codec{},
		NewSealedBoxCodec(k.Public, k.Secret),
		NewSecretBoxCodec(k.Token),
	)
}

// Save writes the keyring as indented JSON through the filesystem
// abstraction, creating the file with owner-only permissions
func (k *Keyring) Save(fs absfs.FileSystem, path string) error {
	if err := k.Validate(); err != nil {
		return err
	}

	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create keyring file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(k); err != nil {
		return fmt.Errorf("failed to encode keyring: %w", err)
	}

	return nil
}

// LoadKeyring reads and validates a keyring written by Save
func LoadKeyring(fs absfs.FileSystem, path string) (*Keyring, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring file: %w", err)
	}
	defer f.Close()

	keyring := &Keyring{}
	if err := json.NewDecoder(f).Decode(keyring); err != nil {
		return nil, fmt.Errorf("failed to decode keyring: %w", err)
	}
	if err := keyring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keyring: %w", err)
	}

	return keyring, nil
}

// LoadKeyringEnv reads a keyring from an environment variable holding
// the base64 of its JSON form, for deployments without a key file
func LoadKeyringEnv(name string) (*Keyring, error) {
	encoded := os.Getenv(name)
	if encoded == "" {
		return nil, fmt.Errorf("environment variable %s is not set", name)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	keyring := &Keyring{}
	if err := json.Unmarshal(data, keyring); err != nil {
		return nil, fmt.Errorf("failed to decode keyring: %w", err)
	}
	if err := keyring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keyring: %w", err)
	}

	return keyring, nil
}
