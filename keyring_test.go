package illumium

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/absfs/absfs"
	"github.com/absfs/memfs"
)

func setupKeyringFS(t *testing.T) absfs.FileSystem {
	t.Helper()

	fs, err := memfs.NewFS()
	if err != nil {
		t.Fatalf("failed to create test filesystem: %v", err)
	}
	return fs
}

func generateTestKeyring(t *testing.T) *Keyring {
	t.Helper()

	keyring, err := GenerateKeyring()
	if err != nil {
		t.Fatalf("failed to generate keyring: %v", err)
	}
	return keyring
}

func TestGenerateKeyring(t *testing.T) {
	keyring := generateTestKeyring(t)

	if err := keyring.Validate(); err != nil {
		t.Errorf("generated keyring should validate: %v", err)
	}

	other := generateTestKeyring(t)
	if keyring.Public == other.Public || keyring.Token == other.Token {
		t.Error("two generated keyrings should differ")
	}
}

func TestKeyringValidate(t *testing.T) {
	tests := []struct {
		name    string
		keyring *Keyring
		wantErr string
	}{
		{
			name:    "nil keyring",
			keyring: nil,
			wantErr: "nil",
		},
		{
			name:    "zero keypair",
			keyring: &Keyring{Token: Key{1}},
			wantErr: "keypair",
		},
		{
			name: "zero token key",
			keyring: &Keyring{
				Public: PublicKey{1},
				Secret: SecretKey{2},
			},
			wantErr: "token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keyring.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestKeyringSaveLoad(t *testing.T) {
	fs := setupKeyringFS(t)
	keyring := generateTestKeyring(t)

	if err := keyring.Save(fs, "/keyring.json"); err != nil {
		t.Fatalf("failed to save keyring: %v", err)
	}

	loaded, err := LoadKeyring(fs, "/keyring.json")
	if err != nil {
		t.Fatalf("failed to load keyring: %v", err)
	}

	if *loaded != *keyring {
		t.Error("loaded keyring should equal the saved one")
	}
}

func TestKeyringSaveInvalid(t *testing.T) {
	fs := setupKeyringFS(t)

	keyring := &Keyring{}
	if err := keyring.Save(fs, "/keyring.json"); err == nil {
		t.Error("Save() of a zero keyring should fail")
	}
}

func TestLoadKeyringMissingFile(t *testing.T) {
	fs := setupKeyringFS(t)

	if _, err := LoadKeyring(fs, "/nope.json"); err == nil {
		t.Error("LoadKeyring() of a missing file should fail")
	}
}

func TestLoadKeyringCorrupt(t *testing.T) {
	fs := setupKeyringFS(t)

	f, err := fs.Create("/keyring.json")
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.Write([]byte("not json")); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	f.Close()

	if _, err := LoadKeyring(fs, "/keyring.json"); err == nil {
		t.Error("LoadKeyring() of corrupt data should fail")
	}
}

func TestLoadKeyringRejectsZeroKeys(t *testing.T) {
	fs := setupKeyringFS(t)

	data, err := json.Marshal(&Keyring{})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	f, err := fs.Create("/keyring.json")
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	f.Close()

	if _, err := LoadKeyring(fs, "/keyring.json"); err == nil {
		t.Error("LoadKeyring() should reject zero key material")
	}
}

func TestLoadKeyringEnv(t *testing.T) {
	keyring := generateTestKeyring(t)

	data, err := json.Marshal(keyring)
	if err != nil {
		t.Fatalf("failed to marshal keyring: %v", err)
	}
	t.Setenv("ILLUMIUM_KEYRING", base64.StdEncoding.EncodeToString(data))

	loaded, err := LoadKeyringEnv("ILLUMIUM_KEYRING")
	if err != nil {
		t.Fatalf("failed to load keyring: %v", err)
	}
	if *loaded != *keyring {
		t.Error("loaded keyring should equal the original")
	}
}

func TestLoadKeyringEnvErrors(t *testing.T) {
	t.Run("unset variable", func(t *testing.T) {
		if _, err := LoadKeyringEnv("ILLUMIUM_KEYRING_UNSET"); err == nil {
			t.Error("LoadKeyringEnv() of an unset variable should fail")
		}
	})

	t.Run("not base64", func(t *testing.T) {
		t.Setenv("ILLUMIUM_KEYRING", "!!!")
		if _, err := LoadKeyringEnv("ILLUMIUM_KEYRING"); err == nil {
			t.Error("LoadKeyringEnv() of malformed data should fail")
		}
	})
}

func TestKeyringChain(t *testing.T) {
	keyring := generateTestKeyring(t)
	chain := keyring.Chain()

	for _, subtype := range []string{SubtypeBase64, SubtypeSealedBox, SubtypeSecretBox} {
		if _, ok := chain.Lookup(subtype); !ok {
			t.Errorf("Chain() should register a %q codec", subtype)
		}
	}

	// Round-trip a sealed request body the way a server would see it
	m := NewMessage("application/vnd.illumium.v1", nil)
	if err := m.EncodeJSONAuto(echoParams{Name: "box", Count: 3}); err != nil {
		t.Fatalf("failed to encode json: %v", err)
	}
	if err := chain.Encode(m, SubtypeSealedBox, SubtypeBase64); err != nil {
		t.Fatalf("failed to encode layers: %v", err)
	}
	if err := chain.Decode(m); err != nil {
		t.Fatalf("failed to decode layers: %v", err)
	}

	var params echoParams
	if err := m.DecodeJSONAuto(&params); err != nil {
		t.Fatalf("failed to decode json: %v", err)
	}
	if params.Name != "box" || params.Count != 3 {
		t.Errorf("params = %+v, want {box 3}", params)
	}
}
