package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	illumium "github.com/illumium/illumium-api"
)

func newKeygenCmd() *cobra.Command {
	var (
		out   string
		env   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a fresh keyring",
		Long: `keygen creates a new box keypair and token key. By default the keyring
is written to a JSON file; with --env it is printed as a single base64
value suitable for an environment variable.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			keyring, err := illumium.GenerateKeyring()
			if err != nil {
				return err
			}

			if env {
				data, err := json.Marshal(keyring)
				if err != nil {
					return fmt.Errorf("failed to encode keyring: %w", err)
				}
				fmt.Println(base64.StdEncoding.EncodeToString(data))
				return nil
			}

			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("refusing to overwrite %s, use --force", out)
				}
			}

			fs := newOSFS(filepath.Dir(out))
			if err := keyring.Save(fs, filepath.Base(out)); err != nil {
				return err
			}

			public, err := keyring.Public.MarshalText()
			if err != nil {
				return err
			}
			fmt.Printf("keyring written to %s\n", out)
			fmt.Printf("public key: %s\n", public)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "keyring.json", "Keyring file to write")
	cmd.Flags().BoolVar(&env, "env", false, "Print the keyring as base64 instead of writing a file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing keyring file")
	return cmd
}
