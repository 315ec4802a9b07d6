package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	illumium "github.com/illumium/illumium-api"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := DefaultConfig()
			if configPath != "" {
				loaded, err := LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if debug {
				cfg.Debug = true
			}

			logger := newLogger(cfg.Debug)

			keyring, err := loadKeyring(cfg)
			if err != nil {
				return err
			}

			return NewServer(cfg, keyring, logger).Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides the config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadKeyring resolves key material from the environment when
// configured, falling back to the keyring file
func loadKeyring(cfg *Config) (*illumium.Keyring, error) {
	if cfg.KeyringEnv != "" {
		return illumium.LoadKeyringEnv(cfg.KeyringEnv)
	}
	fs := newOSFS(filepath.Dir(cfg.KeyringPath))
	return illumium.LoadKeyring(fs, filepath.Base(cfg.KeyringPath))
}
