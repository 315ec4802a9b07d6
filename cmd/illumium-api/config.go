package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	illumium "github.com/illumium/illumium-api"
)

// Config holds the resolved server configuration
type Config struct {
	Listen          string
	APIPrefix       string
	KeyringPath     string
	KeyringEnv      string
	BodyLimit       int64
	ShutdownTimeout time.Duration
	Debug           bool
}

// yamlConfig is the on-disk form of Config
type yamlConfig struct {
	Listen string `yaml:"listen"`
	API    struct {
		Prefix    string `yaml:"prefix"`
		BodyLimit int64  `yaml:"body_limit"`
	} `yaml:"api"`
	Keyring struct {
		Path string `yaml:"path"`
		Env  string `yaml:"env"`
	} `yaml:"keyring"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	Debug           bool   `yaml:"debug"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Listen:          ":8080",
		APIPrefix:       "/api",
		KeyringPath:     "keyring.json",
		BodyLimit:       illumium.DefaultBodyLimit,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with
// defaults and validating the result
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var dto yamlConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if dto.Listen != "" {
		cfg.Listen = dto.Listen
	}
	if dto.API.Prefix != "" {
		cfg.APIPrefix = dto.API.Prefix
	}
	if dto.API.BodyLimit > 0 {
		cfg.BodyLimit = dto.API.BodyLimit
	}
	if dto.Keyring.Path != "" {
		cfg.KeyringPath = dto.Keyring.Path
	}
	if dto.Keyring.Env != "" {
		cfg.KeyringEnv = dto.Keyring.Env
	}
	if dto.ShutdownTimeout != "" {
		d, err := time.ParseDuration(dto.ShutdownTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shutdown_timeout: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	cfg.Debug = dto.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("api prefix must start with /")
	}
	if c.KeyringPath == "" && c.KeyringEnv == "" {
		return fmt.Errorf("either a keyring path or a keyring env variable must be set")
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("body limit must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
