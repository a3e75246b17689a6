package config

import (
	_ "embed"
)

//go:embed defaults/brawl.yaml
var defaultBrawlYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{Variant: "brawl"},
		Display: DisplayConfig{FPS: 60},
		Storage: StorageConfig{DB: "~/.brawl/history.db"},
		Log:     LogConfig{Level: "info"},
		SSH: SSHConfig{
			Address:            ":2222",
			HostKey:            ".ssh/brawl_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBrawlYAML
}
