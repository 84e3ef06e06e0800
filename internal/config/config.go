// Package config resolves CLI-wide settings from the environment, with
// flags layered on top. It follows the same env-first, flag-second
// precedence as original_source's config.rs: a flag only wins when the
// caller explicitly set it, so cobra's zero-value defaults never shadow
// an env var.
package config

import (
	"os"
	"path/filepath"
)

const (
	envEndpoint     = "RECTIQ_ENDPOINT"
	envKeystorePath = "RECTIQ_KEYSTORE_PATH"

	defaultEndpoint = "https://api.rectiq.dev/v1/fix"
)

// Config holds the settings cmd/rectiq needs to build a repair client and
// locate the local keystore.
type Config struct {
	Endpoint     string
	KeystorePath string
}

// FromEnv builds a Config from the environment, applying the same
// defaults original_source's CliConfig::from_env_or_infer falls back to
// when no override is present.
func FromEnv() Config {
	return Config{
		Endpoint:     getEnvOr(envEndpoint, defaultEndpoint),
		KeystorePath: getEnvOr(envKeystorePath, defaultKeystorePath()),
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rectiq/keystore.json"
	}
	return filepath.Join(home, ".rectiq", "keystore.json")
}

// ApplyFlag overrides dst with value when the flag was explicitly set by
// the caller (changed is cobra's Flags().Changed result); otherwise dst
// is left at its env-derived value.
func ApplyFlag(dst *string, value string, changed bool) {
	if changed {
		*dst = value
	}
}
