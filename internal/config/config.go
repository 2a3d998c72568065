// Package config holds rookpkg's on-disk layout: where signing keys are
// cached, where converted recipes land by default, and how long network
// operations are allowed to take.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// EnvHome overrides the default rookpkg home directory.
	EnvHome = "ROOKPKG_HOME"

	// EnvAPITimeout configures the HTTP timeout used by the bulk conversion
	// driver and single-package fetches.
	EnvAPITimeout = "ROOKPKG_API_TIMEOUT"

	// DefaultAPITimeout is the default HTTP request timeout (30 seconds,
	// matching the single-threaded synchronous-client model in §5).
	DefaultAPITimeout = 30 * time.Second
)

// GetAPITimeout returns the configured API timeout from ROOKPKG_API_TIMEOUT.
// If not set or invalid, returns DefaultAPITimeout.
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n", EnvAPITimeout, duration)
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 10m\n", EnvAPITimeout, duration)
		return 10 * time.Minute
	}

	return duration
}

// DefaultHomeOverride can be set by the binary's main package (via ldflags)
// to change the default home directory for dev builds. ROOKPKG_HOME still
// takes precedence.
var DefaultHomeOverride string

// Config holds rookpkg's configuration.
type Config struct {
	HomeDir         string // $ROOKPKG_HOME
	OutputDir       string // $ROOKPKG_HOME/recipes (default "convert arch" output)
	MasterKeysDir   string // $ROOKPKG_HOME/keys/master
	PackagerKeysDir string // $ROOKPKG_HOME/keys/packagers
	KeyCacheDir     string // $ROOKPKG_HOME/cache/keys
	ConfigFile      string // $ROOKPKG_HOME/config.toml
}

// DefaultConfig returns the default configuration, honoring ROOKPKG_HOME.
func DefaultConfig() (*Config, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		if DefaultHomeOverride != "" {
			home = DefaultHomeOverride
		} else {
			userHome, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get user home directory: %w", err)
			}
			home = filepath.Join(userHome, ".rookpkg")
		}
	}

	return &Config{
		HomeDir:         home,
		OutputDir:       filepath.Join(home, "recipes"),
		MasterKeysDir:   filepath.Join(home, "keys", "master"),
		PackagerKeysDir: filepath.Join(home, "keys", "packagers"),
		KeyCacheDir:     filepath.Join(home, "cache", "keys"),
		ConfigFile:      filepath.Join(home, "config.toml"),
	}, nil
}

// EnsureDirectories creates all directories this config names.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.HomeDir,
		c.OutputDir,
		c.MasterKeysDir,
		c.PackagerKeysDir,
		c.KeyCacheDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// UserSigningKeyPath returns the path to the fallback user signing key
// consulted by the signature resolver (§4.7, step 3): <user config dir>/rookpkg/signing-key.pub.
func UserSigningKeyPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "rookpkg", "signing-key.pub"), nil
}

// RootSigningKeyPath is the final, hardcoded fallback searched by the
// signature resolver (§4.7, step 4).
const RootSigningKeyPath = "/root/.config/rookpkg/signing-key.pub"
