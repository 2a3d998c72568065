// Package testutil provides shared test helpers: temp directories, a
// throwaway config, and file-existence assertions.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rookeryos/rookpkg/internal/config"
)

// TempDir creates a temporary directory and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "rookpkg-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

// NewTestConfig creates a Config rooted at a temporary directory, with every
// directory it names already created.
func NewTestConfig(t *testing.T) (*config.Config, func()) {
	t.Helper()
	tmpDir, cleanup := TempDir(t)

	cfg := &config.Config{
		HomeDir:         tmpDir,
		OutputDir:       filepath.Join(tmpDir, "recipes"),
		MasterKeysDir:   filepath.Join(tmpDir, "keys", "master"),
		PackagerKeysDir: filepath.Join(tmpDir, "keys", "packagers"),
		KeyCacheDir:     filepath.Join(tmpDir, "cache", "keys"),
		ConfigFile:      filepath.Join(tmpDir, "config.toml"),
	}

	if err := cfg.EnsureDirectories(); err != nil {
		cleanup()
		t.Fatalf("failed to create config directories: %v", err)
	}

	return cfg, cleanup
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AssertFileExists checks if a file exists at the given path.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if !FileExists(path) {
		t.Errorf("file does not exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does NOT exist at the given path.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if FileExists(path) {
		t.Errorf("file should not exist: %s", path)
	}
}
