package reposign

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rookeryos/rookpkg/internal/testutil"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, dir, name string, key interface{ Armor() (string, error) }) {
	t.Helper()
	armored, err := key.Armor()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(armored), 0644))
}

func TestResolver_FindsKeyInMasterDir(t *testing.T) {
	masterDir := t.TempDir()
	packagerDir := t.TempDir()

	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, masterDir, "release.pub", pub)

	r := &Resolver{MasterKeysDir: masterDir, PackagerKeysDir: packagerDir}

	found, err := r.Resolve(key.GetFingerprint())
	require.NoError(t, err)
	require.Equal(t, strings.ToUpper(key.GetFingerprint()), strings.ToUpper(found.GetFingerprint()))
}

func TestResolver_FindsKeyInPackagerDir(t *testing.T) {
	masterDir := t.TempDir()
	packagerDir := t.TempDir()

	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, packagerDir, "alice.pub", pub)

	r := &Resolver{MasterKeysDir: masterDir, PackagerKeysDir: packagerDir}

	_, err = r.Resolve(key.GetFingerprint())
	require.NoError(t, err)
}

func TestResolver_SuffixMatch(t *testing.T) {
	masterDir := t.TempDir()

	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, masterDir, "release.pub", pub)

	r := &Resolver{MasterKeysDir: masterDir, PackagerKeysDir: t.TempDir()}

	fullFingerprint := strings.ToUpper(key.GetFingerprint())
	shortForm := fullFingerprint[len(fullFingerprint)-16:]

	found, err := r.Resolve(shortForm)
	require.NoError(t, err)
	require.Equal(t, fullFingerprint, strings.ToUpper(found.GetFingerprint()))
}

func TestResolver_NotFound(t *testing.T) {
	r := &Resolver{MasterKeysDir: t.TempDir(), PackagerKeysDir: t.TempDir()}

	_, err := r.Resolve("0000000000000000000000000000000000000000")
	require.Error(t, err)
}

func TestResolver_MissingDirectoriesAreSkippedSilently(t *testing.T) {
	r := &Resolver{
		MasterKeysDir:   filepath.Join(t.TempDir(), "does-not-exist"),
		PackagerKeysDir: filepath.Join(t.TempDir(), "also-missing"),
	}

	_, err := r.Resolve("ABCDEF0123456789ABCDEF0123456789ABCDEF01")
	require.Error(t, err)
}

func TestNewResolverFromConfig_FindsKeyUnderConfiguredDirectories(t *testing.T) {
	cfg, cleanup := testutil.NewTestConfig(t)
	defer cleanup()

	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, cfg.MasterKeysDir, "release.pub", pub)

	r := NewResolverFromConfig(cfg)
	require.Equal(t, cfg.MasterKeysDir, r.MasterKeysDir)
	require.Equal(t, cfg.PackagerKeysDir, r.PackagerKeysDir)

	found, err := r.Resolve(key.GetFingerprint())
	require.NoError(t, err)
	require.Equal(t, strings.ToUpper(key.GetFingerprint()), strings.ToUpper(found.GetFingerprint()))
}

func TestFingerprintsMatch(t *testing.T) {
	cases := []struct {
		a, b  string
		match bool
	}{
		{"ABCDEF0123456789", "ABCDEF0123456789", true},
		{"FULLFINGERPRINTABCDEF0123456789", "0123456789", true},
		{"0123456789", "FULLFINGERPRINTABCDEF0123456789", true},
		{"AAAA", "BBBB", false},
	}
	for _, c := range cases {
		require.Equal(t, c.match, fingerprintsMatch(c.a, c.b), "fingerprintsMatch(%q, %q)", c.a, c.b)
	}
}
