package reposign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyArchive_Unsigned(t *testing.T) {
	resolver := &Resolver{MasterKeysDir: t.TempDir(), PackagerKeysDir: t.TempDir()}
	status := ClassifyArchive(resolver, []byte("archive bytes"), filepath.Join(t.TempDir(), "missing.sig"))
	require.Equal(t, StatusUnsigned, status)
}

func TestClassifyArchive_Signed(t *testing.T) {
	masterDir := t.TempDir()
	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, masterDir, "release.pub", pub)

	armored, err := key.Armor()
	require.NoError(t, err)
	signer, err := NewSigner(armored)
	require.NoError(t, err)

	data := []byte("archive bytes")
	sig, err := signer.SignBytes(data)
	require.NoError(t, err)

	sigPath := filepath.Join(t.TempDir(), "pkg.rookpkg.sig")
	require.NoError(t, WriteSignatureFile(sigPath, sig))

	resolver := &Resolver{MasterKeysDir: masterDir, PackagerKeysDir: t.TempDir()}
	status := ClassifyArchive(resolver, data, sigPath)
	require.Equal(t, StatusSigned, status)
}

func TestClassifyArchive_InvalidWhenTampered(t *testing.T) {
	masterDir := t.TempDir()
	key := generateTestKey(t)
	pub, err := key.ToPublic()
	require.NoError(t, err)
	writeKeyFile(t, masterDir, "release.pub", pub)

	armored, err := key.Armor()
	require.NoError(t, err)
	signer, err := NewSigner(armored)
	require.NoError(t, err)

	sig, err := signer.SignBytes([]byte("original bytes"))
	require.NoError(t, err)

	sigPath := filepath.Join(t.TempDir(), "pkg.rookpkg.sig")
	require.NoError(t, WriteSignatureFile(sigPath, sig))

	resolver := &Resolver{MasterKeysDir: masterDir, PackagerKeysDir: t.TempDir()}
	status := ClassifyArchive(resolver, []byte("tampered bytes"), sigPath)
	require.Equal(t, StatusInvalid, status)
}

func TestClassifyArchive_InvalidWhenSignatureFileCorrupt(t *testing.T) {
	sigPath := filepath.Join(t.TempDir(), "pkg.rookpkg.sig")
	require.NoError(t, os.WriteFile(sigPath, []byte("not valid json armor at all"), 0o644))

	resolver := &Resolver{MasterKeysDir: t.TempDir(), PackagerKeysDir: t.TempDir()}
	status := ClassifyArchive(resolver, []byte("archive bytes"), sigPath)
	require.Equal(t, StatusInvalid, status, "a present but unreadable .sig file must be distinguished from never having been signed")
}

func TestClassifyArchive_InvalidWhenKeyMissing(t *testing.T) {
	key := generateTestKey(t)
	armored, err := key.Armor()
	require.NoError(t, err)
	signer, err := NewSigner(armored)
	require.NoError(t, err)

	sig, err := signer.SignBytes([]byte("data"))
	require.NoError(t, err)

	sigPath := filepath.Join(t.TempDir(), "pkg.rookpkg.sig")
	require.NoError(t, WriteSignatureFile(sigPath, sig))

	// No key directories contain the signing key.
	resolver := &Resolver{MasterKeysDir: t.TempDir(), PackagerKeysDir: t.TempDir()}
	status := ClassifyArchive(resolver, []byte("data"), sigPath)
	require.Equal(t, StatusInvalid, status)
}
