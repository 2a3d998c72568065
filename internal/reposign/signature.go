// Package reposign implements this toolkit's detached-signature handling
// for package archives and the repository index: producing signatures with
// a loaded private key, and resolving the right public key to verify one
// against, searching local key directories rather than a key server.
package reposign

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rookeryos/rookpkg/internal/errs"
)

// HybridSignature is the on-disk shape of a .sig file: the signature bytes
// (armored OpenPGP text) plus the fingerprint of the key that produced it,
// by which a verifier locates the matching public key.
type HybridSignature struct {
	Fingerprint string `json:"fingerprint"`
	Armored     string `json:"armored"`
}

// LoadSignatureFile reads and parses a HybridSignature from path.
func LoadSignatureFile(path string) (*HybridSignature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("reading signature file %s", path), err)
	}

	var sig HybridSignature
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, errs.Wrap(errs.KindMalformedInput, "parsing signature file", err)
	}
	return &sig, nil
}

// WriteSignatureFile serializes sig as pretty JSON and writes it to path
// atomically (write-temp-then-rename), matching this toolkit's existing
// recipe-writer idiom.
func WriteSignatureFile(path string, sig *HybridSignature) error {
	data, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return errs.Wrap(errs.KindIO, "encoding signature file", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("writing temp signature file %s", tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.KindIO, fmt.Sprintf("renaming signature file to %s", path), err)
	}
	return nil
}

// ArchiveSignaturePath returns the conventional sibling signature path for
// an archive: "<archive>.sig".
func ArchiveSignaturePath(archivePath string) string {
	return archivePath + ".sig"
}

// dirExists reports whether dir exists and is a directory; the resolver
// treats a missing key directory the same as an empty one (§4.7's
// "unreadable files are skipped silently" extended to missing directories).
func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
