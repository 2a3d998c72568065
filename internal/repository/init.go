package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/reposign"
)

// Init creates a fresh signed repository skeleton at path: the directory
// itself, path/packages/, repo.toml, an empty packages.json, and
// packages.json.sig.
//
// The directory skeleton is created before repo.toml's existence is
// checked (MkdirAll is idempotent), so a retry after a partial failure
// only needs repo.toml itself to be absent — not the directory.
func Init(path, name, description string, signer *reposign.Signer) error {
	if err := os.MkdirAll(filepath.Join(path, "packages"), 0755); err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("creating repository directory %s", path), err)
	}

	repoTOMLPath := filepath.Join(path, "repo.toml")
	if _, err := os.Stat(repoTOMLPath); err == nil {
		return errs.New(errs.KindAlreadyExists, fmt.Sprintf("repository already initialized at %s", path))
	}

	publicKey, err := signer.PublicKeyArmored()
	if err != nil {
		return err
	}

	metadata := &RepositoryMetadata{
		Repository: RepositoryInfo{
			Name:        name,
			Description: description,
			Version:     1,
			Updated:     time.Now().UTC(),
		},
		Signing: SigningInfo{
			Fingerprint: signer.Fingerprint(),
			PublicKey:   publicKey,
		},
	}

	if err := writeRepoTOML(repoTOMLPath, metadata); err != nil {
		return err
	}

	index := &PackageIndex{
		RepositoryName: name,
		Count:          0,
		Packages:       []PackageEntry{},
	}

	indexPath := filepath.Join(path, "packages.json")
	sigPath := filepath.Join(path, "packages.json.sig")
	return writeSignedIndex(indexPath, sigPath, index, signer)
}

func writeRepoTOML(path string, metadata *RepositoryMetadata) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("creating %s", tmp), err)
	}

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(metadata); err != nil {
		f.Close()
		os.Remove(tmp)
		return errs.Wrap(errs.KindIO, "encoding repo.toml", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.KindIO, "closing repo.toml", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.KindIO, fmt.Sprintf("renaming to %s", path), err)
	}
	return nil
}

// writeSignedIndex writes indexPath and sigPath atomically, index-before-
// signature, with the signature computed from the temp index file's
// contents so a crash between the two writes cannot leave a signature over
// content that was never committed (§9's write-temp-then-rename upgrade).
func writeSignedIndex(indexPath, sigPath string, index *PackageIndex, signer *reposign.Signer) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return errs.Wrap(errs.KindIO, "encoding package index", err)
	}

	tmp := indexPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("writing temp index %s", tmp), err)
	}

	sig, err := signer.SignBytes(data)
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, indexPath); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.KindIO, fmt.Sprintf("renaming index to %s", indexPath), err)
	}

	if err := reposign.WriteSignatureFile(sigPath, sig); err != nil {
		return err
	}

	return nil
}
