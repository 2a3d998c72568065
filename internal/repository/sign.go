package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/reposign"
)

// Sign re-signs path's existing packages.json without touching its
// contents, for the `repo sign` command.
func Sign(path string, signer *reposign.Signer) error {
	if _, err := LoadRepositoryMetadata(path); err != nil {
		return err
	}

	indexPath := filepath.Join(path, "packages.json")
	sigPath := filepath.Join(path, "packages.json.sig")

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("reading %s", indexPath), err)
	}

	sig, err := signer.SignBytes(data)
	if err != nil {
		return err
	}

	return reposign.WriteSignatureFile(sigPath, sig)
}
