package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// LoadRepositoryMetadata reads and parses path/repo.toml. A missing
// repo.toml means path is not a repository this toolkit manages.
func LoadRepositoryMetadata(path string) (*RepositoryMetadata, error) {
	repoTOMLPath := filepath.Join(path, "repo.toml")

	data, err := os.ReadFile(repoTOMLPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.KindNotARepository, fmt.Sprintf("%s is not a rookpkg repository (missing repo.toml)", path))
		}
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("reading %s", repoTOMLPath), err)
	}

	var metadata RepositoryMetadata
	if _, err := toml.Decode(string(data), &metadata); err != nil {
		return nil, errs.Wrap(errs.KindMalformedInput, "parsing repo.toml", err)
	}

	return &metadata, nil
}
