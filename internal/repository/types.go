// Package repository implements signed package-repository management:
// initializing a fresh repository skeleton, rebuilding its index from the
// archives present on disk, validating per-package signatures, merging
// package groups and the binary-delta index, and re-signing the result.
package repository

import (
	"time"

	"github.com/rookeryos/rookpkg/internal/delta"
)

// RepositoryMetadata is the parsed contents of repo.toml.
type RepositoryMetadata struct {
	Repository RepositoryInfo `toml:"repository"`
	Signing    SigningInfo    `toml:"signing"`
	Mirrors    []string       `toml:"mirrors,omitempty"`
}

// RepositoryInfo is the repo.toml [repository] table.
type RepositoryInfo struct {
	Name        string    `toml:"name"`
	Description string    `toml:"description"`
	Version     int       `toml:"version"`
	Updated     time.Time `toml:"updated"`
}

// SigningInfo is the repo.toml [signing] table.
type SigningInfo struct {
	Fingerprint string `toml:"fingerprint"`
	PublicKey   string `toml:"public_key,omitempty"`
}

// PackageEntry is one package's record in the index, built from a single
// .rookpkg archive during a refresh.
type PackageEntry struct {
	Name        string     `json:"name"`
	Version     string     `json:"version"`
	Release     uint64     `json:"release"`
	Description string     `json:"description"`
	Arch        string     `json:"arch"`
	Size        int64      `json:"size"`
	SHA256      string     `json:"sha256"`
	Filename    string     `json:"filename"`
	Depends     []string   `json:"depends,omitempty"`
	Provides    []string   `json:"provides,omitempty"`
	Conflicts   []string   `json:"conflicts,omitempty"`
	Replaces    []string   `json:"replaces,omitempty"`
	License     string     `json:"license,omitempty"`
	Homepage    string     `json:"homepage,omitempty"`
	Maintainer  string     `json:"maintainer,omitempty"`
	BuildDate   *time.Time `json:"build_date,omitempty"`
}

// PackageGroup is a named collection of packages, loaded from groups.toml.
type PackageGroup struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Packages    []string `json:"packages"`
	Optional    []string `json:"optional,omitempty"`
	Essential   bool     `json:"essential"`
}

// PackageIndex is the full contents of packages.json, rebuilt from scratch
// on every refresh.
type PackageIndex struct {
	RepositoryName string                `json:"repository_name"`
	Count          int                   `json:"count"`
	Packages       []PackageEntry        `json:"packages"`
	Groups         []PackageGroup        `json:"groups,omitempty"`
	DeltaIndex     *delta.RepoDeltaIndex `json:"delta_index,omitempty"`
}

// groupsFile is the on-disk shape of groups.toml: a top-level "groups"
// table keyed by group name.
type groupsFile struct {
	Groups map[string]groupDef `toml:"groups"`
}

// groupDef is one [groups.<name>] table in groups.toml.
type groupDef struct {
	Description string   `toml:"description"`
	Packages    []string `toml:"packages"`
	Optional    []string `toml:"optional,omitempty"`
	Essential   bool     `toml:"essential"`
}
