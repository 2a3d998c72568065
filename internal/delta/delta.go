// Package delta implements this toolkit's own binary-delta index format
// (deltas.json), letting the repository refresher report available
// upgrade paths without re-downloading a full package archive. The format
// is this repository's invention (§1/§10 of the design notes), kept
// deliberately minimal.
package delta

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// Delta describes a patch transforming an installed package at
// (FromVersion, FromRelease) into (ToVersion, ToRelease) without a full
// re-download.
type Delta struct {
	FromVersion string `json:"from_version"`
	FromRelease uint64 `json:"from_release"`
	ToVersion   string `json:"to_version"`
	ToRelease   uint64 `json:"to_release"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	SHA256      string `json:"sha256"`
}

// RepoDeltaIndex is the parsed contents of deltas.json: per-package lists
// of available deltas.
type RepoDeltaIndex struct {
	Packages map[string][]Delta `json:"packages"`
}

// LoadDeltaIndex parses path as a RepoDeltaIndex.
func LoadDeltaIndex(path string) (*RepoDeltaIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("reading delta index %s", path), err)
	}

	var idx RepoDeltaIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errs.Wrap(errs.KindMalformedInput, "parsing delta index", err)
	}
	if idx.Packages == nil {
		idx.Packages = make(map[string][]Delta)
	}
	return &idx, nil
}

// FindDeltaFrom returns every delta originating at (fromVersion,
// fromRelease) for pkg, in the order they appear in the index.
func (idx *RepoDeltaIndex) FindDeltaFrom(pkg, fromVersion string, fromRelease uint64) []Delta {
	var matches []Delta
	for _, d := range idx.Packages[pkg] {
		if d.FromVersion == fromVersion && d.FromRelease == fromRelease {
			matches = append(matches, d)
		}
	}
	return matches
}

// FindDelta returns the single delta transforming pkg from
// (fromVersion, fromRelease) to exactly (toVersion, toRelease), if any.
func (idx *RepoDeltaIndex) FindDelta(pkg, fromVersion string, fromRelease uint64, toVersion string, toRelease uint64) (*Delta, bool) {
	for _, d := range idx.FindDeltaFrom(pkg, fromVersion, fromRelease) {
		if d.ToVersion == toVersion && d.ToRelease == toRelease {
			delta := d
			return &delta, true
		}
	}
	return nil, false
}

// HasDeltaForUpgrade reports whether any delta originating at (fromVersion,
// fromRelease) lands on a version newer than or equal to toVersion,
// comparing versions with semver when both sides parse as one and falling
// back to a lexicographic comparison otherwise, matching this toolkit's
// existing version-ordering idiom.
func (idx *RepoDeltaIndex) HasDeltaForUpgrade(pkg, fromVersion string, fromRelease uint64, toVersion string, toRelease uint64) bool {
	for _, d := range idx.FindDeltaFrom(pkg, fromVersion, fromRelease) {
		if versionGTE(d.ToVersion, toVersion) && (d.ToVersion != toVersion || d.ToRelease >= toRelease) {
			return true
		}
	}
	return false
}

// versionGTE reports whether a >= b, preferring semver comparison and
// falling back to a lexicographic comparison when either side fails to
// parse as semver.
func versionGTE(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return !va.LessThan(vb)
	}
	return a >= b
}
