package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rookeryos/rookpkg/internal/archive"
	"github.com/rookeryos/rookpkg/internal/delta"
	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/log"
	"github.com/rookeryos/rookpkg/internal/reposign"
)

// RefreshStats summarizes one refresh pass, reported by the CLI as a
// post-refresh summary line.
type RefreshStats struct {
	Scanned       int
	Signed        int
	Unsigned      int
	Invalid       int
	GroupWarnings []string
	DeltaUpgrades []string
}

// Refresh rebuilds path's packages.json from scratch by scanning
// path/packages/*.rookpkg, then re-signs it. groups.toml and deltas.json
// are attached if present; their absence is not an error.
func Refresh(path string, resolver *reposign.Resolver, signer *reposign.Signer, logger log.Logger) (*RefreshStats, error) {
	metadata, err := LoadRepositoryMetadata(path)
	if err != nil {
		return nil, err
	}

	stats := &RefreshStats{}

	entries, err := scanArchives(path, resolver, stats, logger)
	if err != nil {
		return nil, err
	}

	index := &PackageIndex{
		RepositoryName: metadata.Repository.Name,
		Count:          len(entries),
		Packages:       entries,
	}

	groups, warnings := loadGroups(path, entries)
	index.Groups = groups
	stats.GroupWarnings = warnings

	if deltaIndex, upgrades := loadDeltas(path, entries); deltaIndex != nil {
		index.DeltaIndex = deltaIndex
		stats.DeltaUpgrades = upgrades
	}

	indexPath := filepath.Join(path, "packages.json")
	sigPath := filepath.Join(path, "packages.json.sig")
	if err := writeSignedIndex(indexPath, sigPath, index, signer); err != nil {
		return nil, err
	}

	return stats, nil
}

// scanArchives iterates path/packages/*.rookpkg in lexical filename order
// (stable across refreshes of an unchanged directory) and builds one
// PackageEntry per archive.
func scanArchives(path string, resolver *reposign.Resolver, stats *RefreshStats, logger log.Logger) ([]PackageEntry, error) {
	packagesDir := filepath.Join(path, "packages")

	dirEntries, err := os.ReadDir(packagesDir)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("listing %s", packagesDir), err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".rookpkg" {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	var result []PackageEntry
	for _, name := range names {
		archivePath := filepath.Join(packagesDir, name)

		entry, status, err := buildEntry(archivePath, name, resolver)
		if err != nil {
			return nil, err
		}

		switch status {
		case reposign.StatusSigned:
			stats.Signed++
		case reposign.StatusInvalid:
			stats.Invalid++
			logger.Warn("archive has an invalid signature", "archive", name)
		default:
			stats.Unsigned++
		}

		stats.Scanned++
		result = append(result, *entry)
	}

	return result, nil
}

func buildEntry(archivePath, basename string, resolver *reposign.Resolver) (*PackageEntry, reposign.Status, error) {
	r, err := archive.Open(archivePath)
	if err != nil {
		return nil, reposign.StatusUnsigned, err
	}
	defer r.Close()

	info, err := r.ReadInfo()
	if err != nil {
		return nil, reposign.StatusUnsigned, err
	}

	sha256, err := archive.SHA256(archivePath)
	if err != nil {
		return nil, reposign.StatusUnsigned, err
	}

	size, err := archive.Size(archivePath)
	if err != nil {
		return nil, reposign.StatusUnsigned, err
	}

	entry := &PackageEntry{
		Name:        info.Name,
		Version:     info.Version,
		Release:     info.Release,
		Description: info.Description,
		Arch:        info.Arch,
		Size:        size,
		SHA256:      sha256,
		Filename:    filepath.Join("packages", basename),
		Depends:     sortedKeys(info.Dependencies),
		Provides:    info.Provides,
		Conflicts:   info.Conflicts,
		Replaces:    info.Replaces,
		License:     info.License,
		Homepage:    info.Homepage,
		Maintainer:  info.Maintainer,
		BuildDate:   buildDate(info.BuildTime),
	}

	status := reposign.StatusUnsigned
	sigPath := reposign.ArchiveSignaturePath(archivePath)
	if _, err := os.Stat(sigPath); err == nil {
		data, readErr := os.ReadFile(archivePath)
		if readErr == nil {
			status = reposign.ClassifyArchive(resolver, data, sigPath)
		} else {
			status = reposign.StatusInvalid
		}
	}

	return entry, status, nil
}

// buildDate interprets unixSeconds as a UTC time, returning nil for an
// out-of-range value rather than a nonsensical date.
func buildDate(unixSeconds int64) *time.Time {
	if unixSeconds <= 0 {
		return nil
	}
	t := time.Unix(unixSeconds, 0).UTC()
	if t.Year() < 1980 || t.Year() > 2200 {
		return nil
	}
	return &t
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// loadGroups parses groups.toml if present and reports (non-fatally) any
// member package name absent from entries.
func loadGroups(path string, entries []PackageEntry) ([]PackageGroup, []string) {
	groupsPath := filepath.Join(path, "groups.toml")
	data, err := os.ReadFile(groupsPath)
	if err != nil {
		return nil, nil
	}

	var raw groupsFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, []string{fmt.Sprintf("failed to parse groups.toml: %v", err)}
	}

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.Name] = true
	}

	names := make([]string, 0, len(raw.Groups))
	for name := range raw.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var groups []PackageGroup
	var warnings []string
	for _, name := range names {
		def := raw.Groups[name]
		for _, member := range append(append([]string{}, def.Packages...), def.Optional...) {
			if !known[member] {
				warnings = append(warnings, fmt.Sprintf("group %q references unknown package %q", name, member))
			}
		}
		groups = append(groups, PackageGroup{
			Name:        name,
			Description: def.Description,
			Packages:    def.Packages,
			Optional:    def.Optional,
			Essential:   def.Essential,
		})
	}

	return groups, warnings
}

// loadDeltas parses deltas.json if present and reports, as informational
// text only, upgrade paths available from each entry's current version
// (§9: these calls are diagnostic logging, not behavior).
func loadDeltas(path string, entries []PackageEntry) (*delta.RepoDeltaIndex, []string) {
	deltasPath := filepath.Join(path, "deltas.json")
	if _, err := os.Stat(deltasPath); err != nil {
		return nil, nil
	}

	idx, err := delta.LoadDeltaIndex(deltasPath)
	if err != nil {
		return nil, nil
	}

	var upgrades []string
	for _, e := range entries {
		available := idx.FindDeltaFrom(e.Name, e.Version, e.Release)
		for _, d := range available {
			upgrades = append(upgrades, fmt.Sprintf("%s: delta available %s-%d -> %s-%d", e.Name, d.FromVersion, d.FromRelease, d.ToVersion, d.ToRelease))
		}
	}

	return idx, upgrades
}
