package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// trailingBanner is the fixed comment block appended to every emitted .rook
// file, flagging it as auto-converted and needing review.
const trailingBanner = `# =============================================================================
# CONVERTED FROM ARCH LINUX PKGBUILD - REVIEW REQUIRED
# =============================================================================
# This file was automatically converted and may need manual adjustments:
# - Verify source URLs and checksums
# - Check dependency names are correct for Rookery
# - Review build instructions for Rookery-specific paths
# - Add [files] entries to specify what gets packaged
# =============================================================================
`

// DependencyMapper resolves a dependency name to its mapped equivalent,
// returning ok=false when the dependency should be dropped from the
// emitted recipe.
type DependencyMapper func(name string) (mapped string, ok bool)

// DependencySplitter splits a raw dependency spec into name and optional
// version constraint.
type DependencySplitter func(spec string) (name string, constraint *string)

// Emit converts p into an EmittedRecipe, consulting split to separate each
// dependency spec into name and constraint and mapper to resolve (and
// possibly drop) each dependency name. Per §4.3, this is the recipe
// emitter's full contract.
func Emit(p *ParsedRecipe, split DependencySplitter, mapper DependencyMapper) *EmittedRecipe {
	mappedName, ok := mapper(p.Name)
	if !ok {
		mappedName = p.Name
	}

	e := &EmittedRecipe{
		Package: PackageSection{
			Name:        mappedName,
			Version:     p.Version,
			Release:     p.Release,
			Summary:     p.Summary,
			Description: p.Summary,
			Homepage:    p.URL,
			License:     strings.Join(p.Licenses, " AND "),
			Maintainer:  DefaultMaintainer,
			Arch:        DefaultArch,
		},
		BuildDepends:    make(map[string]string),
		Depends:         make(map[string]string),
		OptionalDepends: make(map[string]string),
		Environment:     make(map[string]string),
		Scripts:         make(map[string]string),
	}

	_, checksums := p.ChecksumList()
	for i, src := range p.Sources {
		checksum := PlaceholderChecksum
		if i < len(checksums) {
			c := checksums[i]
			if c != "" && c != "SKIP" {
				checksum = c
			}
		}
		e.Sources = append(e.Sources, SourceEntry{URL: src, SHA256: checksum})
	}

	emitDeps := func(dest map[string]string, names []string) {
		for _, dep := range names {
			name, constraint := split(dep)
			mapped, ok := mapper(name)
			if !ok {
				continue
			}
			if constraint != nil {
				dest[mapped] = *constraint
			} else {
				dest[mapped] = ">= 0"
			}
		}
	}

	emitDeps(e.BuildDepends, p.BuildDepends)
	emitDeps(e.BuildDepends, p.CheckDepends)
	emitDeps(e.Depends, p.RuntimeDepends)

	for _, opt := range p.OptionalDepends {
		mapped, ok := mapper(opt.Name)
		if !ok {
			continue
		}
		e.OptionalDepends[mapped] = opt.Description
	}

	e.Build = BuildSection{
		Prepare: p.Prepare,
		Build:   p.Build,
		Check:   p.Check,
		Package: p.Package,
	}

	e.ConfigFiles = append(e.ConfigFiles, p.BackupFiles...)

	return e
}

// ToTOML serializes an EmittedRecipe with the fixed section order from §3:
// [package] [sources] [patches] [build_depends] [depends] [optional_depends]
// [environment] [build] [files] [config_files] [scripts]. Empty sections are
// emitted as the bare header so file shape stays uniform.
func (e *EmittedRecipe) ToTOML() []byte {
	var buf strings.Builder

	buf.WriteString("[package]\n")
	buf.WriteString(fmt.Sprintf("name = %q\n", e.Package.Name))
	buf.WriteString(fmt.Sprintf("version = %q\n", e.Package.Version))
	buf.WriteString(fmt.Sprintf("release = %d\n", e.Package.Release))
	buf.WriteString(fmt.Sprintf("summary = \"%s\"\n", escapeTOMLString(e.Package.Summary)))
	buf.WriteString(fmt.Sprintf("description = \"\"\"\n%s\n\"\"\"\n", escapeTOMLString(e.Package.Description)))
	if e.Package.Homepage != "" {
		buf.WriteString(fmt.Sprintf("homepage = %q\n", e.Package.Homepage))
	}
	if e.Package.License != "" {
		buf.WriteString(fmt.Sprintf("license = %q\n", e.Package.License))
	}
	buf.WriteString(fmt.Sprintf("maintainer = %q\n", e.Package.Maintainer))
	buf.WriteString(fmt.Sprintf("arch = %q\n", e.Package.Arch))
	buf.WriteString("\n")

	buf.WriteString("[sources]\n")
	for i, src := range e.Sources {
		buf.WriteString(fmt.Sprintf("source%d = { url = %q, sha256 = %q }\n", i, src.URL, src.SHA256))
	}
	buf.WriteString("\n")

	buf.WriteString("[patches]\n")
	for _, p := range e.Patches {
		buf.WriteString(p + "\n")
	}
	buf.WriteString("\n")

	writeStringMapSection(&buf, "[build_depends]\n", e.BuildDepends)
	writeStringMapSection(&buf, "[depends]\n", e.Depends)
	writeOptDepsSection(&buf, e.OptionalDepends)
	writeStringMapSection(&buf, "[environment]\n", e.Environment)

	buf.WriteString("[build]\n")
	buf.WriteString(fmt.Sprintf("prep = \"\"\"\n%s\n\"\"\"\n\n", escapeTOMLString(e.Build.Prepare)))
	buf.WriteString("configure = \"\"\"\n\"\"\"\n\n")
	buf.WriteString(fmt.Sprintf("build = \"\"\"\n%s\n\"\"\"\n\n", escapeTOMLString(e.Build.Build)))
	buf.WriteString(fmt.Sprintf("check = \"\"\"\n%s\n\"\"\"\n\n", escapeTOMLString(e.Build.Check)))
	buf.WriteString(fmt.Sprintf("install = \"\"\"\n%s\n\"\"\"\n\n", escapeTOMLString(e.Build.Package)))

	buf.WriteString("[files]\n")
	for _, f := range e.Files {
		buf.WriteString(f + "\n")
	}
	buf.WriteString("\n")

	buf.WriteString("[config_files]\n")
	for _, f := range e.ConfigFiles {
		buf.WriteString(fmt.Sprintf("%q = {}\n", f))
	}
	buf.WriteString("\n")

	writeStringMapSection(&buf, "[scripts]\n", e.Scripts)

	buf.WriteString(trailingBanner)

	return []byte(buf.String())
}

// writeStringMapSection writes a TOML table whose every value is a quoted
// string, with keys sorted for deterministic output.
func writeStringMapSection(buf *strings.Builder, header string, m map[string]string) {
	buf.WriteString(header)
	for _, k := range sortedKeys(m) {
		buf.WriteString(fmt.Sprintf("%s = %q\n", k, m[k]))
	}
	buf.WriteString("\n")
}

func writeOptDepsSection(buf *strings.Builder, m map[string]string) {
	buf.WriteString("[optional_depends]\n")
	for _, k := range sortedKeys(m) {
		buf.WriteString(fmt.Sprintf("%s = [\"%s\"]\n", k, escapeTOMLString(m[k])))
	}
	buf.WriteString("\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeTOMLString escapes backslash, double-quote, newline, CR, and tab.
// Single quotes, unicode, and control chars below tab are left as-is; this
// is a known limitation since upstream recipes are overwhelmingly ASCII.
func escapeTOMLString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// WriteRecipe writes an emitted recipe to path using a write-temp-rename
// pattern: write to a temp file in the same directory, sync, close, then
// rename atomically, so a crash never leaves a truncated .rook file.
func WriteRecipe(e *EmittedRecipe, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".recipe-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(e.ToTOML()); err != nil {
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	success = true
	return nil
}
