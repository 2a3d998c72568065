// Package recipe holds the two recipe representations this converter moves
// between: ParsedRecipe, the structured form of an upstream PKGBUILD, and
// EmittedRecipe, the fixed-shape TOML document written out as a .rook file.
package recipe

// OptionalDependency is a dependency name with an attached free-text
// description, as PKGBUILD optdepends entries carry them.
type OptionalDependency struct {
	Name        string
	Description string
}

// ParsedRecipe is the structured form of an upstream recipe after the
// PKGBUILD lexer/parser has run all three passes.
type ParsedRecipe struct {
	Name          string
	Version       string
	Release       uint64
	Epoch         string
	Summary       string
	URL           string
	Architectures []string
	Licenses      []string

	RuntimeDepends  []string
	BuildDepends    []string
	CheckDepends    []string
	OptionalDepends []OptionalDependency

	Provides  []string
	Conflicts []string
	Replaces  []string

	Sources []string
	// Checksums holds the four parallel checksum lists keyed by algorithm
	// name in priority order: sha256, sha512, b2, md5.
	Checksums map[string][]string

	Groups      []string
	BackupFiles []string
	Options     []string

	InstallScript string
	Changelog     string

	Prepare string
	Build   string
	Check   string
	Package string

	// SplitPackages maps a sub-package name (from the pkgname array) to its
	// package_<name> function body, for multi-output PKGBUILDs. The emitter
	// currently collapses these into one output recipe named by pkgbase.
	SplitPackages map[string]string

	// Variables preserves every scalar/array value seen during pass A,
	// keyed by shell variable name, arrays newline-joined.
	Variables map[string]string
}

// ChecksumPriority is the order ChecksumList searches for a non-empty list.
var ChecksumPriority = []string{"sha256", "sha512", "b2", "md5"}

// ChecksumList returns the first non-empty checksum list in priority order.
func (p *ParsedRecipe) ChecksumList() (algo string, values []string) {
	for _, a := range ChecksumPriority {
		if v, ok := p.Checksums[a]; ok && len(v) > 0 {
			return a, v
		}
	}
	return "", nil
}

// PlaceholderChecksum is substituted for sources whose upstream checksum is
// empty or the literal sentinel "SKIP", flagging the entry for regeneration.
const PlaceholderChecksum = "_NEEDS_CHECKSUM_RUN_rookpkg_checksum_update_"

// SourceEntry is one emitted [sources] table entry.
type SourceEntry struct {
	URL    string `toml:"url"`
	SHA256 string `toml:"sha256"`
}

// PackageSection is the emitted [package] table.
type PackageSection struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Release     uint64 `toml:"release"`
	Summary     string `toml:"summary"`
	Description string `toml:"description"`
	Homepage    string `toml:"homepage,omitempty"`
	License     string `toml:"license,omitempty"`
	Maintainer  string `toml:"maintainer"`
	Arch        string `toml:"arch"`
}

// DefaultMaintainer and DefaultArch are the literal constants this rendition
// always stamps into every emitted [package] section, per the external
// interface contract for .rook files converted from Arch.
const (
	DefaultMaintainer = "Converted from Arch Linux <converted@rookeryos.dev>"
	DefaultArch       = "x86_64"
)

// BuildSection holds the four function bodies emitted as triple-quoted TOML
// literals in the [build] table, after variable expansion. A missing body is
// emitted as an empty literal rather than omitting the key, so the section
// shape stays uniform across every .rook file.
type BuildSection struct {
	Prepare string
	Build   string
	Check   string
	Package string
}

// EmittedRecipe is the fully-populated in-memory form of a .rook document,
// in the exact section order it must be serialized in.
type EmittedRecipe struct {
	Package         PackageSection
	Sources         []SourceEntry
	Patches         []string
	BuildDepends    map[string]string
	Depends         map[string]string
	OptionalDepends map[string]string
	Environment     map[string]string
	Build           BuildSection
	Files           []string
	ConfigFiles     []string
	Scripts         map[string]string
}
