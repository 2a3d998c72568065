// Package archmap holds the process-wide static tables that decide whether
// an upstream Arch package name is convertible, and what name it becomes.
package archmap

import "strings"

// skipSentinel marks a name-map entry as unconvertible.
const skipSentinel = "_SKIP_"

// nameMap is the static Arch-to-Rookery package name mapping. Entries
// pointing at skipSentinel mark the package as unconvertible outright.
// Fixed at program start; extending it is a code change, not config.
var nameMap = map[string]string{
	"linux":             skipSentinel,
	"linux-headers":     skipSentinel,
	"linux-lts":         skipSentinel,
	"linux-lts-headers": skipSentinel,
	"linux-zen":         skipSentinel,
	"linux-hardened":    skipSentinel,
	"gcc":               skipSentinel,
	"gcc-libs":          skipSentinel,
	"gcc-fortran":       skipSentinel,
	"gcc-ada":           skipSentinel,
	"lib32-gcc-libs":    skipSentinel,
	"glibc":             skipSentinel,
	"lib32-glibc":       skipSentinel,
	"python":            "python3",
	"python2":           skipSentinel,
	"jdk-openjdk":       "openjdk",
	"jre-openjdk":       "openjdk-jre",
	"jdk11-openjdk":     "openjdk11",
	"jre11-openjdk":     "openjdk11-jre",
	"jdk17-openjdk":     "openjdk17",
	"jre17-openjdk":     "openjdk17-jre",
	"jdk21-openjdk":     "openjdk21",
	"jre21-openjdk":     "openjdk21-jre",
	"qt5-base":          "qt5",
	"qt6-base":          "qt6",
	"ffmpeg":            "ffmpeg",
	"gst-plugins-base":  "gstreamer-plugins-base",
	"gst-plugins-good":  "gstreamer-plugins-good",
	"gst-plugins-bad":   "gstreamer-plugins-bad",
	"gst-plugins-ugly":  "gstreamer-plugins-ugly",
}

// skipList enumerates additional unmappable names: kernels, toolchain, and
// distribution-specific tooling that has no Rookery equivalent.
var skipList = map[string]bool{
	"linux":                  true,
	"linux-headers":          true,
	"linux-lts":              true,
	"linux-lts-headers":      true,
	"linux-zen":              true,
	"linux-zen-headers":      true,
	"linux-hardened":         true,
	"linux-hardened-headers": true,
	"gcc":                    true,
	"gcc-libs":               true,
	"glibc":                  true,
	"archlinux-keyring":      true,
	"archlinux-mirrorlist":   true,
	"archinstall":            true,
	"pacman":                 true,
	"pacman-mirrorlist":      true,
	"mkinitcpio":             true,
	"mkinitcpio-busybox":     true,
	"dracut":                 true,
}

// lib32Prefix marks 32-bit multilib packages as unconvertible dynamically,
// rather than enumerating every lib32-* name in the skip list.
const lib32Prefix = "lib32-"

// ShouldSkip reports whether name refuses conversion outright: it is on the
// explicit skip list, carries the lib32 prefix, or maps to the skip sentinel.
func ShouldSkip(name string) bool {
	if skipList[name] {
		return true
	}
	if strings.HasPrefix(name, lib32Prefix) {
		return true
	}
	if mapped, ok := nameMap[name]; ok && mapped == skipSentinel {
		return true
	}
	return false
}

// MapName returns the mapped target name, or the input unchanged when no
// mapping applies. Does not consult the skip list; callers that need to
// refuse conversion should call ShouldSkip first.
func MapName(name string) string {
	if mapped, ok := nameMap[name]; ok && mapped != skipSentinel {
		return mapped
	}
	return name
}

// MapDependency maps a raw dependency name (already split from its version
// constraint by the dependency codec). ok is false when the dependency
// should be dropped from the emitted recipe entirely.
func MapDependency(name string) (mapped string, ok bool) {
	if ShouldSkip(name) {
		return "", false
	}
	return MapName(name), true
}
