// Package archive implements the reader and writer for this toolkit's own
// .rookpkg package archive format: a zstd-compressed tar stream carrying a
// single JSON metadata entry (PackageInfo) alongside the package's payload
// files. The format is this repository's invention, not an upstream one —
// it exists only to give the repository refresher something concrete to
// read.
package archive

import (
	"archive/tar"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// InfoEntryName is the fixed tar entry name carrying the archive's metadata.
const InfoEntryName = ".ROOKPKG-INFO"

// PackageInfo is the metadata embedded in every .rookpkg archive, read by
// the repository refresher to populate a PackageEntry.
type PackageInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Release      uint64            `json:"release"`
	Description  string            `json:"description"`
	Arch         string            `json:"arch"`
	License      string            `json:"license,omitempty"`
	Homepage     string            `json:"homepage,omitempty"`
	Maintainer   string            `json:"maintainer,omitempty"`
	BuildTime    int64             `json:"build_time"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Provides     []string          `json:"provides,omitempty"`
	Conflicts    []string          `json:"conflicts,omitempty"`
	Replaces     []string          `json:"replaces,omitempty"`
}

// Reader opens a .rookpkg archive and reads its embedded PackageInfo.
type Reader struct {
	file *os.File
	zr   *zstd.Decoder
}

// Open opens the archive at path. The caller must call Close.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("opening archive %s", path), err)
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.KindParse, fmt.Sprintf("opening zstd stream for %s", path), err)
	}

	return &Reader{file: f, zr: zr}, nil
}

// ReadInfo scans the archive's tar entries for InfoEntryName and decodes it.
// A .rookpkg archive missing the metadata entry is malformed input.
func (r *Reader) ReadInfo() (*PackageInfo, error) {
	tr := tar.NewReader(r.zr)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil, errs.New(errs.KindMalformedInput, fmt.Sprintf("archive has no %s entry", InfoEntryName))
		}
		if err != nil {
			return nil, errs.Wrap(errs.KindParse, "reading archive tar stream", err)
		}

		if header.Name != InfoEntryName {
			continue
		}

		var info PackageInfo
		if err := json.NewDecoder(tr).Decode(&info); err != nil {
			return nil, errs.Wrap(errs.KindMalformedInput, "decoding package info", err)
		}
		return &info, nil
	}
}

// Close releases the archive's underlying resources.
func (r *Reader) Close() error {
	r.zr.Close()
	return r.file.Close()
}

// SHA256 computes the hex-encoded SHA-256 digest of the whole archive file,
// the value the repository refresher records in each PackageEntry.
func SHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.KindIO, fmt.Sprintf("hashing archive %s", path), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.Wrap(errs.KindIO, fmt.Sprintf("hashing archive %s", path), err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Size returns the byte size of the archive file.
func Size(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, errs.Wrap(errs.KindIO, fmt.Sprintf("stat archive %s", path), err)
	}
	return fi.Size(), nil
}
