package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rookeryos/rookpkg/internal/errs"
)

func TestCreateAndReadInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htop-3.0-1.rookpkg")

	info := &PackageInfo{
		Name:        "htop",
		Version:     "3.0",
		Release:     1,
		Description: "interactive process viewer",
		Arch:        "x86_64",
		BuildTime:   1700000000,
		Dependencies: map[string]string{
			"ncurses": ">=6.0",
			"glibc":   "",
		},
		Provides: []string{"htop"},
	}

	if err := Create(path, info, map[string][]byte{"usr/bin/htop": []byte("binary-contents")}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	got, err := r.ReadInfo()
	if err != nil {
		t.Fatalf("ReadInfo() failed: %v", err)
	}

	if got.Name != "htop" || got.Version != "3.0" || got.Release != 1 {
		t.Errorf("ReadInfo() = %+v, want name/version/release htop/3.0/1", got)
	}
	if len(got.Dependencies) != 2 {
		t.Errorf("ReadInfo() Dependencies = %+v, want 2 entries", got.Dependencies)
	}
}

func TestReadInfo_ReadsEmbeddedMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.rookpkg")

	if err := Create(path, &PackageInfo{Name: "placeholder"}, nil); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	if _, err := r.ReadInfo(); err != nil {
		t.Fatalf("ReadInfo() unexpectedly failed: %v", err)
	}
}

func TestReadInfo_MissingEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-info.rookpkg")

	// Hand-build a zstd+tar stream carrying only a payload file, with no
	// InfoEntryName entry at all.
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create() failed: %v", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd.NewWriter() failed: %v", err)
	}
	tw := tar.NewWriter(zw)
	payload := []byte("binary-contents")
	if err := tw.WriteHeader(&tar.Header{Name: "usr/bin/thing", Size: int64(len(payload)), Mode: 0755}); err != nil {
		t.Fatalf("WriteHeader() failed: %v", err)
	}
	if _, err := tw.Write(payload); err != nil {
		t.Fatalf("tar Write() failed: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar Close() failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zstd Close() failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file Close() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	_, err = r.ReadInfo()
	if err == nil {
		t.Fatal("ReadInfo() on an archive with no metadata entry should fail")
	}
	if errs.KindOf(err) != errs.KindMalformedInput {
		t.Errorf("KindOf(err) = %v, want KindMalformedInput", errs.KindOf(err))
	}
}

func TestSHA256_IsDeterministicHexDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.rookpkg")
	if err := Create(path, &PackageInfo{Name: "x"}, nil); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	sum1, err := SHA256(path)
	if err != nil {
		t.Fatalf("SHA256() failed: %v", err)
	}
	sum2, err := SHA256(path)
	if err != nil {
		t.Fatalf("SHA256() failed: %v", err)
	}
	if sum1 != sum2 {
		t.Errorf("SHA256() not deterministic: %s != %s", sum1, sum2)
	}
	if len(sum1) != 64 {
		t.Errorf("SHA256() length = %d, want 64", len(sum1))
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.rookpkg"))
	if err == nil {
		t.Fatal("Open() on missing file should fail")
	}
	if errs.KindOf(err) != errs.KindIO {
		t.Errorf("KindOf(err) = %v, want KindIO", errs.KindOf(err))
	}
}
