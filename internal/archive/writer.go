package archive

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// Create writes a .rookpkg archive at path containing info as the metadata
// entry followed by the given payload files (name -> contents). It exists
// so the repository refresher's test suite can build fixture archives
// without depending on an external packaging tool.
func Create(path string, info *PackageInfo, payload map[string][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("creating archive %s", path), err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errs.Wrap(errs.KindIO, "opening zstd writer", err)
	}
	defer zw.Close()

	tw := tar.NewWriter(zw)
	defer tw.Close()

	infoBytes, err := json.Marshal(info)
	if err != nil {
		return errs.Wrap(errs.KindIO, "encoding package info", err)
	}

	if err := writeEntry(tw, InfoEntryName, infoBytes); err != nil {
		return err
	}

	for name, contents := range payload {
		if err := writeEntry(tw, name, contents); err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(tw *tar.Writer, name string, contents []byte) error {
	header := &tar.Header{
		Name: name,
		Mode: 0644,
		Size: int64(len(contents)),
	}
	if err := tw.WriteHeader(header); err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("writing tar header for %s", name), err)
	}
	if _, err := tw.Write(contents); err != nil {
		return errs.Wrap(errs.KindIO, fmt.Sprintf("writing tar entry %s", name), err)
	}
	return nil
}
