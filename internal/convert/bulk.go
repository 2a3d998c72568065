package convert

import (
	"context"
	"time"

	"github.com/rookeryos/rookpkg/internal/archmap"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// RecipeDelay rate-limits the per-package PKGBUILD fetches inside a bulk
// run, per §4.4.
const RecipeDelay = 1000 * time.Millisecond

// DefaultSources is the set of upstream repositories a bulk run paginates
// by default ("Core" and "Extra" in Arch's own terminology).
var DefaultSources = []string{"Core", "Extra"}

// BulkStats accumulates the outcome of a bulk conversion run: how many
// packages were seen, how many were written, how many were skipped without
// counting as a failure, and the names of any packages that failed outright.
type BulkStats struct {
	Total     int
	Converted int
	Skipped   int
	Failed    int
	Failures  []string
}

// BulkConvert paginates every named upstream source of truth at the fixed
// page size and per-page delay the client enforces (§4.4), converting each
// package that is not on the skip list and writing it to
// <outputDir>/<name>.rook. A single package's failure is isolated: it is
// recorded in the returned stats and the run continues. ctx is checked at
// every suspension point (the idiomatic substitute, per §5, for the
// original's "drop at a sleep boundary" cancellation model) and the run
// stops promptly once it is canceled.
func (c *Converter) BulkConvert(ctx context.Context, sources []string, outputDir string) (*BulkStats, error) {
	stats := &BulkStats{}

	for _, source := range sources {
		packages, err := c.Client.FetchPackageList(ctx, source)
		if err != nil {
			return stats, err
		}

		for _, pkg := range packages {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}

			stats.Total++

			if archmap.ShouldSkip(pkg.PkgName) {
				stats.Skipped++
				continue
			}

			c.Logger.Info("converting package", "name", pkg.PkgName, "source", source)

			if err := c.ConvertAndWrite(ctx, pkg.PkgName, outputDir); err != nil {
				if errs.KindOf(err) == errs.KindSkipList {
					stats.Skipped++
				} else {
					stats.Failed++
					stats.Failures = append(stats.Failures, pkg.PkgName)
					c.Logger.Warn("conversion failed", "name", pkg.PkgName, "error", err)
				}
			} else {
				stats.Converted++
			}

			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(RecipeDelay):
			}
		}
	}

	return stats, nil
}
