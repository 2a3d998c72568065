// Package convert drives single-package and bulk PKGBUILD-to-.rook
// conversion, isolating per-package failures so a bulk run is never
// derailed by one bad recipe.
package convert

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rookeryos/rookpkg/internal/archmap"
	"github.com/rookeryos/rookpkg/internal/archsource"
	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/log"
	"github.com/rookeryos/rookpkg/internal/pkgbuild"
	"github.com/rookeryos/rookpkg/internal/recipe"
)

// Converter fetches, parses, and emits a single Arch package as a .rook
// recipe, consulting the static name-mapping table before every fetch.
type Converter struct {
	Client *archsource.Client
	Logger log.Logger
}

// NewConverter returns a Converter using a fresh archsource.Client and the
// package-level default logger.
func NewConverter() *Converter {
	return &Converter{
		Client: archsource.NewClient(),
		Logger: log.Default(),
	}
}

// Convert fetches pkg's PKGBUILD, parses it, and emits an EmittedRecipe.
// Returns a KindSkipList error without any network call when pkg is on the
// skip list.
func (c *Converter) Convert(ctx context.Context, pkg string) (*recipe.EmittedRecipe, error) {
	if archmap.ShouldSkip(pkg) {
		return nil, errs.New(errs.KindSkipList, fmt.Sprintf("package %q is in the skip list", pkg))
	}

	content, err := c.Client.FetchPKGBUILD(ctx, pkg)
	if err != nil {
		return nil, err
	}

	parsed, err := pkgbuild.Parse(content)
	if err != nil {
		return nil, pkgbuild.ParseError(fmt.Sprintf("parsing PKGBUILD for %q", pkg), err)
	}

	expanded := expandBodies(parsed)

	return recipe.Emit(expanded, pkgbuild.ParseDependency, archmap.MapDependency), nil
}

// expandBodies runs variable expansion over every function body before
// emission, so the .rook file's build scripts reference $ROOKPKG_BUILD and
// $ROOKPKG_DESTDIR instead of the Arch-specific $srcdir/$pkgdir.
func expandBodies(p *recipe.ParsedRecipe) *recipe.ParsedRecipe {
	p.Prepare = pkgbuild.ExpandVariables(p.Prepare, p)
	p.Build = pkgbuild.ExpandVariables(p.Build, p)
	p.Check = pkgbuild.ExpandVariables(p.Check, p)
	p.Package = pkgbuild.ExpandVariables(p.Package, p)
	for i, src := range p.Sources {
		p.Sources[i] = pkgbuild.ExpandVariables(src, p)
	}
	return p
}

// ConvertAndWrite converts pkg and writes the result to
// <outputDir>/<pkg>.rook.
func (c *Converter) ConvertAndWrite(ctx context.Context, pkg, outputDir string) error {
	emitted, err := c.Convert(ctx, pkg)
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, pkg+".rook")
	return recipe.WriteRecipe(emitted, path)
}
