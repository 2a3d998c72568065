package pkgbuild

import (
	"strconv"
	"strings"

	"github.com/rookeryos/rookpkg/internal/recipe"
)

// ExpandVariables performs textual substitution of PKGBUILD build variables
// and the build-root variables every build script references. Substitutions
// run in a fixed order: the package variables, each braced form before its
// bare form, then $srcdir/${srcdir} and $pkgdir/${pkgdir}.
func ExpandVariables(text string, p *recipe.ParsedRecipe) string {
	pairs := []struct{ from, to string }{
		{"${pkgname}", p.Name},
		{"$pkgname", p.Name},
		{"${pkgbase}", p.Name},
		{"$pkgbase", p.Name},
		{"${pkgver}", p.Version},
		{"$pkgver", p.Version},
		{"${pkgrel}", releaseString(p.Release)},
		{"$pkgrel", releaseString(p.Release)},
		{"$srcdir", "$ROOKPKG_BUILD"},
		{"${srcdir}", "$ROOKPKG_BUILD"},
		{"$pkgdir", "$ROOKPKG_DESTDIR"},
		{"${pkgdir}", "$ROOKPKG_DESTDIR"},
	}

	result := text
	for _, pair := range pairs {
		result = strings.ReplaceAll(result, pair.from, pair.to)
	}
	return result
}

func releaseString(release uint64) string {
	return strconv.FormatUint(release, 10)
}
