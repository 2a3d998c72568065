package pkgbuild

import "github.com/rookeryos/rookpkg/internal/errs"

// ParseError wraps a PKGBUILD parse failure as a structured errs.Error of
// kind Parse. Per §4.1, most malformed input degrades to a best-effort
// result rather than a hard error; ParseError is reserved for inputs that
// cannot be read at all.
func ParseError(message string, cause error) *errs.Error {
	return errs.Wrap(errs.KindParse, message, cause)
}
