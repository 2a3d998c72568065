package pkgbuild

import "strings"

// dependencyOperators is the fixed precedence order the dependency codec
// scans for: longer operators are tried first so ">=" is not mistaken for
// the bare "=" inside it would otherwise shadow.
var dependencyOperators = []string{">=", "<=", ">", "<", "="}

// ParseDependency splits a PKGBUILD dependency spec of the form
// "name<op><ver>" into its name and constraint. A bare name yields a nil
// constraint. Property: for any string of this shape, parsing recovers the
// exact (name, constraint) pair; for a bare name, (name, nil).
func ParseDependency(spec string) (name string, constraint *string) {
	for _, op := range dependencyOperators {
		if pos := strings.Index(spec, op); pos >= 0 {
			n := strings.TrimSpace(spec[:pos])
			c := strings.TrimSpace(spec[pos:])
			return n, &c
		}
	}
	return strings.TrimSpace(spec), nil
}
