package rex

import (
	"regexp"
	"strconv"

	"github.com/SParksLz/rez/internal/core/domain"
)

var refPattern = regexp.MustCompile(`\{([a-z_]+(?:\.[a-z_]+)?)\}`)

// refs are the named references visible to one package's instruction
// evaluation. They are rebound, never merged, before each package runs.
type refs struct {
	pkg      *domain.ResolvedPackage
	user     string
	building bool
}

// lookup resolves a single {reference} expression to its string form.
// Unknown references resolve to ok=false and are left untouched in place,
// which keeps malformed commands visible rather than silently blanked.
func (r refs) lookup(expr string) (string, bool) {
	switch expr {
	case "user":
		return r.user, true
	case "building":
		return strconv.FormatBool(r.building), true
	}
	if r.pkg == nil {
		return "", false
	}
	switch expr {
	case "root":
		return r.pkg.Root, true
	case "base":
		return r.pkg.Base, true
	case "version":
		return r.pkg.Version.String(), true
	case "version.major":
		return strconv.Itoa(r.pkg.Version.Major()), true
	case "version.minor":
		return strconv.Itoa(r.pkg.Version.Minor()), true
	case "this":
		return r.pkg.ShortName(), true
	case "this.name":
		return r.pkg.Name, true
	case "this.version":
		return r.pkg.Version.String(), true
	case "this.root":
		return r.pkg.Root, true
	case "this.base":
		return r.pkg.Base, true
	}
	return "", false
}

// expand rewrites every {reference} in s to its bound value.
func (r refs) expand(s string) string {
	return refPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		if v, ok := r.lookup(inner); ok {
			return v
		}
		return m
	})
}
