package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.Resolver by direct version selection against the
// repository: each request entry independently picks its latest (or earliest)
// matching version. It performs no constraint-solving search; dependency
// traversal is the province of a full solver behind the same port.
type Resolver struct {
	repo  *Repository
	cache *ResolveCache
}

// NewResolver creates a resolver over the repository. A nil cache disables
// resolve caching regardless of request flags.
func NewResolver(repo *Repository, cache *ResolveCache) *Resolver {
	return &Resolver{repo: repo, cache: cache}
}

// Resolve satisfies each requested constraint in order. The resolved package
// order matches the request order, which makes instruction application order
// deterministic.
func (r *Resolver) Resolve(_ context.Context, req ports.ResolveRequest) (*domain.ResolveResult, error) {
	if r.cache != nil && req.Flags.Caching {
		if cached, ok := r.cache.Get(req); ok {
			return cached, nil
		}
	}

	result := &domain.ResolveResult{
		RawRequest:  append([]string(nil), req.RawPackages...),
		Request:     append([]string(nil), req.Packages...),
		Mode:        req.Mode,
		RequestTime: req.Timestamp,
	}

	seen := make(map[string]bool)
	for _, constraint := range req.Packages {
		name, versionPrefix := splitRequest(constraint)
		if seen[name] {
			continue
		}

		pkg, failed, err := r.selectVersion(name, versionPrefix, req)
		if err != nil {
			return nil, err
		}
		result.FailedAttempts += failed
		result.Packages = append(result.Packages, pkg)
		seen[name] = true
	}

	result.DotGraph = dotGraph(result)

	if r.cache != nil && req.Flags.Caching {
		r.cache.Put(req, result)
	}
	return result, nil
}

// selectVersion picks the preferred matching version of one package,
// honoring the mode and the request timestamp cutoff. The failed count is
// the number of candidates rejected by the cutoff.
func (r *Resolver) selectVersion(name, versionPrefix string, req ports.ResolveRequest) (domain.ResolvedPackage, int, error) {
	entries, err := r.repo.versions(name, req.SearchPaths)
	if err != nil {
		return domain.ResolvedPackage{}, 0, err
	}
	if len(entries) == 0 {
		werr := zerr.With(domain.ErrResolutionFailed, "package", name)
		return domain.ResolvedPackage{}, 0, zerr.With(werr, "reason", "no versions found")
	}

	var candidates []versionEntry
	failed := 0
	for _, e := range entries {
		if !matchesPrefix(e.pkg.Version, versionPrefix) {
			continue
		}
		if req.Timestamp > 0 && e.released > req.Timestamp {
			failed++
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		werr := zerr.With(domain.ErrResolutionFailed, "package", name)
		werr = zerr.With(werr, "constraint", versionPrefix)
		return domain.ResolvedPackage{}, failed, zerr.With(werr, "reason", "no matching version")
	}

	// Entries arrive sorted ascending.
	if req.Mode == domain.ModeEarliest {
		return candidates[0].pkg, failed, nil
	}
	return candidates[len(candidates)-1].pkg, failed, nil
}

// splitRequest splits "name-1.2" into name and version prefix. The version
// part must start with a digit; hyphens inside names stay intact.
func splitRequest(constraint string) (name, versionPrefix string) {
	if i := strings.LastIndex(constraint, "-"); i > 0 && i < len(constraint)-1 {
		rest := constraint[i+1:]
		if rest[0] >= '0' && rest[0] <= '9' {
			return constraint[:i], rest
		}
	}
	return constraint, ""
}

// matchesPrefix reports whether a version satisfies a dotted version prefix.
// "1.2" matches "1.2" and "1.2.3" but not "1.20".
func matchesPrefix(v domain.Version, prefix string) bool {
	if prefix == "" {
		return true
	}
	s := v.String()
	if s == prefix {
		return true
	}
	return strings.HasPrefix(s, prefix+".")
}

// dotGraph renders a minimal request->package graph description.
func dotGraph(result *domain.ResolveResult) string {
	var b strings.Builder
	b.WriteString("digraph resolve {\n")
	for i, constraint := range result.Request {
		if i < len(result.Packages) {
			fmt.Fprintf(&b, "  %q -> %q;\n", constraint, result.Packages[i].ShortName())
		}
	}
	b.WriteString("}\n")
	return b.String()
}
