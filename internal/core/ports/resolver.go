// Package ports defines the core interfaces consumed by rez.
package ports

import (
	"context"

	"github.com/SParksLz/rez/internal/core/domain"
)

// ResolveRequest carries everything a resolver needs to satisfy a request.
type ResolveRequest struct {
	// Packages are the package constraint strings, implicit packages included.
	Packages []string

	// RawPackages are the constraint strings before implicit-package addition.
	RawPackages []string

	// Mode selects earliest or latest version preference.
	Mode domain.ResolveMode

	// Timestamp ignores packages released after this epoch time; 0 means now.
	Timestamp int64

	// Flags are the boolean resolve switches.
	Flags domain.ResolveFlags

	// SearchPaths are the package repositories to search; empty means the
	// resolver's configured defaults.
	SearchPaths []string

	// MetaVars names the metadata keys the resolver should collect onto each
	// resolved package beyond the defaults.
	MetaVars []string
}

// Resolver chooses a mutually-compatible set of package versions satisfying a
// request. The search algorithm is the resolver's own affair; this core only
// consumes its result. A failed resolve is reported via
// domain.ErrResolutionFailed and is never retried here.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*domain.ResolveResult, error)
}
