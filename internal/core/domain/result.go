package domain

import "strings"

// ResolveMode selects which end of the version range a resolve prefers.
type ResolveMode string

const (
	// ModeLatest prefers the newest matching version of each package.
	ModeLatest ResolveMode = "latest"

	// ModeEarliest prefers the oldest matching version of each package.
	ModeEarliest ResolveMode = "earliest"
)

// ResolveFlags carry the boolean switches of a resolve request.
type ResolveFlags struct {
	// BuildRequires includes build-time requirements in the resolve.
	BuildRequires bool `json:"build_requires"`

	// AssumeDT assumes dependency transitivity.
	AssumeDT bool `json:"assume_dt"`

	// Caching enables reading and writing the resolve cache.
	Caching bool `json:"caching"`

	// AddImplicitPackages merges the configured implicit packages into the
	// request.
	AddImplicitPackages bool `json:"add_implicit_packages"`
}

// DefaultResolveFlags mirrors the defaults of a plain resolve request.
func DefaultResolveFlags() ResolveFlags {
	return ResolveFlags{
		AssumeDT:            true,
		Caching:             true,
		AddImplicitPackages: true,
	}
}

// ResolveResult is the immutable record produced by a resolver. Package order
// is deterministic and is the order in which environment instructions are
// applied; later packages may override variables set by earlier ones.
type ResolveResult struct {
	// RawRequest is the request as given, before implicit packages.
	RawRequest []string `json:"raw_request"`

	// Request is the expanded request, after implicit-package addition.
	Request []string `json:"request"`

	// Packages are the resolved packages, ordered, names unique.
	Packages []ResolvedPackage `json:"packages"`

	// Mode is the resolve mode that was used.
	Mode ResolveMode `json:"mode"`

	// FailedAttempts counts failed configuration attempts during the resolve.
	FailedAttempts int `json:"failed_attempts"`

	// RequestTime is the epoch-seconds cutoff of the request, 0 if unbounded.
	RequestTime int64 `json:"request_time"`

	// DotGraph is an opaque dot-graph description of the resolve process.
	DotGraph string `json:"dot_graph,omitempty"`
}

// Package returns the resolved package with the given name.
func (r *ResolveResult) Package(name string) (ResolvedPackage, bool) {
	for _, p := range r.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return ResolvedPackage{}, false
}

// ShortNames returns the space-joined short names of the resolved packages,
// the form exported as REZ_RESOLVE.
func (r *ResolveResult) ShortNames() string {
	names := make([]string, len(r.Packages))
	for i, p := range r.Packages {
		names[i] = p.ShortName()
	}
	return strings.Join(names, " ")
}
