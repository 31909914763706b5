// Package context implements the ResolvedContext: the persistable record of
// one package resolve, with versioned save/load, validation, summaries and
// the execution entry points that materialize the resolve as an environment.
package context

import (
	gocontext "context"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/SParksLz/rez/internal/rex"
	"go.trai.ch/zerr"
)

// Options parameterize context construction.
type Options struct {
	// Packages are the requested package constraint strings.
	Packages []string

	// Mode selects earliest or latest resolution; defaults to latest.
	Mode domain.ResolveMode

	// Timestamp ignores packages released after this epoch time; 0 = now.
	Timestamp int64

	// Flags are the boolean resolve switches.
	Flags domain.ResolveFlags

	// SearchPaths are the package repositories; empty defers to the
	// resolver's configured defaults.
	SearchPaths []string

	// ImplicitPackages are merged into the request unless suppressed by
	// Flags.AddImplicitPackages; the list is snapshotted into the context.
	ImplicitPackages []string

	// LocalPackagesPath marks packages as "local" in summaries.
	LocalPackagesPath string

	// RezVersion and RezPath describe the producing tool, for provenance and
	// the REZ_USED export.
	RezVersion string
	RezPath    string

	// Reporter receives the one-time legacy-commands warning; nil disables it.
	Reporter *rex.WarningReporter
}

// ResolvedContext wraps one resolve result together with the request that
// produced it and the provenance of its creation. The request and result are
// immutable once constructed.
type ResolvedContext struct {
	major int
	minor int

	requested   []string
	mode        domain.ResolveMode
	timestamp   int64
	flags       domain.ResolveFlags
	searchPaths []string
	implicit    []string
	localPath   string
	provenance  domain.Provenance

	result *domain.ResolveResult

	reporter *rex.WarningReporter
}

// New performs a resolve and stores the result. The resolver is invoked
// exactly once, synchronously; a failed resolve surfaces as
// domain.ErrResolutionFailed from the resolver, never retried here.
func New(ctx gocontext.Context, resolver ports.Resolver, opts Options) (*ResolvedContext, error) {
	if opts.Mode == "" {
		opts.Mode = domain.ModeLatest
	}

	request := append([]string(nil), opts.Packages...)
	if opts.Flags.AddImplicitPackages {
		request = append(append([]string(nil), opts.ImplicitPackages...), request...)
	}

	rc := &ResolvedContext{
		major:       SerializeMajor,
		minor:       SerializeMinor,
		requested:   append([]string(nil), opts.Packages...),
		mode:        opts.Mode,
		timestamp:   opts.Timestamp,
		flags:       opts.Flags,
		searchPaths: append([]string(nil), opts.SearchPaths...),
		localPath:   opts.LocalPackagesPath,
		provenance:  captureProvenance(opts.RezVersion, opts.RezPath),
		reporter:    opts.Reporter,
	}
	if opts.Flags.AddImplicitPackages {
		rc.implicit = append([]string(nil), opts.ImplicitPackages...)
	}

	result, err := resolver.Resolve(ctx, ports.ResolveRequest{
		Packages:    request,
		RawPackages: rc.requested,
		Mode:        opts.Mode,
		Timestamp:   opts.Timestamp,
		Flags:       opts.Flags,
		SearchPaths: opts.SearchPaths,
		MetaVars:    []string{"tools"},
	})
	if err != nil {
		return nil, err
	}
	rc.result = result
	return rc, nil
}

// RequestedPackages returns the initially requested packages, implicit
// packages excluded.
func (rc *ResolvedContext) RequestedPackages() []string {
	return append([]string(nil), rc.requested...)
}

// AddedImplicitPackages returns the packages implicitly added to the request,
// empty when implicit addition was suppressed.
func (rc *ResolvedContext) AddedImplicitPackages() []string {
	return append([]string(nil), rc.implicit...)
}

// ResolvedPackages returns the resolved packages in resolution order.
func (rc *ResolvedContext) ResolvedPackages() []domain.ResolvedPackage {
	return append([]domain.ResolvedPackage(nil), rc.result.Packages...)
}

// ResolveGraph returns the dot-graph description of the resolve process.
func (rc *ResolvedContext) ResolveGraph() string {
	return rc.result.DotGraph
}

// Result returns the stored resolve result.
func (rc *ResolvedContext) Result() *domain.ResolveResult {
	return rc.result
}

// Provenance returns the creation provenance.
func (rc *ResolvedContext) Provenance() domain.Provenance {
	return rc.provenance
}

// SerializeVersion returns the context's serialization version pair.
func (rc *ResolvedContext) SerializeVersion() (major, minor int) {
	return rc.major, rc.minor
}

// UseReporter injects the legacy-commands warning reporter, for contexts
// reconstructed via Load.
func (rc *ResolvedContext) UseReporter(r *rex.WarningReporter) {
	rc.reporter = r
}

// Validate checks the context against the current filesystem. It fails with
// domain.ErrPackageNotFound naming the first resolved package whose root path
// no longer exists. System-level package availability is not verified; that
// remains a known gap.
func (rc *ResolvedContext) Validate() error {
	for _, pkg := range rc.result.Packages {
		if _, err := os.Stat(pkg.Root); err != nil {
			werr := zerr.With(domain.ErrPackageNotFound, "package", pkg.ShortName())
			return zerr.With(werr, "root", pkg.Root)
		}
	}
	return nil
}

func captureProvenance(version, rezPath string) domain.Provenance {
	p := domain.Provenance{
		Platform:   runtime.GOOS,
		Arch:       runtime.GOARCH,
		OS:         runtime.GOOS,
		Shell:      filepath.Base(os.Getenv("SHELL")),
		RezVersion: version,
		RezPath:    rezPath,
		Created:    time.Now().Unix(),
	}
	if u, err := user.Current(); err == nil {
		p.User = u.Username
	} else {
		p.User = os.Getenv("USER")
	}
	if host, err := os.Hostname(); err == nil {
		p.Host = host
	}
	if p.RezPath == "" {
		if exe, err := os.Executable(); err == nil {
			p.RezPath = filepath.Dir(exe)
		}
	}
	return p
}
