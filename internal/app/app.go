// Package app implements the application layer for rez.
package app

import (
	gocontext "context"
	"io"
	"os"
	"sort"

	"github.com/SParksLz/rez/internal/adapters/config"
	"github.com/SParksLz/rez/internal/adapters/shell"
	"github.com/SParksLz/rez/internal/build"
	rezcontext "github.com/SParksLz/rez/internal/context"
	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/SParksLz/rez/internal/rex"
	"go.trai.ch/zerr"
)

// App wires the resolver, settings and logger behind the CLI commands.
type App struct {
	resolver ports.Resolver
	settings *config.Settings
	logger   ports.Logger
}

// Components contains all the initialized application components needed by
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(resolver ports.Resolver, settings *config.Settings, logger ports.Logger) *App {
	return &App{
		resolver: resolver,
		settings: settings,
		logger:   logger,
	}
}

// EnvOptions parameterize the env command: one resolve plus one output mode.
type EnvOptions struct {
	Packages   []string
	Mode       domain.ResolveMode
	Timestamp  int64
	NoImplicit bool
	NoCache    bool
	SavePath   string

	Shell   string
	Command string
	Stdin   bool
	Quiet   bool
	NoRC    bool
	RCFile  string

	PrintEnv  bool
	PrintCode bool
}

// Env resolves a request and materializes it: prints a variable map or shell
// code, saves the context, or spawns a shell session. Returns the session
// exit code (0 for the non-spawning modes).
func (a *App) Env(ctx gocontext.Context, opts EnvOptions, stdout io.Writer) (int, error) {
	flags := domain.DefaultResolveFlags()
	flags.AddImplicitPackages = !opts.NoImplicit
	flags.Caching = !opts.NoCache

	rc, err := rezcontext.New(ctx, a.resolver, rezcontext.Options{
		Packages:          opts.Packages,
		Mode:              opts.Mode,
		Timestamp:         opts.Timestamp,
		Flags:             flags,
		SearchPaths:       a.settings.PackagesPath,
		ImplicitPackages:  a.settings.ImplicitPackages,
		LocalPackagesPath: a.settings.LocalPackagesPath,
		RezVersion:        build.Version,
		Reporter:          a.reporter(),
	})
	if err != nil {
		return 1, err
	}

	if opts.SavePath != "" {
		if err := rc.Save(opts.SavePath); err != nil {
			return 1, err
		}
	}

	switch {
	case opts.PrintEnv:
		return 0, printEnv(rc, stdout)
	case opts.PrintCode:
		return 0, a.printCode(rc, opts.Shell, stdout)
	case opts.SavePath != "":
		return 0, nil
	}

	return a.spawn(ctx, rc, opts, stdout)
}

// ContextOptions parameterize the context command.
type ContextOptions struct {
	Path      string
	Verbose   bool
	Validate  bool
	PrintEnv  bool
	PrintCode bool
	Shell     string
}

// Context loads a persisted context and inspects it.
func (a *App) Context(opts ContextOptions, stdout io.Writer) error {
	rc, err := rezcontext.Load(opts.Path)
	if err != nil {
		return err
	}
	rc.UseReporter(a.reporter())

	if opts.Validate {
		if err := rc.Validate(); err != nil {
			return err
		}
	}

	switch {
	case opts.PrintEnv:
		return printEnv(rc, stdout)
	case opts.PrintCode:
		return a.printCode(rc, opts.Shell, stdout)
	}
	return rc.Summarize(stdout, opts.Verbose)
}

func (a *App) spawn(ctx gocontext.Context, rc *rezcontext.ResolvedContext, opts EnvOptions, stdout io.Writer) (int, error) {
	dialect, err := shell.New(opts.Shell)
	if err != nil {
		return 1, err
	}

	block := true
	result, _, err := rc.ExecuteShell(ctx, rezcontext.ShellOptions{
		Dialect: dialect,
		RCFile:  opts.RCFile,
		NoRC:    opts.NoRC,
		Stdin:   opts.Stdin,
		Command: opts.Command,
		Quiet:   opts.Quiet,
		Block:   &block,
	})
	if err != nil {
		return 1, err
	}
	if result.Stdout != "" {
		_, _ = io.WriteString(stdout, result.Stdout)
	}
	if result.Stderr != "" {
		_, _ = io.WriteString(os.Stderr, result.Stderr)
	}
	return result.ExitCode, nil
}

func (a *App) printCode(rc *rezcontext.ResolvedContext, shellType string, stdout io.Writer) error {
	dialect, err := shell.New(shellType)
	if err != nil {
		return err
	}
	code, err := rc.ShellCode(dialect, nil)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, code)
	return err
}

func printEnv(rc *rezcontext.ResolvedContext, stdout io.Writer) error {
	env, err := rc.Environ(nil)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := io.WriteString(stdout, k+"="+env[k]+"\n"); err != nil {
			return zerr.Wrap(err, "failed to write environment")
		}
	}
	return nil
}

// reporter builds the legacy-commands warning reporter, or nil when the
// warning is disabled by settings.
func (a *App) reporter() *rex.WarningReporter {
	if !a.settings.WarnOldCommandsEnabled() {
		return nil
	}
	return rex.NewWarningReporter(a.logger)
}
