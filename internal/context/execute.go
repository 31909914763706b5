package context

import (
	gocontext "context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/SParksLz/rez/internal/rex"
	"go.trai.ch/zerr"
)

// passInput assembles the resolution-level variables an execution pass binds.
func (rc *ResolvedContext) passInput() rex.PassInput {
	return rex.PassInput{
		Result:   rc.result,
		RezPath:  rc.provenance.RezPath,
		User:     rc.provenance.User,
		Building: os.Getenv("REZ_BUILD_ENV") != "",
	}
}

// Environ interprets the context through the in-process map backend and
// returns the finalized variable map. The parent set seeds the interpretation
// and defaults to the current process environment; the live process is never
// touched.
func (rc *ResolvedContext) Environ(parent map[string]string) (map[string]string, error) {
	sink := rex.NewEnvSink(parent)
	ex := rex.NewExecutor(sink, sink, rc.reporter)
	if err := ex.ExecutePass(rc.passInput()); err != nil {
		return nil, err
	}
	return sink.Map(), nil
}

// ShellCode interprets the context through the shell-source backend for the
// given dialect and returns the generated source text only.
func (rc *ResolvedContext) ShellCode(dialect ports.ShellDialect, parent map[string]string) (string, error) {
	return rc.shellCode(dialect, parent, nil)
}

// shellCode generates dialect source, optionally prefixed with extra
// name/value exports applied before the engine pass.
func (rc *ResolvedContext) shellCode(dialect ports.ShellDialect, parent map[string]string, pre [][2]string) (string, error) {
	sink := rex.NewShellSink(dialect)
	ex := rex.NewExecutor(sink, rex.NewEnvSink(parent), rc.reporter)
	for _, kv := range pre {
		ex.Setenv(kv[0], kv[1])
	}
	if err := ex.ExecutePass(rc.passInput()); err != nil {
		return "", err
	}
	return sink.Source(), nil
}

// Apply materializes the context into the current process environment. This
// is the single sanctioned global-mutation point in the package: it mutates
// ambient process state in place and is inherently unsynchronized; callers
// running concurrent applies must serialize them.
func (rc *ResolvedContext) Apply() error {
	env, err := rc.Environ(nil)
	if err != nil {
		return err
	}
	for k, v := range env {
		if err := os.Setenv(k, v); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to set environment variable"), "name", k)
		}
	}
	return nil
}

// ExecuteCommand starts a subprocess inside the interpreted environment,
// without spawning a shell. Aliases are not available; use ExecuteShell for a
// full session. The returned handle has been started but not waited on.
func (rc *ResolvedContext) ExecuteCommand(ctx gocontext.Context, args []string, parent map[string]string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, zerr.New("no command given")
	}

	env, err := rc.Environ(parent)
	if err != nil {
		return nil, err
	}
	environ := rex.NewEnvSink(env).Environ()

	executable := args[0]
	if !filepath.IsAbs(executable) {
		if lp, lperr := lookPath(executable, env["PATH"]); lperr == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args[1:]...) //nolint:gosec // caller-provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = args[0]
	}
	cmd.Env = environ
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "command", args[0])
	}
	return cmd, nil
}

// lookPath resolves an executable against the interpreted PATH rather than
// the caller's.
func lookPath(file, path string) (string, error) {
	if path == "" {
		return "", exec.ErrNotFound
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if info, err := os.Stat(candidate); err == nil {
			if m := info.Mode(); !m.IsDir() && m&0o111 != 0 {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}
