package context

import (
	"bytes"
	gocontext "context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/SParksLz/rez/internal/core/ports"
	"github.com/SParksLz/rez/internal/rex"
	"github.com/creack/pty"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// ShellOptions configure a spawned shell session.
type ShellOptions struct {
	// Dialect is the shell backend; required.
	Dialect ports.ShellDialect

	// ParentEnv seeds interpretation and the spawned process environment;
	// nil defaults to the current process environment.
	ParentEnv map[string]string

	// RCFile sources this file instead of shell startup files.
	RCFile string

	// NoRC skips shell startup files where possible.
	NoRC bool

	// Stdin reads commands from stdin in a non-interactive session.
	Stdin bool

	// Command, when non-empty, runs in a non-interactive session.
	Command string

	// Quiet skips the welcome message in interactive sessions.
	Quiet bool

	// Block forces blocking behavior. When nil, the session blocks exactly
	// when it is likely interactive: no command and no stdin mode requested.
	Block *bool

	// Dir is the session working directory; empty inherits the caller's.
	Dir string
}

// ShellResult is the outcome of a blocking session.
type ShellResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ShellProcess is the live handle of a non-blocking session. The session's
// scoped temporary directory stays on disk until Wait or Release is called;
// that cleanup responsibility transfers to the caller with the handle.
type ShellProcess struct {
	Cmd    *exec.Cmd
	TmpDir string
}

// Wait waits for the session to exit, then removes its temporary directory.
func (p *ShellProcess) Wait() error {
	err := p.Cmd.Wait()
	p.Release()
	return err
}

// Release removes the session's temporary directory without waiting.
func (p *ShellProcess) Release() {
	if p.TmpDir != "" {
		_ = os.RemoveAll(p.TmpDir)
		p.TmpDir = ""
	}
}

// ExecuteShell spawns a possibly-interactive shell session configured to
// source this context.
//
// A scoped temporary directory receives the generated shell-source context
// file and a serialized context snapshot; the spawned session sees both via
// REZ_CONTEXT_FILE and REZ_RXT_FILE. In blocking mode the directory is
// removed on all exit paths once the process has been fully communicated
// with, and the returned result carries the exit code and captured output
// streams. In non-blocking mode the returned handle owns the cleanup.
func (rc *ResolvedContext) ExecuteShell(ctx gocontext.Context, opts ShellOptions) (*ShellResult, *ShellProcess, error) {
	if opts.Dialect == nil {
		return nil, nil, zerr.New("no shell dialect given")
	}

	block := opts.Command == "" && !opts.Stdin
	if opts.Block != nil {
		block = *opts.Block
	}

	tmpDir, err := os.MkdirTemp("", "rez_context_")
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to create session directory")
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	rxtFile := filepath.Join(tmpDir, "context.rxt")
	contextFile := filepath.Join(tmpDir, "context."+opts.Dialect.FileExtension())

	if err := rc.Save(rxtFile); err != nil {
		cleanup()
		return nil, nil, err
	}

	code, err := rc.shellCode(opts.Dialect, opts.ParentEnv, [][2]string{
		{"REZ_RXT_FILE", rxtFile},
		{"REZ_CONTEXT_FILE", contextFile},
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := os.WriteFile(contextFile, []byte(code), 0o644); err != nil { //nolint:gosec // context file is not secret
		cleanup()
		return nil, nil, zerr.Wrap(err, "failed to write context file")
	}

	cmd, err := opts.Dialect.Spawn(ctx, ports.SpawnOptions{
		ContextFile: contextFile,
		RCFile:      opts.RCFile,
		NoRC:        opts.NoRC,
		Stdin:       opts.Stdin,
		Command:     opts.Command,
		Quiet:       opts.Quiet,
		Env:         rex.NewEnvSink(opts.ParentEnv).Environ(),
		Dir:         opts.Dir,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if !block {
		if err := cmd.Start(); err != nil {
			cleanup()
			return nil, nil, zerr.Wrap(err, "failed to start shell")
		}
		return nil, &ShellProcess{Cmd: cmd, TmpDir: tmpDir}, nil
	}

	defer cleanup()

	interactive := opts.Command == "" && !opts.Stdin && term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		code, err := runInteractive(cmd)
		if err != nil {
			return nil, nil, err
		}
		return &ShellResult{ExitCode: code}, nil, nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin {
		cmd.Stdin = os.Stdin
	}

	err = cmd.Run()
	result := &ShellResult{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err != nil && !isExitError(err) {
		return nil, nil, zerr.Wrap(err, "shell session failed")
	}
	return result, nil, nil
}

// runInteractive attaches the session to a pty and proxies the caller's
// terminal until the shell exits.
func runInteractive(cmd *exec.Cmd) (int, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, zerr.Wrap(err, "failed to allocate pty")
	}
	defer func() { _ = ptmx.Close() }()

	if size, err := pty.GetsizeFull(os.Stdin); err == nil {
		_ = pty.Setsize(ptmx, size)
	}

	restore, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer func() { _ = term.Restore(int(os.Stdin.Fd()), restore) }()
	}

	// The stdin proxy blocks on the caller's terminal and only unblocks on
	// further input, so it is deliberately left out of the drain group.
	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()

	var g errgroup.Group
	g.Go(func() error {
		// Returns when the shell exits and the pty slave closes.
		_, copyErr := io.Copy(os.Stdout, ptmx)
		return copyErr
	})

	waitErr := cmd.Wait()
	_ = g.Wait()

	if waitErr != nil && !isExitError(waitErr) {
		return -1, zerr.Wrap(waitErr, "shell session failed")
	}
	return exitCode(cmd, waitErr), nil
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
