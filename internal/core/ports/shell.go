package ports

import (
	"context"
	"os/exec"

	"github.com/SParksLz/rez/internal/core/domain"
)

// SpawnOptions configure a shell process bound to a generated context file.
type SpawnOptions struct {
	// ContextFile is the generated shell-source file the session must source.
	ContextFile string

	// RCFile sources this file instead of the shell's startup files.
	RCFile string

	// NoRC skips shell startup files where the dialect supports it.
	NoRC bool

	// Stdin makes the shell read commands from stdin, non-interactively.
	Stdin bool

	// Command, when non-empty, is executed in a non-interactive session.
	Command string

	// Quiet suppresses the welcome message in interactive sessions.
	Quiet bool

	// Env is the full process environment, KEY=VALUE form.
	Env []string

	// Dir is the working directory; empty inherits the caller's.
	Dir string
}

// ShellDialect generates source text for one command-shell dialect and
// constructs shell processes. Implementations must support the full
// instruction vocabulary with identical ordering semantics; everything else
// about their syntax is their own affair.
//
//go:generate go run go.uber.org/mock/mockgen -source=shell.go -destination=mocks/mock_shell.go -package=mocks
type ShellDialect interface {
	// Name is the dialect identifier, e.g. "bash".
	Name() string

	// FileExtension is the extension for generated context files, e.g. "sh".
	FileExtension() string

	// Render produces the dialect source line(s) for one instruction.
	Render(instr domain.Instruction) (string, error)

	// Spawn constructs (without starting) a shell process configured to
	// source the context file per the options.
	Spawn(ctx context.Context, opts SpawnOptions) (*exec.Cmd, error)
}
