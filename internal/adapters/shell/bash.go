// Package shell implements shell-dialect backends for the rex engine. Each
// dialect renders the instruction vocabulary as source text and constructs
// shell processes bound to a generated context file.
package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bash implements ports.ShellDialect for GNU bash.
type Bash struct{}

// NewBash creates the bash dialect backend.
func NewBash() *Bash {
	return &Bash{}
}

// Name returns the dialect identifier.
func (b *Bash) Name() string { return "bash" }

// FileExtension returns the context-file extension.
func (b *Bash) FileExtension() string { return "sh" }

// Render produces one line of bash source per instruction. Bind instructions
// render nothing; references are an evaluation-time concept.
func (b *Bash) Render(instr domain.Instruction) (string, error) {
	switch instr.Kind {
	case domain.KindSetenv:
		return fmt.Sprintf("export %s=%s", instr.Name, quote(instr.Value)), nil
	case domain.KindAppendenv:
		return fmt.Sprintf(`export %s="${%s}${%s:+:}"%s`,
			instr.Name, instr.Name, instr.Name, quote(instr.Value)), nil
	case domain.KindPrependenv:
		return fmt.Sprintf(`export %s=%s"${%s:+:}${%s}"`,
			instr.Name, quote(instr.Value), instr.Name, instr.Name), nil
	case domain.KindAlias:
		return fmt.Sprintf("alias %s=%s", instr.Name, quote(instr.Value)), nil
	case domain.KindComment:
		if instr.Value == "" {
			return "#", nil
		}
		return "# " + instr.Value, nil
	case domain.KindBind:
		return "", nil
	}
	return "", zerr.With(zerr.New("unsupported instruction kind"), "kind", instr.Kind.String())
}

// quote single-quotes a value for bash, escaping embedded single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Spawn constructs a bash process configured to source the context file.
//
// Non-interactive sessions (an explicit command, or stdin mode) source the
// context via BASH_ENV. Interactive sessions get a wrapper rcfile, written
// next to the context file, that sources the user's startup file (or the
// override rcfile, or nothing under NoRC), then the context file, then prints
// a short welcome unless Quiet.
func (b *Bash) Spawn(_ context.Context, opts ports.SpawnOptions) (*exec.Cmd, error) {
	env := opts.Env
	if env == nil {
		env = os.Environ()
	}

	var cmd *exec.Cmd
	switch {
	case opts.Command != "":
		args := []string{"-c", opts.Command}
		if opts.NoRC {
			args = append([]string{"--norc"}, args...)
		}
		cmd = exec.Command("bash", args...)
		env = append(env, "BASH_ENV="+opts.ContextFile)

	case opts.Stdin:
		cmd = exec.Command("bash", "-s")
		env = append(env, "BASH_ENV="+opts.ContextFile)

	default:
		wrapper, err := b.writeWrapperRC(opts)
		if err != nil {
			return nil, err
		}
		cmd = exec.Command("bash", "--rcfile", wrapper, "-i")
	}

	cmd.Env = env
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// writeWrapperRC writes the interactive-session rcfile into the context
// file's scoped directory, so it shares the session's lifetime.
func (b *Bash) writeWrapperRC(opts ports.SpawnOptions) (string, error) {
	var lines []string
	switch {
	case opts.RCFile != "":
		lines = append(lines, fmt.Sprintf("[ -f %s ] && source %s", quote(opts.RCFile), quote(opts.RCFile)))
	case !opts.NoRC:
		lines = append(lines, `[ -f ~/.bashrc ] && source ~/.bashrc`)
	}
	lines = append(lines, "source "+quote(opts.ContextFile))
	if !opts.Quiet {
		lines = append(lines, `echo "You are now in a rez-configured environment."`)
	}

	path := filepath.Join(filepath.Dir(opts.ContextFile), "rcfile.sh")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil { //nolint:gosec // rcfile is not secret
		return "", zerr.Wrap(err, "failed to write session rcfile")
	}
	return path, nil
}
