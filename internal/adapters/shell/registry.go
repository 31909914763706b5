package shell

import (
	"os"
	"path/filepath"

	"github.com/SParksLz/rez/internal/core/ports"
	"go.trai.ch/zerr"
)

// Types lists the supported dialect identifiers.
func Types() []string {
	return []string{"bash", "sh"}
}

// New returns the dialect backend for the given identifier. An empty name
// selects the current shell from $SHELL, falling back to bash.
func New(name string) (ports.ShellDialect, error) {
	if name == "" {
		if sh := os.Getenv("SHELL"); sh != "" {
			name = filepath.Base(sh)
		}
	}
	switch name {
	case "", "bash", "sh":
		return NewBash(), nil
	}
	return nil, zerr.With(zerr.New("unsupported shell type"), "shell", name)
}
