package rex

import (
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
	"go.trai.ch/zerr"
)

// ShellSink renders instructions to source text for one shell dialect. The
// dialect decides syntax; ordering is preserved exactly as applied.
type ShellSink struct {
	dialect ports.ShellDialect
	lines   []string
}

// NewShellSink creates a sink targeting the given dialect.
func NewShellSink(dialect ports.ShellDialect) *ShellSink {
	return &ShellSink{dialect: dialect}
}

// Apply renders one instruction and accumulates the resulting source.
func (s *ShellSink) Apply(instr domain.Instruction) error {
	line, err := s.dialect.Render(instr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "rendering instruction failed"), "dialect", s.dialect.Name())
	}
	if line != "" {
		s.lines = append(s.lines, line)
	}
	return nil
}

// Source finalizes the accumulated source text.
func (s *ShellSink) Source() string {
	if len(s.lines) == 0 {
		return ""
	}
	return strings.Join(s.lines, "\n") + "\n"
}
