// Package rex implements the environment-mutation execution engine: the
// instruction sinks, the command normalizer and the per-package executor.
package rex

import (
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	"go.trai.ch/zerr"
)

// Sink accepts environment-mutation instructions. The executor depends only
// on this contract; concrete backends decide whether instructions become an
// in-memory variable map or shell source text.
type Sink interface {
	Apply(instr domain.Instruction) error
}

// EnvSink is the in-process map backend. It accumulates instructions into a
// live key/value store. List-like variables keep their fragments ordered and
// are joined with the platform list separator, deduplicated, only at finalize
// time.
type EnvSink struct {
	scalars  map[string]string
	lists    map[string][]string
	aliases  map[string]string
	comments []string
}

// NewEnvSink creates a map backend seeded from the given parent variable set.
// A nil parent seeds from the current process environment.
func NewEnvSink(parent map[string]string) *EnvSink {
	s := &EnvSink{
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
		aliases: make(map[string]string),
	}
	if parent == nil {
		parent = EnvironMap(os.Environ())
	}
	for k, v := range parent {
		s.scalars[k] = v
	}
	return s
}

// NewEmptyEnvSink creates a map backend with no parent seeding.
func NewEmptyEnvSink() *EnvSink {
	return NewEnvSink(map[string]string{})
}

// Apply applies one instruction to the store.
func (s *EnvSink) Apply(instr domain.Instruction) error {
	switch instr.Kind {
	case domain.KindSetenv:
		delete(s.lists, instr.Name)
		s.scalars[instr.Name] = instr.Value
	case domain.KindAppendenv:
		s.lists[instr.Name] = append(s.fragments(instr.Name), instr.Value)
	case domain.KindPrependenv:
		s.lists[instr.Name] = append([]string{instr.Value}, s.fragments(instr.Name)...)
	case domain.KindAlias:
		s.aliases[instr.Name] = instr.Value
	case domain.KindComment:
		// Comments never affect a variable map; kept only for inspection.
		s.comments = append(s.comments, instr.Value)
	case domain.KindBind:
		// Reference binds are scoped to instruction evaluation and are the
		// executor's affair.
	default:
		return zerr.With(zerr.New("unknown instruction kind"), "kind", int(instr.Kind))
	}
	return nil
}

// fragments promotes a variable to list form, splitting any inherited scalar
// value on the platform list separator so later dedup works per fragment.
func (s *EnvSink) fragments(name string) []string {
	if frags, ok := s.lists[name]; ok {
		return frags
	}
	var frags []string
	if v, ok := s.scalars[name]; ok && v != "" {
		frags = strings.Split(v, string(os.PathListSeparator))
		delete(s.scalars, name)
	}
	return frags
}

// Getenv returns the variable's value as currently accumulated. List-like
// variables are joined but not deduplicated; dedup happens only at finalize.
func (s *EnvSink) Getenv(name string) string {
	if frags, ok := s.lists[name]; ok {
		return strings.Join(frags, string(os.PathListSeparator))
	}
	return s.scalars[name]
}

// Map finalizes the store into a flat variable map.
func (s *EnvSink) Map() map[string]string {
	out := make(map[string]string, len(s.scalars)+len(s.lists))
	for k, v := range s.scalars {
		out[k] = v
	}
	for k, frags := range s.lists {
		out[k] = strings.Join(dedupFragments(frags), string(os.PathListSeparator))
	}
	return out
}

// Environ finalizes the store into sorted KEY=VALUE form.
func (s *EnvSink) Environ() []string {
	m := s.Map()
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Aliases returns the accumulated alias map.
func (s *EnvSink) Aliases() map[string]string {
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// dedupFragments drops repeated fragments, keeping first occurrences in order.
func dedupFragments(frags []string) []string {
	out := make([]string, 0, len(frags))
	for _, f := range frags {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// EnvironMap converts KEY=VALUE pairs into a map.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			m[k] = v
		}
	}
	return m
}
