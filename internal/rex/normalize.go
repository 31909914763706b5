package rex

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/SParksLz/rez/internal/core/ports"
)

// WarningReporter emits the one-time warning about legacy-format commands.
// The already-warned flag lives here, injected, so tests can reset it
// deterministically.
type WarningReporter struct {
	logger ports.Logger
	mu     sync.Mutex
	warned bool
}

// NewWarningReporter creates a reporter backed by the given logger.
func NewWarningReporter(logger ports.Logger) *WarningReporter {
	return &WarningReporter{logger: logger}
}

// WarnLegacyCommands warns once, naming the first offending package. It has
// no functional effect on normalization.
func (r *WarningReporter) WarnLegacyCommands(pkgName string) {
	if r == nil || r.logger == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.warned {
		return
	}
	r.warned = true
	r.logger.Warn(fmt.Sprintf("%s is using old-style commands", pkgName))
}

// Reset clears the already-warned flag.
func (r *WarningReporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warned = false
}

// legacyTokens maps old bracketed placeholder tokens to their modern
// reference-expression form.
var legacyTokens = [][2]string{
	{"!VERSION!", "{version}"},
	{"!MAJOR_VERSION!", "{version.major}"},
	{"!MINOR_VERSION!", "{version.minor}"},
	{"!BASE!", "{base}"},
	{"!ROOT!", "{root}"},
	{"!USER!", "{user}"},
}

// Normalize converts a package's declared commands into a single executable
// form: instruction-source text tagged with its origin, or a callable passed
// through untouched. Legacy lists are rewritten token-by-token and converted
// line-by-line, one instruction per original line, order preserved.
func Normalize(cmds domain.PackageCommands, pkg domain.ResolvedPackage, reporter *WarningReporter) domain.PackageCommands {
	switch cmds.Kind() {
	case domain.CommandsLegacyList:
		reporter.WarnLegacyCommands(pkg.ShortName())
		return domain.SourceCommands(ConvertLegacyLines(cmds.List()), pkg.MetaFile)
	case domain.CommandsSource, domain.CommandsCallable:
		return cmds
	default:
		return cmds
	}
}

// ConvertLegacyLines rewrites legacy token-templated lines into instruction
// source. Recognized forms:
//
//	export NAME=VALUE    -> setenv, or appendenv/prependenv when VALUE
//	                        references $NAME itself at one end
//	alias NAME=COMMAND   -> alias
//	# text               -> comment
//
// Anything else carries no environment semantics in the narrowed vocabulary
// and is preserved as a comment.
func ConvertLegacyLines(lines []string) string {
	var out []string
	for _, line := range lines {
		out = append(out, convertLegacyLine(rewriteLegacyTokens(line)))
	}
	return strings.Join(out, "\n")
}

func rewriteLegacyTokens(line string) string {
	for _, tok := range legacyTokens {
		line = strings.ReplaceAll(line, tok[0], tok[1])
	}
	return line
}

func convertLegacyLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "export "):
		return convertLegacyExport(strings.TrimPrefix(trimmed, "export "))
	case strings.HasPrefix(trimmed, "alias "):
		name, value, ok := strings.Cut(strings.TrimPrefix(trimmed, "alias "), "=")
		if ok {
			return fmt.Sprintf("alias(%q, %q)", strings.TrimSpace(name), unquote(value))
		}
	case strings.HasPrefix(trimmed, "#"):
		return fmt.Sprintf("comment(%q)", strings.TrimSpace(strings.TrimPrefix(trimmed, "#")))
	}
	return fmt.Sprintf("comment(%q)", trimmed)
}

func convertLegacyExport(assign string) string {
	name, value, ok := strings.Cut(assign, "=")
	if !ok {
		return fmt.Sprintf("comment(%q)", "export "+assign)
	}
	name = strings.TrimSpace(name)
	value = unquote(value)

	selfRefs := []string{"$" + name, "${" + name + "}"}
	for _, ref := range selfRefs {
		for _, sep := range []string{":", ";"} {
			if rest, found := strings.CutPrefix(value, ref+sep); found {
				return fmt.Sprintf("appendenv(%q, %q)", name, rest)
			}
			if rest, found := strings.CutSuffix(value, sep+ref); found {
				return fmt.Sprintf("prependenv(%q, %q)", name, rest)
			}
		}
	}
	return fmt.Sprintf("setenv(%q, %q)", name, value)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
