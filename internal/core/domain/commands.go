package domain

import "go.trai.ch/zerr"

// CommandEnv is the surface a callable commands function mutates. It is the
// same five-instruction vocabulary the rex engine executes for declarative
// commands.
type CommandEnv interface {
	// Setenv sets an environment variable.
	Setenv(name, value string)
	// Appendenv appends a fragment to a list-like variable.
	Appendenv(name, value string)
	// Prependenv prepends a fragment to a list-like variable.
	Prependenv(name, value string)
	// Alias defines a command alias.
	Alias(name, command string)
	// Comment records a comment in generated source output.
	Comment(text string)
	// Getenv reads a variable as currently accumulated.
	Getenv(name string) string
}

// CommandFunc is the callable commands variant: a function invoked directly
// against the bound environment, bypassing source-text evaluation.
type CommandFunc func(env CommandEnv) error

// CommandsKind tags the PackageCommands union.
type CommandsKind int

const (
	// CommandsNone means the package declares no environment commands.
	CommandsNone CommandsKind = iota
	// CommandsLegacyList is the old token-templated string-list form.
	CommandsLegacyList
	// CommandsSource is modern instruction-source text.
	CommandsSource
	// CommandsCallable is an in-process function value.
	CommandsCallable
)

// PackageCommands is the polymorphic "commands" metadata entry, modelled as a
// tagged union over its three variants.
type PackageCommands struct {
	kind   CommandsKind
	list   []string
	source string
	origin string
	fn     CommandFunc
}

// LegacyListCommands builds the legacy string-list variant.
func LegacyListCommands(lines []string) PackageCommands {
	return PackageCommands{kind: CommandsLegacyList, list: lines}
}

// SourceCommands builds the instruction-source variant, tagged with the file
// it originated from for error attribution.
func SourceCommands(text, origin string) PackageCommands {
	return PackageCommands{kind: CommandsSource, source: text, origin: origin}
}

// CallableCommands builds the callable variant. Callables exist only
// in-process; they cannot appear in persisted contexts.
func CallableCommands(fn CommandFunc) PackageCommands {
	return PackageCommands{kind: CommandsCallable, fn: fn}
}

// Kind reports which variant this is.
func (c PackageCommands) Kind() CommandsKind { return c.kind }

// List returns the legacy lines. Valid only for CommandsLegacyList.
func (c PackageCommands) List() []string { return c.list }

// Source returns the instruction-source text and its origin label. Valid only
// for CommandsSource.
func (c PackageCommands) Source() (text, origin string) { return c.source, c.origin }

// Func returns the callable. Valid only for CommandsCallable.
func (c PackageCommands) Func() CommandFunc { return c.fn }

// CommandsFromMetadata extracts the commands entry of a resolved package.
// The second return is false when the package declares no commands.
func CommandsFromMetadata(pkg ResolvedPackage) (PackageCommands, bool, error) {
	raw, ok := pkg.MetaEntry("commands")
	if !ok || raw == nil {
		return PackageCommands{}, false, nil
	}

	switch v := raw.(type) {
	case string:
		return SourceCommands(v, pkg.MetaFile), true, nil
	case []string:
		return LegacyListCommands(v), true, nil
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				err := zerr.With(zerr.New("commands list entry is not a string"), "package", pkg.ShortName())
				return PackageCommands{}, false, zerr.With(err, "metafile", pkg.MetaFile)
			}
			lines = append(lines, s)
		}
		return LegacyListCommands(lines), true, nil
	case CommandFunc:
		return CallableCommands(v), true, nil
	case func(CommandEnv) error:
		return CallableCommands(v), true, nil
	default:
		err := zerr.With(zerr.New("unsupported commands type"), "package", pkg.ShortName())
		return PackageCommands{}, false, zerr.With(err, "metafile", pkg.MetaFile)
	}
}
