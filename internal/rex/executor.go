package rex

import (
	"strconv"
	"strings"

	"github.com/SParksLz/rez/internal/core/domain"
	exprlang "github.com/expr-lang/expr"
	"go.trai.ch/zerr"
)

// Executor runs one execution pass: it binds resolution-scoped variables,
// iterates resolved packages in resolution order and evaluates each package's
// normalized commands against the target sink. The pass is strictly
// sequential; later packages may overwrite variables set by earlier ones, by
// design.
type Executor struct {
	sink     Sink
	state    *EnvSink
	reporter *WarningReporter
	refs     refs

	// sinkErr holds the first backend failure; instruction methods cannot
	// return errors themselves, so the pass checks this between steps.
	sinkErr error
}

// PassInput carries the resolution-level values an execution pass exports.
type PassInput struct {
	Result   *domain.ResolveResult
	RezPath  string
	User     string
	Building bool
}

// NewExecutor creates an executor targeting sink. The state sink shadows all
// variable mutations so Getenv and reference expansion see accumulated values
// even when the target renders source text; pass the same *EnvSink as both
// arguments for the in-process map mode.
func NewExecutor(sink Sink, state *EnvSink, reporter *WarningReporter) *Executor {
	if state == nil {
		state = NewEnvSink(nil)
	}
	return &Executor{sink: sink, state: state, reporter: reporter}
}

// State exposes the shadow variable store backing Getenv.
func (e *Executor) State() *EnvSink {
	return e.state
}

// ExecutePass runs the full engine pass for a resolve result.
func (e *Executor) ExecutePass(in PassInput) error {
	res := in.Result
	e.refs = refs{user: in.User, building: in.Building}

	e.Setenv("REZ_USED", in.RezPath)
	e.Setenv("REZ_REQUEST", strings.Join(res.Request, " "))
	e.Setenv("REZ_RAW_REQUEST", strings.Join(res.RawRequest, " "))
	e.Setenv("REZ_RESOLVE", res.ShortNames())
	e.Setenv("REZ_RESOLVE_MODE", string(res.Mode))
	e.Setenv("REZ_FAILED_ATTEMPTS", strconv.Itoa(res.FailedAttempts))
	e.Setenv("REZ_REQUEST_TIME", strconv.FormatInt(res.RequestTime, 10))
	e.bind("building", strconv.FormatBool(in.Building))

	if e.sinkErr != nil {
		return e.sinkErr
	}

	for i := range res.Packages {
		if err := e.executePackage(&res.Packages[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) executePackage(pkg *domain.ResolvedPackage) error {
	e.Comment("")
	e.Comment("Commands from package " + pkg.ShortName())
	e.Comment("")

	prefix := "REZ_" + SafeEnvName(pkg.Name)
	e.Setenv(prefix, pkg.ShortName())
	e.Setenv(prefix+"_VERSION", pkg.Version.String())
	e.Setenv(prefix+"_BASE", pkg.Base)
	e.Setenv(prefix+"_ROOT", pkg.Root)

	// References are rebound, not merged, for each package.
	e.refs.pkg = pkg
	e.bind("this", pkg.ShortName())
	e.bind("root", pkg.Root)
	e.bind("base", pkg.Base)
	e.bind("version", pkg.Version.String())

	cmds, ok, err := domain.CommandsFromMetadata(*pkg)
	if err != nil {
		return e.commandError(err, pkg)
	}
	if !ok {
		return nil
	}

	cmds = Normalize(cmds, *pkg, e.reporter)
	switch cmds.Kind() {
	case domain.CommandsSource:
		text, origin := cmds.Source()
		if err := e.executeSource(text, origin, pkg); err != nil {
			return err
		}
	case domain.CommandsCallable:
		if err := cmds.Func()(e); err != nil {
			return e.commandError(err, pkg)
		}
	}
	if e.sinkErr != nil {
		return e.commandError(e.sinkErr, pkg)
	}
	return nil
}

// executeSource evaluates instruction-source text, one expression per line.
func (e *Executor) executeSource(text, origin string, pkg *domain.ResolvedPackage) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := exprlang.Eval(line, e.evalEnv(pkg)); err != nil {
			wrapped := zerr.With(zerr.Wrap(err, "evaluating commands failed"), "line", line)
			return e.commandError(zerr.With(wrapped, "origin", origin), pkg)
		}
		if e.sinkErr != nil {
			return e.commandError(e.sinkErr, pkg)
		}
	}
	return nil
}

// evalEnv builds the expression environment for one package: the instruction
// functions plus the currently bound references.
func (e *Executor) evalEnv(pkg *domain.ResolvedPackage) map[string]any {
	return map[string]any{
		"setenv":     func(name, value string) bool { e.Setenv(name, value); return true },
		"appendenv":  func(name, value string) bool { e.Appendenv(name, value); return true },
		"prependenv": func(name, value string) bool { e.Prependenv(name, value); return true },
		"alias":      func(name, command string) bool { e.Alias(name, command); return true },
		"comment":    func(text string) bool { e.Comment(text); return true },
		"getenv":     func(name string) string { return e.Getenv(name) },
		"root":       pkg.Root,
		"base":       pkg.Base,
		"version":    pkg.Version.String(),
		"user":       e.refs.user,
		"building":   e.refs.building,
		"this": map[string]any{
			"name":    pkg.Name,
			"version": pkg.Version.String(),
			"root":    pkg.Root,
			"base":    pkg.Base,
		},
	}
}

func (e *Executor) commandError(err error, pkg *domain.ResolvedPackage) error {
	wrapped := zerr.With(domain.ErrCommandExecution, "package", pkg.ShortName())
	wrapped = zerr.With(wrapped, "metafile", pkg.MetaFile)
	return zerr.With(wrapped, "cause", err.Error())
}

// Setenv applies a set-variable instruction, expanding references in value.
func (e *Executor) Setenv(name, value string) {
	e.apply(domain.Instruction{Kind: domain.KindSetenv, Name: name, Value: e.refs.expand(value)})
}

// Appendenv applies an append-to-list instruction.
func (e *Executor) Appendenv(name, value string) {
	e.apply(domain.Instruction{Kind: domain.KindAppendenv, Name: name, Value: e.refs.expand(value)})
}

// Prependenv applies a prepend-to-list instruction.
func (e *Executor) Prependenv(name, value string) {
	e.apply(domain.Instruction{Kind: domain.KindPrependenv, Name: name, Value: e.refs.expand(value)})
}

// Alias applies a set-alias instruction.
func (e *Executor) Alias(name, command string) {
	e.apply(domain.Instruction{Kind: domain.KindAlias, Name: name, Value: e.refs.expand(command)})
}

// Comment applies a comment instruction.
func (e *Executor) Comment(text string) {
	e.apply(domain.Instruction{Kind: domain.KindComment, Value: text})
}

// Getenv reads a variable as currently accumulated in the shadow state.
func (e *Executor) Getenv(name string) string {
	return e.state.Getenv(name)
}

func (e *Executor) bind(name, value string) {
	e.apply(domain.Instruction{Kind: domain.KindBind, Name: name, Value: value})
}

func (e *Executor) apply(instr domain.Instruction) {
	// The shadow state accepts every instruction kind, so failures can only
	// come from the target sink.
	if e.sink != Sink(e.state) {
		_ = e.state.Apply(instr)
	}
	if err := e.sink.Apply(instr); err != nil && e.sinkErr == nil {
		e.sinkErr = err
	}
}

// SafeEnvName uppercases a package name and maps every character outside
// [A-Z0-9_] to an underscore, producing the REZ_<PACKAGENAME> variable stem.
func SafeEnvName(name string) string {
	upper := strings.ToUpper(name)
	var b strings.Builder
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
