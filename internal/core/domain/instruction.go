package domain

// InstructionKind enumerates the environment-mutation instruction vocabulary.
// The set is deliberately narrow; it is not a scripting language.
type InstructionKind int

const (
	// KindSetenv sets a variable to a value.
	KindSetenv InstructionKind = iota
	// KindAppendenv appends a fragment to a list-like variable.
	KindAppendenv
	// KindPrependenv prepends a fragment to a list-like variable.
	KindPrependenv
	// KindAlias defines a command alias.
	KindAlias
	// KindComment records a comment for generated-source readability.
	KindComment
	// KindBind binds a named reference for instruction-source evaluation.
	// Binds scope references to one package's commands; they never appear in
	// finalized variable maps.
	KindBind
)

// String returns the instruction verb.
func (k InstructionKind) String() string {
	switch k {
	case KindSetenv:
		return "setenv"
	case KindAppendenv:
		return "appendenv"
	case KindPrependenv:
		return "prependenv"
	case KindAlias:
		return "alias"
	case KindComment:
		return "comment"
	case KindBind:
		return "bind"
	}
	return "unknown"
}

// Instruction is one environment-mutation step. Name carries the variable,
// alias or reference name; Value the payload. Comments use Value only.
type Instruction struct {
	Kind  InstructionKind
	Name  string
	Value string
}
