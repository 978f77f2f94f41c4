package ir

import "errors"

// Errors reported by the code generation core. They fall into three classes
// with different handling at the driver level:
//
//   - malformed input (ErrBlockNotFound, ErrUnknownAttribute, ErrUnsupported,
//     unresolvable dependency paths): reported to the user as a compilation
//     diagnostic naming the offending identifier or tag;
//   - internal invariant violations (ErrStackBounds, ErrDuplicateBlock,
//     ErrHashAlreadySet, ErrNoFunction, ErrNoLoop, ErrNoCodeSegment): a bug in
//     the lowering driver or a translator; the current compilation unit must
//     be abandoned, continuing would risk emitting silently wrong IR;
//   - external service failures (verifier, pass manager, emission): wrapped
//     with the contract path and stage, never swallowed.
var (
	ErrBlockNotFound    = errors.New("undeclared function block")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnsupported      = errors.New("not supported on this target")

	ErrStackBounds    = errors.New("stack access out of bounds")
	ErrDuplicateBlock = errors.New("duplicate block variant")
	ErrHashAlreadySet = errors.New("bytecode hash is already set")
	ErrNoFunction     = errors.New("function is not declared")
	ErrNoLoop         = errors.New("no loop is currently open")
	ErrNoCodeSegment  = errors.New("code segment is undefined")
)

// IsInternal reports whether err belongs to the internal invariant violation
// class. Such an error indicates a bug in the lowering driver or a translator
// rather than malformed user input; the compilation unit that produced it is
// poisoned and must not be continued, though the hosting process may keep
// compiling other units.
func IsInternal(err error) bool {
	return errors.Is(err, ErrStackBounds) ||
		errors.Is(err, ErrDuplicateBlock) ||
		errors.Is(err, ErrHashAlreadySet) ||
		errors.Is(err, ErrNoFunction) ||
		errors.Is(err, ErrNoLoop) ||
		errors.Is(err, ErrNoCodeSegment)
}
