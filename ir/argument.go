package ir

import (
	"github.com/holiman/uint256"
	"tinygo.org/x/go-llvm"
)

// Calldata pointer slots tracked by the legacy assembly front end. A calldata
// reference occupies two emulated stack slots, the offset and the length.
const (
	ArgumentIndexCalldataOffset = 0
	ArgumentIndexCalldataLength = 1
)

// Argument is one value produced during lowering. Besides the LLVM value it
// carries the optional provenance label assigned by the front end, which
// feeds stack fingerprinting, and the optional compile-time constant, which
// lets translators fold and special-case without re-deriving the value.
type Argument struct {
	// Value is the underlying LLVM value.
	Value llvm.Value
	// Original is the provenance label from the source assembly, such as a
	// tag literal or a data identifier. Empty when the front end assigned
	// none.
	Original string
	// Constant is the statically known value, nil when unknown.
	Constant *uint256.Int
}

// NewArgument wraps an LLVM value with no label and no known constant.
func NewArgument(value llvm.Value) Argument {
	return Argument{Value: value}
}

// NewArgumentConstant wraps an LLVM value whose numeric value is statically
// known.
func NewArgumentConstant(value llvm.Value, constant *uint256.Int) Argument {
	return Argument{Value: value, Constant: constant}
}

// WithOriginal returns a copy of the argument carrying the provenance label.
func (a Argument) WithOriginal(original string) Argument {
	a.Original = original
	return a
}

// WithConstant returns a copy of the argument carrying the known constant.
func (a Argument) WithConstant(constant *uint256.Int) Argument {
	a.Constant = constant
	return a
}
