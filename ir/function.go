package ir

import "tinygo.org/x/go-llvm"

// Declaration pairs an LLVM function with its type. Call sites must name the
// callee type explicitly under opaque pointers, so the two travel together.
type Declaration struct {
	Type  llvm.Type
	Value llvm.Value
}

// Function is one function under construction.
type Function struct {
	// Name is the symbol name in the module.
	Name string
	// Declaration is the LLVM function and its type.
	Declaration Declaration
	// EntryBlock is the first basic block, created with the function.
	EntryBlock llvm.BasicBlock
	// Blocks registers the legacy assembly block variants of the function.
	// Unused by the Yul pipeline but always present.
	Blocks *Registry
	// StackSize is the peak emulated stack height observed while lowering,
	// informing the frame size hint passed to the backend.
	StackSize int
}

// NewFunction wraps a freshly declared LLVM function.
func NewFunction(name string, declaration Declaration, entry llvm.BasicBlock) *Function {
	return &Function{
		Name:        name,
		Declaration: declaration,
		EntryBlock:  entry,
		Blocks:      NewRegistry(),
	}
}
