package zkvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Runtime function names. The routines live in a bitcode library linked
// into every module before optimization.
const (
	RuntimeDiv        = "__div"
	RuntimeMod        = "__mod"
	RuntimeSDiv       = "__sdiv"
	RuntimeSMod       = "__smod"
	RuntimeShl        = "__shl"
	RuntimeShr        = "__shr"
	RuntimeSar        = "__sar"
	RuntimeByte       = "__byte"
	RuntimeAddMod     = "__addmod"
	RuntimeMulMod     = "__mulmod"
	RuntimeExp        = "__exp"
	RuntimeSignExtend = "__signextend"
	RuntimeMStore8    = "__mstore8"
	RuntimeSha3       = "__sha3"

	RuntimeSystemRequest = "__system_request"
	RuntimeFarCall       = "__farcall"
	RuntimeStaticCall    = "__staticcall"
	RuntimeDelegateCall  = "__delegatecall"
	RuntimeDeployerCall  = "__deployer_call"

	RuntimeReturn = "__return"
	RuntimeRevert = "__revert"
)

// Runtime holds the declarations of the runtime library routines. Arithmetic
// the machine has no native instruction for is outlined here rather than
// inlined at every use site, keeping the bytecode small.
type Runtime struct {
	// Div through SignExtend implement the word arithmetic the machine
	// lacks. Division routines return zero for a zero divisor.
	Div        ir.Declaration
	Mod        ir.Declaration
	SDiv       ir.Declaration
	SMod       ir.Declaration
	Shl        ir.Declaration
	Shr        ir.Declaration
	Sar        ir.Declaration
	Byte       ir.Declaration
	AddMod     ir.Declaration
	MulMod     ir.Declaration
	Exp        ir.Declaration
	SignExtend ir.Declaration

	// MStore8 stores the least significant byte of a word on the heap.
	MStore8 ir.Declaration
	// Sha3 hashes a heap slice. The trailing flag selects the throwing
	// variant used under an exception handler.
	Sha3 ir.Declaration

	// SystemRequest performs a static call to a system contract method
	// with stack-staged arguments and returns the single result word.
	SystemRequest ir.Declaration
	// FarCall performs an external call, repoints the return data globals
	// and returns the ABI word paired with the success flag. StaticCall
	// and DelegateCall are its state-restricted and context-preserving
	// forms.
	FarCall      ir.Declaration
	StaticCall   ir.Declaration
	DelegateCall ir.Declaration
	// DeployerCall routes a contract creation through the deployer system
	// contract and returns the created address or zero.
	DeployerCall ir.Declaration

	// Return and Revert terminate execution with a heap slice. They never
	// come back.
	Return ir.Declaration
	Revert ir.Declaration
}

// newRuntime declares the runtime library interface in the module.
func newRuntime(core *ir.Context) Runtime {
	field := core.FieldType()
	void := core.VoidType()
	boolean := core.BoolType()
	heapPtr := core.PtrType(ir.RegionHeap)
	stackPtr := core.PtrType(ir.RegionStack)

	declare := func(name string, returns llvm.Type, params []llvm.Type) ir.Declaration {
		fnType := llvm.FunctionType(returns, params, false)
		return ir.Declaration{Type: fnType, Value: llvm.AddFunction(core.Module(), name, fnType)}
	}

	binary := func(name string) ir.Declaration {
		return declare(name, field, []llvm.Type{field, field})
	}
	ternary := func(name string) ir.Declaration {
		return declare(name, field, []llvm.Type{field, field, field})
	}

	farCallArgs := make([]llvm.Type, 0, 2+ExtraABIDataSize)
	farCallArgs = append(farCallArgs, field, field)
	for i := 0; i < ExtraABIDataSize; i++ {
		farCallArgs = append(farCallArgs, field)
	}

	runtime := Runtime{
		Div:        binary(RuntimeDiv),
		Mod:        binary(RuntimeMod),
		SDiv:       binary(RuntimeSDiv),
		SMod:       binary(RuntimeSMod),
		Shl:        binary(RuntimeShl),
		Shr:        binary(RuntimeShr),
		Sar:        binary(RuntimeSar),
		Byte:       binary(RuntimeByte),
		AddMod:     ternary(RuntimeAddMod),
		MulMod:     ternary(RuntimeMulMod),
		Exp:        binary(RuntimeExp),
		SignExtend: binary(RuntimeSignExtend),

		MStore8: declare(RuntimeMStore8, void, []llvm.Type{heapPtr, field}),
		Sha3:    declare(RuntimeSha3, field, []llvm.Type{heapPtr, field, boolean}),

		SystemRequest: declare(RuntimeSystemRequest, field, []llvm.Type{field, field, field, stackPtr}),
		FarCall:       declare(RuntimeFarCall, core.StructType([]llvm.Type{field, boolean}), farCallArgs),
		StaticCall:    declare(RuntimeStaticCall, core.StructType([]llvm.Type{field, boolean}), farCallArgs),
		DelegateCall:  declare(RuntimeDelegateCall, core.StructType([]llvm.Type{field, boolean}), farCallArgs),
		DeployerCall:  declare(RuntimeDeployerCall, field, []llvm.Type{field, field, field, field, field}),

		Return: declare(RuntimeReturn, void, []llvm.Type{field, field}),
		Revert: declare(RuntimeRevert, void, []llvm.Type{field, field}),
	}

	core.SetAttributes(runtime.Return, []ir.Attribute{ir.AttributeNoReturn})
	core.SetAttributes(runtime.Revert, []ir.Attribute{ir.AttributeNoReturn})

	return runtime
}
