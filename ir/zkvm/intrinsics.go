package zkvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Intrinsic function names.
const (
	IntrinsicTrap                  = "llvm.trap"
	IntrinsicMemoryCopy            = "llvm.memcpy.p1.p1.i256"
	IntrinsicMemoryCopyFromGeneric = "llvm.memcpy.p1.p3.i256"
	IntrinsicEvent                 = "llvm.zkvm.event"
	IntrinsicToL1                  = "llvm.zkvm.tol1"
	IntrinsicPrecompile            = "llvm.zkvm.precompile"
	IntrinsicThis                  = "llvm.zkvm.this"
	IntrinsicCaller                = "llvm.zkvm.caller"
	IntrinsicCodeSource            = "llvm.zkvm.codesource"
	IntrinsicMeta                  = "llvm.zkvm.meta"
	IntrinsicGasLeft               = "llvm.zkvm.gasleft"
	IntrinsicGetU128               = "llvm.zkvm.getu128"
	IntrinsicSetU128               = "llvm.zkvm.setu128"
	IntrinsicSetPubdataPrice       = "llvm.zkvm.setpubdataprice"
	IntrinsicIncrementTxCounter    = "llvm.zkvm.inctx"
	IntrinsicPointerShrink         = "llvm.zkvm.ptr.shrink"
	IntrinsicPointerPack           = "llvm.zkvm.ptr.pack"
	IntrinsicStorageLoad           = "llvm.zkvm.sload"
	IntrinsicStorageStore          = "llvm.zkvm.sstore"
	IntrinsicTransientLoad         = "llvm.zkvm.tload"
	IntrinsicTransientStore        = "llvm.zkvm.tstore"
)

// Intrinsics holds the declarations of the virtual machine intrinsics the
// translators call into. All are declared up front when the context is
// created; unused ones are dropped by the optimizer.
type Intrinsics struct {
	// Trap aborts execution.
	Trap ir.Declaration
	// MemoryCopy copies between heap pointers.
	MemoryCopy ir.Declaration
	// MemoryCopyFromGeneric copies from a generic fat pointer to the heap.
	MemoryCopyFromGeneric ir.Declaration

	// Event emits one event log record.
	Event ir.Declaration
	// ToL1 sends a message to layer one.
	ToL1 ir.Declaration
	// Precompile invokes the precompile backing the current contract.
	Precompile ir.Declaration

	// This returns the address of the executing contract.
	This ir.Declaration
	// Caller returns the address of the calling contract.
	Caller ir.Declaration
	// CodeSource returns the address the executing code was fetched from.
	CodeSource ir.Declaration
	// Meta returns the packed execution metadata word.
	Meta ir.Declaration
	// GasLeft returns the remaining gas.
	GasLeft ir.Declaration
	// GetU128 returns the 128-bit value register of the active call.
	GetU128 ir.Declaration
	// SetU128 sets the 128-bit value register for the next call.
	SetU128 ir.Declaration
	// SetPubdataPrice sets the pubdata price for the current transaction.
	SetPubdataPrice ir.Declaration
	// IncrementTxCounter bumps the in-block transaction counter.
	IncrementTxCounter ir.Declaration

	// PointerShrink narrows the span of a fat pointer.
	PointerShrink ir.Declaration
	// PointerPack packs a fat pointer with upper metadata bits.
	PointerPack ir.Declaration

	// StorageLoad reads a persistent storage slot.
	StorageLoad ir.Declaration
	// StorageStore writes a persistent storage slot.
	StorageStore ir.Declaration
	// TransientLoad reads a transaction-scoped storage slot.
	TransientLoad ir.Declaration
	// TransientStore writes a transaction-scoped storage slot.
	TransientStore ir.Declaration
}

// newIntrinsics declares the intrinsic set in the module. Intrinsics are
// declarations only, they must never receive bodies.
func newIntrinsics(core *ir.Context) Intrinsics {
	field := core.FieldType()
	void := core.VoidType()
	boolean := core.BoolType()
	heapPtr := core.PtrType(ir.RegionHeap)
	genericPtr := core.PtrType(ir.RegionGeneric)

	declare := func(name string, returns llvm.Type, params []llvm.Type) ir.Declaration {
		fnType := llvm.FunctionType(returns, params, false)
		return ir.Declaration{Type: fnType, Value: llvm.AddFunction(core.Module(), name, fnType)}
	}

	return Intrinsics{
		Trap:                  declare(IntrinsicTrap, void, nil),
		MemoryCopy:            declare(IntrinsicMemoryCopy, void, []llvm.Type{heapPtr, heapPtr, field, boolean}),
		MemoryCopyFromGeneric: declare(IntrinsicMemoryCopyFromGeneric, void, []llvm.Type{heapPtr, genericPtr, field, boolean}),

		Event:      declare(IntrinsicEvent, void, []llvm.Type{field, field, field}),
		ToL1:       declare(IntrinsicToL1, void, []llvm.Type{field, field, field}),
		Precompile: declare(IntrinsicPrecompile, field, []llvm.Type{field, field}),

		This:               declare(IntrinsicThis, field, nil),
		Caller:             declare(IntrinsicCaller, field, nil),
		CodeSource:         declare(IntrinsicCodeSource, field, nil),
		Meta:               declare(IntrinsicMeta, field, nil),
		GasLeft:            declare(IntrinsicGasLeft, field, nil),
		GetU128:            declare(IntrinsicGetU128, field, nil),
		SetU128:            declare(IntrinsicSetU128, void, []llvm.Type{field}),
		SetPubdataPrice:    declare(IntrinsicSetPubdataPrice, void, []llvm.Type{field}),
		IncrementTxCounter: declare(IntrinsicIncrementTxCounter, void, nil),

		PointerShrink: declare(IntrinsicPointerShrink, genericPtr, []llvm.Type{genericPtr, field}),
		PointerPack:   declare(IntrinsicPointerPack, field, []llvm.Type{genericPtr, field}),

		StorageLoad:    declare(IntrinsicStorageLoad, field, []llvm.Type{field}),
		StorageStore:   declare(IntrinsicStorageStore, void, []llvm.Type{field, field}),
		TransientLoad:  declare(IntrinsicTransientLoad, field, []llvm.Type{field}),
		TransientStore: declare(IntrinsicTransientStore, void, []llvm.Type{field, field}),
	}
}
