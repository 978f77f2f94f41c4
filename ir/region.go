package ir

import "fmt"

// Region identifies one of the abstract memory regions of the contract
// execution model. Translators name regions instead of numeric LLVM address
// spaces; each target maps regions onto its own numbering through an
// AddressSpaces implementation.
type Region int

const (
	// RegionStack is the function frame holding allocas and spills.
	RegionStack Region = iota
	// RegionHeap is the byte-addressed transient memory of one execution.
	RegionHeap
	// RegionHeapAux is a second heap reserved for ABI scratch data that
	// must not disturb the user-visible heap. Not every target has one.
	RegionHeapAux
	// RegionCalldata is the read-only input of the current call.
	RegionCalldata
	// RegionReturnData is the read-only output of the last external call.
	RegionReturnData
	// RegionGeneric addresses externally received pointers whose concrete
	// region is unknown at compile time.
	RegionGeneric
	// RegionCode addresses the contract code itself.
	RegionCode
	// RegionStorage is the persistent key-value store of the contract.
	RegionStorage
	// RegionTransient is the transaction-scoped key-value store.
	RegionTransient

	regionCount
)

// Regions lists every abstract region in declaration order.
var Regions = [regionCount]Region{
	RegionStack,
	RegionHeap,
	RegionHeapAux,
	RegionCalldata,
	RegionReturnData,
	RegionGeneric,
	RegionCode,
	RegionStorage,
	RegionTransient,
}

func (r Region) String() string {
	switch r {
	case RegionStack:
		return "stack"
	case RegionHeap:
		return "heap"
	case RegionHeapAux:
		return "heap_aux"
	case RegionCalldata:
		return "calldata"
	case RegionReturnData:
		return "return_data"
	case RegionGeneric:
		return "generic"
	case RegionCode:
		return "code"
	case RegionStorage:
		return "storage"
	case RegionTransient:
		return "transient"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// AddressSpaces maps abstract regions onto a target's numeric LLVM address
// spaces. The mapping is total. Targets may collapse regions that share a
// physical page, but stack, heap, storage and code are always distinct.
type AddressSpaces interface {
	Space(Region) int
}
