// Package evm lowers contract code to the plain Ethereum virtual machine
// target.
package evm

import "github.com/zkvm-project/codegen/ir"

// AddressSpaces maps the abstract memory regions onto the machine's
// numbered address spaces. There is no auxiliary heap and no generic page;
// regions without a hardware counterpart collapse into their nearest
// equivalent while stack, heap, storage and code stay distinct.
type AddressSpaces struct{}

// Space implements ir.AddressSpaces.
func (AddressSpaces) Space(region ir.Region) int {
	switch region {
	case ir.RegionStack:
		return 0
	case ir.RegionHeap, ir.RegionHeapAux, ir.RegionGeneric:
		return 1
	case ir.RegionCalldata:
		return 2
	case ir.RegionReturnData:
		return 3
	case ir.RegionCode:
		return 4
	case ir.RegionStorage:
		return 5
	case ir.RegionTransient:
		return 6
	default:
		return 0
	}
}
