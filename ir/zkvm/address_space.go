// Package zkvm lowers contract code to the zero-knowledge virtual machine
// target.
package zkvm

import "github.com/zkvm-project/codegen/ir"

// AddressSpaces maps the abstract memory regions onto the virtual machine's
// numbered address spaces. Calldata and return data are not separate pages
// here: external call data arrives through fat pointers into the generic
// space.
type AddressSpaces struct{}

// Space implements ir.AddressSpaces.
func (AddressSpaces) Space(region ir.Region) int {
	switch region {
	case ir.RegionStack:
		return 0
	case ir.RegionHeap:
		return 1
	case ir.RegionHeapAux:
		return 2
	case ir.RegionCalldata, ir.RegionReturnData, ir.RegionGeneric:
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
