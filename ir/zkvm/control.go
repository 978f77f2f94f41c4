package zkvm

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Return terminates execution successfully. In runtime code it returns the
// heap slice as-is. In deploy code the slice operands are ignored and the
// constructor instead returns the immutables block the deployer expects.
func Return(c *Context, offset, length llvm.Value) error {
	segment, ok := c.CodeSegment()
	if !ok {
		return fmt.Errorf("return: %w", ir.ErrNoCodeSegment)
	}
	if segment == ir.SegmentDeploy {
		return deployReturn(c)
	}
	c.BuildExit(c.Runtime().Return, offset, length)
	return nil
}

// deployReturn builds the constructor return block on the auxiliary heap:
// a field-size marker word, the immutable count and room for the index and
// value pairs written by the immutable stores.
func deployReturn(c *Context) error {
	immutablesSize := uint64(c.ImmutablesSize())
	offset := c.FieldConst(HeapAuxOffsetConstructorReturnData)

	markerPointer := c.PointerToOffset(ir.RegionHeapAux, c.FieldType(), offset, "deploy_return_marker_pointer")
	c.BuildStore(markerPointer, c.FieldConst(ir.FieldBytes))

	countPointer := c.PointerToOffset(
		ir.RegionHeapAux,
		c.FieldType(),
		c.FieldConst(HeapAuxOffsetConstructorReturnData+ir.FieldBytes),
		"deploy_return_count_pointer",
	)
	c.BuildStore(countPointer, c.FieldConst(immutablesSize/ir.FieldBytes))

	length := c.FieldConst(2*immutablesSize + 2*ir.FieldBytes)
	c.BuildExit(c.Runtime().Return, offset, length)
	return nil
}

// Revert terminates execution with a failure, returning the heap slice as
// the error data.
func Revert(c *Context, offset, length llvm.Value) error {
	c.BuildExit(c.Runtime().Revert, offset, length)
	return nil
}

// Stop terminates execution successfully with no data.
func Stop(c *Context) error {
	return Return(c, c.FieldConst(0), c.FieldConst(0))
}

// Invalid stores a marker word at the top of the address range, then
// consumes all gas and aborts.
func Invalid(c *Context) error {
	if err := MStore(c, llvm.ConstAllOnes(c.FieldType()), c.FieldConst(0)); err != nil {
		return err
	}
	c.BuildCall(c.Intrinsics().Trap, nil, "")
	c.BuildUnreachable()
	return nil
}
