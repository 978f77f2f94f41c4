package zkvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// CalldataLoad loads a word from the call input through the calldata fat
// pointer.
func CalldataLoad(c *Context, offset llvm.Value) (llvm.Value, error) {
	base, err := c.GlobalValue(GlobalCalldataPointer)
	if err != nil {
		return llvm.Value{}, err
	}
	pointer := c.BuildGEP(
		ir.NewPointer(c.ByteType(), ir.RegionGeneric, base),
		[]llvm.Value{offset},
		c.FieldType(),
		"calldata_load_pointer",
	)
	return c.BuildLoad(pointer, "calldata_load_result"), nil
}

// CalldataSize returns the byte size of the call input.
func CalldataSize(c *Context) (llvm.Value, error) {
	return c.GlobalValue(GlobalCalldataSize)
}

// CalldataCopy copies a call input slice onto the heap.
func CalldataCopy(c *Context, destinationOffset, sourceOffset, size llvm.Value) error {
	base, err := c.GlobalValue(GlobalCalldataPointer)
	if err != nil {
		return err
	}
	destination := c.PointerToOffset(ir.RegionHeap, c.ByteType(), destinationOffset, "calldata_copy_destination")
	source := c.BuildGEP(
		ir.NewPointer(c.ByteType(), ir.RegionGeneric, base),
		[]llvm.Value{sourceOffset},
		c.ByteType(),
		"calldata_copy_source",
	)
	c.BuildMemcpy(c.Intrinsics().MemoryCopyFromGeneric, destination, source, size)
	return nil
}

// ReturnDataSize returns the byte size of the last external call output.
func ReturnDataSize(c *Context) (llvm.Value, error) {
	return c.GlobalValue(GlobalReturnDataSize)
}

// ReturnDataCopy copies a slice of the last external call output onto the
// heap. A source slice reaching past the output reverts, unlike calldata
// copying which reads zero pages.
func ReturnDataCopy(c *Context, destinationOffset, sourceOffset, size llvm.Value) error {
	returnDataSize, err := c.GlobalValue(GlobalReturnDataSize)
	if err != nil {
		return err
	}
	sourceEnd := c.Builder().CreateAdd(sourceOffset, size, "return_data_copy_source_end")
	isOutOfBounds := c.Builder().CreateICmp(llvm.IntUGT, sourceEnd, returnDataSize, "return_data_copy_is_out_of_bounds")

	errorBlock, err := c.AppendBasicBlock("return_data_copy_error_block")
	if err != nil {
		return err
	}
	joinBlock, err := c.AppendBasicBlock("return_data_copy_join_block")
	if err != nil {
		return err
	}
	c.BuildConditionalBranch(isOutOfBounds, errorBlock, joinBlock)

	c.SetBasicBlock(errorBlock)
	if err := Revert(c, c.FieldConst(0), c.FieldConst(0)); err != nil {
		return err
	}

	c.SetBasicBlock(joinBlock)
	base, err := c.GlobalValue(GlobalReturnDataPointer)
	if err != nil {
		return err
	}
	destination := c.PointerToOffset(ir.RegionHeap, c.ByteType(), destinationOffset, "return_data_copy_destination")
	source := c.BuildGEP(
		ir.NewPointer(c.ByteType(), ir.RegionGeneric, base),
		[]llvm.Value{sourceOffset},
		c.ByteType(),
		"return_data_copy_source",
	)
	c.BuildMemcpy(c.Intrinsics().MemoryCopyFromGeneric, destination, source, size)
	return nil
}
