package zkvm

import (
	"testing"

	"tinygo.org/x/go-llvm"
)

func TestCalldataLoad(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "calldata")

	loaded, err := CalldataLoad(c, c.FieldConst(4))
	if err != nil {
		t.Fatalf("CalldataLoad: %v", err)
	}
	if got := loaded.InstructionOpcode(); got != llvm.Load {
		t.Errorf("CalldataLoad opcode = %v, want load", got)
	}
}

func TestCalldataSizeReadsGlobal(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "calldata_size")

	size, err := CalldataSize(c)
	if err != nil {
		t.Fatalf("CalldataSize: %v", err)
	}
	if got := size.InstructionOpcode(); got != llvm.Load {
		t.Errorf("CalldataSize opcode = %v, want load", got)
	}
}

func TestCalldataCopyEmitsGenericMemcpy(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "calldata_copy")

	if err := CalldataCopy(c, c.FieldConst(0), c.FieldConst(4), c.FieldConst(32)); err != nil {
		t.Fatalf("CalldataCopy: %v", err)
	}
	if got := calledName(t, function.EntryBlock.LastInstruction()); got != IntrinsicMemoryCopyFromGeneric {
		t.Errorf("CalldataCopy should call %q, got %q", IntrinsicMemoryCopyFromGeneric, got)
	}
}

func TestReturnDataCopyBoundsCheck(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "return_data_copy")

	if err := ReturnDataCopy(c, c.FieldConst(0), c.FieldConst(0), c.FieldConst(32)); err != nil {
		t.Fatalf("ReturnDataCopy: %v", err)
	}

	// Entry, out-of-bounds error and join blocks.
	if got := function.Declaration.Value.BasicBlocksCount(); got != 3 {
		t.Errorf("ReturnDataCopy should split the function into 3 blocks, got %d", got)
	}
	if got := c.BasicBlock().AsValue().Name(); got != "return_data_copy_join_block" {
		t.Errorf("insertion point after ReturnDataCopy = %q, want the join block", got)
	}
	if got := calledName(t, c.BasicBlock().LastInstruction()); got != IntrinsicMemoryCopyFromGeneric {
		t.Errorf("the in-bounds path should call %q, got %q", IntrinsicMemoryCopyFromGeneric, got)
	}
}
