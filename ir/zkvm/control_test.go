package zkvm

import (
	"errors"
	"testing"

	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

func TestReturnWithoutSegment(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "no_segment")

	err := Return(c, c.FieldConst(0), c.FieldConst(0))
	if !errors.Is(err, ir.ErrNoCodeSegment) {
		t.Fatalf("Return before segment selection should report ErrNoCodeSegment, got %v", err)
	}
	if !ir.IsInternal(err) {
		t.Error("a missing code segment is an internal fault")
	}
}

func TestReturnRuntimeSealsBlock(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "runtime_return")
	c.SetCodeSegment(ir.SegmentRuntime)

	if err := Return(c, c.FieldConst(0), c.FieldConst(32)); err != nil {
		t.Fatalf("Return: %v", err)
	}

	entry := function.EntryBlock
	if got := entry.LastInstruction().InstructionOpcode(); got != llvm.Unreachable {
		t.Errorf("Return should seal the block, last opcode = %v", got)
	}
	if got := calledName(t, entry.FirstInstruction()); got != RuntimeReturn {
		t.Errorf("runtime return should call %q, got %q", RuntimeReturn, got)
	}
}

func TestReturnDeployBuildsConstructorBlock(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "deploy_return")
	c.SetCodeSegment(ir.SegmentDeploy)
	solidity := ir.NewSolidityData()
	solidity.AllocateImmutable("owner")
	c.SetSolidityData(solidity)

	if err := Return(c, c.FieldConst(0), c.FieldConst(0)); err != nil {
		t.Fatalf("Return: %v", err)
	}

	entry := function.EntryBlock
	// The constructor writes the marker and the immutable count before
	// exiting.
	if got := countOpcodes(entry, llvm.Store); got != 2 {
		t.Errorf("deploy return stores = %d, want 2", got)
	}
	if got := entry.LastInstruction().InstructionOpcode(); got != llvm.Unreachable {
		t.Errorf("deploy return should seal the block, last opcode = %v", got)
	}
}

func TestRevertSealsBlock(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "reverting")

	if err := Revert(c, c.FieldConst(0), c.FieldConst(0)); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	entry := function.EntryBlock
	if got := calledName(t, entry.FirstInstruction()); got != RuntimeRevert {
		t.Errorf("Revert should call %q, got %q", RuntimeRevert, got)
	}
	if got := entry.LastInstruction().InstructionOpcode(); got != llvm.Unreachable {
		t.Errorf("Revert should seal the block, last opcode = %v", got)
	}
}

func TestStopReturnsEmptySlice(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "stopping")
	c.SetCodeSegment(ir.SegmentRuntime)

	if err := Stop(c); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := calledName(t, function.EntryBlock.FirstInstruction()); got != RuntimeReturn {
		t.Errorf("Stop should call %q, got %q", RuntimeReturn, got)
	}
}

func TestInvalidTraps(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "invalid")

	if err := Invalid(c); err != nil {
		t.Fatalf("Invalid: %v", err)
	}
	entry := function.EntryBlock
	if got := countOpcodes(entry, llvm.Store); got != 1 {
		t.Errorf("Invalid should store the trace marker, stores = %d", got)
	}
	if got := countOpcodes(entry, llvm.Call); got != 1 {
		t.Errorf("Invalid should emit one trap call, calls = %d", got)
	}
	if got := entry.LastInstruction().InstructionOpcode(); got != llvm.Unreachable {
		t.Errorf("Invalid should seal the block, last opcode = %v", got)
	}
}
