package zkvm

import (
	"errors"
	"strings"
	"testing"

	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

func TestStoreImmutableSegmentGating(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "gating")
	c.SetSolidityData(ir.NewSolidityData())

	err := StoreImmutable(c, "owner", c.FieldConst(1))
	if !errors.Is(err, ir.ErrNoCodeSegment) {
		t.Errorf("StoreImmutable before segment selection should report ErrNoCodeSegment, got %v", err)
	}

	c.SetCodeSegment(ir.SegmentRuntime)
	err = StoreImmutable(c, "owner", c.FieldConst(1))
	if !errors.Is(err, ir.ErrUnsupported) {
		t.Fatalf("StoreImmutable in runtime code should report ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "runtime code") {
		t.Errorf("error %q should name the runtime code restriction", err)
	}
}

func TestImmutablesRequireFrontEndData(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "no_front_end")
	c.SetCodeSegment(ir.SegmentDeploy)

	if err := StoreImmutable(c, "owner", c.FieldConst(1)); err == nil ||
		!strings.Contains(err.Error(), "front end carries no immutable data") {
		t.Errorf("StoreImmutable without front end data should fail, got %v", err)
	}
	if _, err := LoadImmutable(c, "owner"); err == nil ||
		!strings.Contains(err.Error(), "front end carries no immutable data") {
		t.Errorf("LoadImmutable without front end data should fail, got %v", err)
	}
}

func TestStoreThenLoadImmutableInDeployCode(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "constructor")
	c.SetCodeSegment(ir.SegmentDeploy)
	c.SetSolidityData(ir.NewSolidityData())

	if err := StoreImmutable(c, "owner", c.FieldConst(7)); err != nil {
		t.Fatalf("StoreImmutable: %v", err)
	}
	// The ordinal and the value each get a word on the auxiliary heap.
	if got := countOpcodes(function.EntryBlock, llvm.Store); got != 2 {
		t.Errorf("StoreImmutable stores = %d, want 2", got)
	}

	loaded, err := LoadImmutable(c, "owner")
	if err != nil {
		t.Fatalf("LoadImmutable: %v", err)
	}
	if got := loaded.InstructionOpcode(); got != llvm.Load {
		t.Errorf("deploy code should load the staged value, opcode = %v", got)
	}
}

func TestLoadImmutableInRuntimeCode(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "runtime_immutable")
	c.SetCodeSegment(ir.SegmentRuntime)
	c.SetSolidityData(ir.NewSolidityData())

	loaded, err := LoadImmutable(c, "owner")
	if err != nil {
		t.Fatalf("LoadImmutable: %v", err)
	}
	if got := calledName(t, loaded); got != RuntimeSystemRequest {
		t.Errorf("runtime code should ask the immutable simulator, callee = %q", got)
	}
}

func TestImmutablePositions(t *testing.T) {
	base := uint64(HeapAuxOffsetConstructorReturnData)
	tests := []struct {
		ordinal   uint64
		wantIndex uint64
		wantValue uint64
	}{
		{0, base + 64, base + 96},
		{1, base + 128, base + 160},
		{3, base + 256, base + 288},
	}
	for _, test := range tests {
		index, value := immutablePositions(test.ordinal)
		if index != test.wantIndex || value != test.wantValue {
			t.Errorf("immutablePositions(%d) = (%d, %d), want (%d, %d)",
				test.ordinal, index, value, test.wantIndex, test.wantValue)
		}
	}
}

func TestLogTopicCapacity(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "overflowing_log")

	topics := make([]llvm.Value, ExtraABIDataSize)
	for i := range topics {
		topics[i] = c.FieldConst(uint64(i))
	}
	err := Log(c, c.FieldConst(0), c.FieldConst(0), topics)
	if err == nil || !strings.Contains(err.Error(), "exceed the extra ABI data capacity") {
		t.Errorf("%d topics should exceed the register capacity, got %v", len(topics), err)
	}
}

func TestLogRoutesThroughEventWriter(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "logging")

	topics := []llvm.Value{c.FieldConst(1), c.FieldConst(2)}
	if err := Log(c, c.FieldConst(0), c.FieldConst(64), topics); err != nil {
		t.Fatalf("Log: %v", err)
	}

	// Emission continues on the join block of the status check.
	if got := c.BasicBlock().AsValue().Name(); got != "event_writer_call_external_join_block" {
		t.Errorf("insertion point after Log = %q, want the join block", got)
	}
	// Entry, failure and join blocks.
	if got := function.Declaration.Value.BasicBlocksCount(); got != 3 {
		t.Errorf("Log should split the function into 3 blocks, got %d", got)
	}
}

func TestCreateUsesDeployerCall(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "creating")

	created, err := Create(c, c.FieldConst(0), c.FieldConst(128), c.FieldConst(32))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := calledName(t, created); got != RuntimeDeployerCall {
		t.Errorf("Create should call %q, got %q", RuntimeDeployerCall, got)
	}

	salted, err := Create2(c, c.FieldConst(0), c.FieldConst(128), c.FieldConst(32), c.FieldConst(0xBEEF))
	if err != nil {
		t.Fatalf("Create2: %v", err)
	}
	if got := calledName(t, salted); got != RuntimeDeployerCall {
		t.Errorf("Create2 should call %q, got %q", RuntimeDeployerCall, got)
	}
}

func TestSystemRequestStagesArguments(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "requesting")

	result, err := Balance(c, c.FieldConst(5))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got := calledName(t, result); got != RuntimeSystemRequest {
		t.Errorf("Balance should call %q, got %q", RuntimeSystemRequest, got)
	}
	if got := countOpcodes(function.EntryBlock, llvm.Alloca); got != 1 {
		t.Errorf("the request arguments should be staged in one stack array, allocas = %d", got)
	}
	if got := countOpcodes(function.EntryBlock, llvm.Store); got != 1 {
		t.Errorf("one argument should produce one store, stores = %d", got)
	}
}

func firstCall(t *testing.T, block llvm.BasicBlock) llvm.Value {
	t.Helper()
	for instruction := block.FirstInstruction(); !instruction.IsNil(); instruction = llvm.NextInstruction(instruction) {
		if instruction.InstructionOpcode() == llvm.Call {
			return instruction
		}
	}
	t.Fatal("no call instruction in block")
	return llvm.Value{}
}

func TestExternalCallFamily(t *testing.T) {
	c := newTestContext(t)
	word := func(v uint64) llvm.Value { return c.FieldConst(v) }

	tests := []struct {
		name string
		emit func() (llvm.Value, error)
		want string
	}{
		{"call", func() (llvm.Value, error) {
			return Call(c, word(5000), word(0x11), word(0), word(0), word(4), word(0), word(32))
		}, RuntimeFarCall},
		{"staticcall", func() (llvm.Value, error) {
			return StaticCall(c, word(5000), word(0x11), word(0), word(4), word(0), word(32))
		}, RuntimeStaticCall},
		{"delegatecall", func() (llvm.Value, error) {
			return DelegateCall(c, word(5000), word(0x11), word(0), word(4), word(0), word(32))
		}, RuntimeDelegateCall},
	}
	for _, test := range tests {
		function := newTestFunction(t, c, test.name)
		status, err := test.emit()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := status.InstructionOpcode(); got != llvm.ZExt {
			t.Errorf("%s status opcode = %v, want zext to a word", test.name, got)
		}
		routine := firstCall(t, function.EntryBlock)
		if got := routine.CalledValue().Name(); got != test.want {
			t.Errorf("%s routine = %q, want %q", test.name, got, test.want)
		}
		if got := calledName(t, function.EntryBlock.LastInstruction()); got != IntrinsicMemoryCopyFromGeneric {
			t.Errorf("%s output staging calls %q, want %q", test.name, got, IntrinsicMemoryCopyFromGeneric)
		}
	}
}

func TestCallWithValueUsesSimulator(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "value_call")

	_, err := Call(c, c.FieldConst(5000), c.FieldConst(0x11), c.FieldConst(1), c.FieldConst(0), c.FieldConst(4), c.FieldConst(0), c.FieldConst(32))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	routine := firstCall(t, function.EntryBlock)
	if got := routine.CalledValue().Name(); got != RuntimeFarCall {
		t.Errorf("value call routine = %q, want %q", got, RuntimeFarCall)
	}
	if routine.Operand(1) != c.FieldConst(AddressMsgValueSimulator) {
		t.Errorf("value call does not target the value simulator")
	}
}
