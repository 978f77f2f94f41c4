package evm

import (
	"strings"
	"testing"

	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

func TestExternalCalls(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "calls")
	word := func(v uint64) llvm.Value { return c.FieldConst(v) }

	tests := []struct {
		name string
		emit func() (llvm.Value, error)
		want string
	}{
		{"call", func() (llvm.Value, error) {
			return Call(c, word(5000), word(0x11), word(1), word(0), word(4), word(0), word(32))
		}, IntrinsicCall},
		{"staticcall", func() (llvm.Value, error) {
			return StaticCall(c, word(5000), word(0x11), word(0), word(4), word(0), word(32))
		}, IntrinsicStaticCall},
		{"delegatecall", func() (llvm.Value, error) {
			return DelegateCall(c, word(5000), word(0x11), word(0), word(4), word(0), word(32))
		}, IntrinsicDelegateCall},
		{"create", func() (llvm.Value, error) {
			return Create(c, word(0), word(0), word(64))
		}, IntrinsicCreate},
		{"create2", func() (llvm.Value, error) {
			return Create2(c, word(0), word(0), word(64), word(0x5a17))
		}, IntrinsicCreate2},
	}
	for _, test := range tests {
		result, err := test.emit()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := calledName(t, result); got != test.want {
			t.Errorf("%s calls %q, want %q", test.name, got, test.want)
		}
	}
}

func TestStoreImmutableLibraryTag(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "library_patch")

	if err := StoreImmutable(c, LibraryDeployAddressTag, c.FieldConst(128), c.FieldConst(0x11)); err != nil {
		t.Fatalf("StoreImmutable on the library tag: %v", err)
	}
	if got := countOpcodes(function.EntryBlock, llvm.Store); got != 0 {
		t.Errorf("library tag store emitted %d stores, want none", got)
	}
}

func TestStoreImmutableUnknownIdentifier(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "immutable_patch")

	err := StoreImmutable(c, "answer", c.FieldConst(128), c.FieldConst(42))
	if err == nil || !strings.Contains(err.Error(), `undefined immutable identifier "answer"`) {
		t.Errorf("store without front end data: %v", err)
	}

	c.SetSolidityData(ir.NewSolidityData())
	err = StoreImmutable(c, "answer", c.FieldConst(128), c.FieldConst(42))
	if err == nil || !strings.Contains(err.Error(), `undefined immutable identifier "answer"`) {
		t.Errorf("store without recorded offsets: %v", err)
	}
}

func TestStoreImmutableWritesRecordedOffsets(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "immutable_patch")

	solidity := ir.NewSolidityData()
	solidity.AddImmutableOffset("answer", 32)
	solidity.AddImmutableOffset("answer", 96)
	c.SetSolidityData(solidity)

	if err := StoreImmutable(c, "answer", c.FieldConst(128), c.FieldConst(42)); err != nil {
		t.Fatalf("StoreImmutable: %v", err)
	}
	if got := countOpcodes(function.EntryBlock, llvm.Store); got != 2 {
		t.Errorf("recorded offsets emitted %d stores, want 2", got)
	}
}

func TestLinkerPlaceholders(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "placeholders")

	tests := []struct {
		name string
		emit func() (llvm.Value, error)
		want string
	}{
		{"loadimmutable", func() (llvm.Value, error) { return LoadImmutable(c, "answer") }, IntrinsicLoadImmutable},
		{"linkersymbol", func() (llvm.Value, error) { return LinkerSymbol(c, "lib/Math.sol:Math") }, IntrinsicLinkerSymbol},
		{"datasize", func() (llvm.Value, error) { return DataSize(c, "Token_25") }, IntrinsicDataSize},
		{"dataoffset", func() (llvm.Value, error) { return DataOffset(c, "Token_25") }, IntrinsicDataOffset},
	}
	for _, test := range tests {
		result, err := test.emit()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := calledName(t, result); got != test.want {
			t.Errorf("%s calls %q, want %q", test.name, got, test.want)
		}
	}
}

func TestCalldataAccess(t *testing.T) {
	c := newTestContext(t)
	function := newTestFunction(t, c, "calldata")

	value, err := CalldataLoad(c, c.FieldConst(4))
	if err != nil {
		t.Fatalf("CalldataLoad: %v", err)
	}
	if got := value.InstructionOpcode(); got != llvm.Load {
		t.Fatalf("CalldataLoad opcode = %v, want load", got)
	}
	if got := value.Operand(0).Type().PointerAddressSpace(); got != 2 {
		t.Errorf("CalldataLoad address space = %d, want 2", got)
	}

	size, err := CalldataSize(c)
	if err != nil {
		t.Fatalf("CalldataSize: %v", err)
	}
	if got := calledName(t, size); got != IntrinsicCalldataSize {
		t.Errorf("CalldataSize calls %q, want %q", got, IntrinsicCalldataSize)
	}

	if err := CalldataCopy(c, c.FieldConst(0), c.FieldConst(4), c.FieldConst(32)); err != nil {
		t.Fatalf("CalldataCopy: %v", err)
	}
	if got := calledName(t, function.EntryBlock.LastInstruction()); got != IntrinsicCalldataCopy {
		t.Errorf("CalldataCopy calls %q, want %q", got, IntrinsicCalldataCopy)
	}
}

func TestCodeAndReturnDataAccess(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "code_data")
	address := c.FieldConst(0x11)

	tests := []struct {
		name string
		emit func() (llvm.Value, error)
		want string
	}{
		{"returndatasize", func() (llvm.Value, error) { return ReturnDataSize(c) }, IntrinsicReturnDataSize},
		{"codesize", func() (llvm.Value, error) { return CodeSize(c) }, IntrinsicCodeSize},
		{"extcodesize", func() (llvm.Value, error) { return ExtCodeSize(c, address) }, IntrinsicExtCodeSize},
		{"extcodehash", func() (llvm.Value, error) { return ExtCodeHash(c, address) }, IntrinsicExtCodeHash},
	}
	for _, test := range tests {
		result, err := test.emit()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := calledName(t, result); got != test.want {
			t.Errorf("%s calls %q, want %q", test.name, got, test.want)
		}
	}

	copies := []struct {
		name string
		emit func() error
		want string
	}{
		{"returndatacopy", func() error { return ReturnDataCopy(c, c.FieldConst(0), c.FieldConst(0), c.FieldConst(32)) }, IntrinsicReturnDataCopy},
		{"codecopy", func() error { return CodeCopy(c, c.FieldConst(0), c.FieldConst(0), c.FieldConst(32)) }, IntrinsicCodeCopy},
		{"extcodecopy", func() error { return ExtCodeCopy(c, address, c.FieldConst(0), c.FieldConst(0), c.FieldConst(32)) }, IntrinsicExtCodeCopy},
	}
	for _, test := range copies {
		if err := test.emit(); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		block := c.BasicBlock()
		if got := calledName(t, block.LastInstruction()); got != test.want {
			t.Errorf("%s calls %q, want %q", test.name, got, test.want)
		}
	}
}

func TestEnvironmentGetters(t *testing.T) {
	c := newTestContext(t)
	newTestFunction(t, c, "environment")

	tests := []struct {
		name string
		emit func() (llvm.Value, error)
		want string
	}{
		{"address", func() (llvm.Value, error) { return Address(c) }, IntrinsicAddress},
		{"caller", func() (llvm.Value, error) { return Caller(c) }, IntrinsicCaller},
		{"callvalue", func() (llvm.Value, error) { return CallValue(c) }, IntrinsicCallValue},
		{"origin", func() (llvm.Value, error) { return Origin(c) }, IntrinsicOrigin},
		{"gasprice", func() (llvm.Value, error) { return GasPrice(c) }, IntrinsicGasPrice},
		{"coinbase", func() (llvm.Value, error) { return Coinbase(c) }, IntrinsicCoinbase},
		{"timestamp", func() (llvm.Value, error) { return BlockTimestamp(c) }, IntrinsicTimestamp},
		{"number", func() (llvm.Value, error) { return BlockNumber(c) }, IntrinsicNumber},
		{"difficulty", func() (llvm.Value, error) { return Difficulty(c) }, IntrinsicDifficulty},
		{"gaslimit", func() (llvm.Value, error) { return GasLimit(c) }, IntrinsicGasLimit},
		{"chainid", func() (llvm.Value, error) { return ChainID(c) }, IntrinsicChainID},
		{"basefee", func() (llvm.Value, error) { return BaseFee(c) }, IntrinsicBaseFee},
		{"selfbalance", func() (llvm.Value, error) { return SelfBalance(c) }, IntrinsicSelfBalance},
		{"balance", func() (llvm.Value, error) { return Balance(c, c.FieldConst(0x11)) }, IntrinsicBalance},
		{"blockhash", func() (llvm.Value, error) { return BlockHash(c, c.FieldConst(1)) }, IntrinsicBlockHash},
		{"gas", func() (llvm.Value, error) { return Gas(c) }, IntrinsicGas},
	}
	for _, test := range tests {
		result, err := test.emit()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := calledName(t, result); got != test.want {
			t.Errorf("%s calls %q, want %q", test.name, got, test.want)
		}
	}
}
