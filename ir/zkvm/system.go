package zkvm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// selectorWord returns the full keccak digest of a method signature as a
// word constant. System contracts match on the whole digest rather than on
// the four-byte prefix.
func selectorWord(c *Context, signature string) llvm.Value {
	return c.FieldConstHash(crypto.Keccak256Hash([]byte(signature)))
}

// abiData packs the far call ABI word from the heap slice, the gas stipend
// and the system call marker.
func abiData(c *Context, offset, length, gas llvm.Value, systemCall bool) llvm.Value {
	b := c.Builder()
	word := offset
	word = b.CreateOr(word, b.CreateShl(length, c.FieldConst(ABIShiftDataLength), "abi_data_length_shifted"), "abi_data_with_length")
	word = b.CreateOr(word, b.CreateShl(gas, c.FieldConst(ABIShiftGas), "abi_data_gas_shifted"), "abi_data_with_gas")
	if systemCall {
		marker := b.CreateShl(c.FieldConst(1), c.FieldConst(ABIShiftSystemCall), "abi_data_system_marker")
		word = b.CreateOr(word, marker, "abi_data_with_system_marker")
	}
	return word
}

// externalCallArguments lays out the far call operands: the ABI word, the
// callee address and the extra ABI data registers padded with zeros.
func externalCallArguments(c *Context, abi, address llvm.Value, extra []llvm.Value) []llvm.Value {
	arguments := make([]llvm.Value, 0, 2+ExtraABIDataSize)
	arguments = append(arguments, abi, address)
	arguments = append(arguments, extra...)
	for len(arguments) < 2+ExtraABIDataSize {
		arguments = append(arguments, c.FieldConst(0))
	}
	return arguments
}

// SystemRequest performs a static call to a system contract method. The
// arguments are staged in a stack array the runtime copies into the request
// calldata after the selector.
func SystemRequest(c *Context, address llvm.Value, signature string, args []llvm.Value) (llvm.Value, error) {
	selector := selectorWord(c, signature)
	calldataSize := c.FieldConst(uint64(ir.X32Bytes + ir.FieldBytes*len(args)))

	arrayPointer := c.BuildAlloca(c.ArrayType(c.FieldType(), len(args)), "system_request_arguments_pointer")
	for index, argument := range args {
		pointer := c.BuildGEP(
			arrayPointer,
			[]llvm.Value{c.FieldConst(0), c.FieldConst(uint64(index))},
			c.FieldType(),
			"system_request_argument_pointer",
		)
		c.BuildStore(pointer, argument)
	}

	arguments := []llvm.Value{address, selector, calldataSize, arrayPointer.Value}
	return c.BuildCall(c.Runtime().SystemRequest, arguments, "system_request_result"), nil
}

// ExtCodeSize queries the deployed code size of the address.
func ExtCodeSize(c *Context, address llvm.Value) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressAccountCodeStorage), SignatureCodeSize, []llvm.Value{address})
}

// ExtCodeHash queries the deployed code hash of the address.
func ExtCodeHash(c *Context, address llvm.Value) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressAccountCodeStorage), SignatureCodeHash, []llvm.Value{address})
}

// immutablePositions returns the auxiliary heap offsets of the index and
// value words of the immutable ordinal inside the constructor return block.
func immutablePositions(ordinal uint64) (indexOffset, valueOffset uint64) {
	indexOffset = HeapAuxOffsetConstructorReturnData + 2*ir.FieldBytes + ordinal*2*ir.FieldBytes
	valueOffset = indexOffset + ir.FieldBytes
	return indexOffset, valueOffset
}

// LoadImmutable reads an immutable value. Deploy code reads the value most
// recently staged on the auxiliary heap; runtime code asks the immutable
// simulator for the value recorded at deployment.
func LoadImmutable(c *Context, identifier string) (llvm.Value, error) {
	segment, ok := c.CodeSegment()
	if !ok {
		return llvm.Value{}, fmt.Errorf("immutable load %q: %w", identifier, ir.ErrNoCodeSegment)
	}
	solidity := c.Solidity()
	if solidity == nil {
		return llvm.Value{}, fmt.Errorf("immutable load %q: front end carries no immutable data", identifier)
	}
	ordinal := solidity.AllocateImmutable(identifier) / ir.FieldBytes

	if segment == ir.SegmentDeploy {
		_, valueOffset := immutablePositions(ordinal)
		pointer := c.PointerToOffset(ir.RegionHeapAux, c.FieldType(), c.FieldConst(valueOffset), "immutable_load_pointer")
		return c.BuildLoad(pointer, "immutable_load_result"), nil
	}

	codeSource := c.BuildCall(c.Intrinsics().CodeSource, nil, "immutable_code_source")
	return SystemRequest(
		c,
		c.FieldConst(AddressImmutableSimulator),
		SignatureGetImmutable,
		[]llvm.Value{codeSource, c.FieldConst(ordinal)},
	)
}

// StoreImmutable stages an immutable value in the constructor return block
// on the auxiliary heap, recording the ordinal and value pair the deployer
// passes to the immutable simulator. Only deploy code may write immutables.
func StoreImmutable(c *Context, identifier string, value llvm.Value) error {
	segment, ok := c.CodeSegment()
	if !ok {
		return fmt.Errorf("immutable store %q: %w", identifier, ir.ErrNoCodeSegment)
	}
	if segment == ir.SegmentRuntime {
		return fmt.Errorf("immutable writes are not available in the runtime code: %w", ir.ErrUnsupported)
	}
	solidity := c.Solidity()
	if solidity == nil {
		return fmt.Errorf("immutable store %q: front end carries no immutable data", identifier)
	}
	ordinal := solidity.AllocateImmutable(identifier) / ir.FieldBytes
	indexOffset, valueOffset := immutablePositions(ordinal)

	indexPointer := c.PointerToOffset(ir.RegionHeapAux, c.FieldType(), c.FieldConst(indexOffset), "immutable_store_index_pointer")
	c.BuildStore(indexPointer, c.FieldConst(ordinal))
	valuePointer := c.PointerToOffset(ir.RegionHeapAux, c.FieldType(), c.FieldConst(valueOffset), "immutable_store_value_pointer")
	c.BuildStore(valuePointer, value)
	return nil
}

// Log routes an event to the event writer system contract. The topic count
// and topics travel in the extra ABI data registers, the payload in the
// heap slice. A failed write poisons the whole execution.
func Log(c *Context, inputOffset, inputLength llvm.Value, topics []llvm.Value) error {
	if len(topics) > ExtraABIDataSize-1 {
		return fmt.Errorf("event log: %d topics exceed the extra ABI data capacity", len(topics))
	}
	gas, err := Gas(c)
	if err != nil {
		return err
	}
	abi := abiData(c, inputOffset, inputLength, gas, true)

	extra := make([]llvm.Value, 0, 1+len(topics))
	extra = append(extra, c.FieldConst(uint64(len(topics))))
	extra = append(extra, topics...)

	arguments := externalCallArguments(c, abi, c.FieldConst(AddressEventWriter), extra)
	result := c.BuildCall(c.Runtime().FarCall, arguments, "event_writer_call_external")
	status := c.Builder().CreateExtractValue(result, 1, "event_writer_call_external_status")

	failureBlock, err := c.AppendBasicBlock("event_writer_call_external_failure_block")
	if err != nil {
		return err
	}
	joinBlock, err := c.AppendBasicBlock("event_writer_call_external_join_block")
	if err != nil {
		return err
	}
	c.BuildConditionalBranch(status, joinBlock, failureBlock)

	c.SetBasicBlock(failureBlock)
	if err := Revert(c, c.FieldConst(0), c.FieldConst(0)); err != nil {
		return err
	}

	c.SetBasicBlock(joinBlock)
	return nil
}

// Create requests a contract creation from the deployer system contract.
func Create(c *Context, value, inputOffset, inputLength llvm.Value) (llvm.Value, error) {
	return deployerCall(c, value, inputOffset, inputLength, c.FieldConst(0), DeployerSignatureCreate)
}

// Create2 requests a salted contract creation from the deployer system
// contract.
func Create2(c *Context, value, inputOffset, inputLength, salt llvm.Value) (llvm.Value, error) {
	return deployerCall(c, value, inputOffset, inputLength, salt, DeployerSignatureCreate2)
}

func deployerCall(c *Context, value, inputOffset, inputLength, salt llvm.Value, signature string) (llvm.Value, error) {
	selector := selectorWord(c, signature)
	arguments := []llvm.Value{value, inputOffset, inputLength, selector, salt}
	return c.BuildCall(c.Runtime().DeployerCall, arguments, "create_deployer_call"), nil
}
