package zkvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// externalCall lowers one member of the call family through its runtime
// routine. The routine performs the far call and repoints the return data
// globals; the output slice is then staged on the heap, truncated to what
// the callee actually returned.
func externalCall(c *Context, routine ir.Declaration, abi, address llvm.Value, extra []llvm.Value, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	arguments := externalCallArguments(c, abi, address, extra)
	result := c.BuildCall(routine, arguments, "external_call")
	status := c.Builder().CreateExtractValue(result, 1, "external_call_status")
	statusWord := c.Builder().CreateZExt(status, c.FieldType(), "external_call_status_word")

	returnDataSize, err := c.GlobalValue(GlobalReturnDataSize)
	if err != nil {
		return llvm.Value{}, err
	}
	isShorter := c.Builder().CreateICmp(llvm.IntULT, returnDataSize, outputLength, "external_call_output_is_shorter")
	size := c.Builder().CreateSelect(isShorter, returnDataSize, outputLength, "external_call_output_size")

	base, err := c.GlobalValue(GlobalReturnDataPointer)
	if err != nil {
		return llvm.Value{}, err
	}
	destination := c.PointerToOffset(ir.RegionHeap, c.ByteType(), outputOffset, "external_call_output_destination")
	source := ir.NewPointer(c.ByteType(), ir.RegionGeneric, base)
	c.BuildMemcpy(c.Intrinsics().MemoryCopyFromGeneric, destination, source, size)
	return statusWord, nil
}

// Call performs an external call. Value transfers are routed through the
// value simulator system contract, which moves the base token and forwards
// the call; the real callee and the value travel in the extra ABI data
// registers.
func Call(c *Context, gas, address, value, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	if value.IsNull() {
		abi := abiData(c, inputOffset, inputLength, gas, false)
		return externalCall(c, c.Runtime().FarCall, abi, address, nil, outputOffset, outputLength)
	}
	abi := abiData(c, inputOffset, inputLength, gas, true)
	extra := []llvm.Value{value, address}
	return externalCall(c, c.Runtime().FarCall, abi, c.FieldConst(AddressMsgValueSimulator), extra, outputOffset, outputLength)
}

// StaticCall performs an external call forbidding state changes.
func StaticCall(c *Context, gas, address, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	abi := abiData(c, inputOffset, inputLength, gas, false)
	return externalCall(c, c.Runtime().StaticCall, abi, address, nil, outputOffset, outputLength)
}

// DelegateCall performs an external call executing foreign code in the
// caller's state.
func DelegateCall(c *Context, gas, address, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	abi := abiData(c, inputOffset, inputLength, gas, false)
	return externalCall(c, c.Runtime().DelegateCall, abi, address, nil, outputOffset, outputLength)
}
