package evm

import (
	"github.com/ethereum/go-ethereum/crypto"
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// CalldataLoad loads a word from the call input through a calldata space
// load.
func CalldataLoad(c *Context, offset llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionCalldata, c.FieldType(), offset, "calldata_load_pointer")
	return c.BuildLoad(pointer, "calldata_load_result"), nil
}

// CalldataSize returns the byte size of the call input.
func CalldataSize(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().CalldataSize, nil, "calldata_size_result"), nil
}

// CalldataCopy copies a call input slice onto the heap.
func CalldataCopy(c *Context, destinationOffset, sourceOffset, size llvm.Value) error {
	c.BuildCall(c.Intrinsics().CalldataCopy, []llvm.Value{destinationOffset, sourceOffset, size}, "")
	return nil
}

// ReturnDataSize returns the byte size of the last external call output.
func ReturnDataSize(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().ReturnDataSize, nil, "return_data_size_result"), nil
}

// ReturnDataCopy copies a slice of the last external call output onto the
// heap. The machine itself faults on out-of-bounds source slices.
func ReturnDataCopy(c *Context, destinationOffset, sourceOffset, size llvm.Value) error {
	c.BuildCall(c.Intrinsics().ReturnDataCopy, []llvm.Value{destinationOffset, sourceOffset, size}, "")
	return nil
}

// CodeSize returns the byte size of the executing code.
func CodeSize(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().CodeSize, nil, "code_size_result"), nil
}

// CodeCopy copies a slice of the executing code onto the heap.
func CodeCopy(c *Context, destinationOffset, sourceOffset, size llvm.Value) error {
	c.BuildCall(c.Intrinsics().CodeCopy, []llvm.Value{destinationOffset, sourceOffset, size}, "")
	return nil
}

// ExtCodeSize queries the code size of the address.
func ExtCodeSize(c *Context, address llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().ExtCodeSize, []llvm.Value{address}, "ext_code_size_result"), nil
}

// ExtCodeCopy copies a slice of the code of the address onto the heap.
func ExtCodeCopy(c *Context, address, destinationOffset, sourceOffset, size llvm.Value) error {
	c.BuildCall(c.Intrinsics().ExtCodeCopy, []llvm.Value{address, destinationOffset, sourceOffset, size}, "")
	return nil
}

// ExtCodeHash queries the code hash of the address.
func ExtCodeHash(c *Context, address llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().ExtCodeHash, []llvm.Value{address}, "ext_code_hash_result"), nil
}

// dataIdentifier folds a resolved contract path into the word constant the
// linker resolves object references by.
func dataIdentifier(c *Context, path string) llvm.Value {
	return c.FieldConstHash(crypto.Keccak256Hash([]byte(path)))
}

// DataSize returns the bytecode size of the named object. The value is a
// linker placeholder resolved once the referenced contract is assembled.
func DataSize(c *Context, identifier string) (llvm.Value, error) {
	path, err := c.ResolvePath(identifier)
	if err != nil {
		return llvm.Value{}, err
	}
	return c.BuildCall(c.Intrinsics().DataSize, []llvm.Value{dataIdentifier(c, path)}, "data_size_result"), nil
}

// DataOffset returns the bytecode offset of the named object, a linker
// placeholder like DataSize.
func DataOffset(c *Context, identifier string) (llvm.Value, error) {
	path, err := c.ResolvePath(identifier)
	if err != nil {
		return llvm.Value{}, err
	}
	return c.BuildCall(c.Intrinsics().DataOffset, []llvm.Value{dataIdentifier(c, path)}, "data_offset_result"), nil
}
