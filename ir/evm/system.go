package evm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Log emits an event with up to four topics and a heap payload slice.
func Log(c *Context, inputOffset, inputLength llvm.Value, topics []llvm.Value) error {
	if len(topics) >= len(c.Intrinsics().Logs) {
		return fmt.Errorf("event log: %d topics exceed the machine limit of %d", len(topics), len(c.Intrinsics().Logs)-1)
	}
	arguments := make([]llvm.Value, 0, 2+len(topics))
	arguments = append(arguments, inputOffset, inputLength)
	arguments = append(arguments, topics...)
	c.BuildCall(c.Intrinsics().Logs[len(topics)], arguments, "")
	return nil
}

// Call performs an external call carrying value.
func Call(c *Context, gas, address, value, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	arguments := []llvm.Value{gas, address, value, inputOffset, inputLength, outputOffset, outputLength}
	return c.BuildCall(c.Intrinsics().Call, arguments, "call_result"), nil
}

// StaticCall performs an external call forbidding state changes.
func StaticCall(c *Context, gas, address, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	arguments := []llvm.Value{gas, address, inputOffset, inputLength, outputOffset, outputLength}
	return c.BuildCall(c.Intrinsics().StaticCall, arguments, "static_call_result"), nil
}

// DelegateCall performs an external call executing foreign code in the
// caller's state.
func DelegateCall(c *Context, gas, address, inputOffset, inputLength, outputOffset, outputLength llvm.Value) (llvm.Value, error) {
	arguments := []llvm.Value{gas, address, inputOffset, inputLength, outputOffset, outputLength}
	return c.BuildCall(c.Intrinsics().DelegateCall, arguments, "delegate_call_result"), nil
}

// Create deploys a contract from the heap init code slice.
func Create(c *Context, value, inputOffset, inputLength llvm.Value) (llvm.Value, error) {
	arguments := []llvm.Value{value, inputOffset, inputLength}
	return c.BuildCall(c.Intrinsics().Create, arguments, "create_result"), nil
}

// Create2 deploys a contract at a salt-derived address.
func Create2(c *Context, value, inputOffset, inputLength, salt llvm.Value) (llvm.Value, error) {
	arguments := []llvm.Value{value, inputOffset, inputLength, salt}
	return c.BuildCall(c.Intrinsics().Create2, arguments, "create2_result"), nil
}

// immutableIdentifier folds an immutable name into the word constant the
// linker resolves placeholders by.
func immutableIdentifier(c *Context, identifier string) llvm.Value {
	return c.FieldConstHash(crypto.Keccak256Hash([]byte(identifier)))
}

// LoadImmutable reads an immutable value through a linker placeholder
// resolved at deploy time.
func LoadImmutable(c *Context, identifier string) (llvm.Value, error) {
	id := immutableIdentifier(c, identifier)
	return c.BuildCall(c.Intrinsics().LoadImmutable, []llvm.Value{id}, "load_immutable_result"), nil
}

// StoreImmutable patches the immutable value into the runtime code copy
// staged on the heap, writing every offset the source compiler recorded
// for the identifier. The reserved library address tag is left for the
// linker and dropped silently.
func StoreImmutable(c *Context, identifier string, baseOffset, value llvm.Value) error {
	if identifier == LibraryDeployAddressTag {
		return nil
	}
	solidity := c.Solidity()
	if solidity == nil {
		return fmt.Errorf("undefined immutable identifier %q", identifier)
	}
	offsets := solidity.ImmutableOffsets(identifier)
	if offsets == nil {
		return fmt.Errorf("undefined immutable identifier %q", identifier)
	}
	for _, offset := range offsets {
		position := c.Builder().CreateAdd(baseOffset, c.FieldConst(offset), "immutable_store_position")
		pointer := c.PointerToOffset(ir.RegionHeap, c.FieldType(), position, "immutable_store_pointer")
		c.BuildStore(pointer, value)
	}
	return nil
}

// LinkerSymbol returns the deploy address of a linked library through a
// linker placeholder.
func LinkerSymbol(c *Context, identifier string) (llvm.Value, error) {
	id := immutableIdentifier(c, identifier)
	return c.BuildCall(c.Intrinsics().LinkerSymbol, []llvm.Value{id}, "linker_symbol_result"), nil
}
