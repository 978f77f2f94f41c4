package zkvm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Add emits a wrapping word addition.
func Add(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateAdd(x, y, "addition_result"), nil
}

// Sub emits a wrapping word subtraction.
func Sub(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateSub(x, y, "subtraction_result"), nil
}

// Mul emits a wrapping word multiplication.
func Mul(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateMul(x, y, "multiplication_result"), nil
}

// Div emits an unsigned division through the runtime, which defines
// division by zero as zero.
func Div(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Div, []llvm.Value{x, y}, "division_result"), nil
}

// Mod emits an unsigned remainder through the runtime, zero for a zero
// divisor.
func Mod(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Mod, []llvm.Value{x, y}, "remainder_result"), nil
}

// SDiv emits a signed division through the runtime.
func SDiv(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().SDiv, []llvm.Value{x, y}, "signed_division_result"), nil
}

// SMod emits a signed remainder through the runtime.
func SMod(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().SMod, []llvm.Value{x, y}, "signed_remainder_result"), nil
}

// And emits a bitwise conjunction.
func And(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateAnd(x, y, "and_result"), nil
}

// Or emits a bitwise disjunction.
func Or(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateOr(x, y, "or_result"), nil
}

// Xor emits a bitwise exclusive disjunction.
func Xor(c *Context, x, y llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateXor(x, y, "xor_result"), nil
}

// Not emits a bitwise negation.
func Not(c *Context, x llvm.Value) (llvm.Value, error) {
	return c.Builder().CreateNot(x, "not_result"), nil
}

// Shl emits a left shift through the runtime, which zeroes results for
// shift amounts of a word or more.
func Shl(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Shl, []llvm.Value{shift, value}, "shl_result"), nil
}

// Shr emits a logical right shift through the runtime.
func Shr(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Shr, []llvm.Value{shift, value}, "shr_result"), nil
}

// Sar emits an arithmetic right shift through the runtime.
func Sar(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Sar, []llvm.Value{shift, value}, "sar_result"), nil
}

// Byte extracts the indexed byte of the word through the runtime, counting
// from the most significant end.
func Byte(c *Context, index, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Byte, []llvm.Value{index, value}, "byte_result"), nil
}

// Compare emits an integer comparison widened back to a word, one for true
// and zero for false.
func Compare(c *Context, predicate llvm.IntPredicate, x, y llvm.Value) (llvm.Value, error) {
	result := c.Builder().CreateICmp(predicate, x, y, "comparison_result")
	return c.Builder().CreateZExt(result, c.FieldType(), "comparison_result_extended"), nil
}

// IsZero compares the value against zero.
func IsZero(c *Context, x llvm.Value) (llvm.Value, error) {
	return Compare(c, llvm.IntEQ, x, c.FieldConst(0))
}

// AddMod emits a modular addition through the runtime, defined as zero for
// a zero modulus.
func AddMod(c *Context, x, y, modulo llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().AddMod, []llvm.Value{x, y, modulo}, "add_mod_result"), nil
}

// MulMod emits a modular multiplication through the runtime.
func MulMod(c *Context, x, y, modulo llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().MulMod, []llvm.Value{x, y, modulo}, "mul_mod_result"), nil
}

// Exp emits a wrapping exponentiation through the runtime.
func Exp(c *Context, base, exponent llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().Exp, []llvm.Value{base, exponent}, "exponent_result"), nil
}

// SignExtend extends the sign of the value from the indexed byte through
// the runtime.
func SignExtend(c *Context, bytes, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Runtime().SignExtend, []llvm.Value{bytes, value}, "sign_extend_result"), nil
}

// MLoad loads a word from the heap.
func MLoad(c *Context, offset llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionHeap, c.FieldType(), offset, "memory_load_pointer")
	return c.BuildLoad(pointer, "memory_load_result"), nil
}

// MStore stores a word on the heap.
func MStore(c *Context, offset, value llvm.Value) error {
	pointer := c.PointerToOffset(ir.RegionHeap, c.FieldType(), offset, "memory_store_pointer")
	c.BuildStore(pointer, value)
	return nil
}

// MStore8 stores the least significant byte of the value on the heap
// through the runtime.
func MStore8(c *Context, offset, value llvm.Value) error {
	pointer := c.PointerToOffset(ir.RegionHeap, c.ByteType(), offset, "mstore8_pointer")
	c.BuildCall(c.Runtime().MStore8, []llvm.Value{pointer.Value, value}, "")
	return nil
}

// SLoad reads a persistent storage slot.
func SLoad(c *Context, position llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().StorageLoad, []llvm.Value{position}, "storage_load_result"), nil
}

// SStore writes a persistent storage slot.
func SStore(c *Context, position, value llvm.Value) error {
	c.BuildCall(c.Intrinsics().StorageStore, []llvm.Value{position, value}, "")
	return nil
}

// TLoad reads a transaction-scoped storage slot.
func TLoad(c *Context, position llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().TransientLoad, []llvm.Value{position}, "transient_load_result"), nil
}

// TStore writes a transaction-scoped storage slot.
func TStore(c *Context, position, value llvm.Value) error {
	c.BuildCall(c.Intrinsics().TransientStore, []llvm.Value{position, value}, "")
	return nil
}

// Keccak256 hashes the heap slice through the runtime.
func Keccak256(c *Context, offset, length llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionHeap, c.ByteType(), offset, "sha3_pointer")
	// The throwing variant is only selected under an exception handler.
	return c.BuildCall(c.Runtime().Sha3, []llvm.Value{pointer.Value, length, c.BoolConst(false)}, "sha3_result"), nil
}
