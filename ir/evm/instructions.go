package evm

import (
	"strings"

	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// minInt returns the smallest signed word, 1 << 255.
func minInt(c *Context) llvm.Value {
	return c.FieldConstFromHex("8" + strings.Repeat("0", 63))
}

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

// Div emits an unsigned division defined as zero for a zero divisor. The
// plain udiv is poison for a zero divisor, so the divisor is patched to one
// and the result selected away.
func Div(c *Context, x, y llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	isDivisorZero := b.CreateICmp(llvm.IntEQ, y, zero, "division_divisor_is_zero")
	safeDivisor := b.CreateSelect(isDivisorZero, c.FieldConst(1), y, "division_safe_divisor")
	quotient := b.CreateUDiv(x, safeDivisor, "division_quotient")
	return b.CreateSelect(isDivisorZero, zero, quotient, "division_result"), nil
}

// Mod emits an unsigned remainder defined as zero for a zero divisor.
func Mod(c *Context, x, y llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	isDivisorZero := b.CreateICmp(llvm.IntEQ, y, zero, "remainder_divisor_is_zero")
	safeDivisor := b.CreateSelect(isDivisorZero, c.FieldConst(1), y, "remainder_safe_divisor")
	remainder := b.CreateURem(x, safeDivisor, "remainder_value")
	return b.CreateSelect(isDivisorZero, zero, remainder, "remainder_result"), nil
}

// SDiv emits a signed division defined as zero for a zero divisor and as
// the dividend for the minimum value divided by minus one, both of which
// are poison in plain sdiv.
func SDiv(c *Context, x, y llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	one := c.FieldConst(1)
	isDivisorZero := b.CreateICmp(llvm.IntEQ, y, zero, "signed_division_divisor_is_zero")
	isOverflow := b.CreateAnd(
		b.CreateICmp(llvm.IntEQ, x, minInt(c), "signed_division_dividend_is_min"),
		b.CreateICmp(llvm.IntEQ, y, llvm.ConstAllOnes(c.FieldType()), "signed_division_divisor_is_minus_one"),
		"signed_division_is_overflow",
	)
	safeDivisor := b.CreateSelect(isDivisorZero, one, y, "signed_division_nonzero_divisor")
	safeDivisor = b.CreateSelect(isOverflow, one, safeDivisor, "signed_division_safe_divisor")
	quotient := b.CreateSDiv(x, safeDivisor, "signed_division_quotient")
	result := b.CreateSelect(isOverflow, minInt(c), quotient, "signed_division_guarded_quotient")
	return b.CreateSelect(isDivisorZero, zero, result, "signed_division_result"), nil
}

// SMod emits a signed remainder defined as zero for a zero divisor. The
// minimum value modulo minus one is zero, which the patched divisor of one
// already yields.
func SMod(c *Context, x, y llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	one := c.FieldConst(1)
	isDivisorZero := b.CreateICmp(llvm.IntEQ, y, zero, "signed_remainder_divisor_is_zero")
	isOverflow := b.CreateAnd(
		b.CreateICmp(llvm.IntEQ, x, minInt(c), "signed_remainder_dividend_is_min"),
		b.CreateICmp(llvm.IntEQ, y, llvm.ConstAllOnes(c.FieldType()), "signed_remainder_divisor_is_minus_one"),
		"signed_remainder_is_overflow",
	)
	safeDivisor := b.CreateSelect(isDivisorZero, one, y, "signed_remainder_nonzero_divisor")
	safeDivisor = b.CreateSelect(isOverflow, one, safeDivisor, "signed_remainder_safe_divisor")
	remainder := b.CreateSRem(x, safeDivisor, "signed_remainder_value")
	return b.CreateSelect(isDivisorZero, zero, remainder, "signed_remainder_result"), nil
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

// Shl emits a left shift defined as zero for shift amounts of a word or
// more, which plain shl leaves as poison.
func Shl(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	isOverflow := b.CreateICmp(llvm.IntUGE, shift, c.FieldConst(ir.FieldBits), "shl_shift_is_overflow")
	safeShift := b.CreateSelect(isOverflow, zero, shift, "shl_safe_shift")
	shifted := b.CreateShl(value, safeShift, "shl_shifted")
	return b.CreateSelect(isOverflow, zero, shifted, "shl_result"), nil
}

// Shr emits a logical right shift defined as zero for shift amounts of a
// word or more.
func Shr(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	zero := c.FieldConst(0)
	isOverflow := b.CreateICmp(llvm.IntUGE, shift, c.FieldConst(ir.FieldBits), "shr_shift_is_overflow")
	safeShift := b.CreateSelect(isOverflow, zero, shift, "shr_safe_shift")
	shifted := b.CreateLShr(value, safeShift, "shr_shifted")
	return b.CreateSelect(isOverflow, zero, shifted, "shr_result"), nil
}

// Sar emits an arithmetic right shift. Shift amounts of a word or more
// saturate to the full sign fill, one bit short of the width.
func Sar(c *Context, shift, value llvm.Value) (llvm.Value, error) {
	b := c.Builder()
	isOverflow := b.CreateICmp(llvm.IntUGE, shift, c.FieldConst(ir.FieldBits), "sar_shift_is_overflow")
	safeShift := b.CreateSelect(isOverflow, c.FieldConst(ir.FieldBits-1), shift, "sar_safe_shift")
	return b.CreateAShr(value, safeShift, "sar_result"), nil
}

// Byte extracts the indexed byte of the word through the target intrinsic.
func Byte(c *Context, index, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Byte, []llvm.Value{index, value}, "byte_result"), nil
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

// AddMod emits a modular addition through the target intrinsic.
func AddMod(c *Context, x, y, modulo llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().AddMod, []llvm.Value{x, y, modulo}, "add_mod_result"), nil
}

// MulMod emits a modular multiplication through the target intrinsic.
func MulMod(c *Context, x, y, modulo llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().MulMod, []llvm.Value{x, y, modulo}, "mul_mod_result"), nil
}

// Exp emits a wrapping exponentiation through the target intrinsic.
func Exp(c *Context, base, exponent llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Exp, []llvm.Value{base, exponent}, "exponent_result"), nil
}

// SignExtend extends the sign of the value from the indexed byte through
// the target intrinsic.
func SignExtend(c *Context, bytes, value llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().SignExtend, []llvm.Value{bytes, value}, "sign_extend_result"), nil
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

// MStore8 stores the least significant byte of the value on the heap.
func MStore8(c *Context, offset, value llvm.Value) error {
	pointer := c.PointerToOffset(ir.RegionHeap, c.ByteType(), offset, "mstore8_pointer")
	c.BuildCall(c.Intrinsics().MStore8, []llvm.Value{pointer.Value, value}, "")
	return nil
}

// MSize returns the allocated heap size.
func MSize(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().MSize, nil, "msize_result"), nil
}

// SLoad reads a persistent storage slot through a storage space load.
func SLoad(c *Context, position llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionStorage, c.FieldType(), position, "storage_load_pointer")
	return c.BuildLoad(pointer, "storage_load_result"), nil
}

// SStore writes a persistent storage slot through a storage space store.
func SStore(c *Context, position, value llvm.Value) error {
	pointer := c.PointerToOffset(ir.RegionStorage, c.FieldType(), position, "storage_store_pointer")
	c.BuildStore(pointer, value)
	return nil
}

// TLoad reads a transaction-scoped storage slot.
func TLoad(c *Context, position llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionTransient, c.FieldType(), position, "transient_load_pointer")
	return c.BuildLoad(pointer, "transient_load_result"), nil
}

// TStore writes a transaction-scoped storage slot.
func TStore(c *Context, position, value llvm.Value) error {
	pointer := c.PointerToOffset(ir.RegionTransient, c.FieldType(), position, "transient_store_pointer")
	c.BuildStore(pointer, value)
	return nil
}

// Keccak256 hashes the heap slice through the target intrinsic.
func Keccak256(c *Context, offset, length llvm.Value) (llvm.Value, error) {
	pointer := c.PointerToOffset(ir.RegionHeap, c.ByteType(), offset, "sha3_pointer")
	return c.BuildCall(c.Intrinsics().Sha3, []llvm.Value{pointer.Value, length}, "sha3_result"), nil
}
