package ir

// Sizes of the fundamental data units of the execution model.
const (
	// ByteBits is the number of bits in a byte.
	ByteBits = 8

	// FieldBytes is the byte width of the native machine word. Every stack
	// slot, storage slot and ABI word is one field.
	FieldBytes = 32

	// FieldBits is the bit width of the native machine word.
	FieldBits = FieldBytes * ByteBits

	// X32Bytes and X64Bytes are the widths of the auxiliary integer types
	// used in ABI packing and pointer arithmetic.
	X32Bytes = 4
	X64Bytes = 8
)

// DefaultStackSize is the initial slot capacity of the emulated operand
// stack of a function lowered from the legacy assembly.
const DefaultStackSize = 64

// DefaultAllocaAlignment is the alignment of stack allocations. The register
// allocator relies on whole-field slots.
const DefaultAllocaAlignment = FieldBytes
