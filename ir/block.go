package ir

import "tinygo.org/x/go-llvm"

// Block is one lowered variant of a legacy assembly jump destination. The
// same destination tag may be entered with differently shaped stacks from
// different call sites; each shape gets its own variant with its own LLVM
// basic block, selected by the stack fingerprint at the jump site.
type Block struct {
	// Key names the jump destination the variant belongs to.
	Key BlockKey
	// StackHash is the fingerprint of the entry stack shape. Unique among
	// the variants of one key.
	StackHash StackHash
	// Inner is the LLVM basic block, owned by the enclosing function.
	Inner llvm.BasicBlock
	// EntryStack is a snapshot of the emulated stack the variant was
	// created with. The driver replays it when lowering the block body.
	EntryStack []Argument
}
