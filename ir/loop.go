package ir

import "tinygo.org/x/go-llvm"

// Loop tracks the blocks of one structured loop being lowered. Break jumps
// to the join block, continue to the increment block. Loops nest, the
// context keeps them on a stack.
type Loop struct {
	// Body receives the loop body instructions.
	Body llvm.BasicBlock
	// Increment receives the post-iteration step; continue targets it.
	Increment llvm.BasicBlock
	// Join receives control after the loop; break targets it.
	Join llvm.BasicBlock
}

// NewLoop groups the three blocks of a structured loop.
func NewLoop(body, increment, join llvm.BasicBlock) Loop {
	return Loop{Body: body, Increment: increment, Join: join}
}
