package evm

import "tinygo.org/x/go-llvm"

// Return terminates execution successfully, returning the heap slice.
func Return(c *Context, offset, length llvm.Value) error {
	c.BuildExit(c.Intrinsics().Return, offset, length)
	return nil
}

// Revert terminates execution with a failure, returning the heap slice as
// the error data.
func Revert(c *Context, offset, length llvm.Value) error {
	c.BuildExit(c.Intrinsics().Revert, offset, length)
	return nil
}

// Stop terminates execution successfully with no data.
func Stop(c *Context) error {
	return Return(c, c.FieldConst(0), c.FieldConst(0))
}

// Invalid consumes all gas and aborts.
func Invalid(c *Context) error {
	c.BuildCall(c.Intrinsics().Trap, nil, "")
	c.BuildUnreachable()
	return nil
}
