package zkvm

import (
	"tinygo.org/x/go-llvm"
)

// Environment instructions with no machine counterpart are requests to the
// system context contract; the handful the machine exposes directly go
// through intrinsics.

// Address returns the address of the executing contract.
func Address(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().This, nil, "address_result"), nil
}

// Caller returns the address of the calling contract.
func Caller(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Caller, nil, "caller_result"), nil
}

// CallValue returns the value register of the active call.
func CallValue(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().GetU128, nil, "call_value_result"), nil
}

// Gas returns the remaining gas.
func Gas(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().GasLeft, nil, "gas_left_result"), nil
}

// MSize derives the allocated heap size from the metadata word.
func MSize(c *Context) (llvm.Value, error) {
	meta := c.BuildCall(c.Intrinsics().Meta, nil, "msize_meta")
	shifted := c.Builder().CreateLShr(meta, c.FieldConst(64), "msize_shifted")
	return c.Builder().CreateAnd(shifted, c.FieldConst(0xFFFFFFFF), "msize_result"), nil
}

// Balance queries the base token balance of the address.
func Balance(c *Context, address llvm.Value) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressEtherToken), SignatureBalance, []llvm.Value{address})
}

// GasLimit returns the block gas limit.
func GasLimit(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureBlockGasLimit, nil)
}

// GasPrice returns the effective gas price of the transaction.
func GasPrice(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureGasPrice, nil)
}

// Origin returns the transaction originator address.
func Origin(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureOrigin, nil)
}

// ChainID returns the chain identifier.
func ChainID(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureChainID, nil)
}

// BlockNumber returns the current block number.
func BlockNumber(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureBlockNumber, nil)
}

// BlockTimestamp returns the current block timestamp.
func BlockTimestamp(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureBlockTimestamp, nil)
}

// BlockHash returns the hash of the block at the index.
func BlockHash(c *Context, index llvm.Value) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureBlockHash, []llvm.Value{index})
}

// Difficulty returns the block difficulty constant.
func Difficulty(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureDifficulty, nil)
}

// Coinbase returns the operator address.
func Coinbase(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureCoinbase, nil)
}

// BaseFee returns the block base fee.
func BaseFee(c *Context) (llvm.Value, error) {
	return SystemRequest(c, c.FieldConst(AddressSystemContext), SignatureBaseFee, nil)
}
