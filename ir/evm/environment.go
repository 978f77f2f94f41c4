package evm

import "tinygo.org/x/go-llvm"

// The environment getters all map one-to-one onto target intrinsics.

// Address returns the address of the executing contract.
func Address(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Address, nil, "address_result"), nil
}

// Caller returns the address of the calling contract.
func Caller(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Caller, nil, "caller_result"), nil
}

// CallValue returns the value sent with the call.
func CallValue(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().CallValue, nil, "call_value_result"), nil
}

// Origin returns the transaction originator address.
func Origin(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Origin, nil, "origin_result"), nil
}

// GasPrice returns the effective gas price of the transaction.
func GasPrice(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().GasPrice, nil, "gas_price_result"), nil
}

// Coinbase returns the block producer address.
func Coinbase(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Coinbase, nil, "coinbase_result"), nil
}

// BlockTimestamp returns the current block timestamp.
func BlockTimestamp(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Timestamp, nil, "block_timestamp_result"), nil
}

// BlockNumber returns the current block number.
func BlockNumber(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Number, nil, "block_number_result"), nil
}

// Difficulty returns the block difficulty.
func Difficulty(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Difficulty, nil, "difficulty_result"), nil
}

// GasLimit returns the block gas limit.
func GasLimit(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().GasLimit, nil, "gas_limit_result"), nil
}

// ChainID returns the chain identifier.
func ChainID(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().ChainID, nil, "chain_id_result"), nil
}

// BaseFee returns the block base fee.
func BaseFee(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().BaseFee, nil, "base_fee_result"), nil
}

// SelfBalance returns the balance of the executing contract.
func SelfBalance(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().SelfBalance, nil, "self_balance_result"), nil
}

// Balance returns the balance of the address.
func Balance(c *Context, address llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Balance, []llvm.Value{address}, "balance_result"), nil
}

// BlockHash returns the hash of the block at the index.
func BlockHash(c *Context, index llvm.Value) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().BlockHash, []llvm.Value{index}, "block_hash_result"), nil
}

// Gas returns the remaining gas.
func Gas(c *Context) (llvm.Value, error) {
	return c.BuildCall(c.Intrinsics().Gas, nil, "gas_result"), nil
}
