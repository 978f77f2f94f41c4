package evm

import (
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
)

// Intrinsic function names. Unlike the virtual machine target, almost every
// instruction without a plain LLVM counterpart maps straight onto a target
// intrinsic the backend expands itself.
const (
	IntrinsicTrap = "llvm.trap"

	IntrinsicSha3       = "llvm.evm.sha3"
	IntrinsicAddMod     = "llvm.evm.addmod"
	IntrinsicMulMod     = "llvm.evm.mulmod"
	IntrinsicExp        = "llvm.evm.exp"
	IntrinsicSignExtend = "llvm.evm.signextend"
	IntrinsicByte       = "llvm.evm.byte"

	IntrinsicMStore8 = "llvm.evm.mstore8"
	IntrinsicMSize   = "llvm.evm.msize"

	IntrinsicCalldataSize   = "llvm.evm.calldatasize"
	IntrinsicCalldataCopy   = "llvm.evm.calldatacopy"
	IntrinsicReturnDataSize = "llvm.evm.returndatasize"
	IntrinsicReturnDataCopy = "llvm.evm.returndatacopy"

	IntrinsicCodeSize    = "llvm.evm.codesize"
	IntrinsicCodeCopy    = "llvm.evm.codecopy"
	IntrinsicExtCodeSize = "llvm.evm.extcodesize"
	IntrinsicExtCodeCopy = "llvm.evm.extcodecopy"
	IntrinsicExtCodeHash = "llvm.evm.extcodehash"
	IntrinsicDataSize    = "llvm.evm.datasize"
	IntrinsicDataOffset  = "llvm.evm.dataoffset"

	IntrinsicLoadImmutable = "llvm.evm.loadimmutable"
	IntrinsicLinkerSymbol  = "llvm.evm.linkersymbol"

	IntrinsicLog0 = "llvm.evm.log0"
	IntrinsicLog1 = "llvm.evm.log1"
	IntrinsicLog2 = "llvm.evm.log2"
	IntrinsicLog3 = "llvm.evm.log3"
	IntrinsicLog4 = "llvm.evm.log4"

	IntrinsicCall         = "llvm.evm.call"
	IntrinsicDelegateCall = "llvm.evm.delegatecall"
	IntrinsicStaticCall   = "llvm.evm.staticcall"
	IntrinsicCreate       = "llvm.evm.create"
	IntrinsicCreate2      = "llvm.evm.create2"

	IntrinsicAddress     = "llvm.evm.address"
	IntrinsicCaller      = "llvm.evm.caller"
	IntrinsicCallValue   = "llvm.evm.callvalue"
	IntrinsicOrigin      = "llvm.evm.origin"
	IntrinsicGasPrice    = "llvm.evm.gasprice"
	IntrinsicCoinbase    = "llvm.evm.coinbase"
	IntrinsicTimestamp   = "llvm.evm.timestamp"
	IntrinsicNumber      = "llvm.evm.number"
	IntrinsicDifficulty  = "llvm.evm.difficulty"
	IntrinsicGasLimit    = "llvm.evm.gaslimit"
	IntrinsicChainID     = "llvm.evm.chainid"
	IntrinsicBaseFee     = "llvm.evm.basefee"
	IntrinsicSelfBalance = "llvm.evm.selfbalance"
	IntrinsicBalance     = "llvm.evm.balance"
	IntrinsicBlockHash   = "llvm.evm.blockhash"
	IntrinsicGas         = "llvm.evm.gas"

	IntrinsicReturn = "llvm.evm.return"
	IntrinsicRevert = "llvm.evm.revert"
)

// Intrinsics holds the declarations of the target intrinsics.
type Intrinsics struct {
	Trap ir.Declaration

	Sha3       ir.Declaration
	AddMod     ir.Declaration
	MulMod     ir.Declaration
	Exp        ir.Declaration
	SignExtend ir.Declaration
	Byte       ir.Declaration

	MStore8 ir.Declaration
	MSize   ir.Declaration

	CalldataSize   ir.Declaration
	CalldataCopy   ir.Declaration
	ReturnDataSize ir.Declaration
	ReturnDataCopy ir.Declaration

	CodeSize    ir.Declaration
	CodeCopy    ir.Declaration
	ExtCodeSize ir.Declaration
	ExtCodeCopy ir.Declaration
	ExtCodeHash ir.Declaration
	DataSize    ir.Declaration
	DataOffset  ir.Declaration

	LoadImmutable ir.Declaration
	LinkerSymbol  ir.Declaration

	// Logs indexes the event intrinsics by topic count.
	Logs [5]ir.Declaration

	Call         ir.Declaration
	DelegateCall ir.Declaration
	StaticCall   ir.Declaration
	Create       ir.Declaration
	Create2      ir.Declaration

	Address     ir.Declaration
	Caller      ir.Declaration
	CallValue   ir.Declaration
	Origin      ir.Declaration
	GasPrice    ir.Declaration
	Coinbase    ir.Declaration
	Timestamp   ir.Declaration
	Number      ir.Declaration
	Difficulty  ir.Declaration
	GasLimit    ir.Declaration
	ChainID     ir.Declaration
	BaseFee     ir.Declaration
	SelfBalance ir.Declaration
	Balance     ir.Declaration
	BlockHash   ir.Declaration
	Gas         ir.Declaration

	Return ir.Declaration
	Revert ir.Declaration
}

// newIntrinsics declares the intrinsic set in the module. Declarations
// only, intrinsics never receive bodies.
func newIntrinsics(core *ir.Context) Intrinsics {
	field := core.FieldType()
	void := core.VoidType()
	heapPtr := core.PtrType(ir.RegionHeap)

	declare := func(name string, returns llvm.Type, params []llvm.Type) ir.Declaration {
		fnType := llvm.FunctionType(returns, params, false)
		return ir.Declaration{Type: fnType, Value: llvm.AddFunction(core.Module(), name, fnType)}
	}

	nullary := func(name string) ir.Declaration {
		return declare(name, field, nil)
	}
	unary := func(name string) ir.Declaration {
		return declare(name, field, []llvm.Type{field})
	}
	binary := func(name string) ir.Declaration {
		return declare(name, field, []llvm.Type{field, field})
	}
	ternary := func(name string) ir.Declaration {
		return declare(name, field, []llvm.Type{field, field, field})
	}

	logParams := func(topics int) []llvm.Type {
		params := []llvm.Type{field, field}
		for i := 0; i < topics; i++ {
			params = append(params, field)
		}
		return params
	}

	callParams := func(withValue bool) []llvm.Type {
		count := 6
		if withValue {
			count = 7
		}
		params := make([]llvm.Type, count)
		for i := range params {
			params[i] = field
		}
		return params
	}

	intrinsics := Intrinsics{
		Trap: declare(IntrinsicTrap, void, nil),

		Sha3:       declare(IntrinsicSha3, field, []llvm.Type{heapPtr, field}),
		AddMod:     ternary(IntrinsicAddMod),
		MulMod:     ternary(IntrinsicMulMod),
		Exp:        binary(IntrinsicExp),
		SignExtend: binary(IntrinsicSignExtend),
		Byte:       binary(IntrinsicByte),

		MStore8: declare(IntrinsicMStore8, void, []llvm.Type{heapPtr, field}),
		MSize:   nullary(IntrinsicMSize),

		CalldataSize:   nullary(IntrinsicCalldataSize),
		CalldataCopy:   declare(IntrinsicCalldataCopy, void, []llvm.Type{field, field, field}),
		ReturnDataSize: nullary(IntrinsicReturnDataSize),
		ReturnDataCopy: declare(IntrinsicReturnDataCopy, void, []llvm.Type{field, field, field}),

		CodeSize:    nullary(IntrinsicCodeSize),
		CodeCopy:    declare(IntrinsicCodeCopy, void, []llvm.Type{field, field, field}),
		ExtCodeSize: unary(IntrinsicExtCodeSize),
		ExtCodeCopy: declare(IntrinsicExtCodeCopy, void, []llvm.Type{field, field, field, field}),
		ExtCodeHash: unary(IntrinsicExtCodeHash),
		DataSize:    unary(IntrinsicDataSize),
		DataOffset:  unary(IntrinsicDataOffset),

		LoadImmutable: unary(IntrinsicLoadImmutable),
		LinkerSymbol:  unary(IntrinsicLinkerSymbol),

		Call:         declare(IntrinsicCall, field, callParams(true)),
		DelegateCall: declare(IntrinsicDelegateCall, field, callParams(false)),
		StaticCall:   declare(IntrinsicStaticCall, field, callParams(false)),
		Create:       ternary(IntrinsicCreate),
		Create2:      declare(IntrinsicCreate2, field, []llvm.Type{field, field, field, field}),

		Address:     nullary(IntrinsicAddress),
		Caller:      nullary(IntrinsicCaller),
		CallValue:   nullary(IntrinsicCallValue),
		Origin:      nullary(IntrinsicOrigin),
		GasPrice:    nullary(IntrinsicGasPrice),
		Coinbase:    nullary(IntrinsicCoinbase),
		Timestamp:   nullary(IntrinsicTimestamp),
		Number:      nullary(IntrinsicNumber),
		Difficulty:  nullary(IntrinsicDifficulty),
		GasLimit:    nullary(IntrinsicGasLimit),
		ChainID:     nullary(IntrinsicChainID),
		BaseFee:     nullary(IntrinsicBaseFee),
		SelfBalance: nullary(IntrinsicSelfBalance),
		Balance:     unary(IntrinsicBalance),
		BlockHash:   unary(IntrinsicBlockHash),
		Gas:         nullary(IntrinsicGas),

		Return: declare(IntrinsicReturn, void, []llvm.Type{field, field}),
		Revert: declare(IntrinsicRevert, void, []llvm.Type{field, field}),
	}

	logNames := [5]string{IntrinsicLog0, IntrinsicLog1, IntrinsicLog2, IntrinsicLog3, IntrinsicLog4}
	for topics := 0; topics < len(intrinsics.Logs); topics++ {
		intrinsics.Logs[topics] = declare(logNames[topics], void, logParams(topics))
	}

	core.SetAttributes(intrinsics.Return, []ir.Attribute{ir.AttributeNoReturn})
	core.SetAttributes(intrinsics.Revert, []ir.Attribute{ir.AttributeNoReturn})

	return intrinsics
}
