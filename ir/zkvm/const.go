package zkvm

import "github.com/zkvm-project/codegen/ir"

// Reserved function names of the contract entry points.
const (
	// FunctionEntry dispatches every incoming call.
	FunctionEntry = "__entry"
	// FunctionDeployCode is the wrapped constructor part.
	FunctionDeployCode = "__deploy"
	// FunctionRuntimeCode is the wrapped runtime part.
	FunctionRuntimeCode = "__runtime"
)

// Global variable names shared with the front ends and the entry dispatcher.
const (
	// GlobalHeapMemoryPointer is the free memory pointer on the heap.
	GlobalHeapMemoryPointer = "memory_pointer"
	// GlobalCalldataPointer is the fat pointer to the call input.
	GlobalCalldataPointer = "ptr_calldata"
	// GlobalCalldataSize is the byte size of the call input.
	GlobalCalldataSize = "calldatasize"
	// GlobalReturnDataPointer is the fat pointer to the last call output.
	GlobalReturnDataPointer = "ptr_return_data"
	// GlobalReturnDataSize is the byte size of the last call output.
	GlobalReturnDataSize = "returndatasize"
	// GlobalCallFlags carries the packed flags of the active call.
	GlobalCallFlags = "call_flags"
	// GlobalExtraABIData carries the extra ABI registers of the active
	// call.
	GlobalExtraABIData = "extra_abi_data"
	// GlobalActivePointer is the scratch slot for active pointer
	// manipulation.
	GlobalActivePointer = "ptr_active"
)

// System contract addresses in the reserved kernel range.
const (
	// AddressAccountCodeStorage answers code size and code hash queries.
	AddressAccountCodeStorage = 0x8002
	// AddressImmutableSimulator stores deployed immutable values.
	AddressImmutableSimulator = 0x8005
	// AddressContractDeployer creates contract accounts.
	AddressContractDeployer = 0x8006
	// AddressMsgValueSimulator moves the base token and forwards calls
	// carrying value.
	AddressMsgValueSimulator = 0x8009
	// AddressEtherToken keeps the base token balances.
	AddressEtherToken = 0x800A
	// AddressSystemContext exposes block and transaction environment data.
	AddressSystemContext = 0x800B
	// AddressEventWriter records event logs.
	AddressEventWriter = 0x800D
)

// Auxiliary heap layout. The first fields are reserved for external call
// ABI scratch, constructor return data follows.
const (
	// HeapAuxOffsetExternalCall is where external call ABI data is staged.
	HeapAuxOffsetExternalCall = 0
	// HeapAuxOffsetConstructorReturnData is where the constructor builds
	// its immutables return block.
	HeapAuxOffsetConstructorReturnData = 8 * ir.FieldBytes
)

// ExtraABIDataSize is the number of extra ABI data registers passed along
// with a far call.
const ExtraABIDataSize = 10

// Contract deployer method signatures.
const (
	// DeployerSignatureCreate requests a plain contract creation.
	DeployerSignatureCreate = "create(bytes32,bytes32,bytes)"
	// DeployerSignatureCreate2 requests a salted contract creation.
	DeployerSignatureCreate2 = "create2(bytes32,bytes32,bytes)"
)

// DeployerCallHeaderSize is the byte size of the deployer calldata header:
// the selector and the salt, bytecode hash, constructor offset words.
const DeployerCallHeaderSize = ir.X32Bytes + 4*ir.FieldBytes

// Packed far call ABI word layout, bit offsets of the packed fields.
const (
	// ABIShiftDataOffset positions the data offset field.
	ABIShiftDataOffset = 0
	// ABIShiftDataLength positions the data length field.
	ABIShiftDataLength = 96
	// ABIShiftGas positions the gas field.
	ABIShiftGas = 192
	// ABIShiftSystemCall positions the system call marker bit.
	ABIShiftSystemCall = 248
)

// System context method signatures backing the environment instructions.
const (
	SignatureBlockGasLimit  = "blockGasLimit()"
	SignatureGasPrice       = "gasPrice()"
	SignatureOrigin         = "origin()"
	SignatureChainID        = "chainId()"
	SignatureBlockNumber    = "getBlockNumber()"
	SignatureBlockTimestamp = "getBlockTimestamp()"
	SignatureBlockHash      = "getBlockHashEVM(uint256)"
	SignatureDifficulty     = "difficulty()"
	SignatureCoinbase       = "coinbase()"
	SignatureBaseFee        = "baseFee()"
)

// Account query method signatures.
const (
	SignatureBalance      = "balanceOf(uint256)"
	SignatureCodeSize     = "getCodeSize(uint256)"
	SignatureCodeHash     = "getCodeHash(uint256)"
	SignatureGetImmutable = "getImmutable(address,uint256)"
)
