package zkvm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
	"github.com/zkvm-project/codegen/optimizer"
	"github.com/zkvm-project/codegen/target"
)

// sizeFallbackCounter counts builds that were retried with size settings
// after the optimized module failed to fit or emit.
var sizeFallbackCounter = metrics.NewRegisteredCounter("codegen/build/size_fallbacks", nil)

// Context is the code generation state of one compilation unit on the
// virtual machine target. It extends the shared core with the intrinsic and
// runtime library tables and the build pipeline.
type Context struct {
	*ir.Context

	optimizer  *optimizer.Optimizer
	intrinsics Intrinsics
	runtime    Runtime
}

// NewContext creates the unit state inside the given LLVM context, declaring
// the intrinsic set, the runtime library interface and the standard globals
// in the fresh module.
func NewContext(llvmContext llvm.Context, moduleName string, opt *optimizer.Optimizer, dependency ir.Dependency, debug *ir.DebugConfig) *Context {
	core := ir.NewContext(llvmContext, moduleName, AddressSpaces{}, dependency, debug)
	c := &Context{Context: core, optimizer: opt}
	c.intrinsics = newIntrinsics(core)
	c.runtime = newRuntime(core)
	c.declareGlobals()
	return c
}

// Intrinsics returns the intrinsic declarations.
func (c *Context) Intrinsics() Intrinsics {
	return c.intrinsics
}

// Runtime returns the runtime library declarations.
func (c *Context) Runtime() Runtime {
	return c.runtime
}

// Optimizer returns the optimizer of the unit.
func (c *Context) Optimizer() *optimizer.Optimizer {
	return c.optimizer
}

// declareGlobals creates the global variables the entry dispatcher
// initializes and the translators read.
func (c *Context) declareGlobals() {
	field := c.FieldType()
	genericPtr := c.PtrType(ir.RegionGeneric)

	for _, name := range []string{
		GlobalHeapMemoryPointer,
		GlobalCalldataSize,
		GlobalReturnDataSize,
		GlobalCallFlags,
	} {
		c.DeclareGlobal(name, field, ir.RegionStack, llvm.ConstNull(field))
	}
	for _, name := range []string{
		GlobalCalldataPointer,
		GlobalReturnDataPointer,
		GlobalActivePointer,
	} {
		c.DeclareGlobal(name, genericPtr, ir.RegionStack, llvm.ConstNull(genericPtr))
	}
	extraABIType := c.ArrayType(field, ExtraABIDataSize)
	c.DeclareGlobal(GlobalExtraABIData, extraABIType, ir.RegionStack, llvm.ConstNull(extraABIType))
}

// ImmutablesSize returns the byte size of the contract immutable area as
// known to the active front end, zero when the front end tracks none.
func (c *Context) ImmutablesSize() int {
	if solidity := c.Solidity(); solidity != nil {
		return solidity.ImmutablesSize()
	}
	if vyper := c.Vyper(); vyper != nil {
		return vyper.ImmutablesSize()
	}
	return 0
}

// Build verifies, optimizes and emits the module, producing the contract
// artifact. When the optimizer allows the size fallback, an emission failure
// is retried once with size settings on the original module.
func (c *Context) Build(contractPath string, metadata []byte) (*ir.Build, error) {
	machine, err := target.NewMachine(target.ZKVM, c.optimizer.Settings())
	if err != nil {
		return nil, fmt.Errorf("contract %q: %w", contractPath, err)
	}
	defer machine.Dispose()

	build, err := c.buildWith(machine, contractPath, metadata, false)
	if err == nil || !c.optimizer.IsSizeFallbackAvailable() {
		return build, err
	}

	log.Warn("Retrying build with size optimization", "contract", contractPath, "err", err)
	sizeFallbackCounter.Inc(1)
	c.optimizer.FallBackToSize()

	fallbackMachine, err := target.NewMachine(target.ZKVM, c.optimizer.Settings())
	if err != nil {
		return nil, fmt.Errorf("contract %q: %w", contractPath, err)
	}
	defer fallbackMachine.Dispose()
	return c.buildWith(fallbackMachine, contractPath, metadata, true)
}

func (c *Context) buildWith(machine *target.Machine, contractPath string, metadata []byte, fallback bool) (*ir.Build, error) {
	var segment *ir.CodeSegment
	if active, ok := c.CodeSegment(); ok {
		segment = &active
	}
	stage := func(base string) string {
		if fallback {
			return base + "_" + ir.SuffixFallbackToSize
		}
		return base
	}

	log.Debug("Building contract", "contract", contractPath, "target", machine.Target(), "pipeline", c.optimizer.Settings().Pipeline())
	machine.SetTargetData(c.Module())

	if err := c.DebugConfig().DumpLLVMIR(contractPath, segment, stage(ir.SuffixUnoptimized), c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q: dumping unoptimized IR: %w", contractPath, err)
	}
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("contract %q unoptimized LLVM IR verification error: %w", contractPath, err)
	}
	if err := c.optimizer.Run(machine, c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q optimizing error: %w", contractPath, err)
	}
	if err := c.DebugConfig().DumpLLVMIR(contractPath, segment, stage(ir.SuffixOptimized), c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q: dumping optimized IR: %w", contractPath, err)
	}
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("contract %q optimized LLVM IR verification error: %w", contractPath, err)
	}

	assembly, err := machine.EmitAssembly(c.Module())
	if err != nil {
		return nil, fmt.Errorf("contract %q assembly generating error: %w", contractPath, err)
	}
	if err := c.DebugConfig().DumpAssembly(contractPath, segment, stage(ir.SuffixOptimized), assembly); err != nil {
		return nil, fmt.Errorf("contract %q: dumping assembly: %w", contractPath, err)
	}
	bytecode, err := machine.EmitObject(c.Module())
	if err != nil {
		return nil, fmt.Errorf("contract %q bytecode emission error: %w", contractPath, err)
	}

	log.Debug("Built contract", "contract", contractPath, "bytecodeSize", len(bytecode))
	return ir.NewBuild(bytecode, metadata, assembly), nil
}
