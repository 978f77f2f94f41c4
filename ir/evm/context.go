package evm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"tinygo.org/x/go-llvm"

	"github.com/zkvm-project/codegen/ir"
	"github.com/zkvm-project/codegen/optimizer"
	"github.com/zkvm-project/codegen/target"
)

// Context is the code generation state of one compilation unit on the plain
// machine target. It extends the shared core with the intrinsic table and
// the build pipeline. There is no size fallback here: bytecode over the
// size limit is rejected by the network, not by the compiler.
type Context struct {
	*ir.Context

	optimizer  *optimizer.Optimizer
	intrinsics Intrinsics
}

// NewContext creates the unit state inside the given LLVM context,
// declaring the intrinsic set in the fresh module.
func NewContext(llvmContext llvm.Context, moduleName string, opt *optimizer.Optimizer, dependency ir.Dependency, debug *ir.DebugConfig) *Context {
	core := ir.NewContext(llvmContext, moduleName, AddressSpaces{}, dependency, debug)
	c := &Context{Context: core, optimizer: opt}
	c.intrinsics = newIntrinsics(core)
	return c
}

// Intrinsics returns the intrinsic declarations.
func (c *Context) Intrinsics() Intrinsics {
	return c.intrinsics
}

// Optimizer returns the optimizer of the unit.
func (c *Context) Optimizer() *optimizer.Optimizer {
	return c.optimizer
}

// Build verifies, optimizes and emits the module, producing the contract
// artifact.
func (c *Context) Build(contractPath string, metadata []byte) (*ir.Build, error) {
	machine, err := target.NewMachine(target.EVM, c.optimizer.Settings())
	if err != nil {
		return nil, fmt.Errorf("contract %q: %w", contractPath, err)
	}
	defer machine.Dispose()

	var segment *ir.CodeSegment
	if active, ok := c.CodeSegment(); ok {
		segment = &active
	}

	log.Debug("Building contract", "contract", contractPath, "target", machine.Target(), "pipeline", c.optimizer.Settings().Pipeline())
	machine.SetTargetData(c.Module())

	if err := c.DebugConfig().DumpLLVMIR(contractPath, segment, ir.SuffixUnoptimized, c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q: dumping unoptimized IR: %w", contractPath, err)
	}
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("contract %q unoptimized LLVM IR verification error: %w", contractPath, err)
	}
	if err := c.optimizer.Run(machine, c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q optimizing error: %w", contractPath, err)
	}
	if err := c.DebugConfig().DumpLLVMIR(contractPath, segment, ir.SuffixOptimized, c.Module()); err != nil {
		return nil, fmt.Errorf("contract %q: dumping optimized IR: %w", contractPath, err)
	}
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("contract %q optimized LLVM IR verification error: %w", contractPath, err)
	}

	assembly, err := machine.EmitAssembly(c.Module())
	if err != nil {
		return nil, fmt.Errorf("contract %q assembly generating error: %w", contractPath, err)
	}
	if err := c.DebugConfig().DumpAssembly(contractPath, segment, ir.SuffixOptimized, assembly); err != nil {
		return nil, fmt.Errorf("contract %q: dumping assembly: %w", contractPath, err)
	}
	bytecode, err := machine.EmitObject(c.Module())
	if err != nil {
		return nil, fmt.Errorf("contract %q bytecode emission error: %w", contractPath, err)
	}

	log.Debug("Built contract", "contract", contractPath, "bytecodeSize", len(bytecode))
	return ir.NewBuild(bytecode, metadata, assembly), nil
}
