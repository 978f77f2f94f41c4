package ir

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"tinygo.org/x/go-llvm"
)

// Global is a module-level variable tagged with its type and region.
type Global struct {
	Type   llvm.Type
	Region Region
	Value  llvm.Value
}

// Context is the code generation state shared by all targets: the LLVM
// handles, the function table with the active cursor, the loop stack, the
// block variant registries and the per-front-end auxiliary data. Target
// packages embed it and add their intrinsic and runtime tables.
//
// A Context serves exactly one compilation unit and is single-threaded by
// contract: LLVM contexts are not thread-safe, so concurrency happens one
// context per goroutine at the driver level, never inside.
type Context struct {
	llvm    llvm.Context
	builder llvm.Builder
	module  llvm.Module
	spaces  AddressSpaces

	segment   *CodeSegment
	functions map[string]*Function
	current   *Function
	loops     []Loop
	globals   map[string]Global

	solidity *SolidityData
	vyper    *VyperData
	yul      *YulData
	legacy   *LegacyStack

	dependency Dependency
	debug      *DebugConfig
}

// NewContext creates the state for one compilation unit inside the given
// LLVM context. The caller owns the LLVM context; the builder and module
// created here are released by Close.
func NewContext(llvmContext llvm.Context, moduleName string, spaces AddressSpaces, dependency Dependency, debug *DebugConfig) *Context {
	if dependency == nil {
		dependency = NoopDependency{}
	}
	return &Context{
		llvm:       llvmContext,
		builder:    llvmContext.NewBuilder(),
		module:     llvmContext.NewModule(moduleName),
		spaces:     spaces,
		functions:  make(map[string]*Function),
		globals:    make(map[string]Global),
		dependency: dependency,
		debug:      debug,
	}
}

// Close releases the builder and module. The LLVM context stays with the
// caller.
func (c *Context) Close() {
	c.builder.Dispose()
	c.module.Dispose()
}

// LLVM returns the LLVM context.
func (c *Context) LLVM() llvm.Context { return c.llvm }

// Builder returns the instruction builder.
func (c *Context) Builder() llvm.Builder { return c.builder }

// Module returns the module under construction.
func (c *Context) Module() llvm.Module { return c.module }

// DebugConfig returns the dump configuration, nil when dumping is off.
func (c *Context) DebugConfig() *DebugConfig { return c.debug }

// Dependency returns the contract path resolver.
func (c *Context) Dependency() Dependency { return c.dependency }

// ResolvePath resolves a short contract identifier to its full path through
// the driver-provided resolver.
func (c *Context) ResolvePath(identifier string) (string, error) {
	path, err := c.dependency.ResolvePath(identifier)
	if err != nil {
		return "", fmt.Errorf("resolving dependency %q: %w", identifier, err)
	}
	return path, nil
}

// Space returns the numeric address space of the region on this target.
func (c *Context) Space(region Region) int {
	return c.spaces.Space(region)
}

// SetCodeSegment selects the code segment being lowered.
func (c *Context) SetCodeSegment(segment CodeSegment) {
	c.segment = &segment
}

// CodeSegment returns the active code segment. The second result is false
// before the driver selected one.
func (c *Context) CodeSegment() (CodeSegment, bool) {
	if c.segment == nil {
		return 0, false
	}
	return *c.segment, true
}

// Solidity returns the Solidity front end bookkeeping, nil for other fronts.
func (c *Context) Solidity() *SolidityData { return c.solidity }

// SetSolidityData attaches the Solidity front end bookkeeping.
func (c *Context) SetSolidityData(data *SolidityData) { c.solidity = data }

// Vyper returns the Vyper front end bookkeeping, nil for other fronts.
func (c *Context) Vyper() *VyperData { return c.vyper }

// SetVyperData attaches the Vyper front end bookkeeping.
func (c *Context) SetVyperData(data *VyperData) { c.vyper = data }

// Yul returns the Yul object path mapping, nil for other fronts.
func (c *Context) Yul() *YulData { return c.yul }

// SetYulData attaches the Yul object path mapping.
func (c *Context) SetYulData(data *YulData) { c.yul = data }

// LegacyStack returns the emulated operand stack, nil outside the legacy
// assembly pipeline.
func (c *Context) LegacyStack() *LegacyStack { return c.legacy }

// SetLegacyStack attaches the emulated operand stack.
func (c *Context) SetLegacyStack(stack *LegacyStack) { c.legacy = stack }

// AddFunction declares a function in the module with an empty entry block
// and makes it known to the context. Declaring an existing name returns the
// earlier function unchanged.
func (c *Context) AddFunction(name string, fnType llvm.Type) *Function {
	if existing, ok := c.functions[name]; ok {
		return existing
	}
	value := llvm.AddFunction(c.module, name, fnType)
	entry := c.llvm.AddBasicBlock(value, "entry")
	function := NewFunction(name, Declaration{Type: fnType, Value: value}, entry)
	c.functions[name] = function
	functionCounter.Inc(1)
	traceLog("Declared function", "name", name)
	return function
}

// Function returns the declared function with the name, nil if unknown.
func (c *Context) Function(name string) *Function {
	return c.functions[name]
}

// SetCurrentFunction selects the function all subsequent block and emission
// operations apply to.
func (c *Context) SetCurrentFunction(name string) error {
	function, ok := c.functions[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoFunction, name)
	}
	c.current = function
	return nil
}

// CurrentFunction returns the function selected by SetCurrentFunction.
// Calling it with no selection is an internal fault: every emission
// operation presupposes an open function.
func (c *Context) CurrentFunction() (*Function, error) {
	if c.current == nil {
		return nil, fmt.Errorf("%w: no current function", ErrNoFunction)
	}
	return c.current, nil
}

// AppendBasicBlock adds a basic block to the current function without moving
// the insertion point.
func (c *Context) AppendBasicBlock(name string) (llvm.BasicBlock, error) {
	function, err := c.CurrentFunction()
	if err != nil {
		return llvm.BasicBlock{}, err
	}
	return c.llvm.AddBasicBlock(function.Declaration.Value, name), nil
}

// SetBasicBlock moves the insertion point to the end of the block.
func (c *Context) SetBasicBlock(block llvm.BasicBlock) {
	c.builder.SetInsertPointAtEnd(block)
}

// BasicBlock returns the block holding the insertion point.
func (c *Context) BasicBlock() llvm.BasicBlock {
	return c.builder.GetInsertBlock()
}

// PushLoop opens a structured loop.
func (c *Context) PushLoop(loop Loop) {
	c.loops = append(c.loops, loop)
}

// PopLoop closes the innermost loop.
func (c *Context) PopLoop() {
	if len(c.loops) > 0 {
		c.loops = c.loops[:len(c.loops)-1]
	}
}

// CurrentLoop returns the innermost open loop. Break and continue outside
// any loop is an internal fault, the front end must have validated nesting.
func (c *Context) CurrentLoop() (Loop, error) {
	if len(c.loops) == 0 {
		return Loop{}, ErrNoLoop
	}
	return c.loops[len(c.loops)-1], nil
}

// DeclareBlock registers the variant group of a jump destination in the
// current function.
func (c *Context) DeclareBlock(key BlockKey) error {
	function, err := c.CurrentFunction()
	if err != nil {
		return err
	}
	function.Blocks.Declare(key)
	return nil
}

// FindBlock resolves a jump in the current function to the block variant
// matching the entry stack fingerprint.
func (c *Context) FindBlock(key BlockKey, hash StackHash) (*Block, error) {
	function, err := c.CurrentFunction()
	if err != nil {
		return nil, err
	}
	return function.Blocks.Find(key, hash)
}

// CreateBlock materializes a new variant of the jump destination in the
// current function, remembering the entry stack snapshot. Creating a second
// variant with the same fingerprint is an internal fault.
func (c *Context) CreateBlock(key BlockKey, hash StackHash, entryStack []Argument) (*Block, error) {
	function, err := c.CurrentFunction()
	if err != nil {
		return nil, err
	}
	snapshot := make([]Argument, len(entryStack))
	copy(snapshot, entryStack)
	block := &Block{
		Key:        key,
		StackHash:  hash,
		Inner:      c.llvm.AddBasicBlock(function.Declaration.Value, key.String()),
		EntryStack: snapshot,
	}
	if err := function.Blocks.Insert(block); err != nil {
		return nil, err
	}
	return block, nil
}

// FieldType returns the native word type.
func (c *Context) FieldType() llvm.Type { return c.llvm.IntType(FieldBits) }

// ByteType returns the 8-bit integer type.
func (c *Context) ByteType() llvm.Type { return c.llvm.Int8Type() }

// BoolType returns the 1-bit integer type.
func (c *Context) BoolType() llvm.Type { return c.llvm.Int1Type() }

// IntegerType returns an integer type of arbitrary bit width.
func (c *Context) IntegerType(bits int) llvm.Type { return c.llvm.IntType(bits) }

// VoidType returns the void type.
func (c *Context) VoidType() llvm.Type { return c.llvm.VoidType() }

// StructType returns an unpacked literal struct type.
func (c *Context) StructType(fields []llvm.Type) llvm.Type {
	return c.llvm.StructType(fields, false)
}

// ArrayType returns an array type of the element.
func (c *Context) ArrayType(elem llvm.Type, length int) llvm.Type {
	return llvm.ArrayType(elem, length)
}

// PtrType returns a pointer type into the region's address space.
func (c *Context) PtrType(region Region) llvm.Type {
	return llvm.PointerType(c.ByteType(), c.Space(region))
}

// FieldConst returns a word constant from a uint64.
func (c *Context) FieldConst(value uint64) llvm.Value {
	return llvm.ConstInt(c.FieldType(), value, false)
}

// FieldConstWord returns a word constant from a 256-bit integer.
func (c *Context) FieldConstWord(value *uint256.Int) llvm.Value {
	return llvm.ConstIntFromString(c.FieldType(), value.Dec(), 10)
}

// FieldConstFromHex returns a word constant from a hexadecimal string
// without the 0x prefix.
func (c *Context) FieldConstFromHex(value string) llvm.Value {
	return llvm.ConstIntFromString(c.FieldType(), value, 16)
}

// FieldConstHash returns a word constant holding the 32-byte hash.
func (c *Context) FieldConstHash(hash common.Hash) llvm.Value {
	return c.FieldConstFromHex(hex.EncodeToString(hash[:]))
}

// FieldUndef returns the undefined word value.
func (c *Context) FieldUndef() llvm.Value {
	return llvm.Undef(c.FieldType())
}

// BoolConst returns an i1 constant.
func (c *Context) BoolConst(value bool) llvm.Value {
	if value {
		return llvm.ConstInt(c.BoolType(), 1, false)
	}
	return llvm.ConstInt(c.BoolType(), 0, false)
}

// DeclareGlobal adds a module-level variable in the region's address space.
// Redeclaring a name returns the earlier global unchanged.
func (c *Context) DeclareGlobal(name string, ty llvm.Type, region Region, initializer llvm.Value) Global {
	if existing, ok := c.globals[name]; ok {
		return existing
	}
	value := llvm.AddGlobalInAddressSpace(c.module, ty, name, c.Space(region))
	if !initializer.IsNil() {
		value.SetInitializer(initializer)
	}
	global := Global{Type: ty, Region: region, Value: value}
	c.globals[name] = global
	return global
}

// Global returns the declared global with the name.
func (c *Context) Global(name string) (Global, error) {
	global, ok := c.globals[name]
	if !ok {
		return Global{}, fmt.Errorf("global variable %q is not declared", name)
	}
	return global, nil
}

// GlobalValue loads the current value of the global.
func (c *Context) GlobalValue(name string) (llvm.Value, error) {
	global, err := c.Global(name)
	if err != nil {
		return llvm.Value{}, err
	}
	pointer := NewPointer(global.Type, global.Region, global.Value)
	return c.BuildLoad(pointer, name+"_value"), nil
}

// SetGlobalValue stores a value into the global.
func (c *Context) SetGlobalValue(name string, value llvm.Value) error {
	global, err := c.Global(name)
	if err != nil {
		return err
	}
	pointer := NewPointer(global.Type, global.Region, global.Value)
	c.BuildStore(pointer, value)
	return nil
}

// BuildAlloca reserves a stack slot in the entry frame.
func (c *Context) BuildAlloca(ty llvm.Type, name string) Pointer {
	value := c.builder.CreateAlloca(ty, name)
	value.SetAlignment(DefaultAllocaAlignment)
	return NewPointer(ty, RegionStack, value)
}

// BuildLoad loads through the tagged pointer with the region's natural
// alignment: whole-field on the stack, byte-aligned elsewhere.
func (c *Context) BuildLoad(pointer Pointer, name string) llvm.Value {
	value := c.builder.CreateLoad(pointer.Elem, pointer.Value, name)
	value.SetAlignment(regionAlignment(pointer.Region))
	return value
}

// BuildStore stores through the tagged pointer with the region's natural
// alignment.
func (c *Context) BuildStore(pointer Pointer, value llvm.Value) {
	store := c.builder.CreateStore(value, pointer.Value)
	store.SetAlignment(regionAlignment(pointer.Region))
}

func regionAlignment(region Region) int {
	if region == RegionStack {
		return FieldBytes
	}
	return 1
}

// BuildGEP advances the tagged pointer by the indices and reinterprets it to
// the element type.
func (c *Context) BuildGEP(pointer Pointer, indices []llvm.Value, elem llvm.Type, name string) Pointer {
	value := c.builder.CreateGEP(pointer.Elem, pointer.Value, indices, name)
	return NewPointer(elem, pointer.Region, value)
}

// PointerToOffset reinterprets an integer offset as a pointer into the
// region.
func (c *Context) PointerToOffset(region Region, elem llvm.Type, offset llvm.Value, name string) Pointer {
	value := c.builder.CreateIntToPtr(offset, c.PtrType(region), name)
	return NewPointer(elem, region, value)
}

// BuildCall emits a call to the declaration. Calls returning void must pass
// an empty name.
func (c *Context) BuildCall(declaration Declaration, args []llvm.Value, name string) llvm.Value {
	return c.builder.CreateCall(declaration.Type, declaration.Value, args, name)
}

// BuildMemcpy copies size bytes between the tagged pointers through the
// given memcpy intrinsic declaration.
func (c *Context) BuildMemcpy(declaration Declaration, destination, source Pointer, size llvm.Value) {
	c.BuildCall(declaration, []llvm.Value{destination.Value, source.Value, size, c.BoolConst(false)}, "")
}

// SetAttributes attaches enum function attributes to the declaration.
func (c *Context) SetAttributes(declaration Declaration, attributes []Attribute) {
	for _, attribute := range attributes {
		kind := llvm.AttributeKindID(string(attribute))
		declaration.Value.AddFunctionAttr(c.llvm.CreateEnumAttribute(kind, 0))
	}
}

// hasTerminator reports whether the block already ends in a terminator.
func hasTerminator(block llvm.BasicBlock) bool {
	last := block.LastInstruction()
	if last.IsNil() {
		return false
	}
	switch last.InstructionOpcode() {
	case llvm.Ret, llvm.Br, llvm.Switch, llvm.IndirectBr, llvm.Invoke, llvm.Unreachable:
		return true
	default:
		return false
	}
}

// BuildConditionalBranch branches on the i1 condition. A block that is
// already terminated stays untouched, which lets translators emit their
// joins without tracking whether an earlier instruction diverged.
func (c *Context) BuildConditionalBranch(condition llvm.Value, thenBlock, elseBlock llvm.BasicBlock) {
	if hasTerminator(c.BasicBlock()) {
		return
	}
	c.builder.CreateCondBr(condition, thenBlock, elseBlock)
}

// BuildUnconditionalBranch jumps to the destination unless the current
// block is already terminated.
func (c *Context) BuildUnconditionalBranch(destination llvm.BasicBlock) {
	if hasTerminator(c.BasicBlock()) {
		return
	}
	c.builder.CreateBr(destination)
}

// BuildRet returns the value, or void for a nil value, unless the current
// block is already terminated.
func (c *Context) BuildRet(value llvm.Value) {
	if hasTerminator(c.BasicBlock()) {
		return
	}
	if value.IsNil() {
		c.builder.CreateRetVoid()
		return
	}
	c.builder.CreateRet(value)
}

// BuildUnreachable seals the current block as unreachable unless it is
// already terminated.
func (c *Context) BuildUnreachable() {
	if hasTerminator(c.BasicBlock()) {
		return
	}
	c.builder.CreateUnreachable()
}

// BuildExit emits a call to the terminating runtime routine with the memory
// slice operands and seals the block.
func (c *Context) BuildExit(declaration Declaration, offset, length llvm.Value) {
	c.BuildCall(declaration, []llvm.Value{offset, length}, "")
	c.BuildUnreachable()
}

// Verify checks the module with the LLVM verifier.
func (c *Context) Verify() error {
	return llvm.VerifyModule(c.module, llvm.ReturnStatusAction)
}
