// Package optimizer configures and drives the middle-end pass pipeline.
package optimizer

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// SizeLevel selects how aggressively the middle end trades performance for
// code size.
type SizeLevel int

const (
	// SizeLevelZero does not optimize for size.
	SizeLevelZero SizeLevel = iota
	// SizeLevelS optimizes for size without sacrificing much speed.
	SizeLevelS
	// SizeLevelZ optimizes for size above all else.
	SizeLevelZ
)

func (l SizeLevel) String() string {
	switch l {
	case SizeLevelS:
		return "s"
	case SizeLevelZ:
		return "z"
	default:
		return "0"
	}
}

// Settings selects the optimization levels of both compiler ends along with
// the pipeline toggles.
type Settings struct {
	// MiddleEnd is the middle-end optimization level, 0 through 3.
	MiddleEnd int
	// MiddleEndSize is the middle-end size level. A non-zero size level
	// takes precedence over MiddleEnd in the pipeline selection.
	MiddleEndSize SizeLevel
	// BackEnd is the code generator optimization level.
	BackEnd llvm.CodeGenOptLevel

	// FallbackToSize re-runs a failed build with size settings once.
	FallbackToSize bool
	// SpillAreaSize overrides the backend stack spill area in bytes when
	// non-zero.
	SpillAreaSize uint64
	// MetadataSize is the byte size of the metadata appended to the
	// bytecode, which the assembler accounts for in size limits.
	MetadataSize uint64
	// VerifyEach runs the IR verifier after every pass.
	VerifyEach bool
	// DebugLogging makes the pass manager log every pass it runs.
	DebugLogging bool
}

// NewSettings builds settings from the three optimization levels with all
// toggles off.
func NewSettings(middleEnd int, middleEndSize SizeLevel, backEnd llvm.CodeGenOptLevel) Settings {
	return Settings{
		MiddleEnd:     middleEnd,
		MiddleEndSize: middleEndSize,
		BackEnd:       backEnd,
	}
}

// None disables optimization. Used for debugging and IR inspection.
func None() Settings {
	return NewSettings(0, SizeLevelZero, llvm.CodeGenLevelNone)
}

// Cycles optimizes for execution speed. The default production choice.
func Cycles() Settings {
	return NewSettings(3, SizeLevelZero, llvm.CodeGenLevelAggressive)
}

// Size optimizes for code size above all else. Used for contracts bumping
// into the bytecode size limit.
func Size() Settings {
	return NewSettings(2, SizeLevelZ, llvm.CodeGenLevelAggressive)
}

// FromCLI maps the single-character optimization option of the command line
// to settings.
func FromCLI(level byte) (Settings, error) {
	switch level {
	case '0':
		return NewSettings(0, SizeLevelZero, llvm.CodeGenLevelNone), nil
	case '1':
		return NewSettings(1, SizeLevelZero, llvm.CodeGenLevelLess), nil
	case '2':
		return NewSettings(2, SizeLevelZero, llvm.CodeGenLevelDefault), nil
	case '3':
		return NewSettings(3, SizeLevelZero, llvm.CodeGenLevelAggressive), nil
	case 's':
		return NewSettings(2, SizeLevelS, llvm.CodeGenLevelAggressive), nil
	case 'z':
		return NewSettings(2, SizeLevelZ, llvm.CodeGenLevelAggressive), nil
	default:
		return Settings{}, fmt.Errorf("unexpected optimization option '%c'", level)
	}
}

// MiddleEndChar returns the single character naming the middle-end level in
// pipeline syntax: the size level when set, the numeric level otherwise.
func (s Settings) MiddleEndChar() byte {
	switch s.MiddleEndSize {
	case SizeLevelS:
		return 's'
	case SizeLevelZ:
		return 'z'
	default:
		return byte('0' + s.MiddleEnd)
	}
}

// Pipeline renders the pass pipeline description for the pass builder.
func (s Settings) Pipeline() string {
	return fmt.Sprintf("default<O%c>", s.MiddleEndChar())
}
