package ir

import (
	"os"
	"path/filepath"
	"strings"

	"tinygo.org/x/go-llvm"
)

// IR dump stage suffixes.
const (
	SuffixUnoptimized = "unoptimized"
	SuffixOptimized   = "optimized"
	// SuffixFallbackToSize marks dumps produced after the build pipeline
	// fell back to size optimization.
	SuffixFallbackToSize = "fallback_to_size"
)

// DebugConfig dumps the intermediate representations of every pipeline stage
// into a directory. A nil DebugConfig disables dumping; all methods are safe
// on nil receivers so call sites need no guards.
type DebugConfig struct {
	// OutputDirectory receives the dump files. It must exist.
	OutputDirectory string
}

// NewDebugConfig returns a config dumping into the given directory.
func NewDebugConfig(outputDirectory string) *DebugConfig {
	return &DebugConfig{OutputDirectory: outputDirectory}
}

// DumpYul writes the Yul source of the contract.
func (c *DebugConfig) DumpYul(contractPath string, code string) error {
	if c == nil {
		return nil
	}
	return c.write(fileName(contractPath, nil, "", "yul"), []byte(code))
}

// DumpLegacyAssembly writes the legacy assembly source of the contract.
func (c *DebugConfig) DumpLegacyAssembly(contractPath string, code string) error {
	if c == nil {
		return nil
	}
	return c.write(fileName(contractPath, nil, "", "evmla"), []byte(code))
}

// DumpLLVMIR writes the textual LLVM IR of the module at the given stage.
func (c *DebugConfig) DumpLLVMIR(contractPath string, segment *CodeSegment, suffix string, module llvm.Module) error {
	if c == nil {
		return nil
	}
	return c.write(fileName(contractPath, segment, suffix, "ll"), []byte(module.String()))
}

// DumpAssembly writes the textual target assembly of the contract.
func (c *DebugConfig) DumpAssembly(contractPath string, segment *CodeSegment, suffix string, code string) error {
	if c == nil {
		return nil
	}
	return c.write(fileName(contractPath, segment, suffix, "asm"), []byte(code))
}

func (c *DebugConfig) write(name string, data []byte) error {
	return os.WriteFile(filepath.Join(c.OutputDirectory, name), data, 0o644)
}

// fileName renders "<sanitized path>.<segment>.<suffix>.<extension>" with the
// optional parts omitted. Path separators and whitespace become underscores
// and colons become dots so the result is a single portable file name.
func fileName(contractPath string, segment *CodeSegment, suffix, extension string) string {
	parts := []string{sanitize(contractPath)}
	if segment != nil {
		parts = append(parts, segment.String())
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	parts = append(parts, extension)
	return strings.Join(parts, ".")
}

func sanitize(path string) string {
	replaced := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		" ", "_",
		"\t", "_",
		":", ".",
	)
	return replaced.Replace(path)
}
