package ir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDebugConfigNilIsSafe(t *testing.T) {
	var config *DebugConfig
	if err := config.DumpYul("a.sol", "object"); err != nil {
		t.Errorf("DumpYul on a nil config should be a no-op, got %v", err)
	}
	if err := config.DumpAssembly("a.sol", nil, SuffixOptimized, "text"); err != nil {
		t.Errorf("DumpAssembly on a nil config should be a no-op, got %v", err)
	}
}

func TestDebugConfigFileNames(t *testing.T) {
	directory := t.TempDir()
	config := NewDebugConfig(directory)
	segment := SegmentRuntime

	if err := config.DumpYul("contracts/Token.sol:Token", "object Token {}"); err != nil {
		t.Fatalf("DumpYul: %v", err)
	}
	if err := config.DumpLegacyAssembly("contracts/Token.sol:Token", "PUSH 0"); err != nil {
		t.Fatalf("DumpLegacyAssembly: %v", err)
	}
	if err := config.DumpAssembly("contracts/Token.sol:Token", &segment, SuffixOptimized, "listing"); err != nil {
		t.Fatalf("DumpAssembly: %v", err)
	}

	for _, name := range []string{
		"contracts_Token.sol.Token.yul",
		"contracts_Token.sol.Token.evmla",
		"contracts_Token.sol.Token.runtime.optimized.asm",
	} {
		if _, err := os.Stat(filepath.Join(directory, name)); err != nil {
			t.Errorf("expected dump file %q: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(directory, "contracts_Token.sol.Token.runtime.optimized.asm"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "listing" {
		t.Errorf("dump content = %q, want %q", data, "listing")
	}
}
