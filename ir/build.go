package ir

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Build is the final artifact of one compilation unit.
type Build struct {
	// Bytecode is the emitted machine code.
	Bytecode hexutil.Bytes `json:"bytecode"`
	// BytecodeHash is the code hash assigned by the assembler, once known.
	BytecodeHash string `json:"bytecodeHash,omitempty"`
	// Metadata is the trailing metadata appended to the bytecode.
	Metadata hexutil.Bytes `json:"metadata"`
	// FactoryDependencies maps bytecode hashes of contracts this one
	// creates to their full source paths.
	FactoryDependencies map[string]string `json:"factoryDependencies"`
	// Assembly is the textual assembly listing.
	Assembly string `json:"assembly,omitempty"`
}

// NewBuild assembles the artifact record. The bytecode hash starts unset and
// is assigned exactly once by the assembler.
func NewBuild(bytecode []byte, metadata []byte, assembly string) *Build {
	return &Build{
		Bytecode:            bytecode,
		Metadata:            metadata,
		FactoryDependencies: make(map[string]string),
		Assembly:            assembly,
	}
}

// SetBytecodeHash records the assembler-provided code hash. The hash is
// assigned exactly once; a second call returns ErrHashAlreadySet.
func (b *Build) SetBytecodeHash(hash string) error {
	if b.BytecodeHash != "" {
		return ErrHashAlreadySet
	}
	b.BytecodeHash = hash
	return nil
}

// AddFactoryDependency records that this contract creates the contract at
// path, identified by its bytecode hash. Recording the same hash twice is
// fine and keeps the latest path.
func (b *Build) AddFactoryDependency(hash, path string) {
	b.FactoryDependencies[hash] = path
}
