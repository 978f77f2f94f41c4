package ir

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// LegacyStack models the operand stack of one function being lowered from
// the legacy assembly. The front end drives it mechanically, mirroring every
// stack effect of the source instructions, so that at any point the slice
// reflects the shape the real stack would have; jump reconciliation hashes
// that shape to pick block variants.
type LegacyStack struct {
	// version is the source compiler version the assembly came from, in
	// semantic version form without a leading "v". Some lowering rules are
	// gated on it.
	version string

	elements []Argument
}

// NewLegacyStack returns an empty stack for assembly produced by the given
// source compiler version, such as "0.8.21".
func NewLegacyStack(version string) *LegacyStack {
	return &LegacyStack{
		version:  version,
		elements: make([]Argument, 0, DefaultStackSize),
	}
}

// Version returns the source compiler version the assembly came from.
func (s *LegacyStack) Version() string {
	return s.version
}

// VersionAtLeast reports whether the source compiler version is the given
// version or newer. Malformed versions compare as older.
func (s *LegacyStack) VersionAtLeast(version string) bool {
	return semver.Compare("v"+s.version, "v"+version) >= 0
}

// Len returns the current stack height.
func (s *LegacyStack) Len() int {
	return len(s.elements)
}

// Element returns the element at the absolute position, zero being the
// bottom of the stack.
func (s *LegacyStack) Element(position int) (Argument, error) {
	if position < 0 || position >= len(s.elements) {
		return Argument{}, fmt.Errorf("%w: position %d, height %d", ErrStackBounds, position, len(s.elements))
	}
	return s.elements[position], nil
}

// SetElement replaces the element at the absolute position.
func (s *LegacyStack) SetElement(position int, element Argument) error {
	if position < 0 || position >= len(s.elements) {
		return fmt.Errorf("%w: position %d, height %d", ErrStackBounds, position, len(s.elements))
	}
	s.elements[position] = element
	return nil
}

// SetOriginal attaches a provenance label to the element at the absolute
// position, leaving its value and constant untouched.
func (s *LegacyStack) SetOriginal(position int, original string) error {
	if position < 0 || position >= len(s.elements) {
		return fmt.Errorf("%w: position %d, height %d", ErrStackBounds, position, len(s.elements))
	}
	s.elements[position].Original = original
	return nil
}

// Push appends an element on top of the stack.
func (s *LegacyStack) Push(element Argument) {
	s.elements = append(s.elements, element)
}

// Pop removes and returns the top element.
func (s *LegacyStack) Pop() (Argument, error) {
	if len(s.elements) == 0 {
		return Argument{}, fmt.Errorf("%w: pop on empty stack", ErrStackBounds)
	}
	top := s.elements[len(s.elements)-1]
	s.elements = s.elements[:len(s.elements)-1]
	return top, nil
}

// Top returns the top element without removing it.
func (s *LegacyStack) Top() (Argument, error) {
	if len(s.elements) == 0 {
		return Argument{}, fmt.Errorf("%w: top on empty stack", ErrStackBounds)
	}
	return s.elements[len(s.elements)-1], nil
}

// Snapshot returns a copy of the current stack, bottom first. Variants store
// snapshots so the driver can replay the entry shape later.
func (s *LegacyStack) Snapshot() []Argument {
	out := make([]Argument, len(s.elements))
	copy(out, s.elements)
	return out
}

// Restore replaces the stack contents with a snapshot taken earlier.
func (s *LegacyStack) Restore(elements []Argument) {
	s.elements = s.elements[:0]
	s.elements = append(s.elements, elements...)
}

// Hash fingerprints the current stack shape.
func (s *LegacyStack) Hash() StackHash {
	return HashStack(s.elements)
}
