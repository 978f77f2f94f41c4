package ir

import "tinygo.org/x/go-llvm"

// Pointer is an LLVM pointer value tagged with its element type and abstract
// region. Opaque pointers carry neither, yet loads, stores and address
// arithmetic need both, so the lowering threads them alongside the value.
type Pointer struct {
	// Elem is the pointee type used for loads and address arithmetic.
	Elem llvm.Type
	// Region is the abstract memory region the pointer addresses.
	Region Region
	// Value is the underlying LLVM pointer value.
	Value llvm.Value
}

// NewPointer tags an LLVM pointer value.
func NewPointer(elem llvm.Type, region Region, value llvm.Value) Pointer {
	return Pointer{Elem: elem, Region: region, Value: value}
}

// WithElem returns a copy of the pointer reinterpreted to a new element
// type. The address is unchanged; opaque pointers make this a no-op at the
// IR level.
func (p Pointer) WithElem(elem llvm.Type) Pointer {
	p.Elem = elem
	return p
}
