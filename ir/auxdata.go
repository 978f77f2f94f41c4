package ir

import "sort"

// SolidityData carries the per-contract bookkeeping the Solidity front ends
// need during lowering. Immutables are handled differently per target: the
// virtual machine target allocates auxiliary heap offsets on first use,
// while the plain target receives the code offsets collected by the source
// compiler and writes through them.
type SolidityData struct {
	allocated map[string]uint64
	offsets   map[string][]uint64
}

// NewSolidityData returns empty bookkeeping.
func NewSolidityData() *SolidityData {
	return &SolidityData{
		allocated: make(map[string]uint64),
		offsets:   make(map[string][]uint64),
	}
}

// AllocateImmutable returns the auxiliary heap offset of the immutable,
// allocating the next free field-sized slot on first use. Repeated calls
// with the same identifier return the same offset.
func (d *SolidityData) AllocateImmutable(identifier string) uint64 {
	if offset, ok := d.allocated[identifier]; ok {
		return offset
	}
	offset := uint64(len(d.allocated)) * FieldBytes
	d.allocated[identifier] = offset
	return offset
}

// ImmutablesSize returns the total byte size of all allocated immutables.
func (d *SolidityData) ImmutablesSize() int {
	return len(d.allocated) * FieldBytes
}

// AddImmutableOffset records one code offset at which the source compiler
// expects the immutable to be patched.
func (d *SolidityData) AddImmutableOffset(identifier string, offset uint64) {
	d.offsets[identifier] = append(d.offsets[identifier], offset)
}

// ImmutableOffsets returns the recorded code offsets of the immutable in
// ascending order, or nil if none were recorded.
func (d *SolidityData) ImmutableOffsets(identifier string) []uint64 {
	offsets, ok := d.offsets[identifier]
	if !ok {
		return nil
	}
	out := make([]uint64, len(offsets))
	copy(out, offsets)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VyperData carries the per-contract bookkeeping of the Vyper front end.
// Vyper knows the full immutable area size up front, so there is no
// on-demand allocation.
type VyperData struct {
	immutablesSize int
	forwarderUsed  bool
}

// NewVyperData returns bookkeeping for a contract with the given total
// immutable area size in bytes.
func NewVyperData(immutablesSize int) *VyperData {
	return &VyperData{immutablesSize: immutablesSize}
}

// ImmutablesSize returns the total byte size of the immutable area.
func (d *VyperData) ImmutablesSize() int {
	return d.immutablesSize
}

// SetForwarderUsed records that the contract instantiates the minimal proxy
// forwarder, which the build pipeline must then attach as a dependency.
func (d *VyperData) SetForwarderUsed() {
	d.forwarderUsed = true
}

// ForwarderUsed reports whether the minimal proxy forwarder is referenced.
func (d *VyperData) ForwarderUsed() bool {
	return d.forwarderUsed
}

// YulData maps the short object identifiers appearing in Yul source to full
// contract paths. It is populated by the front end before code generation
// begins and only consulted afterwards.
type YulData struct {
	paths map[string]string
}

// NewYulData returns an empty identifier mapping.
func NewYulData() *YulData {
	return &YulData{paths: make(map[string]string)}
}

// InsertPath records the full contract path of an object identifier.
func (d *YulData) InsertPath(identifier, path string) {
	d.paths[identifier] = path
}

// Path resolves an object identifier to its full contract path.
func (d *YulData) Path(identifier string) (string, bool) {
	path, ok := d.paths[identifier]
	return path, ok
}
