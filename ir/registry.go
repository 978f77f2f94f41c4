package ir

import "fmt"

// Registry owns the block variants of one function, grouped by jump
// destination key. Within one group every variant has a distinct stack
// fingerprint; the registry rejects violations instead of silently
// overwriting, since two variants with equal fingerprints would make jump
// resolution ambiguous.
type Registry struct {
	groups map[string][]*Block
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string][]*Block)}
}

// Declare registers the variant group for the key if it is absent and
// returns the group. Repeated declarations are no-ops returning the existing
// variants, so front ends may declare destinations eagerly while scanning.
func (r *Registry) Declare(key BlockKey) []*Block {
	name := key.String()
	if _, ok := r.groups[name]; !ok {
		r.groups[name] = []*Block{}
	}
	return r.groups[name]
}

// Find resolves a jump to the key with the given entry stack fingerprint.
//
// A key with exactly one variant is returned unconditionally, regardless of
// the fingerprint: a single variant means the destination was only ever
// entered with one stack shape and the jump site is trusted to match. With
// two or more variants the fingerprint must match exactly. An unknown key,
// an empty group and a failed match all report the same not-found error,
// carrying the key in its canonical rendering.
func (r *Registry) Find(key BlockKey, hash StackHash) (*Block, error) {
	variants, ok := r.groups[key.String()]
	if !ok || len(variants) == 0 {
		return nil, fmt.Errorf("%w %s", ErrBlockNotFound, key)
	}
	if len(variants) == 1 {
		return variants[0], nil
	}
	for _, variant := range variants {
		if variant.StackHash == hash {
			return variant, nil
		}
	}
	return nil, fmt.Errorf("%w %s", ErrBlockNotFound, key)
}

// Insert adds a new variant. Inserting a second variant with the same key
// and fingerprint is an internal fault.
func (r *Registry) Insert(block *Block) error {
	name := block.Key.String()
	variants := r.groups[name]
	for _, variant := range variants {
		if variant.StackHash == block.StackHash {
			return fmt.Errorf("%w: %s with stack hash %s", ErrDuplicateBlock, name, block.StackHash)
		}
	}
	if len(variants) > 0 {
		blockDivergenceCounter.Inc(1)
	}
	blockVariantCounter.Inc(1)
	r.groups[name] = append(variants, block)
	traceLog("Created block variant", "key", name, "stackHash", block.StackHash.String(), "variants", len(r.groups[name]))
	return nil
}

// Variants returns the variant group of the key in creation order. The
// returned slice is a copy.
func (r *Registry) Variants(key BlockKey) []*Block {
	variants := r.groups[key.String()]
	out := make([]*Block, len(variants))
	copy(out, variants)
	return out
}

// Len returns the total number of variants across all keys.
func (r *Registry) Len() int {
	total := 0
	for _, variants := range r.groups {
		total += len(variants)
	}
	return total
}
