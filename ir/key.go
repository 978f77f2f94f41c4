package ir

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// BlockKey identifies a jump destination in the legacy assembly. Tags are
// assigned independently in the deploy and runtime code segments, so the
// segment is part of the identity.
type BlockKey struct {
	Segment CodeSegment
	Tag     *big.Int
}

// NewBlockKey builds a key for the destination tag within the given code
// segment. The tag is copied, callers may keep mutating their big integer.
func NewBlockKey(segment CodeSegment, tag *big.Int) BlockKey {
	return BlockKey{Segment: segment, Tag: new(big.Int).Set(tag)}
}

// NewBlockKeyUint is a convenience constructor for tags that fit a uint64.
func NewBlockKeyUint(segment CodeSegment, tag uint64) BlockKey {
	return BlockKey{Segment: segment, Tag: new(big.Int).SetUint64(tag)}
}

// Equal reports whether both keys name the same destination.
func (k BlockKey) Equal(other BlockKey) bool {
	return k.Segment == other.Segment && k.Tag.Cmp(other.Tag) == 0
}

// String renders the key in the canonical form used in diagnostics and in
// generated block names, "dt_<tag>" for deploy code and "rt_<tag>" for
// runtime code.
func (k BlockKey) String() string {
	return fmt.Sprintf("%s_%s", k.Segment.Short(), k.Tag.String())
}

// StackHash is an order-sensitive fingerprint of the provenance labels of an
// emulated stack. Two stack states hash equal only if they have the same
// height and the same label in every slot, which is the equivalence the
// block variant registry keys on.
type StackHash uint64

func (h StackHash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// HashStack fingerprints the stack state. Slots without a provenance label
// contribute their position instead, so two unlabeled stacks of equal height
// still hash equal while any labeled divergence is caught.
func HashStack(elements []Argument) StackHash {
	digest := xxhash.New()
	for index, element := range elements {
		if element.Original != "" {
			_, _ = digest.WriteString(element.Original)
		} else {
			_, _ = digest.WriteString(strconv.Itoa(index))
		}
		_, _ = digest.Write([]byte{0x00})
	}
	return StackHash(digest.Sum64())
}
