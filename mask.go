package difftrail

import (
	"github.com/codahale/difftrail/internal/words"
)

// Masks appends the active masks of the basis to dst and returns the extended slice. The first Groups words summarize
// the input side and the next Groups words the output side. Bit j of the word for group g is set if any live row has a
// nonzero difference in bit j of any word of the group, i.e. if that substitution box might be active.
func (b *Basis) Masks(dst []uint32) []uint32 {
	groups := b.model.Groups()
	for side := range 2 {
		for g := range groups {
			var m uint32
			for i := range b.rank {
				m |= b.groupOr(b.Row(i), Side(side), g)
			}
			dst = append(dst, m)
		}
	}
	return dst
}

// Weight returns the number of active substitution boxes of a single row, counting both sides.
func (b *Basis) Weight(row []uint32) int {
	w := 0
	for side := range 2 {
		for g := range b.model.Groups() {
			w += words.OnesCount(b.groupOr(row, Side(side), g))
		}
	}
	return w
}

func (b *Basis) groupOr(row []uint32, side Side, group int) uint32 {
	stride := b.model.Groups()
	return words.OrStride(row, int(side)*b.model.Words+group, stride, b.model.GroupSize)
}

// MaskWeight returns the total number of possibly active substitution boxes summarized by a set of masks.
func MaskWeight(masks []uint32) int {
	w := 0
	for _, m := range masks {
		w += words.OnesCount(m)
	}
	return w
}
