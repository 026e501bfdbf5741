package difftrail

import (
	"github.com/codahale/difftrail/internal/words"
)

// Side selects one half of a basis vector.
type Side int

const (
	// Input is the half holding the difference entering the linear layer.
	Input Side = iota

	// Output is the half holding the difference leaving the linear layer.
	Output
)

func (s Side) String() string {
	if s == Output {
		return "output"
	}
	return "input"
}

// A Basis spans the (input difference, output difference) pairs still admissible for one round.
//
// Each row holds Words input words followed by Words output words, and every live row satisfies
// output == Layer(input). Rows are only ever XORed together, so the relation survives elimination.
type Basis struct {
	model   Model
	width   int
	data    []uint32
	order   []int
	rank    int
	scratch []uint32
}

// NewBasis returns a full-rank basis for the model. It panics if the model is invalid.
func NewBasis(m Model) *Basis {
	if err := m.Validate(); err != nil {
		panic(err)
	}

	dim := m.Dim()
	b := &Basis{
		model:   m,
		width:   2 * m.Words,
		data:    make([]uint32, dim*2*m.Words),
		order:   make([]int, dim),
		scratch: make([]uint32, m.Words),
	}
	b.Reset()
	return b
}

// Reset restores the basis to the full-rank identity relation: row i is the unit difference e_i paired with its image
// under the linear layer.
func (b *Basis) Reset() {
	clear(b.data)
	w := b.model.Words
	for i := range b.order {
		row := b.data[i*b.width : (i+1)*b.width]
		row[i/32] = 1 << (i % 32)
		row[w+i/32] = 1 << (i % 32)
		b.model.Layer(row[w:])
		b.order[i] = i
	}
	b.rank = len(b.order)
}

// Rank returns the number of live rows.
func (b *Basis) Rank() int {
	return b.rank
}

// Words returns the number of words in each half of a row.
func (b *Basis) Words() int {
	return b.model.Words
}

// Row returns the i-th live row. The returned slice aliases the basis and is invalidated by the next elimination.
func (b *Basis) Row(i int) []uint32 {
	if i < 0 || i >= b.rank {
		panic("difftrail: row index out of range")
	}
	off := b.order[i] * b.width
	return b.data[off : off+b.width : off+b.width]
}

// Eliminate forces bit to zero in column col of every live row. The first live row with the bit set becomes the pivot:
// it is XORed into every later row that also has the bit set and is then removed, lowering the rank by one. If no live
// row has the bit set, Eliminate does nothing and returns false.
//
// Eliminate panics if col is not in [0, 2*Words) or bit does not have exactly one bit set.
func (b *Basis) Eliminate(col int, bit uint32) bool {
	if col < 0 || col >= b.width {
		panic("difftrail: column out of range")
	}
	if bit == 0 || bit&(bit-1) != 0 {
		panic("difftrail: bit mask must have exactly one bit set")
	}

	for i := range b.rank {
		pivot := b.Row(i)
		if pivot[col]&bit == 0 {
			continue
		}

		for j := i + 1; j < b.rank; j++ {
			if row := b.Row(j); row[col]&bit != 0 {
				words.XOR(row, pivot)
			}
		}

		b.rank--
		b.order[i], b.order[b.rank] = b.order[b.rank], b.order[i]
		return true
	}
	return false
}

// EliminateGroup eliminates bit from each word of a substitution box group on one side, resolving one bit-sliced
// substitution box position. It returns the number of rows removed, between 0 and GroupSize.
func (b *Basis) EliminateGroup(side Side, group int, bit uint32) int {
	if group < 0 || group >= b.model.Groups() {
		panic("difftrail: group out of range")
	}

	removed := 0
	stride := b.model.Groups()
	for k := range b.model.GroupSize {
		if b.Eliminate(int(side)*b.model.Words+group+k*stride, bit) {
			removed++
		}
	}
	return removed
}

// Consistent reports whether every live row satisfies output == Layer(input).
func (b *Basis) Consistent() bool {
	w := b.model.Words
	for i := range b.rank {
		row := b.Row(i)
		copy(b.scratch, row[:w])
		b.model.Layer(b.scratch)
		if !words.Equal(b.scratch, row[w:]) {
			return false
		}
	}
	return true
}
