package difftrail //nolint:testpackage // testing internals

import (
	"math/bits"

	"github.com/codahale/difftrail/internal/testdata"
)

// toyLayer is a small invertible GF(2)-linear layer over four words.
func toyLayer(s []uint32) {
	s[0] ^= bits.RotateLeft32(s[1], 3)
	s[1] ^= s[2] << 1
	s[2] ^= bits.RotateLeft32(s[3], 7)
	s[3] ^= s[0]
}

func identityLayer([]uint32) {}

// toyModel is a four-word model with two substitution box groups of two words each.
func toyModel(rounds int) Model {
	return Model{Rounds: rounds, Words: 4, GroupSize: 2, Layer: toyLayer}
}

// identityModel is a four-word model with a single substitution box group and no diffusion.
func identityModel(rounds int) Model {
	return Model{Rounds: rounds, Words: 4, GroupSize: 4, Layer: identityLayer}
}

// bruteMasks recomputes the active masks of b one word at a time.
func bruteMasks(b *Basis) []uint32 {
	m := b.model
	groups := m.Groups()
	masks := make([]uint32, 2*groups)
	for i := range b.Rank() {
		row := b.Row(i)
		for side := range 2 {
			for g := range groups {
				for k := range m.GroupSize {
					masks[side*groups+g] |= row[side*m.Words+g+k*groups]
				}
			}
		}
	}
	return masks
}

func snapshot(b *Basis) [][]uint32 {
	rows := make([][]uint32, b.Rank())
	for i := range rows {
		rows[i] = append([]uint32(nil), b.Row(i)...)
	}
	return rows
}

func newTestSearcher(m Model, label string) *Searcher {
	s, err := NewSearcher(m, testdata.New(label))
	if err != nil {
		panic(err)
	}
	return s
}
