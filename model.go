// Package difftrail searches for low-weight differential trails through the linear diffusion layer of an iterated
// permutation.
//
// For each modeled round, a [Basis] spans every (input difference, output difference) pair that is still admissible
// under the round's linear layer. Vectors are bit-sliced: each 32-bit word carries 32 independent trail candidates, one
// per bit plane. A [Searcher] repeatedly collapses the bases, first by eliminating inconsistencies between the output
// activity of one round and the input activity of the next, then by eliminating randomly chosen substitution box
// positions, until every round is reduced to a single vector (a [Solution]) or some round runs out of vectors and the
// attempt is restarted.
//
// Only structural activity is modeled (zero versus nonzero difference at each substitution box), never differential
// probabilities.
package difftrail

import (
	"errors"
	"fmt"

	"github.com/codahale/difftrail/internal/hamsi"
)

// ErrInvalidModel is returned when a [Model] cannot be searched.
var ErrInvalidModel = errors.New("difftrail: invalid model")

// A Model describes the permutation being analyzed.
type Model struct {
	// Rounds is the total number of rounds. One basis is kept for each of the first Rounds-1 rounds.
	Rounds int

	// Words is the number of 32-bit words in the state.
	Words int

	// GroupSize is the number of words feeding each bit-sliced substitution box. Group g consists of the words g,
	// g+G, g+2G, ... where G is Words/GroupSize.
	GroupSize int

	// Layer applies the GF(2)-linear layer in place to the first Words words of its argument.
	Layer func(state []uint32)
}

// Hamsi returns the model of the Hamsi-256 diffusion layer over four rounds: a 4x4 grid of 32-bit words, with each
// substitution box spanning one column of the grid.
func Hamsi() Model {
	return Model{
		Rounds:    4,
		Words:     hamsi.Words,
		GroupSize: 4,
		Layer:     hamsi.Diffuse,
	}
}

// Validate returns an error wrapping [ErrInvalidModel] if m cannot be searched.
func (m Model) Validate() error {
	switch {
	case m.Rounds < 2:
		return fmt.Errorf("%w: need at least 2 rounds, have %d", ErrInvalidModel, m.Rounds)
	case m.Words < 1:
		return fmt.Errorf("%w: need at least 1 word, have %d", ErrInvalidModel, m.Words)
	case m.GroupSize < 1 || m.Words%m.GroupSize != 0:
		return fmt.Errorf("%w: group size %d does not divide %d words", ErrInvalidModel, m.GroupSize, m.Words)
	case m.Layer == nil:
		return fmt.Errorf("%w: no linear layer", ErrInvalidModel)
	}
	return nil
}

// Bases returns the number of bases a search keeps, one per modeled round.
func (m Model) Bases() int {
	return m.Rounds - 1
}

// Groups returns the number of substitution box groups on each side of a round.
func (m Model) Groups() int {
	return m.Words / m.GroupSize
}

// Dim returns the number of bits in the state, which is the rank of a fresh basis.
func (m Model) Dim() int {
	return m.Words * 32
}
