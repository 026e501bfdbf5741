package difftrail

import (
	"math/rand/v2"
)

// target names one bit-sliced substitution box position of one round.
type target struct {
	round int
	side  Side
	group int
	bit   uint32
}

// findMismatch scans the round boundaries in order for a substitution box which might be active on one side of the
// boundary but is certainly inactive on the other. masks holds each round's active masks as returned by Masks.
//
// For the lowest such bit of the first mismatching group, the fault is placed on the output side of the earlier round
// if the later round's input mask lacks the bit, and on the input side of the later round otherwise.
func findMismatch(masks [][]uint32, groups int) (target, bool) {
	for r := 1; r < len(masks); r++ {
		for g := range groups {
			out, in := masks[r-1][groups+g], masks[r][g]
			diff := out ^ in
			if diff == 0 {
				continue
			}

			bit := diff & -diff
			if in&bit == 0 {
				return target{round: r - 1, side: Output, group: g, bit: bit}, true
			}
			return target{round: r, side: Input, group: g, bit: bit}, true
		}
	}
	return target{}, false
}

// randomTarget picks a round, group, side, and bit uniformly at random.
func randomTarget(rng *rand.Rand, rounds, groups int) target {
	round := rng.IntN(rounds)
	group := rng.IntN(groups)
	side := Side(rng.IntN(2))
	bit := uint32(1) << rng.IntN(32)
	return target{round: round, side: side, group: group, bit: bit}
}
