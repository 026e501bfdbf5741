package difftrail

import (
	"context"
	"iter"
	"math/rand/v2"
)

// checkInterval is the number of steps between checks for cancellation.
const checkInterval = 256

// An Event is the outcome of a single search step.
type Event int

const (
	// EventRepair means a mismatch between adjacent rounds was eliminated.
	EventRepair Event = iota

	// EventRelax means the rounds were consistent and a random position was eliminated.
	EventRelax

	// EventEmit means every round had collapsed to a single vector. The solution is available from Last and the
	// bases have been reset.
	EventEmit

	// EventDead means some round ran out of vectors. The attempt was discarded and the bases have been reset.
	EventDead
)

func (e Event) String() string {
	switch e {
	case EventRepair:
		return "repair"
	case EventRelax:
		return "relax"
	case EventEmit:
		return "emit"
	case EventDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Stats counts what a Searcher has done.
type Stats struct {
	Steps       uint64 // steps taken
	Repairs     uint64 // mismatches eliminated
	Relaxations uint64 // random positions eliminated
	Emitted     uint64 // solutions found
	DeadEnds    uint64 // attempts abandoned because a round ran out of vectors
	Attempts    uint64 // attempts started, including the current one
}

// A Searcher runs the randomized trail search. It owns one basis per modeled round, which it mutates in place.
//
// Searcher instances are not concurrent-safe.
type Searcher struct {
	model Model
	rng   *rand.Rand
	bases []*Basis
	masks [][]uint32
	last  Solution
	stats Stats
}

// NewSearcher returns a Searcher for the model whose random choices are drawn from src. Searchers created with sources
// in the same state make the same choices.
func NewSearcher(m Model, src rand.Source) (*Searcher, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	s := &Searcher{
		model: m,
		rng:   rand.New(src),
		bases: make([]*Basis, m.Bases()),
		masks: make([][]uint32, m.Bases()),
		stats: Stats{Attempts: 1},
	}
	for r := range s.bases {
		s.bases[r] = NewBasis(m)
		s.masks[r] = make([]uint32, 0, 2*m.Groups())
	}
	return s, nil
}

// Model returns the model being searched.
func (s *Searcher) Model() Model {
	return s.model
}

// Basis returns the basis of round r.
func (s *Searcher) Basis(r int) *Basis {
	return s.bases[r]
}

// Stats returns the searcher's counters.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// Last returns the most recently emitted solution.
func (s *Searcher) Last() Solution {
	return s.last
}

// Step performs one transition of the search.
//
// If two adjacent rounds disagree about whether some substitution box is active, the disagreement is eliminated.
// Otherwise, if every round has collapsed to a single vector, the vectors are emitted as a solution and a new attempt
// begins. Otherwise, a random position is eliminated. If any round is left without vectors, the attempt is abandoned
// and a new one begins.
func (s *Searcher) Step() Event {
	s.stats.Steps++

	for r, b := range s.bases {
		s.masks[r] = b.Masks(s.masks[r][:0])
	}

	if t, ok := findMismatch(s.masks, s.model.Groups()); ok {
		s.stats.Repairs++
		return s.apply(t, EventRepair)
	}

	if s.converged() {
		s.last = s.solution()
		s.stats.Emitted++
		s.restart()
		return EventEmit
	}

	s.stats.Relaxations++
	return s.apply(randomTarget(s.rng, len(s.bases), s.model.Groups()), EventRelax)
}

// Next steps until a solution is emitted and returns it. It returns ctx.Err() if ctx is canceled first.
func (s *Searcher) Next(ctx context.Context) (Solution, error) {
	for i := 0; ; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Solution{}, err
			}
		}

		if s.Step() == EventEmit {
			return s.last, nil
		}
	}
}

// Solutions returns a sequence of emitted solutions. The sequence ends when ctx is canceled.
func (s *Searcher) Solutions(ctx context.Context) iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		for {
			sol, err := s.Next(ctx)
			if err != nil || !yield(sol) {
				return
			}
		}
	}
}

// Run passes emitted solutions to sink until limit solutions have been emitted, sink returns an error, or ctx is
// canceled. A limit of zero means no limit.
func (s *Searcher) Run(ctx context.Context, limit int, sink func(Solution) error) error {
	for n := 0; limit == 0 || n < limit; n++ {
		sol, err := s.Next(ctx)
		if err != nil {
			return err
		}

		if err := sink(sol); err != nil {
			return err
		}
	}
	return nil
}

func (s *Searcher) apply(t target, e Event) Event {
	s.bases[t.round].EliminateGroup(t.side, t.group, t.bit)

	for _, b := range s.bases {
		if b.Rank() == 0 {
			s.stats.DeadEnds++
			s.restart()
			return EventDead
		}
	}
	return e
}

func (s *Searcher) converged() bool {
	for _, b := range s.bases {
		if b.Rank() != 1 {
			return false
		}
	}
	return true
}

func (s *Searcher) solution() Solution {
	sol := Solution{Words: s.model.Words, Rounds: make([]RoundTrail, len(s.bases))}
	for r, b := range s.bases {
		row := b.Row(0)
		sol.Rounds[r] = RoundTrail{
			Weight: b.Weight(row),
			Vector: append([]uint32(nil), row...),
		}
	}
	return sol
}

func (s *Searcher) restart() {
	for _, b := range s.bases {
		b.Reset()
	}
	s.stats.Attempts++
}
