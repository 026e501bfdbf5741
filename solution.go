package difftrail

import (
	"fmt"
	"io"
)

// A RoundTrail is the single difference pair a round collapsed to.
type RoundTrail struct {
	// Weight is the number of active substitution boxes on both sides of the round.
	Weight int

	// Vector holds the input difference words followed by the output difference words.
	Vector []uint32
}

// Input returns the input difference.
func (t RoundTrail) Input() []uint32 {
	return t.Vector[:len(t.Vector)/2]
}

// Output returns the output difference.
func (t RoundTrail) Output() []uint32 {
	return t.Vector[len(t.Vector)/2:]
}

// A Solution is one candidate trail: a difference pair for each modeled round, in order.
type Solution struct {
	Words  int
	Rounds []RoundTrail
}

// Weight returns the total weight of the trail.
func (s Solution) Weight() int {
	w := 0
	for _, r := range s.Rounds {
		w += r.Weight
	}
	return w
}

// AppendText appends the text form of the solution to b. Each round is written as its weight in decimal followed by
// its words in hexadecimal, four to a line, with a blank line after each half. The solution ends with a "----" line.
func (s Solution) AppendText(b []byte) ([]byte, error) {
	for _, r := range s.Rounds {
		half := s.Words
		if half == 0 {
			half = len(r.Vector) / 2
		}

		b = fmt.Appendf(b, "%d\n", r.Weight)
		for i, w := range r.Vector {
			b = fmt.Appendf(b, "%08X ", w)
			if i%4 == 3 {
				b = append(b, '\n')
			}
			if half > 0 && i%half == half-1 {
				b = append(b, '\n')
			}
		}
	}
	return append(b, "----\n"...), nil
}

// WriteTo writes the text form of the solution to w.
func (s Solution) WriteTo(w io.Writer) (int64, error) {
	b, _ := s.AppendText(nil)
	n, err := w.Write(b)
	return int64(n), err
}

// String returns the text form of the solution.
func (s Solution) String() string {
	b, _ := s.AppendText(nil)
	return string(b)
}
