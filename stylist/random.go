package stylist

import "math/rand/v2"

// RandomSource yields uniform draws in [0,1). Every coin flip and pick of the
// assembler goes through it so a scripted source makes generation repeatable.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultSource is safe for concurrent use.
var DefaultSource RandomSource = globalSource{}

// FixedSource returns the same value for every draw.
type FixedSource float64

func (f FixedSource) Float64() float64 {
	return float64(f)
}

// SequenceSource replays draws in order and wraps around when exhausted.
type SequenceSource struct {
	Values []float64
	next   int
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws reports how many values were consumed.
func (s *SequenceSource) Draws() int {
	return s.next
}

// CountingSource wraps another source and counts the draws taken from it.
type CountingSource struct {
	Source RandomSource
	Count  int
}

func (c *CountingSource) Float64() float64 {
	c.Count++
	return c.Source.Float64()
}

// pickIndex maps a draw onto [0,n).
func pickIndex(r RandomSource, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
