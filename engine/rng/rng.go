package rng

import "math/rand"

// Source is the only randomness the simulation consumes. Weighted terrain
// selection, AI tie-breaking, decision jitter, drop rolls and forest
// destruction all draw from it.
type Source interface {
	Float64() float64 // [0, 1)
	Intn(n int) int   // [0, n)
}

// Rand is a seeded Source backed by math/rand
type Rand struct {
	r *rand.Rand
}

// New creates a seeded Source. Equal seeds replay equal runs.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))} // #nosec G404 -- game only
}

func (r *Rand) Float64() float64 { return r.r.Float64() }

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.Intn(n)
}

// Scripted replays a fixed sequence of floats. Intn maps the next float into
// [0, n). When the script runs out it repeats Fallback.
type Scripted struct {
	Values   []float64
	Fallback float64
	pos      int
}

// NewScripted creates a Scripted source returning vals in order, then 0.
func NewScripted(vals ...float64) *Scripted {
	return &Scripted{Values: vals}
}

func (s *Scripted) Float64() float64 {
	if s.pos < len(s.Values) {
		v := s.Values[s.pos]
		s.pos++
		return v
	}
	return s.Fallback
}

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Consumed reports how many scripted values have been read.
func (s *Scripted) Consumed() int { return s.pos }

// Pick returns an index into weights chosen proportionally to its weight.
// Non-positive weights are never chosen; if every weight is non-positive
// the result is -1.
func Pick(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if roll < w {
			return i
		}
		roll -= w
	}
	return last
}
