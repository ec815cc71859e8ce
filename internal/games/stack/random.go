package stack

import "math/rand"

// RandomSource supplies the engine's randomness: spawn direction and
// rotation hints for falling pieces. Tests inject fixed sequences.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// NewRandom returns a seeded source. The same seed replays the same run.
func NewRandom(seed int64) RandomSource {
	//#nosec G404 -- gameplay randomness, not security sensitive
	return rand.New(rand.NewSource(seed))
}

// SequenceRandom replays a fixed list of values, cycling when exhausted.
type SequenceRandom struct {
	Values []float64
	next   int
}

// Float64 returns the next value in the sequence.
func (s *SequenceRandom) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
