package query

import "math/rand/v2"

// Draw is the outcome of a random selection. Found is false when nothing was
// eligible; that is a normal result, not an error.
type Draw[R Record] struct {
	Record R
	Found  bool
}

// None reports whether the draw came back empty.
func (d Draw[R]) None() bool { return !d.Found }

// IntN returns a uniform integer in [0, n). n is always > 0 when called.
type IntN func(n int) int

// Selector picks one element uniformly at random.
//
// The default source is math/rand/v2's top-level generator, which is safe for
// concurrent use. It is not suitable for adversarial settings.
type Selector struct {
	intN IntN
}

// NewSelector returns a selector backed by intN. A nil intN uses rand.IntN.
func NewSelector(intN IntN) *Selector {
	if intN == nil {
		intN = rand.IntN
	}
	return &Selector{intN: intN}
}

// SelectOne draws one record from eligible. Each element has probability 1/n.
func SelectOne[R Record](s *Selector, eligible []R) Draw[R] {
	if len(eligible) == 0 {
		return Draw[R]{}
	}
	if s == nil {
		s = NewSelector(nil)
	}
	return Draw[R]{Record: eligible[s.intN(len(eligible))], Found: true}
}
