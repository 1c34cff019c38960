package engine

import "sync"

// Sequence replays a fixed list of draws, wrapping around when exhausted.
// Useful for scripted matches and tests.
type Sequence struct {
	mu    sync.Mutex
	draws []float64
	next  int
}

func NewSequence(draws ...float64) *Sequence {
	return &Sequence{draws: draws}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

// Consumed reports how many draws have been taken so far.
func (s *Sequence) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// DrawFor returns the uniform draw that makes RollDamage produce base amount
// for the given maxPower. Handy for building sequences.
func DrawFor(amount, maxPower int) float64 {
	if maxPower < MinDamage {
		maxPower = MinDamage
	}
	span := float64(maxPower - MinDamage + 1)
	return (float64(amount-MinDamage) + 0.5) / span
}

// Draws for the crit check.
const (
	Crit   = 0.0
	NoCrit = 0.99
)
