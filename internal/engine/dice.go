package engine

import (
	"math/rand"
	"time"
)

const (
	// MinDamage is the floor of every non-critical roll.
	MinDamage = 5
	// CritChance is the probability that a roll is doubled.
	CritChance = 0.15
)

// Source supplies uniform draws in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// DamageRoll is the result of a single attack roll.
type DamageRoll struct {
	Amount   int  `json:"amount"`
	Critical bool `json:"critical"`
}

// RollDamage rolls a base amount uniformly in [MinDamage, maxPower] and then,
// on a second independent draw, doubles it with probability CritChance.
// maxPower below MinDamage is treated as MinDamage.
func RollDamage(src Source, maxPower int) DamageRoll {
	if maxPower < MinDamage {
		maxPower = MinDamage
	}
	span := maxPower - MinDamage + 1
	base := int(src.Float64()*float64(span)) + MinDamage
	// guard against sources that hand back 1.0
	if base > maxPower {
		base = maxPower
	}
	if src.Float64() < CritChance {
		return DamageRoll{Amount: base * 2, Critical: true}
	}
	return DamageRoll{Amount: base}
}

// NewRNG returns a seeded source. Seed 0 seeds from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
