// Package engagement implements the SugarLog feedback engine.
// Every logged intake turns into a feedback bundle: streak transition,
// XP award, weighted-random reward, and rule-based insight/suggestion text.
// All computations are pure over their inputs; "now" and randomness come
// from injected Clock and RandomSource so tests stay deterministic.
package engagement

import (
	"math/rand"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// RandomSource supplies uniform randomness for XP bonuses and rewards.
type RandomSource interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// NewRand returns a seeded RandomSource. Fixed seeds give reproducible
// bonus and reward sequences in tests.
func NewRand(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SystemRand returns a time-seeded RandomSource for production use.
func SystemRand() RandomSource {
	return NewRand(time.Now().UnixNano())
}
