// Package rng provides the deterministic random stream that drives daily
// outcomes. Every calendar day gets its own stream, so reloading the game
// replays the same day identically.
package rng

import "time"

// Stream is a mulberry32 generator: one 32-bit state word advanced by a
// fixed odd increment, mixed with two xorshift/multiply rounds per draw.
// Same seed ⇒ identical sequence on every platform. Not cryptographically
// secure, which is fine — the goal is per-day reproducibility.
type Stream struct {
	state uint32
}

// New creates a stream from an integer seed.
func New(seed int64) *Stream {
	return &Stream{state: uint32(seed)}
}

// Float returns the next value in [0, 1).
func (s *Stream) Float() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t += (t ^ (t >> 7)) * (t | 61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Source is anything that yields uniform floats in [0, 1). The helpers
// below take a Source rather than a *Stream so callers holding a
// narrower roller interface (or a scripted test double) can use them.
type Source interface {
	Float() float64
}

// Intn returns an integer in [0, n). Panics if n <= 0.
func Intn(r Source, n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(r.Float() * float64(n))
}

// IntInRange maps one draw uniformly onto [base-variance, base+variance].
func IntInRange(r Source, base, variance int) int {
	if variance <= 0 {
		return base
	}
	return base - variance + Intn(r, 2*variance+1)
}

// Pick returns a random index into a collection of length n.
func Pick(r Source, n int) int {
	return Intn(r, n)
}

// DailySeed packs a calendar date and the simulation day counter into a
// stream seed: year*10000 + month*100 + day + simDay. Manual day advances
// bump simDay, so each advanced day gets an independent stream instead of
// extending the previous one.
func DailySeed(date time.Time, simDay int) int64 {
	encoded := date.Year()*10000 + int(date.Month())*100 + date.Day()
	return int64(encoded) + int64(simDay)
}
