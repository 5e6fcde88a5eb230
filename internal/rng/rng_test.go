package rng

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDeterminism(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 100; i++ {
		va := a.Float()
		vb := b.Float()
		require.Equal(t, va, vb, "draw %d diverged", i)
		require.GreaterOrEqual(t, va, 0.0)
		require.Less(t, va, 1.0)
	}
}

func TestStreamSeedsDiverge(t *testing.T) {
	a := New(12345)
	b := New(12346)

	same := 0
	for i := 0; i < 50; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	assert.Less(t, same, 5, "adjacent seeds should produce different sequences")
}

func TestStreamKnownSequence(t *testing.T) {
	// First draws from seed 1 must never change; a different sequence
	// here means saved games replay their days differently.
	s := New(1)
	first := s.Float()
	second := s.Float()

	s2 := New(1)
	assert.Equal(t, first, s2.Float())
	assert.Equal(t, second, s2.Float())
	assert.NotEqual(t, first, second)
}

func TestIntnBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := Intn(s, 7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}

	assert.Panics(t, func() { Intn(New(1), 0) })
}

func TestIntInRange(t *testing.T) {
	s := New(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := IntInRange(s, 10, 3)
		require.GreaterOrEqual(t, v, 7)
		require.LessOrEqual(t, v, 13)
		seen[v] = true
	}
	// All seven values should show up over a thousand draws.
	assert.Len(t, seen, 7)

	assert.Equal(t, 5, IntInRange(s, 5, 0))
}

func TestPickIndexesCollection(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		v := Pick(s, 4)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 4)
	}
}

func TestDailySeed(t *testing.T) {
	date := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, int64(20260314+1), DailySeed(date, 1))
	assert.Equal(t, int64(20260314+42), DailySeed(date, 42))

	// Advancing the sim day shifts the seed even on the same date.
	assert.NotEqual(t, DailySeed(date, 1), DailySeed(date, 2))

	// Time of day is irrelevant.
	later := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, DailySeed(date, 3), DailySeed(later, 3))
}
