// Package engine drives the simulation: the once-per-day cycle that
// reseeds the random stream and resolves the day's event, and the action
// resolver that applies player choices. All state flows through the
// store's merge-patch contract.
package engine

import (
	"github.com/talgya/daily-empire/internal/clock"
	"github.com/talgya/daily-empire/internal/event"
	"github.com/talgya/daily-empire/internal/rng"
	"github.com/talgya/daily-empire/internal/state"
)

// Engine owns the day-cycle state machine and the action dispatch table.
// Strictly single-threaded: at most one action or daily cycle runs at a
// time, and each runs to completion before committing.
type Engine struct {
	store *state.Store
	clk   clock.Clock
	rand  event.Roller
	daily *event.Table
}

// New wires an engine over a store and clock.
func New(store *state.Store, clk clock.Clock) *Engine {
	return &Engine{
		store: store,
		clk:   clk,
		daily: dailyEventTable(),
	}
}

// Store exposes the underlying state store.
func (e *Engine) Store() *state.Store { return e.store }

// reseed derives a fresh stream for the current simulation day. Called at
// load and whenever the day counter changes, so each day — real or
// manually advanced — gets its own independent stream.
func (e *Engine) reseed() {
	e.rand = rng.New(rng.DailySeed(e.clk.Now(), e.store.State().Day))
}

// Bootstrap loads persisted state (or builds first-day defaults) and
// brings the simulation up to today. Safe to call repeatedly: a second
// load within the same day is a no-op.
func (e *Engine) Bootstrap() error {
	today := clock.Today(e.clk)
	fresh, err := e.store.Load(today)
	if err != nil {
		return err
	}

	e.reseed()
	if fresh {
		return e.RunDailyCycle()
	}
	return e.EnsureDay()
}

// EnsureDay detects a calendar-day rollover since the last interaction
// and runs the pending daily cycle. Long-running servers call this before
// serving any request; within the same day it is a no-op.
func (e *Engine) EnsureDay() error {
	today := clock.Today(e.clk)
	s := e.store.State()
	if s.LastPlayedDate != today {
		e.store.Patch(state.Patch{
			Day:                 state.Int(s.Day + 1),
			LastPlayedDate:      state.Str(today),
			ManualDayAdvances:   state.Int(0),
			DailyEventTriggered: state.Bool(false),
		})
		e.reseed()
	}
	return e.RunDailyCycle()
}

// Reset discards all progress and starts a fresh first day.
func (e *Engine) Reset() error {
	if err := e.store.Reset(clock.Today(e.clk)); err != nil {
		return err
	}
	e.reseed()
	return e.RunDailyCycle()
}
