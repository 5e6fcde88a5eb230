// Package event implements weighted-outcome resolution: a finite set of
// alternatives, one of which is selected per invocation with probability
// proportional to its weight among the currently eligible entries.
package event

import "github.com/talgya/daily-empire/internal/state"

// Roller yields uniform floats in [0, 1). Satisfied by rng.Stream; tests
// substitute scripted values.
type Roller interface {
	Float() float64
}

// Result is what an outcome does to the world: a state patch, a narrative
// message, and the scenario the player lands on. Failed marks an attempt
// that was refused or came up empty; any patch it carries (a consumed
// action point, a penalty) is still applied.
type Result struct {
	Patch      state.Patch
	Message    string
	ScenarioID string
	Failed     bool
}

// Entry is one weighted alternative. A nil Eligible predicate means
// always eligible. Weight must be positive.
type Entry struct {
	ID       string
	Weight   float64
	Eligible func(s *state.SimulationState) bool
	Effect   func(s *state.SimulationState, r Roller) Result
}

// Table selects among entries, falling back to a designated default when
// no entry is eligible. Selection never fails.
type Table struct {
	fallback Entry
	entries  []Entry
}

// NewTable builds a table. The fallback is used when the eligible set is
// empty; it needs no weight.
func NewTable(fallback Entry, entries ...Entry) *Table {
	return &Table{fallback: fallback, entries: entries}
}

// Select picks exactly one entry, consuming exactly one draw from r
// regardless of table size. The draw is scaled onto the total eligible
// weight and the entries are walked accumulating weight; the first entry
// whose cumulative weight reaches the draw wins.
func (t *Table) Select(s *state.SimulationState, r Roller) Entry {
	draw := r.Float()

	total := 0.0
	for _, e := range t.entries {
		if e.Eligible == nil || e.Eligible(s) {
			total += e.Weight
		}
	}
	if total <= 0 {
		return t.fallback
	}

	target := draw * total
	cum := 0.0
	for _, e := range t.entries {
		if e.Eligible != nil && !e.Eligible(s) {
			continue
		}
		cum += e.Weight
		if cum >= target {
			return e
		}
	}
	// Floating accumulation can land a hair short of total.
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Eligible == nil || e.Eligible(s) {
			return e
		}
	}
	return t.fallback
}
