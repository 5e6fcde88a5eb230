package engine

import (
	"fmt"

	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/event"
	"github.com/talgya/daily-empire/internal/state"
)

// Minigame names, indexed by day so each calendar day offers a different
// one. The minigame UIs themselves live in the presentation layer; the
// engine only schedules a game and applies its reward.
var minigameNames = []string{
	"sequence_memory",
	"strategic_decision",
	"resource_optimization",
	"negotiation",
	"crisis_management",
}

// MinigameForDay returns the minigame scheduled for a simulation day.
func MinigameForDay(day int) string {
	return minigameNames[(day-1+len(minigameNames))%len(minigameNames)]
}

// actPlayMinigame schedules today's minigame. The once-per-day check runs
// before the action point is spent, matching the rest of the daily
// latches.
func (e *Engine) actPlayMinigame(Params) (event.Result, state.Patch, bool) {
	s := e.store.State()
	if s.DailyActions.MinigamePlayed {
		return event.Result{Message: "Today's minigame has already been played."}, state.Patch{}, false
	}
	return e.costed(func(Params) event.Result {
		s := e.store.State()
		actions := s.DailyActions
		actions.MinigamePlayed = true
		name := MinigameForDay(s.Day)
		return event.Result{
			Patch:      state.Patch{DailyActions: &actions},
			Message:    fmt.Sprintf("The court gathers for a round of %s.", name),
			ScenarioID: content.MinigamePrefix + name,
		}
	}, nil)
}

// ApplyMinigameReward grades a finished minigame and pays out its stat
// reward, returning play to the intro screen. The payout is reachable
// only while the matching minigame scenario is active; anything else is
// refused, so a round played once cannot be cashed in twice.
func (e *Engine) ApplyMinigameReward(name string, score int) (Outcome, error) {
	if e.store.State().CurrentScenarioID != content.MinigamePrefix+name {
		return Outcome{Message: "No such minigame is underway."}, nil
	}

	stats := map[string]int{}
	message := ""

	switch name {
	case "sequence_memory":
		switch {
		case score >= 51:
			stats = map[string]int{
				state.StatGrowth: 15, state.StatStrategy: 10, state.StatInfluence: 5,
			}
			message = "A flawless memory! The empire's intelligence sharpens."
		case score >= 21:
			stats = map[string]int{state.StatGrowth: 10, state.StatStrategy: 5}
			message = "An excellent memory."
		case score >= 0:
			stats = map[string]int{state.StatGrowth: 5}
			message = "Memory training complete."
		default:
			message = "Training complete, but no reward this time."
		}
	case "strategic_decision":
		stats = map[string]int{state.StatStrategy: 10}
		message = "A wise decision."
	case "resource_optimization":
		stats = map[string]int{state.StatGrowth: 5, state.StatStrategy: 5}
		message = "Resources allocated with precision."
	case "negotiation":
		stats = map[string]int{state.StatInfluence: 10}
		message = "A successful negotiation."
	case "crisis_management":
		stats = map[string]int{state.StatStrategy: 10, state.StatInfluence: 5}
		message = "The crisis was contained."
	default:
		message = fmt.Sprintf("The round of %s is over.", name)
	}

	s := e.store.State()
	patched := map[string]int{}
	for stat, bonus := range stats {
		patched[stat] = s.Stat(stat) + bonus
	}

	err := e.store.Apply(state.Patch{
		Statistics:        patched,
		CurrentScenarioID: state.Str(content.ScenarioIntro),
	}, message)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{OK: true, Message: message}, nil
}
