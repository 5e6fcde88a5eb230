package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/event"
	"github.com/talgya/daily-empire/internal/rng"
	"github.com/talgya/daily-empire/internal/state"
)

// dailyEventTable is the day's random-event catalog. Weights mirror the
// original tuning; gated entries drop out of the draw when their
// precondition fails, and a quiet day is the guaranteed fallback.
func dailyEventTable() *event.Table {
	quiet := event.Entry{
		ID:     "quiet_day",
		Weight: 3,
		Effect: func(s *state.SimulationState, r event.Roller) event.Result {
			return event.Result{ScenarioID: content.ScenarioIntro}
		},
	}

	return event.NewTable(quiet,
		event.Entry{
			ID:     "rebellion",
			Weight: 3,
			Effect: func(s *state.SimulationState, r event.Roller) event.Result {
				return event.Result{
					Patch: state.Patch{
						Resources: map[string]int{
							state.ResManpower: max(0, s.Resource(state.ResManpower)-10),
						},
						Statistics: map[string]int{
							state.StatOrder: s.Stat(state.StatOrder) - 5,
						},
					},
					Message:    "Rebellion broke out in the provinces. ",
					ScenarioID: content.ScenarioRebellion,
				}
			},
		},
		event.Entry{
			ID:     "plague",
			Weight: 3,
			Effect: func(s *state.SimulationState, r event.Roller) event.Result {
				return event.Result{
					Patch: state.Patch{
						Resources: map[string]int{
							state.ResGold: max(0, s.Resource(state.ResGold)-10),
						},
					},
					Message:    "Plague reached the capital. ",
					ScenarioID: content.ScenarioPlague,
				}
			},
		},
		event.Entry{
			ID:     "conflict",
			Weight: 4,
			Eligible: func(s *state.SimulationState) bool {
				return len(s.Subordinates) >= 2
			},
			Effect: func(s *state.SimulationState, r event.Roller) event.Result {
				return event.Result{
					Message:    "Your advisors are circling each other. ",
					ScenarioID: content.ScenarioConflict,
				}
			},
		},
		event.Entry{
			ID:     "new_subordinate",
			Weight: 4,
			Eligible: func(s *state.SimulationState) bool {
				return s.HasBuilt(state.BuildingPalace) &&
					len(s.Subordinates) < s.MaxSubordinates
			},
			Effect: func(s *state.SimulationState, r event.Roller) event.Result {
				candidate := generateSubordinate(r)
				return event.Result{
					Patch:      state.Patch{PendingSubordinate: &candidate},
					Message:    fmt.Sprintf("%s seeks a place at court. ", candidate.Name),
					ScenarioID: content.ScenarioNewSubordinate,
				}
			},
		},
		event.Entry{
			ID:     "envoy_visit",
			Weight: 3,
			Eligible: func(s *state.SimulationState) bool {
				return s.HasBuilt(state.BuildingPalace)
			},
			Effect: func(s *state.SimulationState, r event.Roller) event.Result {
				return event.Result{
					Message:    "A foreign envoy has arrived. ",
					ScenarioID: content.ScenarioEnvoyVisit,
				}
			},
		},
		quiet,
	)
}

var (
	candidateNames         = []string{"Hannibal", "Temujin", "Sun Tzu", "Napoleon"}
	candidatePersonalities = []string{"cold-blooded", "ambitious", "careful", "daring"}
	candidateSkills        = []string{
		state.SkillTactics, state.SkillDiplomacy,
		state.SkillStewardship, state.SkillIntelligence,
	}
)

// generateSubordinate rolls a hire candidate from the daily stream. The
// id is a fresh UUID — identity must stay unique across hires even when
// two days roll the same name.
func generateSubordinate(r event.Roller) state.Subordinate {
	return state.Subordinate{
		ID:          uuid.NewString(),
		Name:        candidateNames[rng.Pick(r, len(candidateNames))],
		Personality: candidatePersonalities[rng.Pick(r, len(candidatePersonalities))],
		Skill:       candidateSkills[rng.Pick(r, len(candidateSkills))],
		Loyalty:     50,
	}
}
