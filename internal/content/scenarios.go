// Package content holds the static scenario catalog: id → display text
// and available choices. The engine only reads it, except for the narrow
// template fills (generated subordinates, dynamic building lists).
package content

import (
	"fmt"

	"github.com/talgya/daily-empire/internal/state"
)

// Scenario ids referenced by the engine.
const (
	ScenarioIntro          = "intro"
	ScenarioRebellion      = "daily_event_rebellion"
	ScenarioPlague         = "daily_event_plague"
	ScenarioConflict       = "daily_event_conflict"
	ScenarioNewSubordinate = "daily_event_new_subordinate"
	ScenarioEnvoyVisit     = "daily_event_envoy_visit"
	ScenarioCollection     = "action_resource_collection"
	ScenarioBuildings      = "action_building_management"
	ScenarioConflictResult = "conflict_resolution_result"
	MinigamePrefix         = "minigame_"
)

// GameOverScenario returns the terminal scenario id for a failed statistic.
func GameOverScenario(stat string) string {
	return "game_over_" + stat
}

// GameOverResources is the terminal scenario for exhausted resources.
const GameOverResources = "game_over_resources"

// Choice is one button the presentation layer offers.
type Choice struct {
	Text   string            `json:"text"`
	Action string            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

// Scenario is one narrative/choice screen.
type Scenario struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
	Final   bool     `json:"final,omitempty"`
}

var introChoices = []Choice{
	{Text: "Patrol the territory", Action: "patrol"},
	{Text: "Talk with an advisor", Action: "talk"},
	{Text: "Convene a strategy meeting", Action: "hold_meeting"},
	{Text: "Collect resources", Action: "show_collection"},
	{Text: "Manage imperial buildings", Action: "show_buildings"},
	{Text: "Analyze intelligence reports", Action: "analyze_intelligence"},
	{Text: "Develop imperial technology", Action: "develop_technology"},
	{Text: "Play today's minigame", Action: "play_minigame"},
}

var catalog = map[string]Scenario{
	ScenarioIntro: {
		Text:    "What are your orders?",
		Choices: introChoices,
	},
	ScenarioRebellion: {
		Text: "Unrest in the provinces flared into open rebellion. It was " +
			"put down at once, at a cost in manpower.",
		Choices: []Choice{{Text: "Understood", Action: "return"}},
	},
	ScenarioPlague: {
		Text: "Plague swept through the capital. The treasury paid for " +
			"quarantine and physicians.",
		Choices: []Choice{{Text: "Understood", Action: "return"}},
	},
	ScenarioConflict: {
		Text: "A power struggle is brewing between Machiavelli and Caesar. " +
			"Both are watching your next decision.",
		Choices: []Choice{
			{Text: "Back Machiavelli's scheme", Action: "handle_conflict",
				Params: map[string]string{"first": "machiavelli", "second": "caesar"}},
			{Text: "Praise Caesar's victories", Action: "handle_conflict",
				Params: map[string]string{"first": "caesar", "second": "machiavelli"}},
			{Text: "Remind them of a common enemy", Action: "mediate_conflict"},
			{Text: "Let their rivalry run", Action: "ignore_conflict"},
		},
	},
	ScenarioNewSubordinate: {
		// Text is templated per candidate; see Resolve.
		Choices: []Choice{
			{Text: "Recruit them at once", Action: "welcome_subordinate"},
			{Text: "Test their loyalty first", Action: "observe_subordinate"},
			{Text: "Turn them away", Action: "reject_subordinate"},
		},
	},
	ScenarioEnvoyVisit: {
		Text: "An envoy from a neighboring empire has arrived. A gift of 50 " +
			"gold would buy word of an ancient relic.",
		Choices: []Choice{
			{Text: "Grant the gift", Action: "accept_deal"},
			{Text: "Refuse the request", Action: "decline_deal"},
		},
	},
	ScenarioCollection: {
		Text: "Which resource shall we collect?",
		Choices: []Choice{
			{Text: "Levy taxes (gold)", Action: "collect_gold"},
			{Text: "Draft recruits (manpower)", Action: "draft_manpower"},
			{Text: "Gather materials", Action: "gather_materials"},
			{Text: "Back", Action: "return"},
		},
	},
	ScenarioBuildings: {
		Text: "Which building needs attention?",
		// Choices are assembled from the building roster; see Resolve.
	},
	ScenarioConflictResult: {
		Text:    "",
		Choices: []Choice{{Text: "Understood", Action: "return"}},
	},
	GameOverScenario(state.StatStrategy): {
		Text:  "The empire's strategy has run its course. There is nothing left to plan.",
		Final: true,
	},
	GameOverScenario(state.StatGrowth): {
		Text:  "Growth has stalled. The people drift away and the empire withers.",
		Final: true,
	},
	GameOverScenario(state.StatInfluence): {
		Text:  "Your influence has collapsed. Neighboring powers no longer fear you.",
		Final: true,
	},
	GameOverScenario(state.StatAuthority): {
		Text:  "Your authority is spent. The court no longer obeys.",
		Final: true,
	},
	GameOverScenario(state.StatOrder): {
		Text:  "Order has broken down. The empire dissolves into chaos.",
		Final: true,
	},
	GameOverResources: {
		Text:  "The empire's stores are empty. Nothing remains to govern with.",
		Final: true,
	},
}

// BuildCost describes one building's construction price, for choice text.
type BuildCost struct {
	Label string
	Cost  map[string]int
}

// Get returns the scenario for an id, falling back to the intro screen
// for stale or unknown ids.
func Get(id string) Scenario {
	if sc, ok := catalog[id]; ok {
		return sc
	}
	return catalog[ScenarioIntro]
}

// Resolve returns the scenario a player should see for the current state,
// with template fills applied: the new-subordinate offer names the
// generated candidate, and the building screen lists only legal work.
func Resolve(s *state.SimulationState, costs map[string]BuildCost) Scenario {
	sc := Get(s.CurrentScenarioID)

	switch s.CurrentScenarioID {
	case ScenarioNewSubordinate:
		if p := s.PendingSubordinate; p != nil {
			sc.Text = fmt.Sprintf(
				"A promising talent, %s (%s, skilled in %s), seeks a place at court. (advisors: %d/%d)",
				p.Name, p.Personality, p.Skill, len(s.Subordinates), s.MaxSubordinates)
		}
	case ScenarioBuildings:
		sc.Choices = buildingChoices(s, costs)
	}
	return sc
}

func buildingChoices(s *state.SimulationState, costs map[string]BuildCost) []Choice {
	var choices []Choice
	for _, id := range state.BuildingIDs {
		b := s.Buildings[id]
		bc, ok := costs[id]
		if !ok {
			continue
		}
		if !b.Built {
			// The siege workshop needs a standing barracks first.
			if id == state.BuildingSiegeWorkshop && !s.HasBuilt(state.BuildingBarracks) {
				continue
			}
			choices = append(choices, Choice{
				Text:   fmt.Sprintf("Build the %s (%s)", bc.Label, costText(bc.Cost)),
				Action: "build",
				Params: map[string]string{"building": id},
			})
		} else if b.Durability < 100 {
			choices = append(choices, Choice{
				Text:   fmt.Sprintf("Repair the %s (10 manpower, 10 materials)", bc.Label),
				Action: "maintain",
				Params: map[string]string{"building": id},
			})
		}
	}
	choices = append(choices, Choice{Text: "Back", Action: "return"})
	return choices
}

func costText(cost map[string]int) string {
	text := ""
	for _, res := range []string{state.ResGold, state.ResManpower, state.ResMaterials} {
		if n, ok := cost[res]; ok {
			if text != "" {
				text += ", "
			}
			text += fmt.Sprintf("%d %s", n, res)
		}
	}
	return text
}
