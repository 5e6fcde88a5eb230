package engine

import (
	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/state"
)

// Balance knobs. Kept together so tuning passes touch one file.
const (
	baseActionPoints     = 10
	maxManualAdvances    = 5
	upkeepPerAdvisor     = 2
	deficitGrowthPenalty = 10

	// Resource collection: base chance plus 10% per empire level plus the
	// day's bonus, capped.
	collectBaseChance = 0.60
	collectLevelBonus = 0.10
	collectChanceCap  = 0.95
	collectYield      = 5

	envoyGiftCost       = 50
	repairCostManpower  = 10
	repairCostMaterials = 10
)

// buildCosts is the construction catalog: price plus display label.
var buildCosts = map[string]content.BuildCost{
	state.BuildingTreasury: {Label: "treasury", Cost: map[string]int{
		state.ResGold: 50, state.ResMaterials: 20}},
	state.BuildingBarracks: {Label: "barracks", Cost: map[string]int{
		state.ResManpower: 30, state.ResMaterials: 30}},
	state.BuildingPalace: {Label: "palace", Cost: map[string]int{
		state.ResGold: 100, state.ResManpower: 50, state.ResMaterials: 50}},
	state.BuildingAcademy: {Label: "academy", Cost: map[string]int{
		state.ResManpower: 80, state.ResMaterials: 40}},
	state.BuildingSiegeWorkshop: {Label: "siege workshop", Cost: map[string]int{
		state.ResManpower: 50, state.ResMaterials: 100}},
}

// buildRewards are the stat bumps granted on completion.
var buildRewards = map[string]map[string]int{
	state.BuildingTreasury:      {state.StatInfluence: 10},
	state.BuildingBarracks:      {state.StatGrowth: 10},
	state.BuildingPalace:        {state.StatInfluence: 20, state.StatGrowth: 20},
	state.BuildingAcademy:       {state.StatStrategy: 15, state.StatInfluence: 10},
	state.BuildingSiegeWorkshop: {},
}

// BuildCosts exposes the catalog for scenario rendering.
func BuildCosts() map[string]content.BuildCost { return buildCosts }

func canAfford(s *state.SimulationState, cost map[string]int) bool {
	for res, n := range cost {
		if s.Resource(res) < n {
			return false
		}
	}
	return true
}

// payCost returns a resources patch map with the cost deducted.
func payCost(s *state.SimulationState, cost map[string]int) map[string]int {
	paid := map[string]int{}
	for res, n := range cost {
		paid[res] = s.Resource(res) - n
	}
	return paid
}
