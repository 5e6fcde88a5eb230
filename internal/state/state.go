// Package state owns the simulation state aggregate and its merge-patch
// update contract. All mutation goes through the Store so persistence and
// render notification stay in lockstep.
package state

// Statistic names. Each has a failure floor at 0 that ends the game.
const (
	StatStrategy  = "strategy"
	StatGrowth    = "growth"
	StatInfluence = "influence"
	StatAuthority = "authority"
	StatOrder     = "order"
)

// Resource names.
const (
	ResGold      = "gold"
	ResManpower  = "manpower"
	ResMaterials = "materials"
	ResRelics    = "relics"
)

// Subordinate skills. Each grants a passive daily resource bonus except
// tactics, which matters in conflict events.
const (
	SkillDiplomacy    = "diplomacy"
	SkillTactics      = "tactics"
	SkillStewardship  = "stewardship"
	SkillIntelligence = "intelligence"
)

// Building identifiers.
const (
	BuildingTreasury      = "treasury"
	BuildingBarracks      = "barracks"
	BuildingPalace        = "palace"
	BuildingAcademy       = "academy"
	BuildingSiegeWorkshop = "siegeWorkshop"
)

// BuildingIDs lists every building in a stable order.
var BuildingIDs = []string{
	BuildingTreasury,
	BuildingBarracks,
	BuildingPalace,
	BuildingAcademy,
	BuildingSiegeWorkshop,
}

// BonusCollection is the dailyBonus key for collection success chance.
const BonusCollection = "collectionSuccess"

// Subordinate is a named court member. Created at game start or hired via
// a daily event; never deleted, only mutated.
type Subordinate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Personality string `json:"personality"`
	Skill       string `json:"skill"`
	Loyalty     int    `json:"loyalty"` // 0–100
}

// Building tracks one structure. Durability decays daily once built and a
// ruin (durability 0) flips it back to unbuilt.
type Building struct {
	Built      bool `json:"built"`
	Durability int  `json:"durability"` // 0–100
}

// DailyActions are once-per-day latches, cleared at day start.
type DailyActions struct {
	Patrolled      bool     `json:"patrolled"`
	MeetingHeld    bool     `json:"meetingHeld"`
	TalkedTo       []string `json:"talkedTo"`
	MinigamePlayed bool     `json:"minigamePlayed"`
}

// SimulationState is the single root aggregate. It is exclusively owned
// by a Store; callers read it but mutate only through Patch.
type SimulationState struct {
	Version             int                 `json:"version"`
	Day                 int                 `json:"day"`
	Statistics          map[string]int      `json:"statistics"`
	ActionPoints        int                 `json:"actionPoints"`
	MaxActionPoints     int                 `json:"maxActionPoints"`
	Resources           map[string]int      `json:"resources"`
	Subordinates        []Subordinate       `json:"subordinates"`
	MaxSubordinates     int                 `json:"maxSubordinates"`
	Buildings           map[string]Building `json:"buildings"`
	CurrentScenarioID   string              `json:"currentScenarioId"`
	LastPlayedDate      string              `json:"lastPlayedDate"`
	ManualDayAdvances   int                 `json:"manualDayAdvances"`
	DailyEventTriggered bool                `json:"dailyEventTriggered"`
	DailyBonus          map[string]float64  `json:"dailyBonus"`
	DailyActions        DailyActions        `json:"dailyActions"`
	EmpireLevel         int                 `json:"empireLevel"`
	PendingSubordinate  *Subordinate        `json:"pendingSubordinate,omitempty"`
}

// Starters returns the two fixed founding subordinates.
func Starters() []Subordinate {
	return []Subordinate{
		{ID: "machiavelli", Name: "Machiavelli", Personality: "calculating", Skill: SkillDiplomacy, Loyalty: 70},
		{ID: "caesar", Name: "Caesar", Personality: "bold", Skill: SkillTactics, Loyalty: 60},
	}
}

// NewDefault builds a fresh first-day state for the given calendar date.
func NewDefault(today string) *SimulationState {
	return &SimulationState{
		Version: CurrentVersion,
		Day:     1,
		Statistics: map[string]int{
			StatStrategy:  50,
			StatGrowth:    50,
			StatInfluence: 50,
			StatAuthority: 50,
			StatOrder:     50,
		},
		ActionPoints:    10,
		MaxActionPoints: 10,
		Resources: map[string]int{
			ResGold:      10,
			ResManpower:  10,
			ResMaterials: 5,
			ResRelics:    0,
		},
		Subordinates:    Starters(),
		MaxSubordinates: 5,
		Buildings: map[string]Building{
			BuildingTreasury:      {Durability: 100},
			BuildingBarracks:      {Durability: 100},
			BuildingPalace:        {Durability: 100},
			BuildingAcademy:       {Durability: 100},
			BuildingSiegeWorkshop: {Durability: 100},
		},
		CurrentScenarioID: "intro",
		LastPlayedDate:    today,
		DailyBonus:        map[string]float64{},
	}
}

// Stat returns a statistic, zero when absent.
func (s *SimulationState) Stat(name string) int { return s.Statistics[name] }

// Resource returns a resource balance, zero when absent.
func (s *SimulationState) Resource(name string) int { return s.Resources[name] }

// Subordinate looks up a court member by id.
func (s *SimulationState) Subordinate(id string) (Subordinate, bool) {
	for _, sub := range s.Subordinates {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subordinate{}, false
}

// HasBuilt reports whether a building stands (built with durability left).
func (s *SimulationState) HasBuilt(id string) bool {
	b, ok := s.Buildings[id]
	return ok && b.Built && b.Durability > 0
}

// HasTalkedTo reports whether the given subordinate was interviewed today.
func (d DailyActions) HasTalkedTo(id string) bool {
	for _, t := range d.TalkedTo {
		if t == id {
			return true
		}
	}
	return false
}
