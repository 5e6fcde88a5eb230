package state

// Persisted blobs carry no schema tag beyond Version; older shapes are
// upgraded by applying every migration past their recorded version, in
// order. A missing field never fails a load — it gets its documented
// default here.

// CurrentVersion is the version written by this build.
var CurrentVersion = len(migrations)

type migration func(*SimulationState)

var migrations = []migration{
	migrateBaseline,
	migrateAuthorityOrder,
}

// Migrate upgrades a loaded state in place.
func Migrate(s *SimulationState) {
	for i := s.Version; i < len(migrations); i++ {
		migrations[i](s)
	}
	s.Version = CurrentVersion
}

// migrateBaseline backfills every field a pre-versioning save could lack.
func migrateBaseline(s *SimulationState) {
	if s.Day < 1 {
		s.Day = 1
	}
	if s.Statistics == nil {
		s.Statistics = map[string]int{}
	}
	for _, name := range []string{StatStrategy, StatGrowth, StatInfluence} {
		if _, ok := s.Statistics[name]; !ok {
			s.Statistics[name] = 50
		}
	}
	if s.MaxActionPoints == 0 {
		s.MaxActionPoints = 10
	}
	if s.Resources == nil {
		s.Resources = map[string]int{ResGold: 10, ResManpower: 10, ResMaterials: 5}
	}
	if len(s.Subordinates) == 0 {
		s.Subordinates = Starters()
	}
	if s.MaxSubordinates == 0 {
		s.MaxSubordinates = 5
	}
	if s.Buildings == nil {
		s.Buildings = map[string]Building{}
	}
	for _, id := range BuildingIDs {
		if _, ok := s.Buildings[id]; !ok {
			s.Buildings[id] = Building{Durability: 100}
		}
	}
	if s.CurrentScenarioID == "" {
		s.CurrentScenarioID = "intro"
	}
	if s.DailyBonus == nil {
		s.DailyBonus = map[string]float64{}
	}
}

// migrateAuthorityOrder adds the authority and order statistics and the
// relic resource introduced after the first release.
func migrateAuthorityOrder(s *SimulationState) {
	for _, name := range []string{StatAuthority, StatOrder} {
		if _, ok := s.Statistics[name]; !ok {
			s.Statistics[name] = 50
		}
	}
	if _, ok := s.Resources[ResRelics]; !ok {
		s.Resources[ResRelics] = 0
	}
}
