package state

// Patch is a partial update to the simulation state. Nil fields are left
// untouched. Map-valued fields are merged key-by-key into the existing
// mapping (one level deep); slice-valued fields replace the old value
// wholesale. That asymmetry is deliberate: callers patch single resources
// without clobbering siblings, but always pass subordinate lists whole.
type Patch struct {
	Day                 *int
	Statistics          map[string]int
	ActionPoints        *int
	MaxActionPoints     *int
	Resources           map[string]int
	Subordinates        []Subordinate
	MaxSubordinates     *int
	Buildings           map[string]Building
	CurrentScenarioID   *string
	LastPlayedDate      *string
	ManualDayAdvances   *int
	DailyEventTriggered *bool
	DailyBonus          map[string]float64
	DailyActions        *DailyActions
	EmpireLevel         *int
	PendingSubordinate  *Subordinate
	ClearPending        bool
}

// apply merges the patch into s.
func (p Patch) apply(s *SimulationState) {
	if p.Day != nil {
		s.Day = *p.Day
	}
	for k, v := range p.Statistics {
		s.Statistics[k] = v
	}
	if p.ActionPoints != nil {
		s.ActionPoints = *p.ActionPoints
	}
	if p.MaxActionPoints != nil {
		s.MaxActionPoints = *p.MaxActionPoints
	}
	for k, v := range p.Resources {
		s.Resources[k] = v
	}
	if p.Subordinates != nil {
		s.Subordinates = p.Subordinates
	}
	if p.MaxSubordinates != nil {
		s.MaxSubordinates = *p.MaxSubordinates
	}
	for k, v := range p.Buildings {
		s.Buildings[k] = v
	}
	if p.CurrentScenarioID != nil {
		s.CurrentScenarioID = *p.CurrentScenarioID
	}
	if p.LastPlayedDate != nil {
		s.LastPlayedDate = *p.LastPlayedDate
	}
	if p.ManualDayAdvances != nil {
		s.ManualDayAdvances = *p.ManualDayAdvances
	}
	if p.DailyEventTriggered != nil {
		s.DailyEventTriggered = *p.DailyEventTriggered
	}
	for k, v := range p.DailyBonus {
		s.DailyBonus[k] = v
	}
	if p.DailyActions != nil {
		s.DailyActions = *p.DailyActions
	}
	if p.EmpireLevel != nil {
		s.EmpireLevel = *p.EmpireLevel
	}
	if p.PendingSubordinate != nil {
		s.PendingSubordinate = p.PendingSubordinate
	}
	if p.ClearPending {
		s.PendingSubordinate = nil
	}
}

// Merge folds another patch into p, with q winning on conflicts. Used to
// compose an action's point debit with its effect into a single commit.
func (p *Patch) Merge(q Patch) {
	if q.Day != nil {
		p.Day = q.Day
	}
	if q.Statistics != nil {
		if p.Statistics == nil {
			p.Statistics = map[string]int{}
		}
		for k, v := range q.Statistics {
			p.Statistics[k] = v
		}
	}
	if q.ActionPoints != nil {
		p.ActionPoints = q.ActionPoints
	}
	if q.MaxActionPoints != nil {
		p.MaxActionPoints = q.MaxActionPoints
	}
	if q.Resources != nil {
		if p.Resources == nil {
			p.Resources = map[string]int{}
		}
		for k, v := range q.Resources {
			p.Resources[k] = v
		}
	}
	if q.Subordinates != nil {
		p.Subordinates = q.Subordinates
	}
	if q.MaxSubordinates != nil {
		p.MaxSubordinates = q.MaxSubordinates
	}
	if q.Buildings != nil {
		if p.Buildings == nil {
			p.Buildings = map[string]Building{}
		}
		for k, v := range q.Buildings {
			p.Buildings[k] = v
		}
	}
	if q.CurrentScenarioID != nil {
		p.CurrentScenarioID = q.CurrentScenarioID
	}
	if q.LastPlayedDate != nil {
		p.LastPlayedDate = q.LastPlayedDate
	}
	if q.ManualDayAdvances != nil {
		p.ManualDayAdvances = q.ManualDayAdvances
	}
	if q.DailyEventTriggered != nil {
		p.DailyEventTriggered = q.DailyEventTriggered
	}
	if q.DailyBonus != nil {
		if p.DailyBonus == nil {
			p.DailyBonus = map[string]float64{}
		}
		for k, v := range q.DailyBonus {
			p.DailyBonus[k] = v
		}
	}
	if q.DailyActions != nil {
		p.DailyActions = q.DailyActions
	}
	if q.EmpireLevel != nil {
		p.EmpireLevel = q.EmpireLevel
	}
	if q.PendingSubordinate != nil {
		p.PendingSubordinate = q.PendingSubordinate
	}
	if q.ClearPending {
		p.ClearPending = true
	}
}

// Int is a convenience for pointer fields in patch literals.
func Int(v int) *int { return &v }

// Str is a convenience for pointer fields in patch literals.
func Str(v string) *string { return &v }

// Bool is a convenience for pointer fields in patch literals.
func Bool(v bool) *bool { return &v }
