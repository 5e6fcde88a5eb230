package engine

import (
	"fmt"

	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/event"
	"github.com/talgya/daily-empire/internal/rng"
	"github.com/talgya/daily-empire/internal/state"
)

// Kind is a closed enumeration of player actions. Unknown action names
// exist only at the external boundary; see ParseKind.
type Kind int

const (
	KindPatrol Kind = iota
	KindTalk
	KindHoldMeeting
	KindCollectGold
	KindDraftManpower
	KindGatherMaterials
	KindBuild
	KindMaintain
	KindDevelopTechnology
	KindAnalyzeIntelligence
	KindAcceptDeal
	KindDeclineDeal
	KindHandleConflict
	KindMediateConflict
	KindIgnoreConflict
	KindWelcomeSubordinate
	KindObserveSubordinate
	KindRejectSubordinate
	KindPlayMinigame
	KindShowCollection
	KindShowBuildings
	KindReturn
)

// kindNames maps wire names to kinds. This is the only place a string
// becomes an action.
var kindNames = map[string]Kind{
	"patrol":               KindPatrol,
	"talk":                 KindTalk,
	"hold_meeting":         KindHoldMeeting,
	"collect_gold":         KindCollectGold,
	"draft_manpower":       KindDraftManpower,
	"gather_materials":     KindGatherMaterials,
	"build":                KindBuild,
	"maintain":             KindMaintain,
	"develop_technology":   KindDevelopTechnology,
	"analyze_intelligence": KindAnalyzeIntelligence,
	"accept_deal":          KindAcceptDeal,
	"decline_deal":         KindDeclineDeal,
	"handle_conflict":      KindHandleConflict,
	"mediate_conflict":     KindMediateConflict,
	"ignore_conflict":      KindIgnoreConflict,
	"welcome_subordinate":  KindWelcomeSubordinate,
	"observe_subordinate":  KindObserveSubordinate,
	"reject_subordinate":   KindRejectSubordinate,
	"play_minigame":        KindPlayMinigame,
	"show_collection":      KindShowCollection,
	"show_buildings":       KindShowBuildings,
	"return":               KindReturn,
}

// ParseKind resolves an external action name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}

// Params carries optional action parameters (e.g. which building).
type Params map[string]string

// Outcome is the caller-visible result of an action attempt.
type Outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// DoNamed dispatches an action by its external name. Unknown names are a
// no-op by contract — the presentation layer is responsible for offering
// valid ones.
func (e *Engine) DoNamed(name string, p Params) (Outcome, error) {
	kind, ok := ParseKind(name)
	if !ok {
		return Outcome{Message: "Nothing happens."}, nil
	}
	return e.Do(kind, p)
}

// Do applies one player action. Costed actions debit exactly one action
// point before anything else; by rule, a later resource-check failure
// does not refund it. Navigation actions are free. The debit and the
// handler's effect are composed into a single commit.
func (e *Engine) Do(kind Kind, p Params) (Outcome, error) {
	if content.Get(e.store.State().CurrentScenarioID).Final {
		return Outcome{Message: "The empire has fallen. Reset to begin again."}, nil
	}

	var res event.Result
	var patch state.Patch
	var ok bool

	switch kind {
	case KindShowCollection:
		res, ok = navResult(content.ScenarioCollection), true
	case KindShowBuildings:
		res, ok = navResult(content.ScenarioBuildings), true
	case KindReturn:
		res, ok = navResult(content.ScenarioIntro), true
	case KindPatrol:
		res, patch, ok = e.costed(e.actPatrol, p)
	case KindTalk:
		res, patch, ok = e.costed(e.actTalk, p)
	case KindHoldMeeting:
		res, patch, ok = e.costed(e.actHoldMeeting, p)
	case KindCollectGold:
		res, patch, ok = e.costed(e.actCollect(state.ResGold, "Tax collection"), p)
	case KindDraftManpower:
		res, patch, ok = e.costed(e.actCollect(state.ResManpower, "The draft"), p)
	case KindGatherMaterials:
		res, patch, ok = e.costed(e.actCollect(state.ResMaterials, "Material gathering"), p)
	case KindBuild:
		res, patch, ok = e.costed(e.actBuild, p)
	case KindMaintain:
		res, patch, ok = e.costed(e.actMaintain, p)
	case KindDevelopTechnology:
		res, patch, ok = e.costed(e.actDevelopTechnology, p)
	case KindAnalyzeIntelligence:
		res, patch, ok = e.costed(e.actAnalyzeIntelligence, p)
	case KindAcceptDeal:
		res, patch, ok = e.costed(e.actAcceptDeal, p)
	case KindDeclineDeal:
		res, patch, ok = e.costed(e.actDeclineDeal, p)
	case KindHandleConflict:
		res, patch, ok = e.costed(e.actHandleConflict, p)
	case KindMediateConflict:
		res, patch, ok = e.costed(e.actMediateConflict, p)
	case KindIgnoreConflict:
		res, patch, ok = e.costed(e.actIgnoreConflict, p)
	case KindWelcomeSubordinate:
		res, patch, ok = e.costed(e.actWelcomeSubordinate, p)
	case KindObserveSubordinate:
		res, patch, ok = e.costed(e.actObserveSubordinate, p)
	case KindRejectSubordinate:
		res, patch, ok = e.costed(e.actRejectSubordinate, p)
	case KindPlayMinigame:
		res, patch, ok = e.actPlayMinigame(p)
	default:
		return Outcome{Message: "Nothing happens."}, nil
	}
	if !ok {
		return Outcome{Message: res.Message}, nil
	}

	if res.ScenarioID != "" {
		res.Patch.CurrentScenarioID = state.Str(res.ScenarioID)
	}
	patch.Merge(res.Patch)
	if err := e.store.Apply(patch, res.Message); err != nil {
		return Outcome{}, err
	}
	return Outcome{OK: !res.Failed, Message: res.Message}, nil
}

// costed runs a handler behind the action-point gate. The returned patch
// carries the point debit so the whole action commits once.
func (e *Engine) costed(h func(Params) event.Result, p Params) (event.Result, state.Patch, bool) {
	s := e.store.State()
	if s.ActionPoints <= 0 {
		return event.Result{Message: "Not enough action points."}, state.Patch{}, false
	}
	debit := state.Patch{ActionPoints: state.Int(s.ActionPoints - 1)}
	return h(p), debit, true
}

func navResult(scenario string) event.Result {
	return event.Result{ScenarioID: scenario}
}

func (e *Engine) actPatrol(Params) event.Result {
	s := e.store.State()
	if s.DailyActions.Patrolled {
		return event.Result{Message: "There is nothing left to patrol today.", Failed: true}
	}

	actions := s.DailyActions
	actions.Patrolled = true
	res := event.Result{
		Patch: state.Patch{
			DailyActions: &actions,
			Statistics: map[string]int{
				state.StatOrder: s.Stat(state.StatOrder) + 1,
			},
		},
		Message: "Patrolling the territory steadies the public mood.",
	}

	switch draw := e.rand.Float(); {
	case draw < 0.3:
		res.Patch.Resources = map[string]int{
			state.ResGold: s.Resource(state.ResGold) + 2,
		}
		res.Message += " A hidden gold vein was discovered."
	case draw < 0.6:
		res.Patch.Resources = map[string]int{
			state.ResManpower: s.Resource(state.ResManpower) + 2,
		}
		res.Message += " Capable recruits were found."
	default:
		res.Message += " Nothing unusual was found."
	}
	return res
}

func (e *Engine) actTalk(Params) event.Result {
	s := e.store.State()
	sub := s.Subordinates[rng.Pick(e.rand, len(s.Subordinates))]

	actions := s.DailyActions
	if actions.HasTalkedTo(sub.ID) {
		return event.Result{
			Message: fmt.Sprintf("You have already spoken with %s today.", sub.Name),
			Failed:  true,
		}
	}
	actions.TalkedTo = append(append([]string{}, actions.TalkedTo...), sub.ID)

	res := event.Result{
		Patch:   state.Patch{DailyActions: &actions},
		Message: fmt.Sprintf("You spoke with %s. ", sub.Name),
	}
	switch {
	case sub.Loyalty > 80:
		res.Patch.Statistics = map[string]int{
			state.StatInfluence: s.Stat(state.StatInfluence) + 5,
		}
		res.Message += "Their devoted counsel strengthens your influence."
	case sub.Loyalty < 40:
		res.Patch.Statistics = map[string]int{
			state.StatGrowth: s.Stat(state.StatGrowth) - 5,
		}
		res.Message += "They doubt your decisions; morale slips."
	default:
		res.Patch.Statistics = map[string]int{
			state.StatGrowth: s.Stat(state.StatGrowth) + 2,
		}
		res.Message += "Their report sharpens your picture of the empire."
	}
	return res
}

func (e *Engine) actHoldMeeting(Params) event.Result {
	s := e.store.State()
	if s.DailyActions.MeetingHeld {
		return event.Result{
			Patch: state.Patch{Statistics: map[string]int{
				state.StatInfluence: s.Stat(state.StatInfluence) - 5,
			}},
			Message: "Another meeting today only wearies the council.",
			Failed:  true,
		}
	}

	actions := s.DailyActions
	actions.MeetingHeld = true
	res := event.Result{Patch: state.Patch{DailyActions: &actions}}

	if e.rand.Float() < 0.5 {
		res.Patch.Statistics = map[string]int{
			state.StatInfluence: s.Stat(state.StatInfluence) + 10,
			state.StatGrowth:    s.Stat(state.StatGrowth) + 5,
		}
		res.Message = "The council converges on an effective plan."
	} else {
		res.Patch.Statistics = map[string]int{
			state.StatStrategy: s.Stat(state.StatStrategy) + 5,
		}
		res.Message = "After fierce debate, a new strategic consensus forms."
	}
	return res
}

// actCollect builds the handler for one resource-collection attempt.
// Success chance scales with empire level and the day's bonus.
func (e *Engine) actCollect(resource, label string) func(Params) event.Result {
	return func(Params) event.Result {
		s := e.store.State()
		chance := collectBaseChance +
			float64(s.EmpireLevel)*collectLevelBonus +
			s.DailyBonus[state.BonusCollection]
		if chance > collectChanceCap {
			chance = collectChanceCap
		}

		if e.rand.Float() >= chance {
			return event.Result{Message: fmt.Sprintf("%s came up empty.", label), Failed: true}
		}
		return event.Result{
			Patch: state.Patch{Resources: map[string]int{
				resource: s.Resource(resource) + collectYield,
			}},
			Message: fmt.Sprintf("%s succeeded. (+%d %s)", label, collectYield, resource),
		}
	}
}

func (e *Engine) actBuild(p Params) event.Result {
	id := p["building"]
	bc, known := buildCosts[id]
	if !known {
		return event.Result{Message: "No such building.", Failed: true}
	}

	s := e.store.State()
	if s.Buildings[id].Built {
		return event.Result{Message: fmt.Sprintf("The %s already stands.", bc.Label), Failed: true}
	}
	if id == state.BuildingSiegeWorkshop && !s.HasBuilt(state.BuildingBarracks) {
		return event.Result{Message: "A siege workshop needs a standing barracks.", Failed: true}
	}
	if !canAfford(s, bc.Cost) {
		return event.Result{Message: "Not enough resources to build.", Failed: true}
	}

	stats := map[string]int{}
	for stat, bonus := range buildRewards[id] {
		stats[stat] = s.Stat(stat) + bonus
	}
	return event.Result{
		Patch: state.Patch{
			Resources:  payCost(s, bc.Cost),
			Buildings:  map[string]state.Building{id: {Built: true, Durability: 100}},
			Statistics: stats,
		},
		Message: fmt.Sprintf("The %s has been built!", bc.Label),
	}
}

func (e *Engine) actMaintain(p Params) event.Result {
	id := p["building"]
	bc, known := buildCosts[id]
	if !known {
		return event.Result{Message: "No such building.", Failed: true}
	}

	s := e.store.State()
	b := s.Buildings[id]
	if !b.Built {
		return event.Result{Message: fmt.Sprintf("The %s is not standing.", bc.Label), Failed: true}
	}

	cost := map[string]int{
		state.ResManpower:  repairCostManpower,
		state.ResMaterials: repairCostMaterials,
	}
	if !canAfford(s, cost) {
		return event.Result{Message: "Not enough resources for repairs.", Failed: true}
	}

	b.Durability = 100
	return event.Result{
		Patch: state.Patch{
			Resources: payCost(s, cost),
			Buildings: map[string]state.Building{id: b},
		},
		Message: fmt.Sprintf("The %s has been restored to full repair.", bc.Label),
	}
}

func (e *Engine) actDevelopTechnology(Params) event.Result {
	s := e.store.State()
	cost := 20 * (s.EmpireLevel + 1)
	need := map[string]int{state.ResGold: cost, state.ResMaterials: cost}
	if !canAfford(s, need) {
		return event.Result{
			Message: fmt.Sprintf(
				"Development needs %d gold and %d materials.", cost, cost),
			ScenarioID: content.ScenarioIntro,
			Failed:     true,
		}
	}
	return event.Result{
		Patch: state.Patch{
			Resources:   payCost(s, need),
			EmpireLevel: state.Int(s.EmpireLevel + 1),
		},
		Message: fmt.Sprintf(
			"A breakthrough! Collection succeeds more often now. (level %d)",
			s.EmpireLevel+1),
		ScenarioID: content.ScenarioIntro,
	}
}

func (e *Engine) actAnalyzeIntelligence(Params) event.Result {
	s := e.store.State()
	res := event.Result{ScenarioID: content.ScenarioIntro}

	switch draw := e.rand.Float(); {
	case draw < 0.3:
		res.Patch.Resources = map[string]int{
			state.ResManpower:  s.Resource(state.ResManpower) + 20,
			state.ResMaterials: s.Resource(state.ResMaterials) + 20,
		}
		res.Message = "The reports reveal an untapped resource region!"
	case draw < 0.5:
		res.Patch.Statistics = map[string]int{
			state.StatStrategy:  s.Stat(state.StatStrategy) + 10,
			state.StatInfluence: s.Stat(state.StatInfluence) + 10,
		}
		res.Message = "You have found a rival's weakness."
	default:
		res.Message = "The reports hold nothing of note."
	}
	return res
}

func (e *Engine) actAcceptDeal(Params) event.Result {
	s := e.store.State()
	if s.Resource(state.ResGold) < envoyGiftCost {
		return event.Result{
			Message:    "You lack the gold for such a gift.",
			ScenarioID: content.ScenarioIntro,
			Failed:     true,
		}
	}
	return event.Result{
		Patch: state.Patch{Resources: map[string]int{
			state.ResGold:   s.Resource(state.ResGold) - envoyGiftCost,
			state.ResRelics: s.Resource(state.ResRelics) + 1,
		}},
		Message:    "The envoy shares word of an ancient relic.",
		ScenarioID: content.ScenarioIntro,
	}
}

func (e *Engine) actDeclineDeal(Params) event.Result {
	return event.Result{
		Message:    "The envoy departs, disappointed.",
		ScenarioID: content.ScenarioIntro,
	}
}

func (e *Engine) actHandleConflict(p Params) event.Result {
	s := e.store.State()
	first, second := p["first"], p["second"]

	subs := make([]state.Subordinate, len(s.Subordinates))
	copy(subs, s.Subordinates)
	message := ""
	for i := range subs {
		switch subs[i].ID {
		case first:
			subs[i].Loyalty = clamp(subs[i].Loyalty+10, 0, 100)
			message += fmt.Sprintf("You sided with %s; their loyalty rises. ", subs[i].Name)
		case second:
			subs[i].Loyalty = clamp(subs[i].Loyalty-5, 0, 100)
			message += fmt.Sprintf("%s's loyalty slips a little. ", subs[i].Name)
		}
	}

	return event.Result{
		Patch: state.Patch{
			Subordinates: subs,
			Statistics: map[string]int{
				state.StatStrategy:  s.Stat(state.StatStrategy) + 5,
				state.StatAuthority: s.Stat(state.StatAuthority) + 2,
			},
		},
		Message:    message,
		ScenarioID: content.ScenarioConflictResult,
	}
}

func (e *Engine) actMediateConflict(Params) event.Result {
	s := e.store.State()
	return event.Result{
		Patch: state.Patch{Statistics: map[string]int{
			state.StatInfluence: s.Stat(state.StatInfluence) + 10,
			state.StatGrowth:    s.Stat(state.StatGrowth) + 5,
			state.StatAuthority: s.Stat(state.StatAuthority) + 2,
		}},
		Message:    "You turned their rivalry into fuel for the empire!",
		ScenarioID: content.ScenarioConflictResult,
	}
}

func (e *Engine) actIgnoreConflict(Params) event.Result {
	s := e.store.State()
	return event.Result{
		Patch: state.Patch{
			Subordinates: shiftLoyalty(s.Subordinates, -5),
			Statistics: map[string]int{
				state.StatInfluence: s.Stat(state.StatInfluence) - 10,
				state.StatStrategy:  s.Stat(state.StatStrategy) - 5,
				state.StatOrder:     s.Stat(state.StatOrder) - 5,
			},
		},
		Message:    "Left to fester, the feud weakens the whole court.",
		ScenarioID: content.ScenarioConflictResult,
	}
}

func (e *Engine) actWelcomeSubordinate(Params) event.Result {
	s := e.store.State()
	pending := s.PendingSubordinate
	if pending == nil {
		return event.Result{
			Message:    "There is no candidate waiting.",
			ScenarioID: content.ScenarioIntro,
			Failed:     true,
		}
	}
	if len(s.Subordinates) >= s.MaxSubordinates {
		return event.Result{
			Patch:      state.Patch{ClearPending: true},
			Message:    "The court has no room for another advisor.",
			ScenarioID: content.ScenarioIntro,
			Failed:     true,
		}
	}

	roster := append(append([]state.Subordinate{}, s.Subordinates...), *pending)
	return event.Result{
		Patch: state.Patch{
			Subordinates: roster,
			ClearPending: true,
			Statistics: map[string]int{
				state.StatInfluence: s.Stat(state.StatInfluence) + 5,
			},
		},
		Message:    fmt.Sprintf("%s joins your court.", pending.Name),
		ScenarioID: content.ScenarioIntro,
	}
}

func (e *Engine) actObserveSubordinate(Params) event.Result {
	s := e.store.State()
	pending := s.PendingSubordinate
	if pending == nil {
		return event.Result{
			Message:    "There is no candidate waiting.",
			ScenarioID: content.ScenarioIntro,
			Failed:     true,
		}
	}

	// The loyalty test re-rolls the candidate's loyalty around its base.
	tested := *pending
	tested.Loyalty = clamp(rng.IntInRange(e.rand, tested.Loyalty, 15), 0, 100)
	return event.Result{
		Patch:   state.Patch{PendingSubordinate: &tested},
		Message: fmt.Sprintf("%s's loyalty under scrutiny reads %d.", tested.Name, tested.Loyalty),
	}
}

func (e *Engine) actRejectSubordinate(Params) event.Result {
	s := e.store.State()
	pending := s.PendingSubordinate
	name := "The candidate"
	if pending != nil {
		name = pending.Name
	}
	return event.Result{
		Patch: state.Patch{
			ClearPending: true,
			Statistics: map[string]int{
				state.StatInfluence: s.Stat(state.StatInfluence) - 2,
			},
		},
		Message:    fmt.Sprintf("%s is turned away from court.", name),
		ScenarioID: content.ScenarioIntro,
	}
}

