package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/daily-empire/internal/clock"
	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/state"
)

// AdvanceDay performs a player-requested manual day advance, bounded per
// real calendar day. Returns the user-facing notice.
func (e *Engine) AdvanceDay() (string, error) {
	s := e.store.State()
	if s.ManualDayAdvances >= maxManualAdvances {
		return "No more manual day advances today. Try again tomorrow.", nil
	}

	e.store.Patch(state.Patch{
		Day:                 state.Int(s.Day + 1),
		LastPlayedDate:      state.Str(clock.Today(e.clk)),
		ManualDayAdvances:   state.Int(s.ManualDayAdvances + 1),
		DailyEventTriggered: state.Bool(false),
	})
	e.reseed()
	if err := e.RunDailyCycle(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Day %d begins.", e.store.State().Day), nil
}

// RunDailyCycle resolves one simulation day: ephemeral reset, passive
// effects, terminal checks, and the day's weighted random event, all
// committed as a single save. Idempotent — once today's event has
// triggered, repeated calls are no-ops until the next rollover.
func (e *Engine) RunDailyCycle() error {
	s := e.store.State()
	if s.DailyEventTriggered {
		return nil
	}

	e.reseed()

	// Per-day ephemeral reset. The action budget returns to its base each
	// morning; passive growth effects below adjust it afterwards.
	e.store.Patch(state.Patch{
		ActionPoints:        state.Int(baseActionPoints),
		MaxActionPoints:     state.Int(baseActionPoints),
		DailyActions:        &state.DailyActions{},
		DailyBonus:          map[string]float64{state.BonusCollection: 0},
		DailyEventTriggered: state.Bool(true),
	})

	message := "A new day of rule begins. "
	message += e.applyStatEffects()
	message += e.applySkillBonuses()
	message += e.applyDurabilityDecay()
	message += e.applyUpkeep()

	// Terminal conditions lock the game-over scenario and skip the event.
	if over, scenario := terminalScenario(e.store.State()); over {
		e.store.Patch(state.Patch{CurrentScenarioID: state.Str(scenario)})
		return e.store.Commit(message + content.Get(scenario).Text)
	}

	entry := e.daily.Select(e.store.State(), e.rand)
	res := entry.Effect(e.store.State(), e.rand)
	res.Patch.CurrentScenarioID = state.Str(res.ScenarioID)
	e.store.Patch(res.Patch)

	return e.store.Commit(message + res.Message)
}

// applyStatEffects evaluates the fixed ordered threshold rules. Rules are
// independent; all run every cycle.
func (e *Engine) applyStatEffects() string {
	s := e.store.State()
	message := ""

	if s.Stat(state.StatStrategy) >= 70 {
		e.store.Patch(state.Patch{DailyBonus: map[string]float64{
			state.BonusCollection: s.DailyBonus[state.BonusCollection] + 0.1,
		}})
		message += "Sound strategy raises collection yields today. "
	}
	if s.Stat(state.StatStrategy) < 30 {
		e.store.Patch(state.Patch{Subordinates: shiftLoyalty(s.Subordinates, -5)})
		message += "Poor strategy is eroding your advisors' loyalty. "
	}

	if s.Stat(state.StatGrowth) >= 70 {
		maxAP := s.MaxActionPoints + 1
		e.store.Patch(state.Patch{
			MaxActionPoints: state.Int(maxAP),
			ActionPoints:    state.Int(maxAP),
		})
		message += "The empire thrives; the court is energized. "
	}
	if s.Stat(state.StatGrowth) < 30 {
		maxAP := s.MaxActionPoints - 1
		if maxAP < 5 {
			maxAP = 5
		}
		ap := s.ActionPoints
		if ap > maxAP {
			ap = maxAP
		}
		e.store.Patch(state.Patch{
			MaxActionPoints: state.Int(maxAP),
			ActionPoints:    state.Int(ap),
		})
		message += "Stagnation saps the court's energy. "
	}

	if s.Stat(state.StatInfluence) >= 70 {
		e.store.Patch(state.Patch{Buildings: shiftDurability(s.Buildings, 1)})
		message += "Your influence keeps the buildings well tended. "
	}
	if s.Stat(state.StatInfluence) < 30 {
		e.store.Patch(state.Patch{Buildings: shiftDurability(s.Buildings, -2)})
		message += "Waning influence lets the buildings decay faster. "
	}

	if s.Stat(state.StatAuthority) < 30 {
		e.store.Patch(state.Patch{Subordinates: shiftLoyalty(s.Subordinates, -2)})
		message += "Weak authority breeds quiet defiance at court. "
	}

	if s.Stat(state.StatOrder) >= 70 {
		e.store.Patch(state.Patch{Resources: map[string]int{
			state.ResMaterials: s.Resource(state.ResMaterials) + 1,
		}})
		message += "With the streets calm, work proceeds apace. "
	}
	if s.Stat(state.StatOrder) < 30 {
		e.store.Patch(state.Patch{Statistics: map[string]int{
			state.StatGrowth: s.Stat(state.StatGrowth) - 1,
		}})
		message += "Unrest slows the empire's growth. "
	}

	return message
}

// applySkillBonuses grants each advisor's passive daily resource bonus.
func (e *Engine) applySkillBonuses() string {
	s := e.store.State()
	message := ""
	res := map[string]int{}

	for _, sub := range s.Subordinates {
		switch sub.Skill {
		case state.SkillDiplomacy:
			res[state.ResGold] = valueOr(res, state.ResGold, s.Resource(state.ResGold)) + 1
			message += fmt.Sprintf("%s's diplomacy brings in extra gold. ", sub.Name)
		case state.SkillStewardship:
			res[state.ResManpower] = valueOr(res, state.ResManpower, s.Resource(state.ResManpower)) + 1
			message += fmt.Sprintf("%s's stewardship attracts extra hands. ", sub.Name)
		case state.SkillIntelligence:
			res[state.ResMaterials] = valueOr(res, state.ResMaterials, s.Resource(state.ResMaterials)) + 1
			message += fmt.Sprintf("%s's informants secure extra materials. ", sub.Name)
		}
	}

	if len(res) > 0 {
		e.store.Patch(state.Patch{Resources: res})
	}
	return message
}

// applyDurabilityDecay ages every standing building; a structure reaching
// zero durability is ruined and must be rebuilt.
func (e *Engine) applyDurabilityDecay() string {
	s := e.store.State()
	message := ""
	patched := map[string]state.Building{}

	for _, id := range state.BuildingIDs {
		b, ok := s.Buildings[id]
		if !ok || !b.Built {
			continue
		}
		b.Durability--
		if b.Durability <= 0 {
			b.Durability = 0
			b.Built = false
			message += fmt.Sprintf("The %s has fallen into ruin! ", buildCosts[id].Label)
		}
		patched[id] = b
	}

	if len(patched) > 0 {
		e.store.Patch(state.Patch{Buildings: patched})
	}
	return message
}

// applyUpkeep charges gold proportional to the advisor roster; a deficit
// stalls growth.
func (e *Engine) applyUpkeep() string {
	s := e.store.State()
	upkeep := len(s.Subordinates) * upkeepPerAdvisor
	gold := s.Resource(state.ResGold) - upkeep
	e.store.Patch(state.Patch{Resources: map[string]int{state.ResGold: gold}})

	if gold < 0 {
		e.store.Patch(state.Patch{Statistics: map[string]int{
			state.StatGrowth: s.Stat(state.StatGrowth) - deficitGrowthPenalty,
		}})
		return fmt.Sprintf(
			"The treasury could not cover %s gold of upkeep; growth suffers. ",
			humanize.Comma(int64(upkeep)))
	}
	return ""
}

// terminalScenario reports whether any failure floor has been breached
// and which game-over screen applies. Statistics are checked in a fixed
// order so the outcome is deterministic when several fail at once.
func terminalScenario(s *state.SimulationState) (bool, string) {
	for _, stat := range []string{
		state.StatStrategy, state.StatGrowth, state.StatInfluence,
		state.StatAuthority, state.StatOrder,
	} {
		if s.Stat(stat) <= 0 {
			return true, content.GameOverScenario(stat)
		}
	}
	if s.Resource(state.ResGold) <= 0 &&
		s.Resource(state.ResManpower) <= 0 &&
		s.Resource(state.ResMaterials) <= 0 {
		return true, content.GameOverResources
	}
	return false, ""
}

func valueOr(m map[string]int, key string, fallback int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// shiftLoyalty returns a full replacement roster with every advisor's
// loyalty moved by delta, clamped to [0, 100].
func shiftLoyalty(subs []state.Subordinate, delta int) []state.Subordinate {
	out := make([]state.Subordinate, len(subs))
	copy(out, subs)
	for i := range out {
		out[i].Loyalty = clamp(out[i].Loyalty+delta, 0, 100)
	}
	return out
}

// shiftDurability adjusts every standing building, clamped to [0, 100].
func shiftDurability(buildings map[string]state.Building, delta int) map[string]state.Building {
	out := map[string]state.Building{}
	for id, b := range buildings {
		if !b.Built {
			continue
		}
		b.Durability = clamp(b.Durability+delta, 0, 100)
		out[id] = b
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
