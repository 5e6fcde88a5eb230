package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/daily-empire/internal/content"
	"github.com/talgya/daily-empire/internal/state"
)

// recycle clears the daily latch and runs another cycle, for tests that
// tweak state and want to observe the next morning.
func recycle(t *testing.T, e *Engine) {
	t.Helper()
	e.store.Patch(state.Patch{DailyEventTriggered: state.Bool(false)})
	require.NoError(t, e.RunDailyCycle())
}

func TestDailyCycleIdempotent(t *testing.T) {
	repo := &memRepo{}
	e := New(state.NewStore(repo), fixedClock(t, "2026-03-14"))
	require.NoError(t, e.Bootstrap())
	before := string(repo.blob)

	// The latch is set; repeated cycles must not change anything.
	require.NoError(t, e.RunDailyCycle())
	require.NoError(t, e.RunDailyCycle())
	assert.JSONEq(t, before, string(repo.blob))
}

func TestDailyCycleResetsEphemera(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{
		ActionPoints: state.Int(2),
		DailyActions: &state.DailyActions{Patrolled: true, MinigamePlayed: true},
	})

	recycle(t, e)
	s := e.store.State()

	assert.Equal(t, 10, s.ActionPoints)
	assert.False(t, s.DailyActions.Patrolled)
	assert.False(t, s.DailyActions.MinigamePlayed)
	assert.Empty(t, s.DailyActions.TalkedTo)
	assert.True(t, s.DailyEventTriggered)
}

func TestStrategyHighRaisesCollectionBonus(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatStrategy: 80}})

	recycle(t, e)
	assert.InDelta(t, 0.1, e.store.State().DailyBonus[state.BonusCollection], 1e-9)
}

func TestStrategyLowErodesLoyalty(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatStrategy: 20}})

	recycle(t, e)
	s := e.store.State()
	m, _ := s.Subordinate("machiavelli")
	c, _ := s.Subordinate("caesar")
	assert.Equal(t, 65, m.Loyalty)
	assert.Equal(t, 55, c.Loyalty)
}

func TestGrowthAdjustsActionBudget(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatGrowth: 80}})
	recycle(t, e)
	assert.Equal(t, 11, e.store.State().MaxActionPoints)
	assert.Equal(t, 11, e.store.State().ActionPoints)

	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatGrowth: 20}})
	recycle(t, e)
	assert.Equal(t, 9, e.store.State().MaxActionPoints)
	assert.Equal(t, 9, e.store.State().ActionPoints)
}

func TestOrderHighYieldsMaterials(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatOrder: 80}})

	recycle(t, e)
	assert.Equal(t, 101, e.store.State().Resource(state.ResMaterials))
}

func TestOrderLowSlowsGrowth(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatOrder: 20}})

	recycle(t, e)
	assert.Equal(t, 49, e.store.State().Stat(state.StatGrowth))
}

func TestDurabilityDecay(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Buildings: map[string]state.Building{
		state.BuildingTreasury: {Built: true, Durability: 50},
	}})

	recycle(t, e)
	assert.Equal(t, 49, e.store.State().Buildings[state.BuildingTreasury].Durability)
}

func TestLowInfluenceAcceleratesDecay(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{
		Statistics: map[string]int{state.StatInfluence: 20},
		Buildings: map[string]state.Building{
			state.BuildingTreasury: {Built: true, Durability: 50},
		},
	})

	recycle(t, e)
	// -2 from waning influence, -1 daily wear.
	assert.Equal(t, 47, e.store.State().Buildings[state.BuildingTreasury].Durability)
}

func TestBuildingRuinsAtZeroDurability(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Buildings: map[string]state.Building{
		state.BuildingBarracks: {Built: true, Durability: 1},
	}})

	recycle(t, e)
	b := e.store.State().Buildings[state.BuildingBarracks]
	assert.False(t, b.Built)
	assert.Equal(t, 0, b.Durability)
}

func TestUpkeepDeficitStallsGrowth(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Resources: map[string]int{state.ResGold: 0}})

	recycle(t, e)
	// Two advisors cost 4 gold; diplomacy only brings in 1.
	assert.Equal(t, 40, e.store.State().Stat(state.StatGrowth))
	assert.Negative(t, e.store.State().Resource(state.ResGold))
}

func TestTerminalOrderCollapse(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Statistics: map[string]int{state.StatOrder: 0}})

	recycle(t, e)
	s := e.store.State()
	assert.Equal(t, content.GameOverScenario(state.StatOrder), s.CurrentScenarioID)

	sc := content.Get(s.CurrentScenarioID)
	assert.True(t, sc.Final)
	assert.Empty(t, sc.Choices)

	// The fallen empire refuses further orders.
	out, err := e.Do(KindPatrol, nil)
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, "The empire has fallen. Reset to begin again.", out.Message)
}

func TestTerminalResourceExhaustion(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")
	prime(e)
	e.store.Patch(state.Patch{Resources: map[string]int{
		state.ResGold:      0,
		state.ResManpower:  0,
		state.ResMaterials: 0,
	}})

	recycle(t, e)
	assert.Equal(t, content.GameOverResources, e.store.State().CurrentScenarioID)
}

func TestManualAdvanceBounded(t *testing.T) {
	e := newTestEngine(t, "2026-03-14")

	for i := 0; i < 5; i++ {
		msg, err := e.AdvanceDay()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Day %d begins.", i+2), msg)
	}
	s := e.store.State()
	assert.Equal(t, 6, s.Day)
	assert.Equal(t, 5, s.ManualDayAdvances)

	// The sixth attempt is refused and changes nothing.
	msg, err := e.AdvanceDay()
	require.NoError(t, err)
	assert.Equal(t, "No more manual day advances today. Try again tomorrow.", msg)
	assert.Equal(t, 6, e.store.State().Day)
}

func TestManualAdvanceBudgetResetsOnRollover(t *testing.T) {
	repo := &memRepo{}
	e := New(state.NewStore(repo), fixedClock(t, "2026-03-14"))
	require.NoError(t, e.Bootstrap())
	for i := 0; i < 5; i++ {
		_, err := e.AdvanceDay()
		require.NoError(t, err)
	}

	e2 := New(state.NewStore(repo), fixedClock(t, "2026-03-15"))
	require.NoError(t, e2.Bootstrap())
	assert.Equal(t, 0, e2.store.State().ManualDayAdvances)

	msg, err := e2.AdvanceDay()
	require.NoError(t, err)
	assert.Equal(t, "Day 8 begins.", msg)
}
