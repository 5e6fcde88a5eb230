package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFirstReleaseSave(t *testing.T) {
	// A version-1 blob predates the authority/order statistics and the
	// relic resource.
	blob := `{
		"version": 1,
		"day": 12,
		"statistics": {"strategy": 62, "growth": 45, "influence": 51},
		"actionPoints": 3,
		"maxActionPoints": 10,
		"resources": {"gold": 40, "manpower": 22, "materials": 9},
		"subordinates": [{"id": "machiavelli", "name": "Machiavelli", "skill": "diplomacy", "loyalty": 70}],
		"maxSubordinates": 5,
		"currentScenarioId": "intro",
		"lastPlayedDate": "2026-02-01"
	}`

	s := &SimulationState{}
	require.NoError(t, json.Unmarshal([]byte(blob), s))
	Migrate(s)

	assert.Equal(t, CurrentVersion, s.Version)
	// Existing values survive.
	assert.Equal(t, 12, s.Day)
	assert.Equal(t, 62, s.Stat(StatStrategy))
	assert.Equal(t, 40, s.Resource(ResGold))
	// New fields get their documented defaults.
	assert.Equal(t, 50, s.Stat(StatAuthority))
	assert.Equal(t, 50, s.Stat(StatOrder))
	assert.Equal(t, 0, s.Resource(ResRelics))
	// Baseline migration was skipped for a version-1 save.
	assert.Len(t, s.Subordinates, 1)
}

func TestMigratePreVersioningSave(t *testing.T) {
	// The oldest saves carry no version at all and may be missing almost
	// everything.
	blob := `{"day": 3, "statistics": {"strategy": 70}}`

	s := &SimulationState{}
	require.NoError(t, json.Unmarshal([]byte(blob), s))
	Migrate(s)

	assert.Equal(t, CurrentVersion, s.Version)
	assert.Equal(t, 3, s.Day)
	assert.Equal(t, 70, s.Stat(StatStrategy))
	assert.Equal(t, 50, s.Stat(StatGrowth))
	assert.Equal(t, 50, s.Stat(StatOrder))
	assert.Equal(t, 10, s.MaxActionPoints)
	assert.Equal(t, 10, s.Resource(ResGold))
	assert.Len(t, s.Subordinates, 2)
	assert.Equal(t, "intro", s.CurrentScenarioID)
	for _, id := range BuildingIDs {
		b, ok := s.Buildings[id]
		require.True(t, ok, "building %s missing after migration", id)
		assert.False(t, b.Built)
		assert.Equal(t, 100, b.Durability)
	}
}

func TestMigrateCurrentSaveUntouched(t *testing.T) {
	s := NewDefault("2026-03-14")
	s.Statistics[StatAuthority] = 12

	Migrate(s)

	// Current-version saves pass through without any backfill.
	assert.Equal(t, 12, s.Stat(StatAuthority))
	assert.Equal(t, CurrentVersion, s.Version)
}
