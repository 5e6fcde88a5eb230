package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory save slot.
type memRepo struct {
	blob  []byte
	found bool
}

func (m *memRepo) LoadBlob() ([]byte, bool, error) { return m.blob, m.found, nil }
func (m *memRepo) SaveBlob(data []byte) error {
	m.blob = append([]byte(nil), data...)
	m.found = true
	return nil
}
func (m *memRepo) DeleteBlob() error {
	m.blob, m.found = nil, false
	return nil
}

func TestLoadFreshDefaults(t *testing.T) {
	st := NewStore(&memRepo{})

	fresh, err := st.Load("2026-03-14")
	require.NoError(t, err)
	assert.True(t, fresh)

	s := st.State()
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 10, s.ActionPoints)
	assert.Equal(t, "2026-03-14", s.LastPlayedDate)
	assert.Equal(t, 50, s.Stat(StatOrder))
	assert.Len(t, s.Subordinates, 2)
}

func TestLoadRoundTrip(t *testing.T) {
	repo := &memRepo{}
	st := NewStore(repo)
	_, err := st.Load("2026-03-14")
	require.NoError(t, err)

	require.NoError(t, st.Apply(Patch{
		Day:       Int(7),
		Resources: map[string]int{ResGold: 123},
	}, "test"))

	// A second store over the same slot sees the committed state.
	st2 := NewStore(repo)
	fresh, err := st2.Load("2026-03-15")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, 7, st2.State().Day)
	assert.Equal(t, 123, st2.State().Resource(ResGold))
	// LastPlayedDate comes from the blob, not the load argument.
	assert.Equal(t, "2026-03-14", st2.State().LastPlayedDate)
}

func TestLoadCorruptBlobStartsFresh(t *testing.T) {
	repo := &memRepo{blob: []byte("{not json"), found: true}
	st := NewStore(repo)

	fresh, err := st.Load("2026-03-14")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, 1, st.State().Day)
}

func TestLoadIdempotent(t *testing.T) {
	repo := &memRepo{}
	st := NewStore(repo)
	_, err := st.Load("2026-03-14")
	require.NoError(t, err)
	require.NoError(t, st.Commit("initial"))
	first, err := json.Marshal(st.State())
	require.NoError(t, err)

	// Loading again changes nothing.
	fresh, err := st.Load("2026-03-14")
	require.NoError(t, err)
	assert.False(t, fresh)
	second, err := json.Marshal(st.State())
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestCommitNotifiesHooks(t *testing.T) {
	st := NewStore(&memRepo{})
	_, err := st.Load("2026-03-14")
	require.NoError(t, err)

	var gotMessage string
	var gotDay int
	st.OnCommit(func(s *SimulationState, message string) {
		gotMessage = message
		gotDay = s.Day
	})

	require.NoError(t, st.Apply(Patch{Day: Int(4)}, "the day turns"))
	assert.Equal(t, "the day turns", gotMessage)
	assert.Equal(t, 4, gotDay)
}

func TestReset(t *testing.T) {
	repo := &memRepo{}
	st := NewStore(repo)
	_, err := st.Load("2026-03-14")
	require.NoError(t, err)
	require.NoError(t, st.Apply(Patch{Day: Int(30)}, ""))

	require.NoError(t, st.Reset("2026-04-01"))
	assert.Equal(t, 1, st.State().Day)
	assert.Equal(t, "2026-04-01", st.State().LastPlayedDate)

	// The fresh state was committed, not just held in memory.
	st2 := NewStore(repo)
	fresh, err := st2.Load("2026-04-01")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, 1, st2.State().Day)
}
