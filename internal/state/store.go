package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Repo is the opaque persistence slot behind the store: one blob, read on
// load, overwritten wholesale on every commit.
type Repo interface {
	LoadBlob() ([]byte, bool, error)
	SaveBlob(data []byte) error
	DeleteBlob() error
}

// CommitHook runs after every successful commit with the committed state
// and an optional human-readable message. The presentation layer hangs
// off this; the core never renders anything itself.
type CommitHook func(s *SimulationState, message string)

// Store owns the simulation state. Patch is the sole mutation path, and
// every patch is committed immediately, so persisted state is never more
// than one action stale.
type Store struct {
	repo  Repo
	state *SimulationState
	hooks []CommitHook
}

// NewStore creates a store over the given persistence slot.
func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// OnCommit registers a post-commit hook.
func (st *Store) OnCommit(h CommitHook) {
	st.hooks = append(st.hooks, h)
}

// State returns the current state. Read-only for callers; mutate through
// Patch.
func (st *Store) State() *SimulationState {
	return st.state
}

// Load reads the persisted blob, or constructs first-day defaults when it
// is absent or unreadable. Older persisted shapes are upgraded by the
// ordered migration list. Returns true when a fresh state was built.
func (st *Store) Load(today string) (bool, error) {
	blob, found, err := st.repo.LoadBlob()
	if err != nil {
		return false, fmt.Errorf("load save slot: %w", err)
	}
	if !found {
		st.state = NewDefault(today)
		return true, nil
	}

	loaded := &SimulationState{}
	if err := json.Unmarshal(blob, loaded); err != nil {
		// A corrupt blob is equivalent to a first run, never an error.
		slog.Warn("save blob unreadable, starting fresh", "error", err)
		st.state = NewDefault(today)
		return true, nil
	}

	Migrate(loaded)
	st.state = loaded
	return false, nil
}

// Patch merge-patches the given partial update into the state.
func (st *Store) Patch(p Patch) {
	p.apply(st.state)
}

// Commit persists the current state synchronously and notifies hooks.
func (st *Store) Commit(message string) error {
	blob, err := json.Marshal(st.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := st.repo.SaveBlob(blob); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	for _, h := range st.hooks {
		h(st.state, message)
	}
	return nil
}

// Apply is Patch followed by Commit. Callers use this; the split exists
// for the daily cycle, which patches several times before one commit.
func (st *Store) Apply(p Patch, message string) error {
	st.Patch(p)
	return st.Commit(message)
}

// Reset discards persisted state and rebuilds first-day defaults.
func (st *Store) Reset(today string) error {
	if err := st.repo.DeleteBlob(); err != nil {
		return fmt.Errorf("delete save slot: %w", err)
	}
	st.state = NewDefault(today)
	return st.Commit("The empire has been founded anew.")
}
