package conversation

import (
	"context"
	"sync"
)

// MemoryStore keeps states in process memory. States are lost on restart.
type MemoryStore struct {
	mu     sync.Mutex
	states map[int64]State
}

var _ StateStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]State)}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[userID]
	if !ok {
		return Idle(), nil
	}
	return state, nil
}

func (m *MemoryStore) Save(ctx context.Context, userID int64, state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if state.IsIdle() {
		return m.Clear(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}
