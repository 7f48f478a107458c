package chatbot

import (
	"context"
	"sync"
	"time"
)

type memoryDraft struct {
	draft     Draft
	expiresAt time.Time
}

// MemoryStore keeps drafts in process. Expired drafts read as Idle and are
// removed by Sweep.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[string]memoryDraft
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, drafts: make(map[string]memoryDraft)}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (State, error) {
	m.mu.Lock()
	item, ok := m.drafts[userID]
	if ok && !m.now().Before(item.expiresAt) {
		delete(m.drafts, userID)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return Idle{}, nil
	}
	return item.draft.State()
}

func (m *MemoryStore) Save(_ context.Context, userID string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state.Stage() == StageIdle {
		delete(m.drafts, userID)
		return nil
	}
	m.drafts[userID] = memoryDraft{draft: DraftOf(state), expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Sweep drops expired drafts and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, item := range m.drafts {
		if !now.Before(item.expiresAt) {
			delete(m.drafts, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}
