package journal

import (
	"context"
	"sync"
)

type Snapshot struct {
	Total    uint64            `json:"total"`
	ByAction map[string]uint64 `json:"by_action"`
}

// Memory keeps every entry in process. Safe for concurrent sessions.
type Memory struct {
	mu       sync.Mutex
	entries  []Entry
	byAction map[string]uint64
}

func NewMemory() *Memory {
	return &Memory{
		byAction: map[string]uint64{},
	}
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	m.byAction[e.Action.Kind.Name()]++
	return nil
}

// Entries returns the recorded entries of one session in turn order.
func (m *Memory) Entries(session string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0)
	for _, e := range m.entries {
		if e.Session == session {
			out = append(out, e)
		}
	}
	return out
}

func (m *Memory) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := Snapshot{
		Total:    uint64(len(m.entries)),
		ByAction: make(map[string]uint64, len(m.byAction)),
	}
	for k, v := range m.byAction {
		out.ByAction[k] = v
	}
	return out
}

func (m *Memory) Close() error { return nil }
