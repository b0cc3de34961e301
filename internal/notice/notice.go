// Package notice keeps one-shot user notices per browser session. A notice
// is shown once: Pop returns pending notices and forgets them.
package notice

import (
	"context"
	"sync"
	"time"
)

type Level string

const (
	Success Level = "success"
	Error   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Store interface {
	Push(ctx context.Context, session string, n Notice) error
	Pop(ctx context.Context, session string) ([]Notice, error)
}

// MemoryStore is the in-process fallback used when Redis is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]*sessionNotices
}

type sessionNotices struct {
	notices []Notice
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, pending: make(map[string]*sessionNotices)}
}

func (m *MemoryStore) Push(_ context.Context, session string, n Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry, ok := m.pending[session]
	if !ok || now.After(entry.expires) {
		entry = &sessionNotices{}
		m.pending[session] = entry
	}
	entry.notices = append(entry.notices, n)
	entry.expires = now.Add(m.ttl)

	for id, e := range m.pending {
		if now.After(e.expires) {
			delete(m.pending, id)
		}
	}
	return nil
}

func (m *MemoryStore) Pop(_ context.Context, session string) ([]Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.pending[session]
	delete(m.pending, session)
	if !ok || m.now().After(entry.expires) {
		return []Notice{}, nil
	}
	return entry.notices, nil
}
