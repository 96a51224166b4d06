package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Store. Sessions are kept encoded so callers never
// share a *shop.Session between requests.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, sessions: map[string]entry{}}
}

func (m *Memory) Create(ctx context.Context) (string, *shop.Session, error) {
	s := shop.NewSession()
	token := newToken()
	if err := m.Save(ctx, token, s); err != nil {
		return "", nil, err
	}
	return token, s, nil
}

func (m *Memory) Get(ctx context.Context, token string) (*shop.Session, error) {
	m.mu.Lock()
	e, ok := m.sessions[token]
	if ok && m.now().After(e.expires) {
		delete(m.sessions, token)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s := shop.NewSession()
	if err := json.Unmarshal(e.data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save stores s and extends its lifetime.
func (m *Memory) Save(ctx context.Context, token string, s *shop.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = entry{data: b, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	now := m.now()
	for token, e := range m.sessions {
		if now.After(e.expires) {
			delete(m.sessions, token)
			n++
		}
	}
	return n
}
