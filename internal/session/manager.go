package session

import (
	"math/rand"
	"sync"

	"github.com/jnovotny/examtrainer/internal/models"
)

// Manager holds the single active session per user. A session survives while
// its configuration is unchanged; any change to user, language, set, mode, or
// shuffle flags replaces it with a fresh NOT_STARTED session. There is no
// sharing of a session across concurrent runs for the same user.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	rng      func() *rand.Rand
}

// NewManager creates an empty session manager. newRNG may be nil; tests
// inject deterministic sources through it.
func NewManager(newRNG func() *rand.Rand) *Manager {
	if newRNG == nil {
		newRNG = func() *rand.Rand { return nil }
	}
	return &Manager{
		sessions: make(map[string]*Session),
		rng:      newRNG,
	}
}

// Ensure returns the user's current session when its configuration matches
// cfg, otherwise replaces it with a new session over the given questions.
func (m *Manager) Ensure(cfg Config, questions []models.Question) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[cfg.User]; ok && s.Config() == cfg {
		return s
	}
	s := New(cfg, questions, m.rng())
	m.sessions[cfg.User] = s
	return s
}

// Get returns the user's active session, if any.
func (m *Manager) Get(user string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[user]
	return s, ok
}

// Drop discards the user's active session. An abandoned session has no side
// effects; stats are only committed at finish.
func (m *Manager) Drop(user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, user)
}
