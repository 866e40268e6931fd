package httpapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"birdquiz/internal/quiz"
)

// sessionManager tracks live server-side sessions by ID. Finished or
// abandoned sessions are evicted after a fixed idle period so a long-running
// server does not accumulate them.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession
	maxIdle  time.Duration
	now      func() time.Time
}

type managedSession struct {
	id       string
	session  *quiz.Session
	lastSeen time.Time
	saved    bool
}

const defaultSessionMaxIdle = time.Hour

func newSessionManager() *sessionManager {
	return &sessionManager{
		sessions: make(map[string]*managedSession),
		maxIdle:  defaultSessionMaxIdle,
		now:      time.Now,
	}
}

func (m *sessionManager) create(session *quiz.Session) *managedSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictIdleLocked()

	managed := &managedSession{
		id:       uuid.NewString(),
		session:  session,
		lastSeen: m.now(),
	}
	m.sessions[managed.id] = managed
	return managed
}

func (m *sessionManager) get(id string) (*managedSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictIdleLocked()

	managed, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	managed.lastSeen = m.now()
	return managed, true
}

// markSaved reports whether this call was the first to claim the save, so a
// finished session's result is written to history exactly once even when
// clients retry the final advance.
func (m *sessionManager) markSaved(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	managed, ok := m.sessions[id]
	if !ok || managed.saved {
		return false
	}
	managed.saved = true
	return true
}

func (m *sessionManager) evictIdleLocked() {
	cutoff := m.now().Add(-m.maxIdle)
	for id, managed := range m.sessions {
		if managed.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
