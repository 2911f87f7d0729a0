package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const janitorInterval = time.Minute

// Manager is the in-memory session registry. Sessions are anonymous page
// sessions; an idle one is evicted after the configured TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	log      zerolog.Logger
}

// NewManager creates a registry with the given idle TTL.
func NewManager(ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		log:      log.With().Str("component", "session_manager").Logger(),
	}
}

// Create registers a fresh session.
func (m *Manager) Create() *Session {
	s := New()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info().Str("session_id", s.ID.String()).Msg("session created")
	return s
}

// Get looks up a session and refreshes its idle timer.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		s.Touch()
	}
	return s, ok
}

// Delete removes a session.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start runs the janitor loop until ctx is cancelled, evicting sessions that
// have been idle longer than the TTL.
func (m *Manager) Start(ctx context.Context) {
	m.log.Info().Dur("ttl", m.ttl).Msg("session janitor started")

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("session janitor stopped")
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var evicted []uuid.UUID
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	for _, id := range evicted {
		m.log.Debug().Str("session_id", id.String()).Msg("idle session evicted")
	}
}
