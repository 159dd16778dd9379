package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/n8nvoice/voice-gateway/internal/domain/session"
)

// ErrSessionNotFound is returned when a session is not found. Callers
// rely on this being distinct from webhook delivery failures.
var ErrSessionNotFound = errors.New("session not found")

// MemoryStore is a mutex-based in-memory session registry.
// Thread-safe via sync.RWMutex. Entries live until process exit.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	log      zerolog.Logger
}

// NewMemoryStore creates a new in-memory session registry.
func NewMemoryStore(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session.Session),
		log:      log.With().Str("component", "session-store").Logger(),
	}
}

// Put stores a session. An existing entry with the same ID is
// overwritten; last write wins.
func (s *MemoryStore) Put(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		s.log.Debug().Str("session_id", sess.ID).Msg("overwriting registered session")
	}
	s.sessions[sess.ID] = sess
	return nil
}

// Get retrieves a session by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// List returns all registered sessions.
func (s *MemoryStore) List(ctx context.Context) ([]*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess)
	}
	return result, nil
}
