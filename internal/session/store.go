package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"netrestrict/internal/models"
)

// Store is an in-memory session store keyed by an opaque id.
type Store struct {
	mu   sync.RWMutex
	data map[string]models.Session
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{data: make(map[string]models.Session), now: time.Now}
}

var DefaultStore = NewStore()

// Create stores the session and returns a new opaque id.
func (s *Store) Create(sess models.Session) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.data[id] = sess
	s.mu.Unlock()
	return id
}

func (s *Store) expired(sess models.Session, at time.Time) bool {
	return !sess.Expiry.IsZero() && sess.Expiry.Before(at)
}

// Get returns the session for id if present and not expired.
// Expired entries are deleted lazily.
func (s *Store) Get(id string) (models.Session, bool) {
	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return models.Session{}, false
	}
	if s.expired(sess, s.now()) {
		s.Delete(id)
		return models.Session{}, false
	}
	return sess, true
}

// Delete removes a session by id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// DeleteUser removes every session of userID and returns how many there were.
func (s *Store) DeleteUser(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.data {
		if v.UserID == userID {
			delete(s.data, k)
			n++
		}
	}
	return n
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	at := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.data {
		if s.expired(v, at) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

// StartSweeper launches a background goroutine that periodically sweeps
// expired sessions. It stops when ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Entry is a snapshot of a single session in the store.
type Entry struct {
	ID      string
	Session models.Session
}

// List returns a snapshot of all sessions.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.data))
	for k, v := range s.data {
		out = append(out, Entry{ID: k, Session: v})
	}
	return out
}
