package http

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/voicenav"
	"github.com/google/uuid"
)

// Session store defaults.
const (
	DefaultMaxSessions = 64
	DefaultSessionTTL  = time.Hour
)

// Ensure MemorySessionStore implements voicenav.SessionStore at compile time.
var _ voicenav.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart, expire TTL after their last save, and the least recently saved
// session is evicted once MaxSessions are held.
type MemorySessionStore struct {
	MaxSessions int
	TTL         time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session voicenav.Session
	savedAt time.Time
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		MaxSessions: DefaultMaxSessions,
		TTL:         DefaultSessionTTL,
		Now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

// FindSession returns a copy of the session stored under id.
func (s *MemorySessionStore) FindSession(ctx context.Context, id string) (*voicenav.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if ok && s.expired(entry, s.now()) {
		delete(s.sessions, id)
		ok = false
	}
	if !ok {
		return nil, voicenav.Errorf(voicenav.ENOTFOUND, "session not found")
	}
	cp := entry.session
	return &cp, nil
}

// SaveSession stores the session, assigning an ID if it has none.
func (s *MemorySessionStore) SaveSession(ctx context.Context, session *voicenav.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
	if _, ok := s.sessions[session.ID]; !ok && s.MaxSessions > 0 {
		for len(s.sessions) >= s.MaxSessions {
			s.evictOldest()
		}
	}

	s.sessions[session.ID] = &sessionEntry{session: *session, savedAt: now}
	return nil
}

// Len returns the number of sessions held, including expired ones not yet
// pruned.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) evictOldest() {
	var oldest string
	var oldestAt time.Time
	for id, entry := range s.sessions {
		if oldest == "" || entry.savedAt.Before(oldestAt) {
			oldest, oldestAt = id, entry.savedAt
		}
	}
	delete(s.sessions, oldest)
}

func (s *MemorySessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return s.TTL > 0 && now.Sub(entry.savedAt) >= s.TTL
}

func (s *MemorySessionStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
