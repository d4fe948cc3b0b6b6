package voicenav

import "context"

// Session carries the state of one upload → selection round-trip.
type Session struct {
	ID        string
	Catalog   Catalog
	Documents []AnnotatedDocument
}

// SessionStore keeps sessions between requests.
type SessionStore interface {
	// FindSession returns ENOTFOUND if no session exists for id.
	FindSession(ctx context.Context, id string) (*Session, error)

	// SaveSession creates or replaces the session with the same ID.
	SaveSession(ctx context.Context, session *Session) error
}
