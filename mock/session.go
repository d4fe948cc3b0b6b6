package mock

import (
	"context"

	"github.com/fwojciec/voicenav"
)

var _ voicenav.SessionStore = (*SessionStore)(nil)

// SessionStore is a mock implementation of voicenav.SessionStore.
type SessionStore struct {
	FindSessionFn func(ctx context.Context, id string) (*voicenav.Session, error)
	SaveSessionFn func(ctx context.Context, session *voicenav.Session) error
}

func (s *SessionStore) FindSession(ctx context.Context, id string) (*voicenav.Session, error) {
	return s.FindSessionFn(ctx, id)
}

func (s *SessionStore) SaveSession(ctx context.Context, session *voicenav.Session) error {
	return s.SaveSessionFn(ctx, session)
}
