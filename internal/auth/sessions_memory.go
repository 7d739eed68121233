package auth

import (
	"context"
	"sync"
)

// InMemorySessionStore is the SessionChecker used by the handler tests.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	watchers []chan SessionEvent
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: map[string]string{}}
}

func (s *InMemorySessionStore) Create(_ context.Context, sessionID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = username
	return nil
}

func (s *InMemorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *InMemorySessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	for _, ch := range s.watchers {
		select {
		case ch <- SessionEvent{SessionID: sessionID, Kind: "revoked"}:
		default:
		}
	}
	return nil
}

// Watch mirrors the Redis store's revocation feed so the long-poll endpoint
// behaves the same under test. The channel closes when ctx ends.
func (s *InMemorySessionStore) Watch(ctx context.Context) <-chan SessionEvent {
	ch := make(chan SessionEvent, 4)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}
