package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL caps how long a session outlives its last login. Tokens expire
// far sooner; the session record is the revocation anchor.
const sessionTTL = 24 * time.Hour

const sessionKeyPrefix = "session:"
const sessionEventsChannel = "session-events"

// SessionEvent signals that a session's validity changed. Watchers re-check
// their session on every event rather than interpreting the payload.
type SessionEvent struct {
	SessionID string
	Kind      string // "revoked"
}

// SessionChecker is the session-store contract the HTTP layer depends on.
// RedisSessionStore backs production; InMemorySessionStore backs tests.
type SessionChecker interface {
	Create(ctx context.Context, sessionID, username string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// SessionWatcher is implemented by session stores that can stream revocation
// events. The long-poll endpoint consumes it so that a session revoked from
// one admin session is pushed to any other open view.
type SessionWatcher interface {
	Watch(ctx context.Context) <-chan SessionEvent
}

// RedisSessionStore keeps one key per live admin session and publishes
// revocations so that open protected views can react immediately.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Create(ctx context.Context, sessionID, username string) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, username, sessionTTL).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return err
	}
	return s.rdb.Publish(ctx, sessionEventsChannel, "revoked:"+sessionID).Err()
}

// Watch subscribes to session events. The returned channel closes when ctx is
// cancelled.
func (s *RedisSessionStore) Watch(ctx context.Context) <-chan SessionEvent {
	events := make(chan SessionEvent)
	sub := s.rdb.Subscribe(ctx, sessionEventsChannel)

	go func() {
		defer close(events)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ev := SessionEvent{Kind: "revoked"}
				if len(msg.Payload) > len("revoked:") {
					ev.SessionID = msg.Payload[len("revoked:"):]
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}
