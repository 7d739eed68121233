package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/giftline/catalog-site/internal/gateway"
)

// AuthState is the guard's view of the session.
type AuthState int

const (
	AuthUnknown AuthState = iota
	Authenticated
	Unauthenticated
)

// SessionSource is the slice of the gateway the guard uses.
type SessionSource interface {
	Session(ctx context.Context) (gateway.Session, error)
	SignOut(ctx context.Context) error
}

// Guard gates the protected admin view. Any failure to confirm a session
// counts as unauthenticated and triggers the redirect callback; the decision
// is re-evaluated on every session-change event, so a session revoked while
// the view is open redirects immediately.
type Guard struct {
	source   SessionSource
	redirect func()

	mu    sync.Mutex
	state AuthState
}

// NewGuard builds a guard; redirect navigates to the sign-in view and is
// invoked every time a check lands on Unauthenticated.
func NewGuard(source SessionSource, redirect func()) *Guard {
	return &Guard{source: source, redirect: redirect, state: AuthUnknown}
}

// Check queries the current session and updates the state. A query failure
// is treated as no session.
func (g *Guard) Check(ctx context.Context) AuthState {
	session, err := g.source.Session(ctx)

	state := Unauthenticated
	if err == nil && session.Authenticated {
		state = Authenticated
	} else if err != nil {
		log.Printf("dashboard: session check: %v", err)
	}

	g.mu.Lock()
	g.state = state
	g.mu.Unlock()

	if state == Unauthenticated && g.redirect != nil {
		g.redirect()
	}
	return state
}

// Watch re-runs Check on every event until ctx ends or the channel closes.
// The payload carries no meaning; each event just means "re-evaluate".
func (g *Guard) Watch(ctx context.Context, events <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			g.Check(ctx)
		}
	}
}

// SignOut invalidates the session through the gateway, then redirects
// regardless of the call's outcome.
func (g *Guard) SignOut(ctx context.Context) error {
	err := g.source.SignOut(ctx)

	g.mu.Lock()
	g.state = Unauthenticated
	g.mu.Unlock()

	if g.redirect != nil {
		g.redirect()
	}
	return err
}

func (g *Guard) State() AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
