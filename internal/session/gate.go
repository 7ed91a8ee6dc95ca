// Package session holds the process-wide view of who is signed in.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/proappliance/quoteadmin/internal/authevents"
	"github.com/proappliance/quoteadmin/internal/models"
)

const DefaultCacheTTL = time.Minute

var ErrNoSession = errors.New("no session")

// Provider is the slice of the auth provider the gate needs.
type Provider interface {
	GetSession(ctx context.Context, accessToken string) (models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Subscribe(listener authevents.Listener) (unsubscribe func())
}

type cacheEntry struct {
	session  models.Session
	cachedAt time.Time
}

// Gate owns cached session state keyed by access token. It is the only
// writer of that state besides provider events.
type Gate struct {
	provider    Provider
	ttl         time.Duration
	now         func() time.Time
	unsubscribe func()

	mu      sync.RWMutex
	entries map[string]cacheEntry
	closed  bool
}

type Option func(*Gate)

func WithCacheTTL(ttl time.Duration) Option {
	return func(gate *Gate) {
		if ttl > 0 {
			gate.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(gate *Gate) {
		if now != nil {
			gate.now = now
		}
	}
}

func NewGate(provider Provider, options ...Option) *Gate {
	gate := &Gate{
		provider: provider,
		ttl:      DefaultCacheTTL,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
	for _, option := range options {
		option(gate)
	}
	gate.unsubscribe = provider.Subscribe(gate.handleEvent)
	return gate
}

// Resolve returns the live session for the token. Expired sessions are
// evicted here rather than by a background sweep.
func (gate *Gate) Resolve(ctx context.Context, accessToken string) (models.Session, error) {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return models.Session{}, ErrNoSession
	}

	now := gate.now()
	gate.mu.RLock()
	entry, ok := gate.entries[token]
	gate.mu.RUnlock()

	if ok {
		if entry.session.Expired(now) {
			gate.evictToken(token)
			return models.Session{}, ErrNoSession
		}
		if now.Sub(entry.cachedAt) < gate.ttl {
			return entry.session, nil
		}
	}

	fresh, err := gate.provider.GetSession(ctx, token)
	if err != nil {
		gate.evictToken(token)
		return models.Session{}, err
	}
	if fresh.Expired(now) {
		return models.Session{}, ErrNoSession
	}

	gate.store(token, fresh, now)
	return fresh, nil
}

func (gate *Gate) Login(session models.Session) {
	if strings.TrimSpace(session.AccessToken) == "" {
		return
	}
	gate.store(session.AccessToken, session, gate.now())
}

// Logout signs the token out remotely and always clears local state. The
// provider error is returned for logging only.
func (gate *Gate) Logout(ctx context.Context, accessToken string) error {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return nil
	}
	err := gate.provider.SignOut(ctx, token)
	gate.evictToken(token)
	return err
}

// Close drops the event subscription and every cached session.
func (gate *Gate) Close() {
	gate.mu.Lock()
	if gate.closed {
		gate.mu.Unlock()
		return
	}
	gate.closed = true
	gate.entries = make(map[string]cacheEntry)
	gate.mu.Unlock()

	if gate.unsubscribe != nil {
		gate.unsubscribe()
	}
}

func (gate *Gate) CachedCount() int {
	gate.mu.RLock()
	defer gate.mu.RUnlock()
	return len(gate.entries)
}

func (gate *Gate) handleEvent(event authevents.Event) {
	switch event.Kind {
	case authevents.SignedOut:
		if event.SessionID != "" {
			gate.evictWhere(func(session models.Session) bool { return session.ID == event.SessionID })
			return
		}
		gate.evictWhere(func(session models.Session) bool { return session.UserID == event.UserID })
	case authevents.UserUpdated:
		gate.evictWhere(func(session models.Session) bool { return session.UserID == event.UserID })
	}
}

func (gate *Gate) store(token string, session models.Session, at time.Time) {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	if gate.closed {
		return
	}
	gate.entries[token] = cacheEntry{session: session, cachedAt: at}
}

func (gate *Gate) evictToken(token string) {
	gate.mu.Lock()
	delete(gate.entries, token)
	gate.mu.Unlock()
}

func (gate *Gate) evictWhere(match func(models.Session) bool) {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	for token, entry := range gate.entries {
		if match(entry.session) {
			delete(gate.entries, token)
		}
	}
}
