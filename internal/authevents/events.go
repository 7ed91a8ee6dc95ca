// Package authevents carries auth-state change notifications from the auth
// provider to whoever holds session state.
package authevents

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	SignedIn    Kind = "SIGNED_IN"
	SignedOut   Kind = "SIGNED_OUT"
	UserUpdated Kind = "USER_UPDATED"
)

// Event describes one change. SessionID is empty when the change applies to
// every session of the user.
type Event struct {
	Kind      Kind      `json:"kind"`
	UserID    uint      `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	At        time.Time `json:"at"`
	Origin    string    `json:"origin,omitempty"`
}

type Listener func(Event)

type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(listener Listener) (unsubscribe func())
}

// MemoryBus delivers events synchronously to in-process listeners.
type MemoryBus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[uint64]Listener
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{listeners: make(map[uint64]Listener)}
}

func (bus *MemoryBus) Publish(_ context.Context, event Event) error {
	bus.dispatch(event)
	return nil
}

func (bus *MemoryBus) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}

	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	bus.listeners[id] = listener
	bus.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			bus.mu.Lock()
			delete(bus.listeners, id)
			bus.mu.Unlock()
		})
	}
}

func (bus *MemoryBus) ListenerCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.listeners)
}

func (bus *MemoryBus) dispatch(event Event) {
	bus.mu.RLock()
	snapshot := make([]Listener, 0, len(bus.listeners))
	for _, listener := range bus.listeners {
		snapshot = append(snapshot, listener)
	}
	bus.mu.RUnlock()

	for _, listener := range snapshot {
		listener(event)
	}
}
