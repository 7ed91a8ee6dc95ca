package services

import (
	"context"
	"log"
	"time"
)

const defaultSweepInterval = 6 * time.Hour

type ExpiredSessionStore interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionSweeper periodically deletes auth session rows past their expiry.
// Expired rows are already rejected by GetSession; this only bounds growth.
type SessionSweeper struct {
	sessions ExpiredSessionStore
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweeper(sessions ExpiredSessionStore, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		now:      time.Now,
	}
}

// Start sweeps once right away and then on every tick until ctx is done.
func (sweeper *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sweeper.interval)
	go func() {
		defer ticker.Stop()

		sweeper.Sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweeper.Sweep(ctx)
			}
		}
	}()
}

func (sweeper *SessionSweeper) Sweep(ctx context.Context) int64 {
	deleted, err := sweeper.sessions.DeleteExpired(ctx, sweeper.now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("session sweep failed: %v", err)
		}
		return 0
	}
	if deleted > 0 {
		log.Printf("session sweep removed %d expired sessions", deleted)
	}
	return deleted
}
