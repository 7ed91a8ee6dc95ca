package services

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndClear(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(1, time.Hour)
	key := "staff@example.com"
	now := time.Now().UTC()

	limiter.fail(key, now.Add(-2*time.Hour))
	if limiter.blocked(key, now) {
		t.Fatal("expected old failure to fall out of the window")
	}

	limiter.fail(key, now.Add(-30*time.Minute))
	if !limiter.blocked(key, now) {
		t.Fatal("expected one recent failure to hit limit 1")
	}

	limiter.clear(key)
	if limiter.blocked(key, now) {
		t.Fatal("expected no failures after clear")
	}
}

func TestAttemptLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Minute)
	now := time.Now().UTC()

	limiter.fail("a@example.com", now)
	limiter.fail("a@example.com", now)
	if !limiter.blocked("a@example.com", now) {
		t.Fatal("expected a@example.com to be blocked")
	}
	if limiter.blocked("b@example.com", now) {
		t.Fatal("expected b@example.com to be unaffected")
	}
}
