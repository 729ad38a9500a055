package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBlocksAboveLimit(t *testing.T) {
	t.Parallel()

	l := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("user-1") {
			t.Fatalf("request %d denied below limit", i+1)
		}
	}
	if l.Allow("user-1") {
		t.Fatalf("request above limit allowed")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, time.Minute)

	if !l.Allow("user-1") {
		t.Fatalf("first key denied")
	}
	if !l.Allow("user-2") {
		t.Fatalf("second key denied after first key used up its allowance")
	}
}

func TestLimiterWindowReset(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, time.Minute)
	current := time.Unix(1000, 0)
	l.now = func() time.Time { return current }

	if !l.Allow("user-1") {
		t.Fatalf("first request denied")
	}
	if l.Allow("user-1") {
		t.Fatalf("second request in window allowed")
	}

	current = current.Add(2 * time.Minute)
	if !l.Allow("user-1") {
		t.Fatalf("request after window reset denied")
	}
}
