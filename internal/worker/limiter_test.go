package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatal("disabled limiter refused a request")
		}
	}
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLimiter_BurstThenThrottle(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow() || !l.Allow() {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow() {
		t.Error("expected third immediate request to be throttled")
	}
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.Allow() // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected context deadline error while throttled")
	}
}
