package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, 1*time.Second)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	if limiter.Allow("10.0.0.1") {
		t.Error("4th request should be blocked")
	}

	// Another client is tracked independently
	if !limiter.Allow("10.0.0.2") {
		t.Error("request from different IP should be allowed")
	}
}

func TestRateLimiterWindowExpiration(t *testing.T) {
	limiter := NewRateLimiter(2, 300*time.Millisecond)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")

	if limiter.Allow("10.0.0.1") {
		t.Error("request should be blocked before window expires")
	}

	time.Sleep(350 * time.Millisecond)

	if !limiter.Allow("10.0.0.1") {
		t.Error("request should be allowed after window expires")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(5, 100*time.Millisecond)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")

	time.Sleep(150 * time.Millisecond)
	limiter.cleanup()

	limiter.mu.Lock()
	remaining := len(limiter.requests)
	limiter.mu.Unlock()

	if remaining != 0 {
		t.Errorf("expected empty request map after cleanup, got %d entries", remaining)
	}
}
