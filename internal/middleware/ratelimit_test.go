package middleware

import "testing"

func TestRateLimiterBurst(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Enabled: true, RequestsPerMin: 60})

	for i := 0; i < 6; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request beyond burst was allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("clients must be limited independently")
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{})
	if !rl.Allow("client") {
		t.Error("zero config must fall back to a sane default, not deny")
	}
}
