package middleware

import (
	"isms-assistant/pkg/log"
)

// Middleware bundles the cross-cutting HTTP concerns registered on the
// router before the domain handlers.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
	cfg     RateLimitConfig
}

func New(l log.Logger, cfg RateLimitConfig) Middleware {
	return Middleware{
		l:       l,
		limiter: newRateLimiter(cfg),
		cfg:     cfg,
	}
}
