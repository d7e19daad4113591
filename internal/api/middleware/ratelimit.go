package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/metrics"
	"github.com/speernotes/notes-system/internal/ratelimit"
)

// ThrottleHeader marks responses that were admitted with an artificial
// delay.
const ThrottleHeader = "X-RateLimit-Throttled"

const blockedBody = "Too many requests. Try again later."

// RateLimit guards every request by client IP. It runs before
// authentication, so blocked clients cost no token validation or user
// lookup. Blocked requests are answered with 416 and a plain-text body;
// throttled requests proceed carrying the marker header.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			outcome := limiter.Admit(c.RealIP())
			metrics.RateLimitDecisionsTotal.WithLabelValues(outcome.String()).Inc()

			switch outcome {
			case ratelimit.Blocked:
				return c.String(http.StatusRequestedRangeNotSatisfiable, blockedBody)
			case ratelimit.Throttled:
				c.Response().Header().Set(ThrottleHeader, "true")
			}
			return next(c)
		}
	}
}
