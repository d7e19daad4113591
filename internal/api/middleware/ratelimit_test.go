package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/ratelimit"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRateLimit_Tiers(t *testing.T) {
	limiter := ratelimit.New(ratelimit.Config{
		Enabled:       true,
		MaxRequests:   2,
		Window:        time.Minute,
		ThrottleDelay: time.Millisecond,
	})
	mw := RateLimit(limiter)

	// First tier: admitted without marker.
	for i := 0; i < 2; i++ {
		rec := doRequest(t, mw)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get(ThrottleHeader) != "" {
			t.Fatalf("request %d: unexpected throttle marker", i+1)
		}
	}

	// Second tier: still served, marked as throttled.
	for i := 0; i < 2; i++ {
		rec := doRequest(t, mw)
		if rec.Code != http.StatusOK {
			t.Fatalf("throttled request: expected 200, got %d", rec.Code)
		}
		if rec.Header().Get(ThrottleHeader) != "true" {
			t.Fatalf("throttled request missing marker header")
		}
	}

	// Third tier: rejected.
	rec := doRequest(t, mw)
	if rec.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("expected 416, got %d", rec.Code)
	}
	if rec.Body.String() != "Too many requests. Try again later." {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	limiter := ratelimit.New(ratelimit.Config{Enabled: false, MaxRequests: 1, Window: time.Minute})
	mw := RateLimit(limiter)

	for i := 0; i < 50; i++ {
		rec := doRequest(t, mw)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}
