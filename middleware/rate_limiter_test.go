package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func rateLimitedRequest(rl *RateLimiter, path string) int {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	h := rl.RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec.Code
}

func TestRateLimit_StrictEndpointAfterDefaultTraffic(t *testing.T) {
	rl := NewRateLimiter()

	// Warm up the shared bucket first; the login bucket must stay strict
	// regardless of which path an IP hits first.
	require.Equal(t, http.StatusOK, rateLimitedRequest(rl, "/health"))

	allowed := 0
	var final int
	for i := 0; i < 6; i++ {
		final = rateLimitedRequest(rl, "/api/auth/login")
		if final == http.StatusOK {
			allowed++
		}
	}
	require.Equal(t, 5, allowed, "login burst is 5")
	require.Equal(t, http.StatusTooManyRequests, final)
}

func TestRateLimit_StrictEndpointDoesNotThrottleDefaultTraffic(t *testing.T) {
	rl := NewRateLimiter()

	// Drain the forgot-password bucket (burst 3) without tripping a block.
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, rateLimitedRequest(rl, "/api/auth/forgot-password"))
	}

	// The same IP still flows through the shared bucket.
	require.Equal(t, http.StatusOK, rateLimitedRequest(rl, "/health"))
}

func TestRateLimit_BlockedIPRejectedEverywhere(t *testing.T) {
	rl := NewRateLimiter()

	// Exceed the login burst to trigger a block.
	for i := 0; i < 6; i++ {
		rateLimitedRequest(rl, "/api/auth/login")
	}

	require.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(rl, "/health"))
}
