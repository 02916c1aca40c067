package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRateLimiterBurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatalf("expected burst of 2 to be allowed")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatalf("expected third request to be limited")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatalf("expected other IP to have its own bucket")
	}

	now = now.Add(time.Second)
	if !rl.Allow("1.1.1.1") {
		t.Fatalf("expected token to refill after a second")
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.Allow("1.1.1.1")
	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow("2.2.2.2")

	if _, ok := rl.clients["1.1.1.1"]; ok {
		t.Fatalf("expected idle client to be swept")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := RateLimit(0.001, 1)
	handler := mw(okHandler(nil))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "9.9.9.9:4000"
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimitKeysOnHostNotPort(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(RateLimit(1, 1))
	r.Get("/health", okHandler(nil).ServeHTTP)

	var codes []int
	for _, addr := range []string{"10.0.0.1:1111", "10.0.0.1:2222", "10.0.0.1:3333"} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected one bucket per host, got %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/health", nil)
	other.RemoteAddr = "10.0.0.2:1111"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected a different host to pass, got %d", rec.Code)
	}
}

func TestRateLimitUsesForwardedAddress(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(RateLimit(1, 1))
	r.Get("/health", okHandler(nil).ServeHTTP)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "172.16.0.1:" + strconv.Itoa(5000+i)
		req.Header.Set("X-Real-Ip", "203.0.113.7")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, rec.Code)
		}
	}
}

func TestClientIPFallsBackToRawAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7"
	if got := clientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected raw address, got %q", got)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(0, 0)(okHandler(nil))
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected disabled limiter to pass, got %d", rec.Code)
		}
	}
}
