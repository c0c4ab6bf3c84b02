package mw

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func throttledOK(t *testing.T, cfg ThrottleConfig) http.Handler {
	t.Helper()
	return Throttle(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestThrottleKeysOnClientIP(t *testing.T) {
	h := throttledOK(t, ThrottleConfig{Burst: 1, RefillPerMin: 1})

	// Rotating the principal header must not mint fresh buckets: the header
	// is unverified at this layer, so all requests from one address share
	// one bucket.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/entries", nil)
		req.RemoteAddr = "203.0.113.7:4242"
		req.Header.Set(PrincipalHeader, fmt.Sprintf("%064x", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestThrottleSeparatesClients(t *testing.T) {
	h := throttledOK(t, ThrottleConfig{Burst: 1, RefillPerMin: 1})

	for _, addr := range []string{"203.0.113.7:4242", "203.0.113.8:4242"} {
		req := httptest.NewRequest(http.MethodPost, "/api/entries", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("addr %s: status = %d, want %d", addr, rec.Code, http.StatusOK)
		}
	}
}

func TestThrottleSetsRetryAfter(t *testing.T) {
	h := throttledOK(t, ThrottleConfig{Burst: 1, RefillPerMin: 1})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/entries", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if i == 1 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
			}
			if rec.Header().Get("Retry-After") == "" {
				t.Error("Retry-After header missing")
			}
		}
	}
}
