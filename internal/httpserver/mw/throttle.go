package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/openshelf/shelfd/internal/utils"
)

// PrincipalHeader carries the pre-authenticated caller identity. The calling
// boundary (reverse proxy, signer service) is responsible for verifying that
// the caller controls this principal before the request reaches shelfd.
const PrincipalHeader = "X-Shelf-Principal"

// ThrottleConfig tunes the per-client token bucket on write routes. This is
// infrastructure abuse protection for the HTTP surface; the catalog addition
// cooldown and daily cap live in the core and are enforced regardless.
type ThrottleConfig struct {
	Burst         int           // bucket capacity
	RefillPerMin  int           // tokens per client per minute
	MaxEntries    int           // cap on tracked clients (0 = unlimited)
	SweepInterval time.Duration // how often to drop idle buckets
	IdleTTL       time.Duration // bucket idle lifetime
	TrustProxy    bool          // resolve the client IP from proxy headers
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

type throttler struct {
	cfg       ThrottleConfig
	rate      float64
	capacity  float64
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newThrottler(cfg ThrottleConfig) *throttler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillPerMin < 1 {
		cfg.RefillPerMin = 1
	}
	return &throttler{
		cfg:       cfg,
		rate:      float64(cfg.RefillPerMin) / 60.0,
		capacity:  float64(cfg.Burst),
		buckets:   make(map[string]*bucket, 256),
		lastSweep: time.Now(),
	}
}

func (t *throttler) getBucket(key string, now time.Time) *bucket {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cfg.MaxEntries > 0 && len(t.buckets) >= t.cfg.MaxEntries {
		t.sweepLocked(now)
	}
	b := t.buckets[key]
	if b == nil {
		b = &bucket{tokens: t.capacity, lastRef: now, lastSeen: now}
		t.buckets[key] = b
	}
	return b
}

func (t *throttler) allow(key string, now time.Time) (ok bool, retryAfterSec int) {
	b := t.getBucket(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRef).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(t.capacity, b.tokens+elapsed*t.rate)
		b.lastRef = now
	}

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		b.lastSeen = now
		return true, 0
	}

	needed := 1.0 - b.tokens
	sec := int(math.Ceil(needed / t.rate))
	if sec < 1 {
		sec = 1
	}
	return false, sec
}

func (t *throttler) sweepLocked(now time.Time) {
	for key, b := range t.buckets {
		if now.Sub(b.lastSeen) > t.cfg.IdleTTL {
			delete(t.buckets, key)
		}
	}
	t.lastSweep = now
}

func (t *throttler) sweepMaybe(now time.Time) {
	t.mu.Lock()
	if now.Sub(t.lastSweep) >= t.cfg.SweepInterval {
		t.sweepLocked(now)
	}
	t.mu.Unlock()
}

// Throttle rate-limits requests per client IP. The principal header is not
// used as a key: the throttle runs before any identity check, and keying on a
// caller-supplied value would let one client mint a fresh bucket per request.
func Throttle(cfg ThrottleConfig) func(http.Handler) http.Handler {
	t := newThrottler(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			t.sweepMaybe(now)

			key := utils.ClientIP(r, cfg.TrustProxy)

			ok, retry := t.allow(key, now)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
