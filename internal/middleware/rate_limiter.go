package middleware

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync"
	"time"

	"netrestrict/internal/auth"
)

// token bucket per principal (user id or rotated IP hash)
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens per second
	capacity  float64
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiter(rps float64, burst int, ttl time.Duration) *limiter {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &limiter{
		buckets:  make(map[string]*bucket),
		rate:     rps,
		capacity: float64(burst),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (l *limiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.ttl {
		l.evict(now)
		l.lastSweep = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[key] = b
	}
	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens = min(l.capacity, b.tokens+elapsed*l.rate)
	b.lastSeen = now
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// evict drops buckets idle longer than ttl. Caller holds mu.
func (l *limiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.buckets, k)
		}
	}
}

// daily rotating salt so raw IPs are never kept as keys
type ipHasher struct {
	mu   sync.Mutex
	salt []byte
	day  int
}

func (h *ipHasher) key(ip string) string {
	d := time.Now().YearDay()
	h.mu.Lock()
	if h.salt == nil || d != h.day {
		h.day = d
		h.salt = make([]byte, 32)
		_, _ = rand.Read(h.salt)
	}
	salt := h.salt
	h.mu.Unlock()
	sum := sha256.New()
	sum.Write(salt)
	sum.Write([]byte(ip))
	return hex.EncodeToString(sum.Sum(nil)[:8])
}

// RateLimitWith returns middleware limiting requests per principal.
// rpm: requests per minute; burst: bucket size; ttl: idle bucket eviction.
func RateLimitWith(rpm int, burst int, ttl time.Duration) func(http.Handler) http.Handler {
	rps := float64(rpm) / 60.0
	if rps <= 0 {
		rps = 0.000001
	}
	if burst <= 0 {
		burst = 1
	}
	lim := newLimiter(rps, burst, ttl)
	hasher := &ipHasher{}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var key string
			if sess, ok := auth.SessionFromContext(r.Context()); ok && sess != nil {
				key = "u:" + sess.UserID.String()
			} else if ip, ok := auth.ClientIP(r); ok {
				key = "ip:" + hasher.key(ip.String())
			} else {
				key = "ip:" + hasher.key(r.RemoteAddr)
			}
			if !lim.allow(key) {
				wait := int(1/lim.rate) + 1
				if wait > 60 {
					wait = 60
				}
				w.Header().Set("Retry-After", strconv.Itoa(wait))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
