package ratelimit

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

type KeyType string

const (
	KeyIP   KeyType = "ip"
	KeyIPOp KeyType = "ip_op"
)

// Valid reports whether k names a supported key scheme.
func (k KeyType) Valid() bool {
	return k == KeyIP || k == KeyIPOp
}

// Key builds the bucket key for one request.
func (k KeyType) Key(clientIP, op string) string {
	if k == KeyIPOp {
		return clientIP + "|" + op
	}
	return clientIP
}

// Limiter holds one token bucket per client key.
type Limiter struct {
	rps     rate.Limit
	burst   int
	buckets *xsync.MapOf[string, *rate.Limiter]
}

func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: xsync.NewMapOf[string, *rate.Limiter](),
	}
}

// Allow returns true if the request is allowed, false if rate limited.
func (l *Limiter) Allow(key string, now time.Time) bool {
	if key == "" {
		return true
	}
	if l.rps <= 0 || l.burst <= 0 {
		return true
	}

	b, _ := l.buckets.LoadOrCompute(key, func() *rate.Limiter {
		return rate.NewLimiter(l.rps, l.burst)
	})
	return b.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.buckets.Size()
}

// Prune drops buckets that have refilled completely by now. A full bucket
// behaves exactly like a fresh one, so nothing is lost.
func (l *Limiter) Prune(now time.Time) int {
	removed := 0
	l.buckets.Range(func(key string, b *rate.Limiter) bool {
		if b.TokensAt(now) >= float64(l.burst) {
			l.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
