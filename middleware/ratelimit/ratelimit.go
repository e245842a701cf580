// Package ratelimit provides a per-client token-bucket limiter for the
// plan generation endpoint. Clients are keyed by the X-Api-Key header
// when present, falling back to the remote IP.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Options struct {
	RPS          float64
	Burst        int
	KeyHeader    string
	RetryAfter   time.Duration
	IdleTTL      time.Duration
	CleanupEvery time.Duration
}

// Limiter keeps one token bucket per client key with periodic cleanup
// of idle entries.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	rps          rate.Limit
	burst        int
	keyHeader    string
	retryAfter   time.Duration
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func New(opts Options) *Limiter {
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 15 * time.Minute
	}
	if opts.CleanupEvery <= 0 {
		opts.CleanupEvery = 2 * time.Minute
	}
	return &Limiter{
		entries:      make(map[string]*entry),
		rps:          rate.Limit(opts.RPS),
		burst:        opts.Burst,
		keyHeader:    opts.KeyHeader,
		retryAfter:   opts.RetryAfter,
		idleTTL:      opts.IdleTTL,
		cleanupEvery: opts.CleanupEvery,
	}
}

// Middleware rejects requests that exceed the client's bucket with 429
// and a Retry-After header.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.keyFor(r)
		if !l.get(key).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.retryAfter.Seconds())))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) keyFor(r *http.Request) string {
	if l.keyHeader != "" {
		if v := strings.TrimSpace(r.Header.Get(l.keyHeader)); v != "" {
			return v
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func (l *Limiter) get(key string) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &entry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup drops buckets that have been idle longer than the TTL.
func (l *Limiter) Cleanup() {
	cutoff := time.Now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor cleans idle buckets periodically until the context is
// cancelled.
func (l *Limiter) StartJanitor(ctx context.Context) {
	t := time.NewTicker(l.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}
