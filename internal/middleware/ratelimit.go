// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agora/internal/metrics"
)

// window is the list of request times seen for one client.
type window struct {
	mu   sync.Mutex
	hits []time.Time
}

// prune drops hits older than cutoff and reports how many remain.
func (w *window) prune(cutoff time.Time) int {
	kept := w.hits[:0]
	for _, ts := range w.hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.hits = kept
	return len(kept)
}

// RateLimiter allows at most limit requests per client IP inside a sliding
// window. Used in front of the login and signup form posts.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter and starts a janitor goroutine that
// forgets idle clients. Call Stop on shutdown.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the janitor goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	win, ok := rl.clients[key]
	if !ok {
		win = &window{}
		rl.clients[key] = win
	}
	rl.mu.Unlock()

	now := rl.now()
	win.mu.Lock()
	defer win.mu.Unlock()

	if win.prune(now.Add(-rl.period)) >= rl.limit {
		return false
	}
	win.hits = append(win.hits, now)
	return true
}

// sweep removes clients with no hits inside the current window.
func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.period)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, win := range rl.clients {
		win.mu.Lock()
		idle := win.prune(cutoff) == 0
		win.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Limit wraps a single handler. Only unsafe methods are counted, so the
// form page itself can always be fetched.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ip := clientIP(r)
			if !rl.allow(ip) {
				metrics.RateLimitedTotal.Inc()
				zap.S().Warnw("rate limited", "ip", ip, "path", r.URL.Path)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
		}
		next(w, r)
	}
}

// clientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
