// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// clientWindow holds one client's request timestamps inside the sliding
// window, oldest first.
type clientWindow struct {
	seen []time.Time
}

// prune drops timestamps that fell out of the window ending at now.
func (cw *clientWindow) prune(cutoff time.Time) {
	keep := 0
	for _, ts := range cw.seen {
		if ts.After(cutoff) {
			break
		}
		keep++
	}
	cw.seen = cw.seen[keep:]
}

// RateLimiter rate-limits by client IP over a sliding window. It guards
// the admin write endpoints; public stylesheet reads are served from
// cache and stay unlimited.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stop    chan struct{}
}

// NewRateLimiter creates a limiter allowing limit requests per window per
// client and starts a background sweep that evicts idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// allow records a request for key and reports whether it fits the limit.
// A denied request is not recorded, so a client hammering the endpoint is
// unblocked as soon as its earlier accepted requests age out.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok {
		cw = &clientWindow{}
		rl.clients[key] = cw
	}
	cw.prune(now.Add(-rl.window))

	if len(cw.seen) >= rl.limit {
		return false
	}
	cw.seen = append(cw.seen, now)
	return true
}

// cleanup evicts clients whose every timestamp has aged out of the window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.prune(cutoff)
		if len(cw.seen) == 0 {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects over-limit requests with a 429 JSON envelope and a
// Retry-After of the full window, the worst case for a sliding window.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address for limiting, preferring the proxy
// headers set by the deployment's edge over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
