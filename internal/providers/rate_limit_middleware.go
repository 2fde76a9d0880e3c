package providers

import (
	"leadsdesk/internal/structures"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; it is reset when exceeded.
const maxTrackedClients = 10000

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (s *limiterStore) get(client string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[client]
	if !ok {
		if len(s.limiters) >= maxTrackedClients {
			s.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[client] = limiter
	}
	return limiter
}

// clientKey prefers the dashboard tab id and falls back to the remote address.
func clientKey(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware throttles writes per client. Reads pass through.
func RateLimitMiddleware(conf *structures.Config, logger Logger, next http.Handler) http.Handler {
	rl := conf.RateLimit
	if !rl.Enabled || rl.PerMinute <= 0 {
		return next
	}
	store := &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(rl.PerMinute)),
		burst:    max(rl.Burst, 1),
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		client := clientKey(r)
		if !store.get(client).Allow() {
			logger.Warnf(TypePost, "Rate limit exceeded for %s on %s", client, r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
