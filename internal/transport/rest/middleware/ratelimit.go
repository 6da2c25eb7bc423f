package middleware

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"mindtrack/internal/cache"
)

// RateLimit caps prediction submissions per client per minute. The
// counter key is the remote address, so one overactive client cannot
// starve the classifier for everyone else.
func RateLimit(limiter cache.RateLimitCache, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key, limit, time.Minute)
			if err != nil {
				// Fail open: a limiter outage should not block assessments
				log.Printf("rate limiter error for %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded, try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
