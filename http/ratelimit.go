package http

import (
	"net"
	"net/http"
	"time"

	"wtfSocial/errs"
)

// rateLimit wraps a handler with a fixed-window request limit per client IP,
// backed by redis. When no redis client is configured the limiter is a
// pass-through, and a redis failure fails open: a broken limiter must not
// take down login and registration.
func (s *Server) rateLimit(limit int64, window time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := "rl:" + r.URL.Path + ":" + clientIP(r)
		count, err := s.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			errs.LogError(r, err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			s.rdb.Expire(r.Context(), key, window)
		}
		if count > limit {
			w.Header().Set("Retry-After", window.String())
			http.Error(w, "Too many requests, try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// clientIP extracts the client address for rate-limit keying, preferring the
// reverse-proxy header when present.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
