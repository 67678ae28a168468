package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ClientIP resolves the rate-limit partition key for a request. Proxy headers
// win over the socket address so limits follow the real caller behind a load
// balancer.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetRateLimitHeaders reports the caller's daily quota status.
func SetRateLimitHeaders(w http.ResponseWriter, limit, remaining int, resetAfter time.Duration) {
	if remaining < 0 {
		remaining = 0
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))
}
