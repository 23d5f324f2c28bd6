package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

// RateLimit rejects clients that exhausted their bucket. RemoteAddr is keyed
// by host, so chi's RealIP middleware must run first behind a proxy.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				client = r.RemoteAddr
			}

			if ok, retryAfter := limiter.Allow(client); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				render.Render(w, r, &APIError{
					Status:  http.StatusTooManyRequests,
					Message: "Limite de requisições excedido. Tente novamente mais tarde.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
