package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jefer15/debt-management-back/internal/http/errors"
	"github.com/jefer15/debt-management-back/internal/rate"
)

// WithRateLimit aplica un límite de ventana fija sobre el endpoint usando
// la clave IP|path. Si el limiter es nil o su backend falla, deja pasar:
// el rate limit nunca tumba el servicio.
func WithRateLimit(lim rate.Limiter, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lim == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := clientIP(r) + "|" + r.URL.Path
			res, err := lim.Allow(r.Context(), key)
			if err != nil {
				// fail-open si el backend no responde
				next.ServeHTTP(w, r)
				return
			}

			resetAt := time.Now().UTC().Truncate(window).Add(window)
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())))
				}
				errors.WriteError(w, errors.ErrRateLimitExceeded)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
