package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/jefer15/debt-management-back/internal/http/errors"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
)

// WithRecover atrapa panics del handler, los loguea con stack trace
// y responde 500 sin tumbar el proceso.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered",
						logger.Any("panic", rec),
						logger.String("stack", string(debug.Stack())),
					)
					errors.WriteError(w, errors.ErrInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
