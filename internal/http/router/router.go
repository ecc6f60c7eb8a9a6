// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/jefer15/debt-management-back/internal/http/controllers/auth"
	debtctrl "github.com/jefer15/debt-management-back/internal/http/controllers/debt"
	healthctrl "github.com/jefer15/debt-management-back/internal/http/controllers/health"
	httperrors "github.com/jefer15/debt-management-back/internal/http/errors"
	"github.com/jefer15/debt-management-back/internal/http/middlewares"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
	"github.com/jefer15/debt-management-back/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Auth   *authctrl.Controller
	Debt   *debtctrl.Controller
	Health *healthctrl.Controller

	Issuer *jwtx.Issuer

	// Opcionales
	Metrics     http.Handler // handler de /metrics, nil lo omite
	RateLimiter rate.Limiter // limita el login, nil lo desactiva
	RateWindow  time.Duration
	CORSOrigins []string
}

// New construye el router con la cadena de middlewares ambientales
// (request id, logging, recover, CORS, métricas) y las rutas de negocio.
func New(deps Deps, withMetrics func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// Probes y métricas fuera de la cadena de negocio.
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// Auth: público. El login lleva rate limit cuando está habilitado.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)

		login := middlewares.ChainFunc(deps.Auth.Login,
			middlewares.WithRateLimit(deps.RateLimiter, deps.RateWindow),
		)
		r.Method(http.MethodPost, "/", login)
	})

	// Deudas: todo detrás del guard JWT.
	r.Route("/debt", func(r chi.Router) {
		r.Use(middlewares.RequireAuth(deps.Issuer))

		r.Post("/", deps.Debt.Create)
		r.Get("/", deps.Debt.FindAll)
		r.Get("/summary", deps.Debt.Summary)
		r.Get("/export/{format}", deps.Debt.Export)
		r.Get("/{id}", deps.Debt.FindOne)
		r.Patch("/{id}", deps.Debt.Update)
		r.Patch("/{id}/pay", deps.Debt.Pay)
		r.Delete("/{id}", deps.Debt.Remove)
	})

	ambient := []middlewares.Middleware{
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		middlewares.WithRecover(),
		middlewares.WithCORS(deps.CORSOrigins),
	}
	handler := middlewares.Chain(r, ambient...)
	if withMetrics != nil {
		handler = withMetrics(handler)
	}
	return handler
}
