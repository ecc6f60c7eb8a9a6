// Package health expone los probes de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jefer15/debt-management-back/internal/http/helpers"
)

// Pinger es lo mínimo que el readiness necesita del storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller responde los probes del servicio.
type Controller struct {
	db Pinger
}

// NewController crea el controller de health.
func NewController(db Pinger) *Controller {
	return &Controller{db: db}
}

// Healthz maneja GET /healthz: el proceso está vivo.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz: el proceso puede atender tráfico (DB responde).
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if c.db != nil {
		if err := c.db.Ping(ctx); err != nil {
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
