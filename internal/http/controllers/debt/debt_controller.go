// Package debt expone los endpoints CRUD, resumen y exportación de deudas.
package debt

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/debt"
	httperrors "github.com/jefer15/debt-management-back/internal/http/errors"
	"github.com/jefer15/debt-management-back/internal/http/helpers"
	"github.com/jefer15/debt-management-back/internal/http/middlewares"
	svc "github.com/jefer15/debt-management-back/internal/http/services/debt"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
)

// Controller maneja los endpoints de deudas. Asume que RequireAuth ya
// inyectó la identidad en el contexto.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de deudas.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /debt
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	var req dto.CreateDebtRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	d, err := c.service.Create(ctx, userID, req)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, d)
}

// FindAll maneja GET /debt?status=all|completed|pending
func (c *Controller) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	status := repository.StatusFilter(r.URL.Query().Get("status"))
	if status == "" {
		status = repository.StatusAll
	}
	if !status.Valid() {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("status must be all, completed or pending"))
		return
	}

	debts, err := c.service.FindAll(ctx, userID, status)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, debts)
}

// Summary maneja GET /debt/summary
func (c *Controller) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	sum, err := c.service.Summary(ctx, userID)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, sum)
}

// FindOne maneja GET /debt/{id}
func (c *Controller) FindOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	d, err := c.service.FindOne(ctx, id, userID)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// Update maneja PATCH /debt/{id}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	d, err := c.service.Update(ctx, id, userID, req)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// Pay maneja PATCH /debt/{id}/pay
func (c *Controller) Pay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	d, err := c.service.MarkAsPaid(ctx, id, userID)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// Remove maneja DELETE /debt/{id}
func (c *Controller) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	if err := c.service.Remove(ctx, id, userID); err != nil {
		writeDebtError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export maneja GET /debt/export/{format}
// El CSV viaja envuelto en un body JSON {"csv": "..."} por compatibilidad
// con los consumidores existentes del endpoint.
func (c *Controller) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.GetUserID(ctx)

	format := svc.ExportFormat(chi.URLParam(r, "format"))
	result, err := c.service.Export(ctx, userID, format)
	if err != nil {
		writeDebtError(ctx, w, err)
		return
	}

	if format == svc.FormatCSV {
		helpers.WriteJSON(w, http.StatusOK, dto.ExportCSVResponse{CSV: result.CSV})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result.Debts)
}

func debtID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func writeDebtError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrAmountInvalid):
		httperrors.WriteError(w, httperrors.ErrDebtAmountInvalid)
	case errors.Is(err, svc.ErrDescriptionRequired):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("description is required"))
	case errors.Is(err, svc.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrDebtNotFound)
	case errors.Is(err, svc.ErrPaidImmutable):
		httperrors.WriteError(w, httperrors.ErrDebtPaidImmutable)
	case errors.Is(err, svc.ErrAlreadyPaid):
		httperrors.WriteError(w, httperrors.ErrDebtAlreadyPaid)
	case errors.Is(err, svc.ErrUnknownFormat):
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("format must be json or csv"))
	default:
		logger.From(ctx).Error("debt operation failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
