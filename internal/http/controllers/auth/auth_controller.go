// Package auth expone los endpoints de registro y login.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/jefer15/debt-management-back/internal/http/dto/auth"
	httperrors "github.com/jefer15/debt-management-back/internal/http/errors"
	"github.com/jefer15/debt-management-back/internal/http/helpers"
	svc "github.com/jefer15/debt-management-back/internal/http/services/auth"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
)

// Controller maneja los endpoints de autenticación.
type Controller struct {
	register svc.RegisterService
	login    svc.LoginService
}

// NewController crea el controller de auth.
func NewController(register svc.RegisterService, login svc.LoginService) *Controller {
	return &Controller{register: register, login: login}
}

// Register maneja POST /auth/register
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Register"))

	var req dto.RegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.register.Register(ctx, req)
	if err != nil {
		log.Debug("register failed", logger.Err(err))
		writeAuthError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, result)
}

// Login maneja POST /auth
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.login.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeAuthError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, result)
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)
	case errors.Is(err, svc.ErrEmailTaken):
		httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
	case errors.Is(err, svc.ErrInvalidEmail):
		httperrors.WriteError(w, httperrors.ErrInvalidEmail)
	case errors.Is(err, svc.ErrInvalidPassword):
		httperrors.WriteError(w, httperrors.ErrInvalidPassword)
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
