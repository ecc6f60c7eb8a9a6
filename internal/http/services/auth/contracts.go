// Package auth implementa los servicios de registro y login.
package auth

import (
	"context"
	"fmt"

	dto "github.com/jefer15/debt-management-back/internal/http/dto/auth"
)

// RegisterService crea cuentas nuevas.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResult, error)
}

// LoginService autentica credenciales y emite el access token.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error)
}

// Errores de los servicios de auth. Los controllers los mapean a AppError.
var (
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrEmailTaken       = fmt.Errorf("email already exists")
	ErrInvalidEmail     = fmt.Errorf("invalid email")
	ErrInvalidPassword  = fmt.Errorf("invalid password")
	ErrTokenIssueFailed = fmt.Errorf("failed to issue token")
)
