package auth

import (
	"context"
	"strings"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/auth"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Users  repository.UserRepository
	Issuer *jwtx.Issuer
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("unknown email")
			return nil, ErrInvalidEmail
		}
		return nil, err
	}

	if !s.deps.Users.CheckPassword(u.PasswordHash, in.Password) {
		log.Debug("password mismatch", logger.UserID(u.ID))
		return nil, ErrInvalidPassword
	}

	token, _, err := s.deps.Issuer.IssueAccess(u.ID, u.Email)
	if err != nil {
		log.Error("token signing failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login ok", logger.UserID(u.ID))
	return &dto.LoginResult{
		Token: token,
		Email: u.Email,
		User:  u.Name,
	}, nil
}
