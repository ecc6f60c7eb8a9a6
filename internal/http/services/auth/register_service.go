package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/auth"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
	"github.com/jefer15/debt-management-back/internal/security/password"
)

// RegisterDeps contiene las dependencias del register service.
type RegisterDeps struct {
	Users repository.UserRepository
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService crea un nuevo servicio de registro.
func NewRegisterService(deps RegisterDeps) RegisterService {
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsConflict(err) {
			log.Debug("email already registered", logger.Email(in.Email))
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info("user registered", logger.UserID(u.ID))
	return &dto.RegisterResult{Message: "User created successfully"}, nil
}
