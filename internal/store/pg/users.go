package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	"github.com/jefer15/debt-management-back/internal/security/password"
)

const (
	sqlInsertUser = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	sqlSelectUserByEmail = `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = $1`

	sqlSelectUserByID = `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE id = $1`
)

type userRepo struct {
	pool *pgxpool.Pool
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	u := &repository.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
	}

	err := r.pool.QueryRow(ctx, sqlInsertUser, input.Name, input.Email, input.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("pg: insert user: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	var u repository.User
	err := r.pool.QueryRow(ctx, sqlSelectUserByEmail, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: select user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	var u repository.User
	err := r.pool.QueryRow(ctx, sqlSelectUserByID, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: select user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepo) CheckPassword(hash, plain string) bool {
	return password.Verify(hash, plain)
}
