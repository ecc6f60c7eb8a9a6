package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
)

const (
	sqlInsertDebt = `
		INSERT INTO debts (description, amount, paid, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	sqlSelectDebtsByOwner = `
		SELECT id, description, amount, paid, user_id, created_at, updated_at
		FROM debts
		WHERE user_id = $1 AND ($2::boolean IS NULL OR paid = $2)
		ORDER BY created_at DESC`

	sqlSelectDebtByID = `
		SELECT id, description, amount, paid, user_id, created_at, updated_at
		FROM debts WHERE id = $1 AND user_id = $2`

	sqlUpdateDebt = `
		UPDATE debts
		SET description = $1, amount = $2, paid = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at`

	sqlDeleteDebt = `DELETE FROM debts WHERE id = $1 AND user_id = $2`

	sqlSumDebts = `
		SELECT COALESCE(SUM(amount), 0)
		FROM debts
		WHERE user_id = $1 AND ($2::boolean IS NULL OR paid = $2)`
)

type debtRepo struct {
	pool *pgxpool.Pool
}

// paidArg traduce el filtro de estado al parámetro $2 de los queries:
// NULL = sin filtro, true = pagadas, false = pendientes.
func paidArg(filter repository.StatusFilter) any {
	switch filter {
	case repository.StatusCompleted:
		return true
	case repository.StatusPending:
		return false
	}
	return nil
}

func (r *debtRepo) Insert(ctx context.Context, d *repository.Debt) error {
	err := r.pool.QueryRow(ctx, sqlInsertDebt, d.Description, d.Amount, d.Paid, d.UserID).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pg: insert debt: %w", err)
	}
	return nil
}

func (r *debtRepo) FindByOwner(ctx context.Context, userID int64, filter repository.StatusFilter) ([]repository.Debt, error) {
	rows, err := r.pool.Query(ctx, sqlSelectDebtsByOwner, userID, paidArg(filter))
	if err != nil {
		return nil, fmt.Errorf("pg: select debts: %w", err)
	}
	defer rows.Close()

	debts := make([]repository.Debt, 0)
	for rows.Next() {
		var d repository.Debt
		if err := rows.Scan(&d.ID, &d.Description, &d.Amount, &d.Paid, &d.UserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pg: scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: iterate debts: %w", err)
	}
	return debts, nil
}

func (r *debtRepo) FindByID(ctx context.Context, id, userID int64) (*repository.Debt, error) {
	var d repository.Debt
	err := r.pool.QueryRow(ctx, sqlSelectDebtByID, id, userID).
		Scan(&d.ID, &d.Description, &d.Amount, &d.Paid, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: select debt: %w", err)
	}
	return &d, nil
}

func (r *debtRepo) Save(ctx context.Context, d *repository.Debt) error {
	err := r.pool.QueryRow(ctx, sqlUpdateDebt, d.Description, d.Amount, d.Paid, d.ID, d.UserID).
		Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("pg: update debt: %w", err)
	}
	return nil
}

func (r *debtRepo) Delete(ctx context.Context, d *repository.Debt) error {
	ct, err := r.pool.Exec(ctx, sqlDeleteDebt, d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("pg: delete debt: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *debtRepo) SumAmount(ctx context.Context, userID int64, filter repository.StatusFilter) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, sqlSumDebts, userID, paidArg(filter)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("pg: sum debts: %w", err)
	}
	return total, nil
}
