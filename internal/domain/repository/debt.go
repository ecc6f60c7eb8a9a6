package repository

import (
	"context"
	"time"
)

// StatusFilter restringe un listado o agregado de deudas según su estado.
type StatusFilter string

const (
	// StatusAll incluye todas las deudas del usuario.
	StatusAll StatusFilter = "all"
	// StatusCompleted incluye solo deudas pagadas.
	StatusCompleted StatusFilter = "completed"
	// StatusPending incluye solo deudas sin pagar.
	StatusPending StatusFilter = "pending"
)

// Valid indica si el filtro es uno de los valores conocidos.
func (s StatusFilter) Valid() bool {
	switch s {
	case StatusAll, StatusCompleted, StatusPending:
		return true
	}
	return false
}

// Debt representa una deuda monetaria de un usuario.
// UserID es inmutable después de la creación.
type Debt struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Paid        bool      `json:"paid"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DebtRepository define operaciones de persistencia sobre deudas.
// Toda lectura y escritura está scoped por el usuario dueño: una deuda de
// otro usuario se trata igual que una inexistente (ErrNotFound).
type DebtRepository interface {
	// Insert persiste una deuda nueva y completa ID/CreatedAt/UpdatedAt.
	Insert(ctx context.Context, debt *Debt) error

	// FindByOwner lista las deudas del usuario según el filtro,
	// ordenadas por fecha de creación descendente.
	FindByOwner(ctx context.Context, userID int64, filter StatusFilter) ([]Debt, error)

	// FindByID busca una deuda por (id, userID).
	// Retorna ErrNotFound si no existe o pertenece a otro usuario.
	FindByID(ctx context.Context, id, userID int64) (*Debt, error)

	// Save persiste los cambios de una deuda existente y refresca UpdatedAt.
	Save(ctx context.Context, debt *Debt) error

	// Delete elimina una deuda.
	Delete(ctx context.Context, debt *Debt) error

	// SumAmount suma los montos de las deudas del usuario según el filtro.
	// Sin filas retorna 0.
	SumAmount(ctx context.Context, userID int64, filter StatusFilter) (float64, error)
}
