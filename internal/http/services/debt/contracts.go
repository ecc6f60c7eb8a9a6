// Package debt implementa la lógica de negocio de deudas con cache
// read-through sobre el repositorio.
package debt

import (
	"context"
	"fmt"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/debt"
)

// ExportFormat identifica el formato de exportación soportado.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ExportResult es el resultado de una exportación: exactamente uno de los
// campos está poblado según el formato pedido.
type ExportResult struct {
	Debts []repository.Debt
	CSV   string
}

// Service agrupa las operaciones de deudas. Toda operación está scoped al
// usuario autenticado; una deuda ajena es indistinguible de una inexistente.
type Service interface {
	Create(ctx context.Context, userID int64, in dto.CreateDebtRequest) (*repository.Debt, error)
	FindAll(ctx context.Context, userID int64, status repository.StatusFilter) ([]repository.Debt, error)
	FindOne(ctx context.Context, id, userID int64) (*repository.Debt, error)
	Update(ctx context.Context, id, userID int64, in dto.UpdateDebtRequest) (*repository.Debt, error)
	MarkAsPaid(ctx context.Context, id, userID int64) (*repository.Debt, error)
	Remove(ctx context.Context, id, userID int64) error
	Summary(ctx context.Context, userID int64) (*dto.SummaryResponse, error)
	Export(ctx context.Context, userID int64, format ExportFormat) (*ExportResult, error)
}

// Errores del servicio. Los controllers los mapean a AppError.
var (
	ErrAmountInvalid       = fmt.Errorf("amount must be greater than zero")
	ErrDescriptionRequired = fmt.Errorf("description is required")
	ErrNotFound            = fmt.Errorf("debt not found")
	ErrPaidImmutable       = fmt.Errorf("paid debts cannot be modified")
	ErrAlreadyPaid         = fmt.Errorf("debt is already paid")
	ErrUnknownFormat       = fmt.Errorf("unknown export format")
)
