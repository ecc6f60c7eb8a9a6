// Package debt define los contratos de request/response de deudas.
package debt

import "time"

// CreateDebtRequest es el body de POST /debt.
type CreateDebtRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// UpdateDebtRequest es el body de PATCH /debt/{id}.
// Campos nil no se modifican.
type UpdateDebtRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// DebtResponse es la representación pública de una deuda.
type DebtResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Paid        bool      `json:"paid"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SummaryResponse agrega los montos del usuario por estado.
type SummaryResponse struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

// ExportCSVResponse envuelve el CSV exportado en un body JSON.
type ExportCSVResponse struct {
	CSV string `json:"csv"`
}
