package cache

import (
	"fmt"
	"time"
)

// Esquema de claves del cache de deudas. El formato es un contrato de facto:
// herramientas externas lo inspeccionan y pre-calientan, así que debe
// reproducirse exactamente.
//
//	lista:   debts_user_<userId>_<status>   (status ∈ all|completed|pending)
//	única:   debt_<debtId>_user_<userId>
//	resumen: summary_user_<userId>

const (
	// ListTTL aplica a listados y lookups de deuda única.
	ListTTL = 300000 * time.Millisecond

	// SummaryTTL es más corto: el resumen se deriva de tres agregados
	// independientes y recomputarlo es barato.
	SummaryTTL = 120000 * time.Millisecond
)

// ListKey construye la clave de un listado de deudas filtrado por estado.
func ListKey(userID int64, status string) string {
	return fmt.Sprintf("debts_user_%d_%s", userID, status)
}

// DebtKey construye la clave de una deuda individual.
func DebtKey(debtID, userID int64) string {
	return fmt.Sprintf("debt_%d_user_%d", debtID, userID)
}

// SummaryKey construye la clave del resumen agregado del usuario.
func SummaryKey(userID int64) string {
	return fmt.Sprintf("summary_user_%d", userID)
}

// UserKeys retorna las cuatro claves que cualquier mutación debe invalidar:
// una creación o edición puede cambiar la membresía de cada vista de lista
// y el agregado, así que se descartan todas sin invalidación parcial.
func UserKeys(userID int64) []string {
	return []string{
		ListKey(userID, "all"),
		ListKey(userID, "completed"),
		ListKey(userID, "pending"),
		SummaryKey(userID),
	}
}
