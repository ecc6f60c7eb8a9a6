package debt

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
)

// marshalCSV serializa deudas con cabecera fija y filas en el orden recibido.
// Montos con dos decimales, fechas en RFC3339.
func marshalCSV(debts []repository.Debt) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"id", "description", "amount", "paid", "createdAt"}); err != nil {
		return "", err
	}
	for _, d := range debts {
		rec := []string{
			strconv.FormatInt(d.ID, 10),
			d.Description,
			strconv.FormatFloat(d.Amount, 'f', 2, 64),
			strconv.FormatBool(d.Paid),
			d.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
