package pg

import (
	"testing"

	"github.com/jefer15/debt-management-back/internal/domain/repository"
)

// paidArg es el único punto donde el filtro de estado se traduce a SQL;
// un valor mal mapeado filtraría silenciosamente las deudas equivocadas.
func TestPaidArg(t *testing.T) {
	if v := paidArg(repository.StatusAll); v != nil {
		t.Fatalf("all => %v, want nil", v)
	}
	if v, ok := paidArg(repository.StatusCompleted).(bool); !ok || !v {
		t.Fatalf("completed => %v, want true", v)
	}
	if v, ok := paidArg(repository.StatusPending).(bool); !ok || v {
		t.Fatalf("pending => %v, want false", v)
	}
	// filtros desconocidos no filtran
	if v := paidArg(repository.StatusFilter("weird")); v != nil {
		t.Fatalf("unknown => %v, want nil", v)
	}
}
