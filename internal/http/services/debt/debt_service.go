package debt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jefer15/debt-management-back/internal/cache"
	"github.com/jefer15/debt-management-back/internal/domain/repository"
	dto "github.com/jefer15/debt-management-back/internal/http/dto/debt"
	"github.com/jefer15/debt-management-back/internal/metrics"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
)

// Deps contiene las dependencias del servicio de deudas.
type Deps struct {
	Repo  repository.DebtRepository
	Cache cache.Cache
}

type service struct {
	deps Deps
}

// NewService crea el servicio de deudas.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Create(ctx context.Context, userID int64, in dto.CreateDebtRequest) (*repository.Debt, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("debt"),
		logger.Op("Create"),
		logger.UserID(userID),
	)

	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if in.Amount <= 0 {
		return nil, ErrAmountInvalid
	}

	d := &repository.Debt{
		Description: in.Description,
		Amount:      in.Amount,
		Paid:        false,
		UserID:      userID,
	}
	if err := s.deps.Repo.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("insert debt: %w", err)
	}

	s.invalidateUser(userID)
	log.Info("debt created", logger.DebtID(d.ID))
	return d, nil
}

func (s *service) FindAll(ctx context.Context, userID int64, status repository.StatusFilter) ([]repository.Debt, error) {
	if !status.Valid() {
		status = repository.StatusAll
	}
	key := cache.ListKey(userID, string(status))

	if b, ok := s.deps.Cache.Get(key); ok {
		var debts []repository.Debt
		if err := json.Unmarshal(b, &debts); err == nil {
			metrics.CacheHits.WithLabelValues("list").Inc()
			return debts, nil
		}
		// snapshot corrupto: tratar como miss
	}
	metrics.CacheMisses.WithLabelValues("list").Inc()

	debts, err := s.deps.Repo.FindByOwner(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}

	if b, err := json.Marshal(debts); err == nil {
		s.deps.Cache.Set(key, b, cache.ListTTL)
	}
	return debts, nil
}

func (s *service) FindOne(ctx context.Context, id, userID int64) (*repository.Debt, error) {
	key := cache.DebtKey(id, userID)

	if b, ok := s.deps.Cache.Get(key); ok {
		var d repository.Debt
		if err := json.Unmarshal(b, &d); err == nil {
			metrics.CacheHits.WithLabelValues("debt").Inc()
			return &d, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("debt").Inc()

	d, err := s.deps.Repo.FindByID(ctx, id, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find debt: %w", err)
	}

	if b, err := json.Marshal(d); err == nil {
		s.deps.Cache.Set(key, b, cache.ListTTL)
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, id, userID int64, in dto.UpdateDebtRequest) (*repository.Debt, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("debt"),
		logger.Op("Update"),
		logger.UserID(userID),
		logger.DebtID(id),
	)

	d, err := s.FindOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.Paid {
		return nil, ErrPaidImmutable
	}

	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, ErrDescriptionRequired
		}
		d.Description = desc
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, ErrAmountInvalid
		}
		d.Amount = *in.Amount
	}

	if err := s.deps.Repo.Save(ctx, d); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save debt: %w", err)
	}

	s.invalidateDebt(id, userID)
	log.Info("debt updated")
	return d, nil
}

func (s *service) MarkAsPaid(ctx context.Context, id, userID int64) (*repository.Debt, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("debt"),
		logger.Op("MarkAsPaid"),
		logger.UserID(userID),
		logger.DebtID(id),
	)

	d, err := s.FindOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.Paid {
		return nil, ErrAlreadyPaid
	}

	d.Paid = true
	if err := s.deps.Repo.Save(ctx, d); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save debt: %w", err)
	}

	s.invalidateDebt(id, userID)
	log.Info("debt paid")
	return d, nil
}

func (s *service) Remove(ctx context.Context, id, userID int64) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("debt"),
		logger.Op("Remove"),
		logger.UserID(userID),
		logger.DebtID(id),
	)

	d, err := s.FindOne(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.deps.Repo.Delete(ctx, d); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete debt: %w", err)
	}

	// una deuda borrada debe desaparecer también de las vistas cacheadas
	s.invalidateDebt(id, userID)
	log.Info("debt removed")
	return nil
}

func (s *service) Summary(ctx context.Context, userID int64) (*dto.SummaryResponse, error) {
	key := cache.SummaryKey(userID)

	if b, ok := s.deps.Cache.Get(key); ok {
		var sum dto.SummaryResponse
		if err := json.Unmarshal(b, &sum); err == nil {
			metrics.CacheHits.WithLabelValues("summary").Inc()
			return &sum, nil
		}
	}
	metrics.CacheMisses.WithLabelValues("summary").Inc()

	var sum dto.SummaryResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.deps.Repo.SumAmount(gctx, userID, repository.StatusAll)
		sum.Total = v
		return err
	})
	g.Go(func() error {
		v, err := s.deps.Repo.SumAmount(gctx, userID, repository.StatusCompleted)
		sum.Paid = v
		return err
	})
	g.Go(func() error {
		v, err := s.deps.Repo.SumAmount(gctx, userID, repository.StatusPending)
		sum.Pending = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	if b, err := json.Marshal(&sum); err == nil {
		s.deps.Cache.Set(key, b, cache.SummaryTTL)
	}
	return &sum, nil
}

func (s *service) Export(ctx context.Context, userID int64, format ExportFormat) (*ExportResult, error) {
	debts, err := s.FindAll(ctx, userID, repository.StatusAll)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return &ExportResult{Debts: debts}, nil
	case FormatCSV:
		csvData, err := marshalCSV(debts)
		if err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
		return &ExportResult{CSV: csvData}, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// invalidateUser descarta las tres vistas de lista y el resumen del usuario.
func (s *service) invalidateUser(userID int64) {
	for _, k := range cache.UserKeys(userID) {
		s.deps.Cache.Delete(k)
	}
	metrics.CacheInvalidations.WithLabelValues("list").Inc()
}

// invalidateDebt descarta además el snapshot individual de la deuda.
func (s *service) invalidateDebt(id, userID int64) {
	s.invalidateUser(userID)
	s.deps.Cache.Delete(cache.DebtKey(id, userID))
	metrics.CacheInvalidations.WithLabelValues("debt").Inc()
}
