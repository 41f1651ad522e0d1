package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/finledger/bookkeeping_backend/internal/middleware"
)

// PeriodAlreadyLockedError is returned when closing a period that is already
// locked. The period is identified as "{year}-{month}".
type PeriodAlreadyLockedError struct {
	Year  int
	Month int
}

func (e *PeriodAlreadyLockedError) Error() string {
	return fmt.Sprintf("period %d-%d is already locked", e.Year, e.Month)
}

// OpenDraftsError blocks a period close while draft journals remain.
type OpenDraftsError struct {
	Count int
}

func (e *OpenDraftsError) Error() string {
	return fmt.Sprintf("period has %d draft journal(s) that must be posted before closing", e.Count)
}

// UnlockedRatesError blocks a period close while unlocked FX rates dated
// within the period remain.
type UnlockedRatesError struct {
	Count int
}

func (e *UnlockedRatesError) Error() string {
	return fmt.Sprintf("period has %d unlocked fx rate(s) that must be locked before closing", e.Count)
}

// periodService manages the Open -> Locked period lifecycle.
type periodService struct {
	periodRepo  portsrepo.PeriodRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
	fxRateRepo  portsrepo.FxRateRepositoryFacade
	now         func() time.Time
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryWithTx, journalRepo portsrepo.JournalRepositoryFacade, fxRateRepo portsrepo.FxRateRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
		fxRateRepo:  fxRateRepo,
		now:         time.Now,
	}
}

// Ensure periodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod persists a new open period, unique on (year, month).
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.periodRepo.FindPeriodByYearMonth(ctx, req.Year, req.Month)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check period %d-%d: %w", req.Year, req.Month, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: period %d-%d", apperrors.ErrDuplicate, req.Year, req.Month)
	}

	now := s.now()
	period := domain.Period{
		Year:         req.Year,
		Month:        req.Month,
		Status:       domain.PeriodOpen,
		FxRateLocked: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.periodRepo.SavePeriod(ctx, period)
	if err != nil {
		logger.Error("Failed to save period", slog.Int("year", req.Year), slog.Int("month", req.Month), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create period in service: %w", err)
	}
	return saved, nil
}

// GetPeriodByID retrieves a specific period by its ID.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID int64) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period %d not found", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to get period %d: %w", periodID, err)
	}
	return period, nil
}

// ListPeriods retrieves periods matching the filter, ordered newest first.
func (s *periodService) ListPeriods(ctx context.Context, params dto.ListPeriodsParams) ([]domain.Period, error) {
	return s.periodRepo.ListPeriods(ctx, portsrepo.PeriodFilter{
		Status: params.Status,
		Year:   params.Year,
	})
}

// ClosePeriod transitions a period OPEN -> LOCKED. The whole check-and-seal
// sequence runs in one database transaction holding the period row lock, so
// no draft can slip past a concurrent posting.
//
// Preconditions: zero draft journals in the period, and zero unlocked FX
// rates dated within it. The rate check runs regardless of the period's own
// fxRateLocked flag: rates created after an earlier lock still count. A
// period with no journals and no rates closes trivially.
func (s *periodService) ClosePeriod(ctx context.Context, periodID int64, actorUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin close transaction: %w", err)
	}
	defer s.periodRepo.Rollback(ctx, tx)

	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period %d not found", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to lock period %d: %w", periodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, &PeriodAlreadyLockedError{Year: period.Year, Month: period.Month}
	}

	drafts, err := s.journalRepo.CountJournalsByStatusInPeriod(ctx, tx, periodID, domain.Draft)
	if err != nil {
		return nil, fmt.Errorf("failed to count draft journals in period %d: %w", periodID, err)
	}
	if drafts > 0 {
		return nil, &OpenDraftsError{Count: drafts}
	}

	start, end := period.Window()
	unlocked, err := s.fxRateRepo.CountUnlockedFxRatesInRange(ctx, tx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count unlocked fx rates in period %d: %w", periodID, err)
	}
	if unlocked > 0 {
		return nil, &UnlockedRatesError{Count: unlocked}
	}

	now := s.now()
	if err := s.periodRepo.MarkPeriodLocked(ctx, tx, periodID, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to lock period %d: %w", periodID, err)
	}
	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit close of period %d: %w", periodID, err)
	}

	period.Status = domain.PeriodLocked
	period.FxRateLocked = true
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorUserID

	logger.Info("Period closed",
		slog.Int64("period_id", periodID),
		slog.String("period", period.Label()),
		slog.String("locked_by", actorUserID),
	)
	return period, nil
}
