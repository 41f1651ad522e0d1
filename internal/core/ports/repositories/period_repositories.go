package repositories

import (
	"context"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PeriodFilter narrows ListPeriods results.
type PeriodFilter struct {
	Status *domain.PeriodStatus
	Year   *int
}

// PeriodReader defines read operations for period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its identifier.
	FindPeriodByID(ctx context.Context, periodID int64) (*domain.Period, error)

	// FindPeriodByYearMonth retrieves the period covering the given (year, month).
	FindPeriodByYearMonth(ctx context.Context, year int, month int) (*domain.Period, error)

	// FindPeriodByIDForUpdate retrieves a period inside tx with a row lock.
	// Posting and closing both take this lock, which serializes them per period.
	FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID int64) (*domain.Period, error)

	// ListPeriods retrieves periods matching the filter, ordered by (year desc, month desc).
	ListPeriods(ctx context.Context, filter PeriodFilter) ([]domain.Period, error)
}

// PeriodWriter defines write operations for period data
type PeriodWriter interface {
	// SavePeriod persists a new period and returns it with its assigned identifier.
	SavePeriod(ctx context.Context, period domain.Period) (*domain.Period, error)

	// MarkPeriodLocked transitions a period to LOCKED and finalizes its FX lock
	// flag inside tx.
	MarkPeriodLocked(ctx context.Context, tx pgx.Tx, periodID int64, lockedBy string, lockedAt time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
