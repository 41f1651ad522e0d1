package repositories

import (
	"context"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FxRateReader defines read operations for FX rate data
type FxRateReader interface {
	// FindFxRateByID retrieves a specific rate by its unique identifier.
	FindFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error)

	// FindLatestFxRate retrieves the rate for the pair with the latest
	// effective date not after asOf.
	FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error)

	// ListFxRates retrieves rates, optionally filtered to a pair, ordered by
	// effective date descending.
	ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error)

	// CountUnlockedFxRatesInRange counts unlocked rates whose effective date
	// falls in [start, end). Runs inside tx when the caller holds period locks.
	CountUnlockedFxRatesInRange(ctx context.Context, tx pgx.Tx, start, end time.Time) (int, error)
}

// FxRateWriter defines write operations for FX rate data
type FxRateWriter interface {
	// SaveFxRate persists a new rate.
	SaveFxRate(ctx context.Context, rate domain.FxRate) error

	// LockFxRate marks a rate as locked. Locking is idempotent and never cleared.
	LockFxRate(ctx context.Context, fxRateID string, lockedBy string, lockedAt time.Time) error
}

// FxRateRepositoryFacade combines all FX-rate-related repository interfaces
type FxRateRepositoryFacade interface {
	FxRateReader
	FxRateWriter
}
