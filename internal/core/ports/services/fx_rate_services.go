package services

import (
	"context"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// FxRateReaderSvc defines read operations for FX rates
type FxRateReaderSvc interface {
	// GetFxRateByID retrieves a specific rate by its ID.
	GetFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error)

	// ResolveRate returns the conversion rate for the pair applicable on asOf.
	// Same-currency pairs resolve to 1 without a lookup.
	ResolveRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)

	// ListFxRates retrieves rates, optionally filtered to a currency pair.
	ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error)
}

// FxRateWriterSvc defines write operations for FX rates
type FxRateWriterSvc interface {
	// CreateFxRate persists a new rate. Rates are period-agnostic; creation
	// never requires an open period.
	CreateFxRate(ctx context.Context, req dto.CreateFxRateRequest, creatorUserID string) (*domain.FxRate, error)

	// LockFxRate marks a rate as locked so it stops blocking period close.
	LockFxRate(ctx context.Context, fxRateID string, requestingUserID string) (*domain.FxRate, error)
}

// FxRateSvcFacade combines all FX-rate-related service interfaces
type FxRateSvcFacade interface {
	FxRateReaderSvc
	FxRateWriterSvc
}
