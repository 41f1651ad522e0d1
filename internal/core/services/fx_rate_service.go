package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/finledger/bookkeeping_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound        = errors.New("no exchange rate found for currency pair")
	ErrInvalidRate         = errors.New("exchange rate must be positive")
	ErrInvalidCurrencyPair = errors.New("from and to currency codes cannot be the same")
	ErrUnsupportedCurrency = errors.New("currency code is not supported")
)

// fxRateService provides creation, resolution, and locking of FX rates.
type fxRateService struct {
	rateRepo   portsrepo.FxRateRepositoryFacade
	currencies domain.CurrencySet
}

// NewFxRateService creates a new FxRateService.
func NewFxRateService(rateRepo portsrepo.FxRateRepositoryFacade, currencies domain.CurrencySet) portssvc.FxRateSvcFacade {
	return &fxRateService{
		rateRepo:   rateRepo,
		currencies: currencies,
	}
}

// Ensure fxRateService implements the portssvc.FxRateSvcFacade interface
var _ portssvc.FxRateSvcFacade = (*fxRateService)(nil)

// CreateFxRate handles the creation of a new FX rate.
// Rates are period-agnostic: creation never consults period state. Whether a
// rate is locked is what period closing later inspects.
func (s *fxRateService) CreateFxRate(ctx context.Context, req dto.CreateFxRateRequest, creatorUserID string) (*domain.FxRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRate, req.Rate.String())
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCurrencyPair, fromCode)
	}
	if !s.currencies.Contains(fromCode) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedCurrency, fromCode)
	}
	if !s.currencies.Contains(toCode) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedCurrency, toCode)
	}

	now := time.Now()
	rate := domain.FxRate{
		FxRateID:         uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective.UTC().Truncate(24 * time.Hour),
		IsLocked:         req.IsLocked,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveFxRate(ctx, rate); err != nil {
		logger.Error("Failed to save FX rate", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create fx rate in service: %w", err)
	}

	return &rate, nil
}

// GetFxRateByID retrieves a specific rate by its identifier.
func (s *fxRateService) GetFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error) {
	rate, err := s.rateRepo.FindFxRateByID(ctx, fxRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fx rate %s: %w", fxRateID, err)
	}
	return rate, nil
}

// ResolveRate selects the rate applicable on asOf: among rows matching the
// pair, the one with the latest effective date not after asOf. Same-currency
// pairs resolve to the identity rate without a table lookup.
func (s *fxRateService) ResolveRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	fromCode := strings.ToUpper(fromCurrency)
	toCode := strings.ToUpper(toCurrency)

	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindLatestFxRate(ctx, fromCode, toCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s->%s on or before %s", ErrRateNotFound, fromCode, toCode, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to resolve rate %s->%s: %w", fromCode, toCode, err)
	}

	return rate.Rate, nil
}

// ListFxRates retrieves rates, optionally filtered to a currency pair.
func (s *fxRateService) ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.rateRepo.ListFxRates(ctx, strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), limit, offset)
}

// LockFxRate marks a rate as locked. Locking an already-locked rate is a
// no-op; locks are never auto-cleared.
func (s *fxRateService) LockFxRate(ctx context.Context, fxRateID string, requestingUserID string) (*domain.FxRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := s.rateRepo.FindFxRateByID(ctx, fxRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fx rate %s: %w", fxRateID, err)
	}
	if rate.IsLocked {
		return rate, nil
	}

	now := time.Now()
	if err := s.rateRepo.LockFxRate(ctx, fxRateID, requestingUserID, now); err != nil {
		logger.Error("Failed to lock FX rate", slog.String("fx_rate_id", fxRateID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock fx rate %s: %w", fxRateID, err)
	}

	rate.IsLocked = true
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = requestingUserID
	return rate, nil
}
