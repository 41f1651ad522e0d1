package dto

import (
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFxRateRequest defines the structure for creating a new FX rate.
type CreateFxRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal `json:"rate" binding:"required"` // Positivity checked in the service
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
	IsLocked         bool            `json:"isLocked"`
}

// ResolveFxRateParams defines the query parameters for rate resolution.
type ResolveFxRateParams struct {
	From string    `form:"from" binding:"required,currencycode"`
	To   string    `form:"to" binding:"required,currencycode"`
	AsOf time.Time `form:"as_of" binding:"required" time_format:"2006-01-02"`
}

// FxRateResponse defines the structure for API responses containing rate details.
type FxRateResponse struct {
	FxRateID         string          `json:"fxRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	IsLocked         bool            `json:"isLocked"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ResolvedRateResponse is the payload returned by the resolve endpoint.
type ResolvedRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	AsOf             time.Time       `json:"asOf"`
	Rate             decimal.Decimal `json:"rate"`
}

// ToFxRateResponse converts a domain.FxRate to FxRateResponse DTO
func ToFxRateResponse(rate *domain.FxRate) FxRateResponse {
	return FxRateResponse{
		FxRateID:         rate.FxRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		IsLocked:         rate.IsLocked,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
		LastUpdatedAt:    rate.LastUpdatedAt,
		LastUpdatedBy:    rate.LastUpdatedBy,
	}
}

// ToListFxRateResponse converts a slice of domain.FxRate to FxRateResponse DTOs.
func ToListFxRateResponse(rates []domain.FxRate) []FxRateResponse {
	responses := make([]FxRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToFxRateResponse(&rates[i])
	}
	return responses
}
