package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is the database representation of a currency-pair conversion rate.
// Note: Rate uses github.com/shopspring/decimal for exact arithmetic.
type FxRate struct {
	FxRateID         string          `json:"fxRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	IsLocked         bool            `json:"isLocked"`
	AuditFields
}
