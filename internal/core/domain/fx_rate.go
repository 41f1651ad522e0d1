package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate stores the conversion rate between two currencies effective from a
// specific date. Multiple rates may exist for the same pair on different
// dates; the applicable rate for a date is the most recent one whose
// effective date is not after it.
type FxRate struct {
	FxRateID         string          `json:"fxRateID"`         // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // e.g. USD
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // e.g. PKR
	Rate             decimal.Decimal `json:"rate"`             // Positive, precise decimal
	DateEffective    time.Time       `json:"dateEffective"`
	IsLocked         bool            `json:"isLocked"` // Locked rates no longer block period close
	AuditFields
}
