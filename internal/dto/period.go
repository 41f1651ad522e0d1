package dto

import (
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
)

// CreatePeriodRequest defines the structure for creating a new accounting period.
type CreatePeriodRequest struct {
	Year  int `json:"year" binding:"required,min=1900,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ListPeriodsParams defines the filters accepted when listing periods.
type ListPeriodsParams struct {
	Status *domain.PeriodStatus `form:"status" binding:"omitempty,oneof=OPEN LOCKED"`
	Year   *int                 `form:"year" binding:"omitempty,min=1900,max=2200"`
}

// PeriodResponse defines the structure for API responses containing period details.
type PeriodResponse struct {
	PeriodID      int64               `json:"periodID"`
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	Status        domain.PeriodStatus `json:"status"`
	FxRateLocked  bool                `json:"fxRateLocked"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse DTO
func ToPeriodResponse(period *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:      period.PeriodID,
		Year:          period.Year,
		Month:         period.Month,
		Status:        period.Status,
		FxRateLocked:  period.FxRateLocked,
		CreatedAt:     period.CreatedAt,
		CreatedBy:     period.CreatedBy,
		LastUpdatedAt: period.LastUpdatedAt,
		LastUpdatedBy: period.LastUpdatedBy,
	}
}

// ToListPeriodResponse converts a slice of domain.Period to PeriodResponse DTOs.
func ToListPeriodResponse(periods []domain.Period) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
