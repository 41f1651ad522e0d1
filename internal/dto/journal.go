package dto

import (
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines a single line within a journal creation request.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" binding:"required"` // Positivity checked in the service
	LineType     domain.LineType `json:"lineType" binding:"required,oneof=DEBIT CREDIT"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Notes        string          `json:"notes" binding:"max=255"`
}

// CreateJournalRequest defines the structure for creating a new draft journal.
type CreateJournalRequest struct {
	Reference    string                     `json:"reference" binding:"required,max=64"`
	Description  string                     `json:"description" binding:"max=255"`
	JournalDate  time.Time                  `json:"journalDate" binding:"required"`
	PeriodID     int64                      `json:"periodID" binding:"required"`
	CurrencyCode string                     `json:"currencyCode" binding:"omitempty,currencycode"`
	FxRateID     *string                    `json:"fxRateID" binding:"omitempty,uuid"`
	Lines        []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalRequest defines the mutable header fields of a draft journal.
type UpdateJournalRequest struct {
	Description *string    `json:"description" binding:"omitempty,max=255"`
	JournalDate *time.Time `json:"journalDate"`
}

// ListJournalsParams defines pagination for period-scoped journal listing.
type ListJournalsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// JournalLineResponse defines the structure for a journal line in API responses.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	LineType     domain.LineType `json:"lineType"`
	CurrencyCode string          `json:"currencyCode"`
	LineNumber   int             `json:"lineNumber"`
	Notes        string          `json:"notes,omitempty"`
}

// JournalResponse defines the structure for API responses containing journal details.
type JournalResponse struct {
	JournalID    string                `json:"journalID"`
	Reference    string                `json:"reference"`
	Description  string                `json:"description,omitempty"`
	JournalDate  time.Time             `json:"journalDate"`
	PeriodID     int64                 `json:"periodID"`
	CurrencyCode string                `json:"currencyCode"`
	Status       domain.JournalStatus  `json:"status"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	FxRateID     *string               `json:"fxRateID,omitempty"`
	PostedBy     *string               `json:"postedBy,omitempty"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO
func ToJournalLineResponse(line domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		Amount:       line.Amount,
		LineType:     line.LineType,
		CurrencyCode: line.CurrencyCode,
		LineNumber:   line.LineNumber,
		Notes:        line.Notes,
	}
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO
func ToJournalResponse(journal *domain.Journal) JournalResponse {
	lines := make([]JournalLineResponse, len(journal.Lines))
	for i, line := range journal.Lines {
		lines[i] = ToJournalLineResponse(line)
	}
	return JournalResponse{
		JournalID:    journal.JournalID,
		Reference:    journal.Reference,
		Description:  journal.Description,
		JournalDate:  journal.JournalDate,
		PeriodID:     journal.PeriodID,
		CurrencyCode: journal.CurrencyCode,
		Status:       journal.Status,
		TotalDebit:   journal.TotalDebit,
		TotalCredit:  journal.TotalCredit,
		FxRateID:     journal.FxRateID,
		PostedBy:     journal.PostedBy,
		PostedAt:     journal.PostedAt,
		Lines:        lines,
		CreatedAt:    journal.CreatedAt,
		CreatedBy:    journal.CreatedBy,
	}
}

// ToListJournalResponse converts a slice of domain.Journal to JournalResponse DTOs.
func ToListJournalResponse(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
