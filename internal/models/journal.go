package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// LineType indicates whether a journal line is a Debit or a Credit.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// Journal is the database representation of a journal header.
type Journal struct {
	JournalID    string          `json:"journalID"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description"`
	JournalDate  time.Time       `json:"journalDate"`
	PeriodID     int64           `json:"periodID"`
	CurrencyCode string          `json:"currencyCode"`
	Status       JournalStatus   `json:"status"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	FxRateID     *string         `json:"fxRateID"`
	PostedBy     *string         `json:"postedBy"`
	PostedAt     *time.Time      `json:"postedAt"`
	AuditFields
}

// JournalLine is the database representation of a single journal line.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	LineType     LineType        `json:"lineType"`
	CurrencyCode string          `json:"currencyCode"`
	LineNumber   int             `json:"lineNumber"`
	Notes        string          `json:"notes"`
	AuditFields
}
