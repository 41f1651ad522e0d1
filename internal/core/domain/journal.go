package domain

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

// Journal represents a single financial event composed of multiple lines.
// Drafts are mutable and may be unbalanced; posting fixes the valuation and
// requires the converted debit and credit totals to match exactly.
type Journal struct {
	JournalID    string          `json:"journalID"`   // Primary Key (UUID)
	Reference    string          `json:"reference"`   // Human-readable key, unique by caller convention
	Description  string          `json:"description"` // Nullable user description
	JournalDate  time.Time       `json:"journalDate"` // Date the event occurred
	PeriodID     int64           `json:"periodID"`    // Period the journal date falls into
	CurrencyCode string          `json:"currencyCode"`
	Status       JournalStatus   `json:"status"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`  // Recomputed from lines at posting
	TotalCredit  decimal.Decimal `json:"totalCredit"` // Recomputed from lines at posting
	FxRateID     *string         `json:"fxRateID"`    // Optional pinned rate for cross-currency lines
	PostedBy     *string         `json:"postedBy"`    // Nil until posted
	PostedAt     *time.Time      `json:"postedAt"`    // Nil until posted
	Lines        []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line item within a journal, affecting one account.
type JournalLine struct {
	LineID       string          `json:"lineID"`    // Primary Key (UUID)
	JournalID    string          `json:"journalID"` // FK -> Journal
	AccountID    string          `json:"accountID"` // FK -> Account
	Amount       decimal.Decimal `json:"amount"`    // Positive value in the line currency
	LineType     LineType        `json:"lineType"`  // DEBIT or CREDIT
	CurrencyCode string          `json:"currencyCode"`
	LineNumber   int             `json:"lineNumber"` // 1-based ordering within the journal
	Notes        string          `json:"notes"`      // Nullable
	AuditFields
}
