package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account within the core domain.
// The directory owns these rows; the posting engine only reads them.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique human-readable key
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	CurrencyCode    string      `json:"currencyCode"`    // Currency the account is kept in
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-reference forming a tree
	Description     string      `json:"description"`     // Nullable user description
	IsBank          bool        `json:"isBank"`
	IsCapital       bool        `json:"isCapital"`
	IsPayrollSource bool        `json:"isPayrollSource"`
	IsIntercompany  bool        `json:"isIntercompany"`
	IsActive        bool        `json:"isActive"` // Inactive accounts may not receive new postings
	AuditFields
}
