package services

import (
	"context"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the account directory
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ValidatePayrollSource checks that the account can act as a payroll source
	// for the given payroll currency.
	ValidatePayrollSource(ctx context.Context, accountID string, payrollCurrency string) error
}

// AccountWriterSvc defines write operations for the account directory
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
