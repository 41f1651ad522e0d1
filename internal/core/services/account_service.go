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
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrNotPayrollSource        = errors.New("account is not an active payroll source")
	ErrPayrollCurrencyMismatch = errors.New("payroll source currency does not match payroll currency")
)

// accountService maintains the account directory the posting engine reads.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	currencies  domain.CurrencySet
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencies domain.CurrencySet) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		currencies:  currencies,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validating its code, currency,
// and parent reference.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currencyCode := strings.ToUpper(req.CurrencyCode)
	if !s.currencies.Contains(currencyCode) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedCurrency, currencyCode)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code '%s': %w", req.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code '%s'", apperrors.ErrDuplicate, req.Code)
	}

	if req.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrValidation, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to check parent account %s: %w", req.ParentAccountID, err)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		CurrencyCode:    currencyCode,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsBank:          req.IsBank,
		IsCapital:       req.IsCapital,
		IsPayrollSource: req.IsPayrollSource,
		IsIntercompany:  req.IsIntercompany,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}

	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. Any missing ID
// fails the whole lookup.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrAccountNotFound, err)
		}
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// ValidatePayrollSource checks that the account is an active payroll source
// kept in the given payroll currency.
func (s *accountService) ValidatePayrollSource(ctx context.Context, accountID string, payrollCurrency string) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsPayrollSource || !account.IsActive {
		return fmt.Errorf("%w: account '%s'", ErrNotPayrollSource, account.Code)
	}
	if account.CurrencyCode != strings.ToUpper(payrollCurrency) {
		return fmt.Errorf("%w: account '%s' is %s, payroll is %s", ErrPayrollCurrencyMismatch, account.Code, account.CurrencyCode, strings.ToUpper(payrollCurrency))
	}
	return nil
}

// DeactivateAccount marks an account inactive. Posted history is untouched;
// the account simply stops accepting new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	return nil
}
