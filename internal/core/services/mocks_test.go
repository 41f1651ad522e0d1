package services_test

import (
	"context"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/finledger/bookkeeping_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedBy string) error {
	args := m.Called(ctx, accountID, updatedBy)
	return args.Error(0)
}

// MockPeriodRepository is a mock type for the PeriodRepositoryWithTx interface
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID int64) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByYearMonth(ctx context.Context, year int, month int) (*domain.Period, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID int64) (*domain.Period, error) {
	args := m.Called(ctx, tx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, filter portsrepo.PeriodFilter) ([]domain.Period, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) (*domain.Period, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) MarkPeriodLocked(ctx context.Context, tx pgx.Tx, periodID int64, lockedBy string, lockedAt time.Time) error {
	args := m.Called(ctx, tx, periodID, lockedBy, lockedAt)
	return args.Error(0)
}

func (m *MockPeriodRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockPeriodRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockFxRateRepository is a mock type for the FxRateRepositoryFacade interface
type MockFxRateRepository struct {
	mock.Mock
}

func (m *MockFxRateRepository) FindFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error) {
	args := m.Called(ctx, fxRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

func (m *MockFxRateRepository) FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

func (m *MockFxRateRepository) ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FxRate), args.Error(1)
}

func (m *MockFxRateRepository) CountUnlockedFxRatesInRange(ctx context.Context, tx pgx.Tx, start, end time.Time) (int, error) {
	args := m.Called(ctx, tx, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockFxRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockFxRateRepository) LockFxRate(ctx context.Context, fxRateID string, lockedBy string, lockedAt time.Time) error {
	args := m.Called(ctx, fxRateID, lockedBy, lockedAt)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByPeriod(ctx context.Context, periodID int64, limit int, offset int) ([]domain.Journal, error) {
	args := m.Called(ctx, periodID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) CountJournalsByStatusInPeriod(ctx context.Context, tx pgx.Tx, periodID int64, status domain.JournalStatus) (int, error) {
	args := m.Called(ctx, tx, periodID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkJournalPosted(ctx context.Context, tx pgx.Tx, journalID string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, tx, journalID, totalDebit, totalCredit, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockAccountService is a mock type for the AccountSvcFacade interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ValidatePayrollSource(ctx context.Context, accountID string, payrollCurrency string) error {
	args := m.Called(ctx, accountID, payrollCurrency)
	return args.Error(0)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	args := m.Called(ctx, accountID, requestingUserID)
	return args.Error(0)
}

// MockFxRateService is a mock type for the FxRateSvcFacade interface
type MockFxRateService struct {
	mock.Mock
}

func (m *MockFxRateService) GetFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error) {
	args := m.Called(ctx, fxRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

func (m *MockFxRateService) ResolveRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFxRateService) ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FxRate), args.Error(1)
}

func (m *MockFxRateService) CreateFxRate(ctx context.Context, req dto.CreateFxRateRequest, creatorUserID string) (*domain.FxRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

func (m *MockFxRateService) LockFxRate(ctx context.Context, fxRateID string, requestingUserID string) (*domain.FxRate, error) {
	args := m.Called(ctx, fxRateID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}
