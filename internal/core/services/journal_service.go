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
	"github.com/finledger/bookkeeping_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalNotFound   = errors.New("journal not found")
	ErrAlreadyPosted     = errors.New("journal is already posted")
	ErrPeriodLocked      = errors.New("period is locked and accepts no postings")
	ErrJournalUnbalanced = errors.New("journal debits and credits do not balance")
	ErrInactiveAccount   = errors.New("account is inactive and may not receive postings")
	ErrCurrencyMismatch  = errors.New("line currency does not match account currency")
	ErrJournalNotDraft   = errors.New("journal must be a draft to be updated")
	ErrDateOutsidePeriod = errors.New("journal date falls outside the period window")
)

// journalService validates journals and drives the Draft -> Posted state machine.
type journalService struct {
	journalRepo     portsrepo.JournalRepositoryWithTx
	periodRepo      portsrepo.PeriodRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	fxRateSvc       portssvc.FxRateSvcFacade
	currencies      domain.CurrencySet
	defaultCurrency string
	now             func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, periodRepo portsrepo.PeriodRepositoryFacade, accountSvc portssvc.AccountSvcFacade, fxRateSvc portssvc.FxRateSvcFacade, currencies domain.CurrencySet, defaultCurrency string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:     journalRepo,
		periodRepo:      periodRepo,
		accountSvc:      accountSvc,
		fxRateSvc:       fxRateSvc,
		currencies:      currencies,
		defaultCurrency: strings.ToUpper(defaultCurrency),
		now:             time.Now,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a new draft journal with its lines after structural
// validation. Drafts may be unbalanced while under edit; balance is enforced
// only at posting time.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalCurrency := strings.ToUpper(req.CurrencyCode)
	if journalCurrency == "" {
		journalCurrency = s.defaultCurrency
	}
	if !s.currencies.Contains(journalCurrency) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedCurrency, journalCurrency)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, req.PeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period %d not found", apperrors.ErrNotFound, req.PeriodID)
		}
		return nil, fmt.Errorf("failed to load period %d: %w", req.PeriodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %s", ErrPeriodLocked, period.Label())
	}
	if !period.Contains(req.JournalDate) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrDateOutsidePeriod, req.JournalDate.Format("2006-01-02"), period.Label())
	}

	if req.FxRateID != nil {
		if _, err := s.fxRateSvc.GetFxRateByID(ctx, *req.FxRateID); err != nil {
			return nil, fmt.Errorf("pinned fx rate %s: %w", *req.FxRateID, err)
		}
	}

	now := s.now()
	journalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lineCurrency := strings.ToUpper(lineReq.CurrencyCode)
		if !s.currencies.Contains(lineCurrency) {
			return nil, fmt.Errorf("%w: '%s' on line %d", ErrUnsupportedCurrency, lineCurrency, i+1)
		}
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			AccountID:    lineReq.AccountID,
			Amount:       lineReq.Amount,
			LineType:     lineReq.LineType,
			CurrencyCode: lineCurrency,
			LineNumber:   i + 1,
			Notes:        lineReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateLineStructure(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		account := accounts[line.AccountID]
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account '%s'", ErrInactiveAccount, account.Code)
		}
		if account.CurrencyCode != line.CurrencyCode {
			return nil, fmt.Errorf("%w: account '%s' is %s, line %d is %s", ErrCurrencyMismatch, account.Code, account.CurrencyCode, line.LineNumber, line.CurrencyCode)
		}
	}

	journal := domain.Journal{
		JournalID:    journalID,
		Reference:    req.Reference,
		Description:  req.Description,
		JournalDate:  req.JournalDate,
		PeriodID:     req.PeriodID,
		CurrencyCode: journalCurrency,
		Status:       domain.Draft,
		FxRateID:     req.FxRateID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		logger.Error("Failed to save journal", slog.String("reference", req.Reference), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create journal in service: %w", err)
	}

	journal.Lines = lines
	logger.Info("Draft journal created", slog.String("journal_id", journalID), slog.String("reference", req.Reference))
	return &journal, nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJournalNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to get journal %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournalsByPeriod retrieves journal headers for a period.
func (s *journalService) ListJournalsByPeriod(ctx context.Context, periodID int64, params dto.ListJournalsParams) ([]domain.Journal, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.journalRepo.ListJournalsByPeriod(ctx, periodID, limit, params.Offset)
}

// UpdateJournal updates header details of a draft journal. Posted journals
// are immutable.
func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	journal, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is %s", ErrJournalNotDraft, journalID, journal.Status)
	}

	if req.Description != nil {
		journal.Description = *req.Description
	}
	if req.JournalDate != nil {
		period, err := s.periodRepo.FindPeriodByID(ctx, journal.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to load period %d: %w", journal.PeriodID, err)
		}
		if !period.Contains(*req.JournalDate) {
			return nil, fmt.Errorf("%w: %s not in %s", ErrDateOutsidePeriod, req.JournalDate.Format("2006-01-02"), period.Label())
		}
		journal.JournalDate = *req.JournalDate
	}

	journal.LastUpdatedAt = s.now()
	journal.LastUpdatedBy = requestingUserID
	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		return nil, fmt.Errorf("failed to update journal %s: %w", journalID, err)
	}
	return journal, nil
}

// PostJournal transitions a draft journal to POSTED. The whole
// read-validate-write sequence runs in one database transaction holding the
// period row lock, so postings and period closes for the same period are
// serialized.
func (s *journalService) PostJournal(ctx context.Context, journalID string, actorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Initial read outside the lock just to learn the period.
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJournalNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to get journal %s: %w", journalID, err)
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	period, err := s.periodRepo.FindPeriodByIDForUpdate(ctx, tx, journal.PeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period %d not found", apperrors.ErrNotFound, journal.PeriodID)
		}
		return nil, fmt.Errorf("failed to lock period %d: %w", journal.PeriodID, err)
	}

	// Re-read under the period lock; a concurrent posting may have won.
	journal, err = s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock journal %s: %w", journalID, err)
	}
	if journal.Status == domain.Posted {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPosted, journalID)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %s", ErrPeriodLocked, period.Label())
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	if err := accounting.ValidateLineStructure(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account '%s'", ErrInactiveAccount, account.Code)
		}
	}

	// A pinned rate takes precedence over date-based resolution so the
	// journal's valuation stays immutable even if rates are later backfilled
	// for its date.
	var pinned *domain.FxRate
	if journal.FxRateID != nil {
		pinned, err = s.fxRateSvc.GetFxRateByID(ctx, *journal.FxRateID)
		if err != nil {
			return nil, fmt.Errorf("pinned fx rate %s: %w", *journal.FxRateID, err)
		}
	}
	rateFor := func(fromCurrency string) (decimal.Decimal, error) {
		if pinned != nil && pinned.FromCurrencyCode == fromCurrency && pinned.ToCurrencyCode == journal.CurrencyCode {
			return pinned.Rate, nil
		}
		return s.fxRateSvc.ResolveRate(ctx, fromCurrency, journal.CurrencyCode, journal.JournalDate)
	}

	totalDebit, totalCredit, err := accounting.TotalsInCurrency(lines, journal.CurrencyCode, rateFor)
	if err != nil {
		return nil, err
	}
	// Exact decimal equality; accounting tolerates no rounding slack.
	if !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w: debit %s vs credit %s", ErrJournalUnbalanced, totalDebit.String(), totalCredit.String())
	}

	now := s.now()
	if err := s.journalRepo.MarkJournalPosted(ctx, tx, journalID, totalDebit, totalCredit, actorUserID, now); err != nil {
		return nil, fmt.Errorf("failed to mark journal %s posted: %w", journalID, err)
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting of journal %s: %w", journalID, err)
	}

	journal.Status = domain.Posted
	journal.TotalDebit = totalDebit
	journal.TotalCredit = totalCredit
	journal.PostedBy = &actorUserID
	journal.PostedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actorUserID
	journal.Lines = lines

	logger.Info("Journal posted",
		slog.String("journal_id", journalID),
		slog.String("posted_by", actorUserID),
		slog.String("total_debit", totalDebit.String()),
	)
	return journal, nil
}
