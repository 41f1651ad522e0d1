package services

import (
	"context"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByPeriod retrieves journal headers for a period.
	ListJournalsByPeriod(ctx context.Context, periodID int64, params dto.ListJournalsParams) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new draft journal with its lines.
	// Drafts may be unbalanced; balance is enforced at posting time.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal updates header details of a draft journal.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error)

	// PostJournal transitions a draft to POSTED, recomputing and fixing its
	// converted totals.
	PostJournal(ctx context.Context, journalID string, actorUserID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
