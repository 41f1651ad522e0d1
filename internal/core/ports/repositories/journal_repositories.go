package repositories

import (
	"context"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal header by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByIDForUpdate retrieves a journal header inside tx with a row lock.
	FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error)

	// FindLinesByJournalID retrieves all lines of a journal ordered by line number.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournalsByPeriod retrieves journal headers for a period ordered by
	// journal date, then reference.
	ListJournalsByPeriod(ctx context.Context, periodID int64, limit int, offset int) ([]domain.Journal, error)

	// CountJournalsByStatusInPeriod counts journals in the period with the given
	// status. Runs inside tx so period close sees a consistent count.
	CountJournalsByStatusInPeriod(ctx context.Context, tx pgx.Tx, periodID int64, status domain.JournalStatus) (int, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a new draft journal and its lines atomically.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// UpdateJournal updates mutable header fields (description, date, period) of a draft.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// MarkJournalPosted transitions a journal to POSTED inside tx, persisting
	// the recomputed totals and the posting stamp.
	MarkJournalPosted(ctx context.Context, tx pgx.Tx, journalID string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
