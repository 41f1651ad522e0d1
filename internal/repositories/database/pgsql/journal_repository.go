package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/finledger/bookkeeping_backend/internal/models"
	"github.com/finledger/bookkeeping_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, reference, description, journal_date, period_id, currency_code, status,
	total_debit, total_credit, fx_rate_id, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, journal_id, account_id, amount, line_type, currency_code, line_number, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.Reference,
		&m.Description,
		&m.JournalDate,
		&m.PeriodID,
		&m.CurrencyCode,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.FxRateID,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanJournalLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.AccountID,
		&m.Amount,
		&m.LineType,
		&m.CurrencyCode,
		&m.LineNumber,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveJournal persists a draft journal header and its lines in one DB transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, journalQuery,
		m.JournalID,
		m.Reference,
		m.Description,
		m.JournalDate,
		m.PeriodID,
		m.CurrencyCode,
		m.Status,
		decimal.Zero,
		decimal.Zero,
		m.FxRateID,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.JournalID,
			ml.AccountID,
			ml.Amount,
			ml.LineType,
			ml.CurrencyCode,
			ml.LineNumber,
			ml.Notes,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal "+m.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}

	journal := mapping.ToDomainJournal(*m)
	return &journal, nil
}

// FindJournalByIDForUpdate retrieves a journal header inside tx with a row lock.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1 FOR UPDATE;`

	m, err := scanJournal(tx.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal "+journalID, err)
	}

	journal := mapping.ToDomainJournal(*m)
	return &journal, nil
}

// FindLinesByJournalID retrieves all lines of a journal ordered by line number.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal line rows", err)
	}
	return lines, nil
}

// ListJournalsByPeriod retrieves journal headers for a period.
func (r *PgxJournalRepository) ListJournalsByPeriod(ctx context.Context, periodID int64, limit int, offset int) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE period_id = $1
		ORDER BY journal_date, reference
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, periodID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journals", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournal(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal rows", err)
	}
	return journals, nil
}

// CountJournalsByStatusInPeriod counts journals in the period with the given status.
// Runs on tx when supplied so period close counts under its period lock.
func (r *PgxJournalRepository) CountJournalsByStatusInPeriod(ctx context.Context, tx pgx.Tx, periodID int64, status domain.JournalStatus) (int, error) {
	query := `SELECT COUNT(*) FROM journals WHERE period_id = $1 AND status = $2;`

	var count int
	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, periodID, string(status)).Scan(&count)
	} else {
		err = r.Pool.QueryRow(ctx, query, periodID, string(status)).Scan(&count)
	}
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journals by status", err)
	}
	return count, nil
}

// UpdateJournal updates mutable header fields of a draft journal.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		UPDATE journals
		SET description = $2, journal_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.JournalID,
		m.Description,
		m.JournalDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		models.Draft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft journal %s", apperrors.ErrNotFound, m.JournalID)
	}
	return nil
}

// MarkJournalPosted transitions a journal to POSTED inside tx, persisting the
// recomputed totals and the posting stamp. The status guard in the WHERE
// clause backs up the service-level check.
func (r *PgxJournalRepository) MarkJournalPosted(ctx context.Context, tx pgx.Tx, journalID string, totalDebit, totalCredit decimal.Decimal, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $2, total_debit = $3, total_credit = $4, posted_by = $5, posted_at = $6,
		    last_updated_at = $6, last_updated_by = $5
		WHERE journal_id = $1 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		journalID,
		models.Posted,
		totalDebit,
		totalCredit,
		postedBy,
		postedAt,
		models.Draft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal posted "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft journal %s", apperrors.ErrNotFound, journalID)
	}
	return nil
}
