package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finledger/bookkeeping_backend/internal/apperrors"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/finledger/bookkeeping_backend/internal/models"
	"github.com/finledger/bookkeeping_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, year, month, status, fx_rate_locked,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryWithTx
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.FxRateLocked,
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

// SavePeriod inserts a new period and returns it with the assigned serial id.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) (*domain.Period, error) {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO periods (year, month, status, fx_rate_locked, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING period_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Year,
		m.Month,
		m.Status,
		m.FxRateLocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&m.PeriodID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (year, month)
			return nil, fmt.Errorf("%w: period %d-%d", apperrors.ErrDuplicate, period.Year, period.Month)
		}
		return nil, apperrors.NewAppError(500, "failed to insert period", err)
	}

	saved := mapping.ToDomainPeriod(m)
	return &saved, nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID int64) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %d", apperrors.ErrNotFound, periodID)
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+strconv.FormatInt(periodID, 10), err)
	}

	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodByYearMonth retrieves the period covering (year, month).
func (r *PgxPeriodRepository) FindPeriodByYearMonth(ctx context.Context, year int, month int) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE year = $1 AND month = $2;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %d-%d", apperrors.ErrNotFound, year, month)
		}
		return nil, apperrors.NewAppError(500, "failed to find period by year/month", err)
	}

	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodByIDForUpdate retrieves a period inside tx holding a row lock.
// Every posting and close takes this lock first, which serializes them per
// period.
func (r *PgxPeriodRepository) FindPeriodByIDForUpdate(ctx context.Context, tx pgx.Tx, periodID int64) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1 FOR UPDATE;`

	m, err := scanPeriod(tx.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %d", apperrors.ErrNotFound, periodID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock period "+strconv.FormatInt(periodID, 10), err)
	}

	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// ListPeriods retrieves periods matching the filter ordered by (year desc, month desc).
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, filter portsrepo.PeriodFilter) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.Year != nil {
		query += fmt.Sprintf(" AND year = $%d", argPos)
		args = append(args, *filter.Year)
		argPos++
	}
	query += " ORDER BY year DESC, month DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate period rows", err)
	}
	return periods, nil
}

// MarkPeriodLocked seals the period: status LOCKED and fx_rate_locked true,
// unconditionally.
func (r *PgxPeriodRepository) MarkPeriodLocked(ctx context.Context, tx pgx.Tx, periodID int64, lockedBy string, lockedAt time.Time) error {
	query := `
		UPDATE periods
		SET status = $2, fx_rate_locked = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	tag, err := tx.Exec(ctx, query, periodID, models.PeriodLocked, lockedAt, lockedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock period "+strconv.FormatInt(periodID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %d", apperrors.ErrNotFound, periodID)
	}
	return nil
}
