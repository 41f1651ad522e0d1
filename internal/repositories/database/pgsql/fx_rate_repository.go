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
)

const fxRateColumns = `fx_rate_id, from_currency_code, to_currency_code, rate, date_effective, is_locked,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFxRateRepository struct {
	BaseRepository
}

// newPgxFxRateRepository creates a new repository for FX rate data.
func newPgxFxRateRepository(pool *pgxpool.Pool) portsrepo.FxRateRepositoryFacade {
	return &PgxFxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFxRateRepository implements portsrepo.FxRateRepositoryFacade
var _ portsrepo.FxRateRepositoryFacade = (*PgxFxRateRepository)(nil)

func scanFxRate(row pgx.Row) (*models.FxRate, error) {
	var m models.FxRate
	err := row.Scan(
		&m.FxRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.DateEffective,
		&m.IsLocked,
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

// SaveFxRate inserts a new rate row.
func (r *PgxFxRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	m := mapping.ToModelFxRate(rate)

	query := `
		INSERT INTO fx_rates (` + fxRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FxRateID,
		m.FromCurrencyCode,
		m.ToCurrencyCode,
		m.Rate,
		m.DateEffective,
		m.IsLocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fx rate "+m.FxRateID, err)
	}
	return nil
}

// FindFxRateByID retrieves a rate by its ID.
func (r *PgxFxRateRepository) FindFxRateByID(ctx context.Context, fxRateID string) (*domain.FxRate, error) {
	query := `SELECT ` + fxRateColumns + ` FROM fx_rates WHERE fx_rate_id = $1;`

	m, err := scanFxRate(r.Pool.QueryRow(ctx, query, fxRateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fx rate %s", apperrors.ErrNotFound, fxRateID)
		}
		return nil, apperrors.NewAppError(500, "failed to find fx rate "+fxRateID, err)
	}

	rate := mapping.ToDomainFxRate(*m)
	return &rate, nil
}

// FindLatestFxRate retrieves the rate for the pair with the latest effective
// date not after asOf.
func (r *PgxFxRateRepository) FindLatestFxRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.FxRate, error) {
	query := `
		SELECT ` + fxRateColumns + `
		FROM fx_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	m, err := scanFxRate(r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s->%s", apperrors.ErrNotFound, fromCurrency, toCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to resolve fx rate", err)
	}

	rate := mapping.ToDomainFxRate(*m)
	return &rate, nil
}

// ListFxRates retrieves rates ordered by effective date descending, optionally
// filtered to a currency pair.
func (r *PgxFxRateRepository) ListFxRates(ctx context.Context, fromCurrency, toCurrency string, limit int, offset int) ([]domain.FxRate, error) {
	query := `SELECT ` + fxRateColumns + ` FROM fx_rates WHERE 1=1`
	args := []any{}
	argPos := 1

	if fromCurrency != "" {
		query += fmt.Sprintf(" AND from_currency_code = $%d", argPos)
		args = append(args, fromCurrency)
		argPos++
	}
	if toCurrency != "" {
		query += fmt.Sprintf(" AND to_currency_code = $%d", argPos)
		args = append(args, toCurrency)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY date_effective DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fx rates", err)
	}
	defer rows.Close()

	var rates []domain.FxRate
	for rows.Next() {
		m, err := scanFxRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fx rate row", err)
		}
		rates = append(rates, mapping.ToDomainFxRate(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fx rate rows", err)
	}
	return rates, nil
}

// CountUnlockedFxRatesInRange counts unlocked rates effective within [start, end).
// Runs on tx when supplied so period close sees a consistent count under its
// period lock; falls back to the pool otherwise.
func (r *PgxFxRateRepository) CountUnlockedFxRatesInRange(ctx context.Context, tx pgx.Tx, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM fx_rates
		WHERE is_locked = FALSE AND date_effective >= $1 AND date_effective < $2;
	`
	var count int
	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, start, end).Scan(&count)
	} else {
		err = r.Pool.QueryRow(ctx, query, start, end).Scan(&count)
	}
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unlocked fx rates", err)
	}
	return count, nil
}

// LockFxRate marks a rate as locked.
func (r *PgxFxRateRepository) LockFxRate(ctx context.Context, fxRateID string, lockedBy string, lockedAt time.Time) error {
	query := `
		UPDATE fx_rates
		SET is_locked = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE fx_rate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, fxRateID, lockedAt, lockedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock fx rate "+fxRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fx rate %s", apperrors.ErrNotFound, fxRateID)
	}
	return nil
}
