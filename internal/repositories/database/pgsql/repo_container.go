package pgsql

import (
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgx-backed repositories sharing one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		PeriodRepo:  newPgxPeriodRepository(dbPool),
		FxRateRepo:  newPgxFxRateRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
	}
}
