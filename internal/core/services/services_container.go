package services

import (
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portsrepo "github.com/finledger/bookkeeping_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	currencies := domain.NewCurrencySet(cfg.SupportedCurrencies)

	container.Account = NewAccountService(repos.AccountRepo, currencies)
	container.FxRate = NewFxRateService(repos.FxRateRepo, currencies)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.JournalRepo, repos.FxRateRepo)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.PeriodRepo,
		container.Account,
		container.FxRate,
		currencies,
		cfg.ReportingCurrency,
	)

	return container
}
