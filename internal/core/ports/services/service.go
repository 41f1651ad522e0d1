package services

// ServiceContainer holds all the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account AccountSvcFacade
	Period  PeriodSvcFacade
	FxRate  FxRateSvcFacade
	Journal JournalSvcFacade
}
