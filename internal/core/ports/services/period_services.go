package services

import (
	"context"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting periods
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific period by its ID.
	GetPeriodByID(ctx context.Context, periodID int64) (*domain.Period, error)

	// ListPeriods retrieves periods matching the filter, newest first.
	ListPeriods(ctx context.Context, params dto.ListPeriodsParams) ([]domain.Period, error)
}

// PeriodWriterSvc defines write operations for accounting periods
type PeriodWriterSvc interface {
	// CreatePeriod persists a new open period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)

	// ClosePeriod transitions a period OPEN -> LOCKED after verifying every
	// journal in it is posted and every FX rate dated within it is locked.
	ClosePeriod(ctx context.Context, periodID int64, actorUserID string) (*domain.Period, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
