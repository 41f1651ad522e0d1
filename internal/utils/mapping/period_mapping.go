package mapping

import (
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:     d.PeriodID,
		Year:         d.Year,
		Month:        d.Month,
		Status:       models.PeriodStatus(d.Status),
		FxRateLocked: d.FxRateLocked,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:     m.PeriodID,
		Year:         m.Year,
		Month:        m.Month,
		Status:       domain.PeriodStatus(m.Status),
		FxRateLocked: m.FxRateLocked,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
