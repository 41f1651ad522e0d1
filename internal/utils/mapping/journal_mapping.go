package mapping

import (
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		Reference:    d.Reference,
		Description:  d.Description,
		JournalDate:  d.JournalDate,
		PeriodID:     d.PeriodID,
		CurrencyCode: d.CurrencyCode,
		Status:       models.JournalStatus(d.Status),
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		FxRateID:     d.FxRateID,
		PostedBy:     d.PostedBy,
		PostedAt:     d.PostedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		Reference:    m.Reference,
		Description:  m.Description,
		JournalDate:  m.JournalDate,
		PeriodID:     m.PeriodID,
		CurrencyCode: m.CurrencyCode,
		Status:       domain.JournalStatus(m.Status),
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		FxRateID:     m.FxRateID,
		PostedBy:     m.PostedBy,
		PostedAt:     m.PostedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		LineType:     models.LineType(d.LineType),
		CurrencyCode: d.CurrencyCode,
		LineNumber:   d.LineNumber,
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		AccountID:    m.AccountID,
		Amount:       m.Amount,
		LineType:     domain.LineType(m.LineType),
		CurrencyCode: m.CurrencyCode,
		LineNumber:   m.LineNumber,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
