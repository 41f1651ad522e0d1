package mapping

import (
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/finledger/bookkeeping_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var parentID *string
	if d.ParentAccountID != "" {
		pid := d.ParentAccountID
		parentID = &pid
	}
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		CurrencyCode:    d.CurrencyCode,
		ParentAccountID: parentID,
		Description:     d.Description,
		IsBank:          d.IsBank,
		IsCapital:       d.IsCapital,
		IsPayrollSource: d.IsPayrollSource,
		IsIntercompany:  d.IsIntercompany,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	parentID := ""
	if m.ParentAccountID != nil {
		parentID = *m.ParentAccountID
	}
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		CurrencyCode:    m.CurrencyCode,
		ParentAccountID: parentID,
		Description:     m.Description,
		IsBank:          m.IsBank,
		IsCapital:       m.IsCapital,
		IsPayrollSource: m.IsPayrollSource,
		IsIntercompany:  m.IsIntercompany,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
