package mapping

import (
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/finbooks-app/finbooks_backend/internal/models"
)

// ToModelAccount converts a domain Account to its database model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		TenantID:        d.TenantID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		NormalBalance:   models.NormalBalance(d.NormalBalance),
		Level:           d.Level,
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		AllowsPosting:   d.AllowsPosting,
		IsActive:        d.IsActive,
		IsSystem:        d.IsSystem,
		Balance:         d.Balance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a database Account model to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		Level:           m.Level,
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		AllowsPosting:   m.AllowsPosting,
		IsActive:        m.IsActive,
		IsSystem:        m.IsSystem,
		Balance:         m.Balance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of account models to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
