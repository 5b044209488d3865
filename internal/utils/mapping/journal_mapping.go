package mapping

import (
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/finbooks-app/finbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its database model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		TenantID:    d.TenantID,
		EntryNumber: d.EntryNumber,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		EntryType:   models.EntryType(d.EntryType),
		Status:      models.EntryStatus(d.Status),
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		PostedAt:    d.PostedAt,
		PostedBy:    d.PostedBy,
		VoidedAt:    d.VoidedAt,
		VoidedBy:    d.VoidedBy,
		VoidReason:  d.VoidReason,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a database JournalEntry model to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		TenantID:    m.TenantID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		EntryType:   domain.EntryType(m.EntryType),
		Status:      domain.EntryStatus(m.Status),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		PostedAt:    m.PostedAt,
		PostedBy:    m.PostedBy,
		VoidedAt:    m.VoidedAt,
		VoidedBy:    m.VoidedBy,
		VoidReason:  m.VoidReason,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to its database model.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineNumber:  d.LineNumber,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainJournalEntryLine converts a database line model to its domain form.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineNumber:  m.LineNumber,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainJournalEntryLineSlice converts a slice of line models to domain lines.
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
