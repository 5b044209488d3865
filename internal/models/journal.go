package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors the domain entry status for DB storage.
type EntryStatus string

// EntryType mirrors the domain entry type for DB storage.
type EntryType string

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID     string
	TenantID    string
	EntryNumber string
	EntryDate   time.Time
	Description string
	EntryType   EntryType
	Status      EntryStatus
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	PostedAt    *time.Time
	PostedBy    string
	VoidedAt    *time.Time
	VoidedBy    string
	VoidReason  string
	AuditFields
}

// JournalEntryLine is the database representation of a single entry line.
type JournalEntryLine struct {
	LineID      string
	EntryID     string
	AccountID   string
	LineNumber  int
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}
