package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
// The only legal transitions are DRAFT -> POSTED -> VOIDED.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// EntryType categorizes the business origin of a journal entry.
type EntryType string

const (
	EntryTypeGeneral    EntryType = "GENERAL"
	EntryTypeSales      EntryType = "SALES"
	EntryTypePurchase   EntryType = "PURCHASE"
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// JournalEntry represents a single, balanced financial event composed of
// one debit side and one credit side of equal totals.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary key (UUID)
	TenantID    string          `json:"tenantID"`    // Scopes the entry to one tenant
	EntryNumber string          `json:"entryNumber"` // JE-YYYY-NNNNNN, unique per tenant
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	EntryType   EntryType       `json:"entryType"`
	Status      EntryStatus     `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Immutable after creation
	TotalCredit decimal.Decimal `json:"totalCredit"` // Equal to TotalDebit
	PostedAt    *time.Time      `json:"postedAt,omitempty"`
	PostedBy    string          `json:"postedBy,omitempty"`
	VoidedAt    *time.Time      `json:"voidedAt,omitempty"`
	VoidedBy    string          `json:"voidedBy,omitempty"`
	VoidReason  string          `json:"voidReason,omitempty"`
	AuditFields
	Lines []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine is a single line of a journal entry, affecting one account.
// Exactly one of Debit/Credit is strictly positive; the other is zero.
// Lines are exclusively owned by their entry and never outlive it.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"` // 1-based, order-preserving
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
