package repositories

import (
	"context"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesFilter narrows an entry listing. Zero values mean "no filter".
type ListEntriesFilter struct {
	Status    domain.EntryStatus
	EntryType domain.EntryType
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string // Matches entry number or description
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry header within a tenant.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a filtered page of entries in reverse
	// chronological entry-date order, plus the total match count.
	ListEntries(ctx context.Context, tenantID string, filter ListEntriesFilter, limit, offset int) ([]domain.JournalEntry, int64, error)

	// CountPostedEntries returns the number of POSTED entries for a tenant.
	CountPostedEntries(ctx context.Context, tenantID string) (int64, error)
}

// JournalEntryWriter defines lifecycle mutations for journal entries.
// PostEntry and VoidEntry are the only multi-row mutations in the system and
// each runs inside a single database transaction.
type JournalEntryWriter interface {
	// SaveEntry persists a DRAFT entry with its lines. No balance effect.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error

	// PostEntry atomically applies balance deltas to every referenced account
	// and flips the entry DRAFT -> POSTED. The status flip is guarded by the
	// current status, so a lost race surfaces as a state conflict instead of
	// a double application.
	PostEntry(ctx context.Context, tenantID, entryID string, deltas map[string]decimal.Decimal, postedBy string, now time.Time) error

	// VoidEntry atomically applies the negated deltas and flips the entry
	// POSTED -> VOIDED, recording who voided it and why.
	VoidEntry(ctx context.Context, tenantID, entryID string, deltas map[string]decimal.Decimal, voidedBy, reason string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-entry repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// SequenceRepository allocates per-tenant-per-year entry numbers.
type SequenceRepository interface {
	// NextEntryNumber returns the next formatted entry number for the tenant
	// and year, e.g. JE-2026-000001. Safe under concurrent calls: the counter
	// is advanced by a single atomic upsert statement.
	NextEntryNumber(ctx context.Context, tenantID string, year int) (string, error)
}
