package services

import (
	"context"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
)

// EntryPage is one page of a journal entry listing.
type EntryPage struct {
	Entries    []domain.JournalEntry
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// JournalSvcFacade is the journal entry engine: the only component that
// mutates account balances, and only through post/void.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a new DRAFT entry with an allocated
	// entry number. No balance effect.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// PostEntry transitions a DRAFT entry to POSTED, atomically applying
	// every line's signed delta to its account balance.
	PostEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error)

	// VoidEntry transitions a POSTED entry to VOIDED, atomically reversing
	// the post-time deltas exactly. Terminal; entries are never deleted.
	VoidEntry(ctx context.Context, tenantID, entryID, actorID, reason string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, paginated page of entries in reverse
	// chronological order.
	ListEntries(ctx context.Context, tenantID string, filter portsrepo.ListEntriesFilter, page, limit int) (*EntryPage, error)
}
