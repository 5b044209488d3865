package dto

import (
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a new journal entry. Exactly one of
// debit/credit must be strictly positive; the engine enforces this.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
type CreateEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	EntryType   domain.EntryType         `json:"entryType" binding:"omitempty,oneof=GENERAL SALES PURCHASE ADJUSTMENT"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2"`
}

// VoidEntryRequest carries the optional reason for voiding a posted entry.
type VoidEntryRequest struct {
	Reason string `json:"reason"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOIDED"`
	EntryType string `form:"entryType" binding:"omitempty,oneof=GENERAL SALES PURCHASE ADJUSTMENT"`
	DateFrom  string `form:"dateFrom"` // RFC 3339 date
	DateTo    string `form:"dateTo"`
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
}

// EntryLineResponse defines the data returned for a journal entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryNumber string              `json:"entryNumber"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	EntryType   domain.EntryType    `json:"entryType"`
	Status      domain.EntryStatus  `json:"status"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
	PostedAt    *time.Time          `json:"postedAt,omitempty"`
	PostedBy    string              `json:"postedBy,omitempty"`
	VoidedAt    *time.Time          `json:"voidedAt,omitempty"`
	VoidedBy    string              `json:"voidedBy,omitempty"`
	VoidReason  string              `json:"voidReason,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of entries with pagination metadata.
type ListEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// ToEntryLineResponse converts a domain line to its response DTO.
func ToEntryLineResponse(line *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		LineNumber:  line.LineNumber,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
	}
}

// ToEntryResponse converts a domain.JournalEntry (with any loaded lines) to
// its response DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		EntryDate:   entry.EntryDate,
		Description: entry.Description,
		EntryType:   entry.EntryType,
		Status:      entry.Status,
		TotalDebit:  entry.TotalDebit,
		TotalCredit: entry.TotalCredit,
		PostedAt:    entry.PostedAt,
		PostedBy:    entry.PostedBy,
		VoidedAt:    entry.VoidedAt,
		VoidedBy:    entry.VoidedBy,
		VoidReason:  entry.VoidReason,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
	for i := range entry.Lines {
		resp.Lines = append(resp.Lines, ToEntryLineResponse(&entry.Lines[i]))
	}
	return resp
}

// ToListEntriesResponse converts a page of domain entries plus pagination
// metadata into the list response DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, page, limit int, total int64, totalPages int) ListEntriesResponse {
	resp := ListEntriesResponse{
		Entries:    make([]EntryResponse, len(entries)),
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
	for i := range entries {
		resp.Entries[i] = ToEntryResponse(&entries[i])
	}
	return resp
}
