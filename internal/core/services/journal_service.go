package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/apperrors"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-app/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/finbooks-app/finbooks_backend/internal/utils/accounting"
	"github.com/finbooks-app/finbooks_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnbalancedEntry marks an entry whose debit and credit totals differ
	// beyond tolerance.
	ErrUnbalancedEntry = fmt.Errorf("entry debits and credits must balance: %w", apperrors.ErrValidation)
	// ErrEmptyEntry marks a balanced entry with nothing on either side.
	ErrEmptyEntry = fmt.Errorf("entry must move a non-zero amount: %w", apperrors.ErrValidation)
	// ErrAmbiguousLine marks a line carrying both a debit and a credit.
	ErrAmbiguousLine = fmt.Errorf("a line must be either a debit or a credit, not both: %w", apperrors.ErrValidation)
	// ErrLineNoAmount marks a line with neither side positive.
	ErrLineNoAmount = fmt.Errorf("a line must carry a positive debit or credit: %w", apperrors.ErrValidation)
	// ErrNegativeAmount marks a line with a negative debit or credit.
	ErrNegativeAmount = fmt.Errorf("line amounts must not be negative: %w", apperrors.ErrValidation)
	// ErrUnknownAccount marks a line naming an account outside the tenant.
	ErrUnknownAccount = fmt.Errorf("line references an unknown account: %w", apperrors.ErrValidation)
	// ErrNonPostingAccount marks a line targeting an aggregation header.
	ErrNonPostingAccount = fmt.Errorf("line references a non-posting account: %w", apperrors.ErrValidation)
	// ErrInactiveAccount marks a line targeting a deactivated account.
	ErrInactiveAccount = fmt.Errorf("line references an inactive account: %w", apperrors.ErrValidation)
)

// JournalService is the journal entry engine. It is the only component that
// changes account balances, and only through PostEntry/VoidEntry.
type JournalService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) *JournalService {
	return &JournalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		sequenceRepo: sequenceRepo,
	}
}

// CreateEntry validates the request, allocates an entry number, and persists
// a DRAFT entry with its lines. Drafts have no effect on any balance.
func (s *JournalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			AccountID:   l.AccountID,
			LineNumber:  i + 1,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}

	totalDebit, totalCredit, err := s.validateLines(ctx, tenantID, lines)
	if err != nil {
		return nil, err
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryTypeGeneral
	}

	entryNumber, err := s.sequenceRepo.NextEntryNumber(ctx, tenantID, req.EntryDate.Year())
	if err != nil {
		logger.Error("Failed to allocate entry number", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryNumber: entryNumber,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		EntryType:   entryType,
		Status:      domain.Draft,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
	}
	entry.Lines = lines

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// validateLines runs the full line validation pipeline and returns the entry
// totals. Order matters: a line carrying both sides is a line defect, not an
// imbalance, so the ambiguous check runs before the balance check; an entry
// with no amounts at all is empty, not a pile of no-amount lines.
func (s *JournalService) validateLines(ctx context.Context, tenantID string, lines []domain.JournalEntryLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, ErrNegativeAmount
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return decimal.Zero, decimal.Zero, ErrAmbiguousLine
		}
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	totalDebit, totalCredit = accounting.EntryTotals(lines)
	if totalDebit.IsZero() && totalCredit.IsZero() {
		return decimal.Zero, decimal.Zero, ErrEmptyEntry
	}
	for _, line := range lines {
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return decimal.Zero, decimal.Zero, ErrLineNoAmount
		}
	}
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return decimal.Zero, decimal.Zero, ErrUnbalancedEntry
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to resolve line accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return decimal.Zero, decimal.Zero, fmt.Errorf("account %s: %w", id, ErrUnknownAccount)
		}
		if !account.AllowsPosting {
			return decimal.Zero, decimal.Zero, fmt.Errorf("account %s: %w", account.Code, ErrNonPostingAccount)
		}
		if !account.IsActive {
			return decimal.Zero, decimal.Zero, fmt.Errorf("account %s: %w", account.Code, ErrInactiveAccount)
		}
	}

	return totalDebit, totalCredit, nil
}

// PostEntry transitions a DRAFT entry to POSTED, applying every line's
// signed delta to its account balance in one transaction.
func (s *JournalService) PostEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.loadEntryWithLines(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, apperrors.NewStateConflictError("entry cannot be posted", string(entry.Status), string(domain.Draft))
	}

	deltas, err := s.computeDeltas(ctx, tenantID, entry.Lines, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.PostEntry(ctx, tenantID, entryID, deltas, actorID, now); err != nil {
		if !errors.Is(err, apperrors.ErrStateConflict) {
			logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = actorID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidEntry transitions a POSTED entry to VOIDED, reversing the post-time
// balance effect exactly. Voided entries stay on the books forever.
func (s *JournalService) VoidEntry(ctx context.Context, tenantID, entryID, actorID, reason string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.loadEntryWithLines(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, apperrors.NewStateConflictError("entry cannot be voided", string(entry.Status), string(domain.Posted))
	}

	deltas, err := s.computeDeltas(ctx, tenantID, entry.Lines, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.VoidEntry(ctx, tenantID, entryID, deltas, actorID, reason, now); err != nil {
		if !errors.Is(err, apperrors.ErrStateConflict) {
			logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Voided
	entry.VoidedAt = &now
	entry.VoidedBy = actorID
	entry.VoidReason = reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	logger.Info("Journal entry voided", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// computeDeltas resolves every line account and folds line amounts into one
// signed delta per account. Voiding negates the post-time deltas, so the two
// operations are exact mirrors.
func (s *JournalService) computeDeltas(ctx context.Context, tenantID string, lines []domain.JournalEntryLine, negate bool) (map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve line accounts: %w", err)
	}

	deltas := make(map[string]decimal.Decimal, len(accountIDs))
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", line.AccountID, ErrUnknownAccount)
		}
		delta := accounting.SignedDelta(account.NormalBalance, line.Debit, line.Credit)
		if negate {
			delta = delta.Neg()
		}
		deltas[line.AccountID] = deltas[line.AccountID].Add(delta)
	}
	return deltas, nil
}

// GetEntry retrieves an entry with its lines attached.
func (s *JournalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return s.loadEntryWithLines(ctx, tenantID, entryID)
}

func (s *JournalService) loadEntryWithLines(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to load entry lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered page of entries, newest first.
func (s *JournalService) ListEntries(ctx context.Context, tenantID string, filter portsrepo.ListEntriesFilter, page, limit int) (*portssvc.EntryPage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	page = pagination.ClampPage(page)
	limit = pagination.ClampLimit(limit)
	offset := pagination.Offset(page, limit)

	entries, total, err := s.journalRepo.ListEntries(ctx, tenantID, filter, limit, offset)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}

	return &portssvc.EntryPage{
		Entries:    entries,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pagination.TotalPages(total, limit),
	}, nil
}
