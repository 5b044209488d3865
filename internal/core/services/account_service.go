package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/apperrors"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
	"github.com/finbooks-app/finbooks_backend/internal/middleware"
	"github.com/google/uuid"
)

// MaxAccountLevel caps the depth of the account hierarchy.
const MaxAccountLevel = 4

var (
	// ErrParentNotFound marks attempts to parent under a missing or foreign account.
	ErrParentNotFound = fmt.Errorf("parent account not found: %w", apperrors.ErrValidation)
	// ErrHierarchyCycle marks a reparent that would make an account its own ancestor.
	ErrHierarchyCycle = fmt.Errorf("account hierarchy must not contain cycles: %w", apperrors.ErrValidation)
	// ErrHierarchyTooDeep marks an account that would exceed MaxAccountLevel.
	ErrHierarchyTooDeep = fmt.Errorf("account hierarchy exceeds maximum depth: %w", apperrors.ErrValidation)
	// ErrSystemAccountEdit marks an attempt to rewrite a seeded reference account.
	ErrSystemAccountEdit = fmt.Errorf("seeded accounts cannot be modified: %w", apperrors.ErrValidation)
	// ErrAccountHasPostings marks a deactivation refused because POSTED lines reference the account.
	ErrAccountHasPostings = fmt.Errorf("account is referenced by posted entries: %w", apperrors.ErrStateConflict)
)

// AccountService manages a tenant's chart of accounts. Balances are never
// touched here; only the journal engine mutates them.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(repo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: repo}
}

// SeedDefaultChart creates the reference chart for a tenant with no accounts.
// Idempotent: a tenant that already has any account gets nothing.
func (s *AccountService) SeedDefaultChart(ctx context.Context, tenantID, actorID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.accountRepo.CountAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to count accounts before seeding", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		logger.Info("Chart already seeded, skipping", slog.String("tenant_id", tenantID), slog.Int64("existing", count))
		return 0, nil
	}

	now := time.Now()

	// First pass: materialize every node with a fresh id, keyed by code.
	idByCode := make(map[string]string, len(domain.DefaultChart))
	accounts := make([]domain.Account, 0, len(domain.DefaultChart))
	for _, entry := range domain.DefaultChart {
		id := uuid.NewString()
		idByCode[entry.Code] = id
		accounts = append(accounts, domain.Account{
			AccountID:     id,
			TenantID:      tenantID,
			Code:          entry.Code,
			Name:          entry.Name,
			AccountType:   entry.AccountType,
			NormalBalance: domain.NormalBalanceFor(entry.AccountType),
			Level:         entry.Level,
			AllowsPosting: entry.AllowsPosting,
			IsActive:      true,
			IsSystem:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	// Second pass: resolve parent codes to the ids allocated above.
	for i, entry := range domain.DefaultChart {
		if entry.ParentCode == "" {
			continue
		}
		parentID, ok := idByCode[entry.ParentCode]
		if !ok {
			return 0, fmt.Errorf("reference chart entry %s names unknown parent %s", entry.Code, entry.ParentCode)
		}
		accounts[i].ParentAccountID = parentID
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		logger.Error("Failed to seed default chart", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return 0, fmt.Errorf("failed to seed default chart: %w", err)
	}

	logger.Info("Seeded default chart", slog.String("tenant_id", tenantID), slog.Int("count", len(accounts)))
	return len(accounts), nil
}

// CreateAccount creates a user-defined account in the tenant's chart.
func (s *AccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to check code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
			return nil, err
		}
	} else if existing != nil {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", req.Code), apperrors.ErrDuplicate)
	}

	level := 1
	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			logger.Error("Failed to resolve parent account", slog.String("error", err.Error()), slog.String("parent_id", *req.ParentAccountID))
			return nil, err
		}
		if parent.Level >= MaxAccountLevel {
			return nil, ErrHierarchyTooDeep
		}
		parentID = parent.AccountID
		level = parent.Level + 1
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalBalance:   domain.NormalBalanceFor(req.AccountType),
		Level:           level,
		ParentAccountID: parentID,
		Description:     req.Description,
		AllowsPosting:   req.AllowsPosting,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the uniqueness race to a concurrent create.
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", req.Code), apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount applies a partial update to an account's mutable details.
// Account type and normal balance are immutable after creation.
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.IsSystem && (req.Code != nil || req.ParentAccountID != nil) {
		return nil, ErrSystemAccountEdit
	}

	if req.Code != nil && *req.Code != account.Code {
		if existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, *req.Code); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		} else if existing != nil {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", *req.Code), apperrors.ErrDuplicate)
		}
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	oldLevel := account.Level
	if req.ParentAccountID != nil {
		if err := s.reparent(ctx, tenantID, account, *req.ParentAccountID); err != nil {
			return nil, err
		}
	}

	// A level change moves the whole subtree with it.
	var descendants []domain.Account
	if account.Level != oldLevel {
		descendants, err = s.shiftedDescendants(ctx, tenantID, account.AccountID, account.Level-oldLevel)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	for i := range descendants {
		descendants[i].LastUpdatedAt = now
		descendants[i].LastUpdatedBy = actorID
		if err := s.accountRepo.UpdateAccount(ctx, descendants[i]); err != nil {
			logger.Error("Failed to re-level descendant account", slog.String("error", err.Error()), slog.String("account_id", descendants[i].AccountID))
			return nil, err
		}
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// shiftedDescendants collects every descendant of rootID with its level
// shifted by the given amount, failing when the deepest one would land
// past MaxAccountLevel. Validated before anything is persisted.
func (s *AccountService) shiftedDescendants(ctx context.Context, tenantID, rootID string, shift int) ([]domain.Account, error) {
	all, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[string][]domain.Account, len(all))
	for _, acc := range all {
		if acc.ParentAccountID != "" {
			childrenOf[acc.ParentAccountID] = append(childrenOf[acc.ParentAccountID], acc)
		}
	}

	var shifted []domain.Account
	queue := []string{rootID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]
		for _, child := range childrenOf[parentID] {
			child.Level += shift
			if child.Level > MaxAccountLevel {
				return nil, ErrHierarchyTooDeep
			}
			shifted = append(shifted, child)
			queue = append(queue, child.AccountID)
		}
	}
	return shifted, nil
}

// reparent validates and applies a parent change on the in-memory account.
// An empty id promotes the account to a root.
func (s *AccountService) reparent(ctx context.Context, tenantID string, account *domain.Account, newParentID string) error {
	if newParentID == "" {
		account.ParentAccountID = ""
		account.Level = 1
		return nil
	}
	if newParentID == account.AccountID {
		return ErrHierarchyCycle
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, newParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	if parent.Level >= MaxAccountLevel {
		return ErrHierarchyTooDeep
	}

	// Walk up from the candidate parent; finding ourselves means the move
	// would create a cycle.
	seen := map[string]bool{account.AccountID: true}
	cursor := parent
	for cursor.ParentAccountID != "" {
		if seen[cursor.ParentAccountID] {
			return ErrHierarchyCycle
		}
		seen[cursor.AccountID] = true
		cursor, err = s.accountRepo.FindAccountByID(ctx, tenantID, cursor.ParentAccountID)
		if err != nil {
			return err
		}
	}

	account.ParentAccountID = parent.AccountID
	account.Level = parent.Level + 1
	return nil
}

// ToggleAccountActive flips an account's active flag. An account referenced
// by any POSTED entry line cannot be deactivated.
func (s *AccountService) ToggleAccountActive(ctx context.Context, tenantID, accountID, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for toggle", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.IsActive {
		referenced, err := s.accountRepo.CountPostedLines(ctx, tenantID, accountID)
		if err != nil {
			logger.Error("Failed to count posted lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		if referenced > 0 {
			return nil, ErrAccountHasPostings
		}
	}

	account.IsActive = !account.IsActive
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to toggle account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account active flag toggled", slog.String("account_id", accountID), slog.Bool("is_active", account.IsActive))
	return account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

// GetAccountTree assembles the tenant's full chart into a hierarchy and
// returns the roots, children sorted by code at every level.
func (s *AccountService) GetAccountTree(ctx context.Context, tenantID string) ([]*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list accounts for tree", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].AccountID] = &accounts[i]
	}

	var roots []*domain.Account
	for i := range accounts {
		node := &accounts[i]
		if node.ParentAccountID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[node.ParentAccountID]
		if !ok {
			// Orphaned node, surface it as a root rather than dropping it.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortTree(roots)
	return roots, nil
}

func sortTree(nodes []*domain.Account) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortTree(n.Children)
		}
	}
}

// ListActiveAccounts returns the tenant's active accounts ordered by code.
func (s *AccountService) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list active accounts", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ListPostableAccounts returns the active accounts journal lines may target.
func (s *AccountService) ListPostableAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListPostableAccounts(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list postable accounts", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
