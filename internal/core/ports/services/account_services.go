package services

import (
	"context"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/finbooks-app/finbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations over a tenant's chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account within the tenant.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves a batch of accounts; missing ids are absent
	// from the returned map.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// GetAccountTree returns the tenant's accounts assembled into a
	// parent/child hierarchy, roots only (children attached).
	GetAccountTree(ctx context.Context, tenantID string) ([]*domain.Account, error)

	// ListActiveAccounts returns active accounts ordered by code.
	ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// ListPostableAccounts returns active posting-eligible accounts ordered by code.
	ListPostableAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriterSvc defines mutations of a tenant's chart of accounts.
type AccountWriterSvc interface {
	// SeedDefaultChart creates the reference chart for a tenant that has no
	// accounts yet. Idempotent: returns 0 when the tenant already has any.
	SeedDefaultChart(ctx context.Context, tenantID, actorID string) (int, error)

	// CreateAccount creates a user-defined account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount applies a partial update to an account.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// ToggleAccountActive flips an account's active flag. Deactivation is
	// refused while the account has lines on POSTED entries.
	ToggleAccountActive(ctx context.Context, tenantID, accountID, actorID string) (*domain.Account, error)
}

// AccountSvcFacade combines all chart-of-accounts service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
