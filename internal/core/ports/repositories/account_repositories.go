package repositories

import (
	"context"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
// Every operation is scoped to a single tenant.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within a tenant.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its per-tenant unique code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs in one batch.
	// IDs that do not resolve within the tenant are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account of a tenant ordered by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// ListActiveAccounts retrieves active accounts ordered by code.
	ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// ListPostableAccounts retrieves active posting-eligible accounts ordered by code.
	ListPostableAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)

	// CountAccounts returns the number of accounts a tenant has.
	CountAccounts(ctx context.Context, tenantID string) (int64, error)

	// CountPostedLines returns the number of lines on POSTED entries that
	// reference the account. Used to guard deactivation.
	CountPostedLines(ctx context.Context, tenantID, accountID string) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts bulk-inserts accounts, used by the chart seeder.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines balance operations that run inside a
// caller-owned database transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts within the tenant and locks
	// the rows for update. Must be called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx applies relative balance deltas
	// (balance = balance + delta) for multiple accounts within a transaction.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
