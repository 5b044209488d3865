package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/apperrors"
	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks-app/finbooks_backend/internal/models"
	"github.com/finbooks-app/finbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, tenant_id, code, name, account_type, normal_balance, level, parent_account_id, description, allows_posting, is_active, is_system, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount reads one account row into a domain.Account.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	var parentID sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&m.Level,
		&parentID,
		&m.Description,
		&m.AllowsPosting,
		&m.IsActive,
		&m.IsSystem,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// nullableID maps an empty string to SQL NULL.
func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Code,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.Level,
		nullableID(m.ParentAccountID),
		m.Description,
		m.AllowsPosting,
		m.IsActive,
		m.IsSystem,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save account "+m.AccountID)
	}
	return nil
}

// SaveAccounts bulk-inserts accounts within one transaction. Used by the
// chart seeder; all-or-nothing.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		m := mapping.ToModelAccount(account)
		batch.Queue(query,
			m.AccountID,
			m.TenantID,
			m.Code,
			m.Name,
			m.AccountType,
			m.NormalBalance,
			m.Level,
			nullableID(m.ParentAccountID),
			m.Description,
			m.AllowsPosting,
			m.IsActive,
			m.IsSystem,
			m.Balance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "failed to bulk insert accounts")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $3, name = $4, parent_account_id = $5, level = $6, description = $7,
		    allows_posting = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.AccountID,
		m.Code,
		m.Name,
		nullableID(m.ParentAccountID),
		m.Level,
		m.Description,
		m.AllowsPosting,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update account "+m.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", m.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account code %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by ids: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND is_active ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListPostableAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND is_active AND allows_posting ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) CountAccounts(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE tenant_id = $1;`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// CountPostedLines counts lines on POSTED entries referencing the account.
func (r *PgxAccountRepository) CountPostedLines(ctx context.Context, tenantID, accountID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED';
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posted lines for account %s: %w", accountID, err)
	}
	return count, nil
}

// FindAccountsByIDsForUpdate locks the account rows for the remainder of the
// caller's transaction. Missing ids surface as ErrNotFound.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to lock accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	for _, id := range accountIDs {
		if _, ok := result[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return result, nil
}

// ApplyBalanceDeltasInTx applies balance = balance + delta for each account
// within the caller's transaction. Rows must already be locked.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range deltas {
		batch.Queue(query, accountID, delta, now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "failed to apply balance deltas")
	}
	return nil
}
