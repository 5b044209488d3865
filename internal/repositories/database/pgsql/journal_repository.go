package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, entry_type, status, total_debit, total_credit, posted_at, posted_by, voided_at, voided_by, void_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry data.
// The account repository dependency performs balance updates within the
// post/void transactions.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	var postedBy, voidedBy, voidReason *string

	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.EntryType,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&postedBy,
		&m.VoidedAt,
		&voidedBy,
		&voidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if postedBy != nil {
		m.PostedBy = *postedBy
	}
	if voidedBy != nil {
		m.VoidedBy = *voidedBy
	}
	if voidReason != nil {
		m.VoidReason = *voidReason
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// SaveEntry persists a DRAFT entry header and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, tenant_id, entry_number, entry_date, description, entry_type, status, total_debit, total_credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.TenantID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.EntryType,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert journal entry "+m.EntryID)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, line_number, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.LineNumber,
			ml.Description,
			ml.Debit,
			ml.Credit,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError(err, "failed to insert lines for entry "+m.EntryID)
	}

	return r.Commit(ctx, tx)
}

// PostEntry applies balance deltas and flips the entry DRAFT -> POSTED in one
// transaction. The status guard on the UPDATE turns a lost race into a state
// conflict instead of a double application.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID, entryID string, deltas map[string]decimal.Decimal, postedBy string, now time.Time) error {
	return r.transitionEntry(ctx, tenantID, entryID, deltas, postedBy, now, func(tx pgx.Tx) error {
		query := `
			UPDATE journal_entries
			SET status = 'POSTED', posted_at = $3, posted_by = $4, last_updated_at = $3, last_updated_by = $4
			WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
		`
		tag, err := tx.Exec(ctx, query, tenantID, entryID, now, postedBy)
		if err != nil {
			return mapPgError(err, "failed to post entry "+entryID)
		}
		if tag.RowsAffected() == 0 {
			return r.statusConflict(ctx, tx, tenantID, entryID, "entry cannot be posted", domain.Draft)
		}
		return nil
	})
}

// VoidEntry applies the negated deltas and flips the entry POSTED -> VOIDED.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, tenantID, entryID string, deltas map[string]decimal.Decimal, voidedBy, reason string, now time.Time) error {
	return r.transitionEntry(ctx, tenantID, entryID, deltas, voidedBy, now, func(tx pgx.Tx) error {
		query := `
			UPDATE journal_entries
			SET status = 'VOIDED', voided_at = $3, voided_by = $4, void_reason = $5, last_updated_at = $3, last_updated_by = $4
			WHERE tenant_id = $1 AND entry_id = $2 AND status = 'POSTED';
		`
		tag, err := tx.Exec(ctx, query, tenantID, entryID, now, voidedBy, reason)
		if err != nil {
			return mapPgError(err, "failed to void entry "+entryID)
		}
		if tag.RowsAffected() == 0 {
			return r.statusConflict(ctx, tx, tenantID, entryID, "entry cannot be voided", domain.Posted)
		}
		return nil
	})
}

// transitionEntry runs the shared post/void transaction shape: lock the
// affected accounts, apply the deltas, run the guarded status flip.
func (r *PgxJournalRepository) transitionEntry(ctx context.Context, tenantID, entryID string, deltas map[string]decimal.Decimal, actorID string, now time.Time, flip func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		accountIDs = append(accountIDs, id)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, tenantID, accountIDs); err != nil {
		return err
	}

	if err := flip(tx); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, actorID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// statusConflict resolves why a guarded status flip matched no rows.
func (r *PgxJournalRepository) statusConflict(ctx context.Context, tx pgx.Tx, tenantID, entryID, msg string, expected domain.EntryStatus) error {
	var current string
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to resolve entry %s status: %w", entryID, err)
	}
	return apperrors.NewStateConflictError(msg, current, string(expected))
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_number, description, debit, credit
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []models.JournalEntryLine
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.LineNumber, &m.Description, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return mapping.ToDomainJournalEntryLineSlice(lines), nil
}

// ListEntries returns a filtered page of entries plus the total match count.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.ListEntriesFilter, limit, offset int) ([]domain.JournalEntry, int64, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}

	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		addCondition("status = $%d", string(filter.Status))
	}
	if filter.EntryType != "" {
		addCondition("entry_type = $%d", string(filter.EntryType))
	}
	if filter.DateFrom != nil {
		addCondition("entry_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("entry_date <= $%d", *filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		// One placeholder serves both sides of the OR.
		conditions = append(conditions, fmt.Sprintf("(entry_number ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT `+entryColumns+`
		FROM journal_entries
		WHERE `+where+`
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d;
	`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, total, nil
}

func (r *PgxJournalRepository) CountPostedEntries(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE tenant_id = $1 AND status = 'POSTED';`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posted entries: %w", err)
	}
	return count, nil
}
