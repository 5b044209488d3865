package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks-app/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report read models.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetLedgerLines loads POSTED lines for one account, oldest first.
func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, tenantID, accountID string, from, to *time.Time) ([]portsrepo.LedgerLine, error) {
	conditions := []string{"e.tenant_id = $1", "l.account_id = $2", "e.status = 'POSTED'"}
	args := []any{tenantID, accountID}

	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("e.entry_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("e.entry_date <= $%d", len(args)))
	}

	query := `
		SELECT e.entry_date, e.entry_number, l.description, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.entry_date, e.created_at, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer rows.Close()

	var lines []portsrepo.LedgerLine
	for rows.Next() {
		var line portsrepo.LedgerLine
		if err := rows.Scan(&line.EntryDate, &line.EntryNumber, &line.Description, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return lines, nil
}

// SumLedgerLinesBefore sums POSTED debits and credits strictly before the cutoff.
func (r *PgxReportingRepository) SumLedgerLinesBefore(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED' AND e.entry_date < $3;
	`
	var debitSum, creditSum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, before).Scan(&debitSum, &creditSum); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum ledger lines: %w", err)
	}
	return debitSum, creditSum, nil
}

// GetAccountActivity returns per-account POSTED movement for accounts of the
// given types within a date window. Nil types means all types.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, tenantID string, types []domain.AccountType, from, to *time.Time) ([]portsrepo.AccountActivity, error) {
	conditions := []string{"a.tenant_id = $1", "e.status = 'POSTED'"}
	args := []any{tenantID}

	if len(types) > 0 {
		typeStrings := make([]string, len(types))
		for i, t := range types {
			typeStrings[i] = string(t)
		}
		args = append(args, typeStrings)
		conditions = append(conditions, fmt.Sprintf("a.account_type = ANY($%d)", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("e.entry_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("e.entry_date <= $%d", len(args)))
	}

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_balance,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	var activity []portsrepo.AccountActivity
	for rows.Next() {
		var a portsrepo.AccountActivity
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.AccountType, &a.NormalBalance, &a.DebitSum, &a.CreditSum); err != nil {
			return nil, fmt.Errorf("failed to scan account activity: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity: %w", err)
	}
	return activity, nil
}
