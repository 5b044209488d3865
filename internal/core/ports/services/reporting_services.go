package services

import (
	"context"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
)

// ReportingSvcFacade derives read-only financial reports from the chart of
// accounts and posted entries.
type ReportingSvcFacade interface {
	// TrialBalance lists every active postable account with a non-zero
	// balance, split into debit/credit columns by normal balance and sign.
	TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalanceReport, error)

	// BalanceSheet partitions asset/liability/equity balances into sections.
	BalanceSheet(ctx context.Context, tenantID string) (*domain.BalanceSheetReport, error)

	// IncomeStatement partitions income/expense amounts and derives net
	// income. A supplied date window bounds amounts to posted activity
	// within the window.
	IncomeStatement(ctx context.Context, tenantID string, from, to *time.Time) (*domain.IncomeStatementReport, error)

	// GeneralLedger replays one account's posted lines into running-balance
	// rows, with the pre-window cumulative balance as the opening value.
	GeneralLedger(ctx context.Context, tenantID, accountID string, from, to *time.Time) (*domain.GeneralLedgerReport, error)

	// DashboardSummary aggregates current balances by account type.
	DashboardSummary(ctx context.Context, tenantID string) (*domain.DashboardSummary, error)
}
