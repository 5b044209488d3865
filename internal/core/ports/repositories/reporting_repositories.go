package repositories

import (
	"context"
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLine is one POSTED line joined with its entry header, as loaded for
// general-ledger replay. Running balances are computed by the service.
type LedgerLine struct {
	EntryDate   time.Time
	EntryNumber string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// AccountActivity is the summed POSTED debit/credit movement of one account
// within a date window.
type AccountActivity struct {
	AccountID     string
	Code          string
	Name          string
	AccountType   domain.AccountType
	NormalBalance domain.NormalBalance
	DebitSum      decimal.Decimal
	CreditSum     decimal.Decimal
}

// ReportingRepository provides the read models the reporting engine derives
// reports from. All queries consider POSTED entries only.
type ReportingRepository interface {
	// GetLedgerLines loads POSTED lines for one account ordered by entry date
	// ascending, optionally bounded by [from, to].
	GetLedgerLines(ctx context.Context, tenantID, accountID string, from, to *time.Time) ([]LedgerLine, error)

	// SumLedgerLinesBefore returns the account's summed POSTED debits and
	// credits strictly before the cutoff. Used for period opening balances.
	SumLedgerLinesBefore(ctx context.Context, tenantID, accountID string, before time.Time) (debitSum, creditSum decimal.Decimal, err error)

	// GetAccountActivity returns per-account POSTED movement for accounts of
	// the given types within a date window.
	GetAccountActivity(ctx context.Context, tenantID string, types []domain.AccountType, from, to *time.Time) ([]AccountActivity, error)
}
