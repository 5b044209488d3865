package accounting

import (
	"fmt"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum allowed difference between total debits
// and total credits of an entry.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SignedDelta computes the normal-balance-aware effect a journal line has on
// an account's running balance. The same function is used for posting,
// voiding (negated), trial balance, and ledger replay, so post and void are
// exact mirrors by construction.
//
// DEBIT-normal accounts grow by debit-credit, CREDIT-normal by credit-debit.
func SignedDelta(normal domain.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == domain.DebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// EntryTotals sums the debit and credit sides of a set of lines.
func EntryTotals(lines []domain.JournalEntryLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether debit and credit totals agree within tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}

// FormatEntryNumber renders a sequence value as a human-readable entry
// number, e.g. JE-2026-000042. Numbers are scoped per tenant and year.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%06d", year, seq)
}
