package accounting_test

import (
	"testing"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/finbooks-app/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedDelta(t *testing.T) {
	testCases := []struct {
		name     string
		normal   domain.NormalBalance
		debit    int64
		credit   int64
		expected int64
	}{
		{"debit grows debit-normal", domain.DebitNormal, 100, 0, 100},
		{"credit shrinks debit-normal", domain.DebitNormal, 0, 100, -100},
		{"credit grows credit-normal", domain.CreditNormal, 0, 100, 100},
		{"debit shrinks credit-normal", domain.CreditNormal, 100, 0, -100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delta := accounting.SignedDelta(tc.normal, decimal.NewFromInt(tc.debit), decimal.NewFromInt(tc.credit))
			assert.True(t, delta.Equal(decimal.NewFromInt(tc.expected)), "got %s", delta)
		})
	}
}

func TestSignedDelta_PostVoidMirror(t *testing.T) {
	debit := decimal.NewFromFloat(123.45)
	credit := decimal.Zero

	post := accounting.SignedDelta(domain.DebitNormal, debit, credit)
	void := post.Neg()

	assert.True(t, post.Add(void).IsZero())
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalEntryLine{
		{Debit: decimal.NewFromInt(300)},
		{Credit: decimal.NewFromInt(200)},
		{Credit: decimal.NewFromInt(100)},
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)

	assert.True(t, totalDebit.Equal(decimal.NewFromInt(300)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(300)))
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(decimal.NewFromInt(100), decimal.NewFromInt(100)))
	assert.True(t, accounting.IsBalanced(decimal.NewFromFloat(100.00), decimal.NewFromFloat(99.99)))
	assert.False(t, accounting.IsBalanced(decimal.NewFromFloat(100.00), decimal.NewFromFloat(99.98)))
	assert.True(t, accounting.IsBalanced(decimal.Zero, decimal.Zero))
}

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-2026-000001", accounting.FormatEntryNumber(2026, 1))
	assert.Equal(t, "JE-2026-000042", accounting.FormatEntryNumber(2026, 42))
	assert.Equal(t, "JE-2027-123456", accounting.FormatEntryNumber(2027, 123456))
	assert.Equal(t, "JE-2026-1234567", accounting.FormatEntryNumber(2026, 1234567))
}
