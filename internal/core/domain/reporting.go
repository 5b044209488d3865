package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
// A balance lands in exactly one column; abnormal balances appear as absolute
// values in the opposite column.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists all non-zero postable accounts with column totals.
type TrialBalanceReport struct {
	AsOf        *time.Time        `json:"asOf,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// ReportLine is an account with its amount, used by statement sections.
type ReportLine struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReportSection groups statement lines of one account type with a subtotal.
type ReportSection struct {
	Label string          `json:"label"`
	Lines []ReportLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BalanceSheetReport partitions asset, liability, and equity accounts into
// labeled sections. Empty sections are omitted.
type BalanceSheetReport struct {
	Sections         []ReportSection `json:"sections"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// IncomeStatementReport partitions income and expense accounts and derives
// net income for the period.
type IncomeStatementReport struct {
	DateFrom      *time.Time      `json:"dateFrom,omitempty"`
	DateTo        *time.Time      `json:"dateTo,omitempty"`
	Sections      []ReportSection `json:"sections"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// GeneralLedgerRow is one posted line replayed against a running balance.
type GeneralLedgerRow struct {
	Date           time.Time       `json:"date"`
	EntryNumber    string          `json:"entryNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the posted activity of a single account, with the
// pre-window cumulative balance as the opening value.
type GeneralLedgerReport struct {
	AccountID      string             `json:"accountID"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	DateFrom       *time.Time         `json:"dateFrom,omitempty"`
	DateTo         *time.Time         `json:"dateTo,omitempty"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
	Rows           []GeneralLedgerRow `json:"rows"`
}

// DashboardSummary aggregates current balances by account type across active
// postable accounts.
type DashboardSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	AccountCount     int             `json:"accountCount"`
	PostedEntryCount int             `json:"postedEntryCount"`
}
