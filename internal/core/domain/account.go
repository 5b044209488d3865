package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account's balance naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the conventional normal balance for an account type.
// Assets and expenses grow on the debit side, everything else on the credit side.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents a node in a tenant's chart of accounts.
// Non-posting accounts are pure aggregation headers; only leaf accounts
// with AllowsPosting may receive journal lines.
type Account struct {
	AccountID       string          `json:"accountID"`   // Primary key (UUID)
	TenantID        string          `json:"tenantID"`    // Scopes every account to one tenant
	Code            string          `json:"code"`        // Unique per tenant
	Name            string          `json:"name"`        // User-defined name
	AccountType     AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	NormalBalance   NormalBalance   `json:"normalBalance"`
	Level           int             `json:"level"`           // 1 (root) .. 4 (leaf)
	ParentAccountID string          `json:"parentAccountID"` // Empty for roots; same-tenant self reference
	Description     string          `json:"description"`
	AllowsPosting   bool            `json:"allowsPosting"`
	IsActive        bool            `json:"isActive"`
	IsSystem        bool            `json:"isSystem"` // True for seeded reference-chart accounts
	Balance         decimal.Decimal `json:"balance"`  // Signed, interpreted via NormalBalance
	AuditFields
	Children []*Account `json:"children,omitempty"` // Populated only by tree builds
}
