package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors the domain account type for DB storage.
type AccountType string

// NormalBalance mirrors the domain normal balance for DB storage.
type NormalBalance string

// Account is the database representation of a chart-of-accounts node.
type Account struct {
	AccountID       string
	TenantID        string
	Code            string
	Name            string
	AccountType     AccountType
	NormalBalance   NormalBalance
	Level           int
	ParentAccountID string // Empty string maps to NULL
	Description     string
	AllowsPosting   bool
	IsActive        bool
	IsSystem        bool
	Balance         decimal.Decimal
	AuditFields
}
