package dto

import (
	"time"

	"github.com/finbooks-app/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
	AllowsPosting   bool               `json:"allowsPosting"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Code            *string `json:"code"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	Level           int                `json:"level"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if root
	Description     string             `json:"description"`
	AllowsPosting   bool               `json:"allowsPosting"`
	IsActive        bool               `json:"isActive"`
	IsSystem        bool               `json:"isSystem"`
	Balance         decimal.Decimal    `json:"balance"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	Children        []AccountResponse  `json:"children,omitempty"`
}

// SeedChartResponse reports how many reference-chart accounts were created.
type SeedChartResponse struct {
	AccountsCreated int `json:"accountsCreated"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		NormalBalance:   acc.NormalBalance,
		Level:           acc.Level,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		AllowsPosting:   acc.AllowsPosting,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
	for _, child := range acc.Children {
		resp.Children = append(resp.Children, ToAccountResponse(child))
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountTreeResponse converts root accounts (with children attached) to DTOs.
func ToAccountTreeResponse(roots []*domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(roots))
	for i, root := range roots {
		res[i] = ToAccountResponse(root)
	}
	return res
}
