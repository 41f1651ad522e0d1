package dto

import (
	"time"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
)

// CreateAccountRequest defines the structure for creating a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=32"`
	Name            string             `json:"name" binding:"required,max=100"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,currencycode"`
	ParentAccountID string             `json:"parentAccountID" binding:"omitempty,uuid"`
	Description     string             `json:"description" binding:"max=255"`
	IsBank          bool               `json:"isBank"`
	IsCapital       bool               `json:"isCapital"`
	IsPayrollSource bool               `json:"isPayrollSource"`
	IsIntercompany  bool               `json:"isIntercompany"`
}

// AccountResponse defines the structure for API responses containing account details.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	CurrencyCode    string             `json:"currencyCode"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	Description     string             `json:"description,omitempty"`
	IsBank          bool               `json:"isBank"`
	IsCapital       bool               `json:"isCapital"`
	IsPayrollSource bool               `json:"isPayrollSource"`
	IsIntercompany  bool               `json:"isIntercompany"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       account.AccountID,
		Code:            account.Code,
		Name:            account.Name,
		AccountType:     account.AccountType,
		CurrencyCode:    account.CurrencyCode,
		ParentAccountID: account.ParentAccountID,
		Description:     account.Description,
		IsBank:          account.IsBank,
		IsCapital:       account.IsCapital,
		IsPayrollSource: account.IsPayrollSource,
		IsIntercompany:  account.IsIntercompany,
		IsActive:        account.IsActive,
		CreatedAt:       account.CreatedAt,
		CreatedBy:       account.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
