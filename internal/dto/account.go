package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenCheckingRequest defines the data needed to open a checking account.
type OpenCheckingRequest struct {
	ClientID       string `json:"clientID" binding:"required,uuid"`
	OverdraftLimit *Money `json:"overdraftLimit"` // Optional, defaults to 500
}

// OpenSavingsRequest defines the data needed to open a savings account.
type OpenSavingsRequest struct {
	ClientID string `json:"clientID" binding:"required,uuid"`
}

// ChangeOverdraftLimitRequest carries the new overdraft limit.
type ChangeOverdraftLimitRequest struct {
	OverdraftLimit *Money `json:"overdraftLimit" binding:"required"`
}

// BlockAccountRequest carries the optional reason for a block.
type BlockAccountRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	AccountNumber  string             `json:"accountNumber"`
	ClientID       string             `json:"clientID"`
	Kind           domain.AccountKind `json:"kind"`
	Balance        decimal.Decimal    `json:"balance"`
	OverdraftLimit decimal.Decimal    `json:"overdraftLimit"`
	DailyLimit     decimal.Decimal    `json:"dailyLimit"`
	Blocked        bool               `json:"blocked"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		AccountNumber:  acc.AccountNumber,
		ClientID:       acc.ClientID,
		Kind:           acc.Kind,
		Balance:        acc.Balance,
		OverdraftLimit: acc.OverdraftLimit,
		DailyLimit:     acc.DailyLimit,
		Blocked:        acc.Blocked,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// BlockAccountResponse echoes the blocked account and the recorded reason.
type BlockAccountResponse struct {
	Account AccountResponse `json:"account"`
	Reason  string          `json:"reason,omitempty"`
}

// ClientAccountsResponse lists a client's accounts with their combined balance.
type ClientAccountsResponse struct {
	Client       ClientResponse    `json:"client"`
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
}

// ToClientAccountsResponse converts a domain.ClientPortfolio to its DTO
func ToClientAccountsResponse(p *domain.ClientPortfolio) ClientAccountsResponse {
	return ClientAccountsResponse{
		Client:       ToClientResponse(&p.Client),
		Accounts:     ToListAccountResponse(p.Accounts),
		TotalBalance: p.TotalBalance,
	}
}

// InterestProjectionParams defines query parameters for an interest projection.
type InterestProjectionParams struct {
	Months int `form:"months,default=12" binding:"min=1,max=600"`
}

// InterestProjectionResponse lists projected months.
type InterestProjectionResponse struct {
	AccountNumber string                      `json:"accountNumber"`
	Months        []domain.InterestProjection `json:"months"`
}
