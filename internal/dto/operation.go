package dto

import (
	"bytes"
	"encoding/json"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils/validators"
	"github.com/shopspring/decimal"
)

// Money accepts a JSON number or a string in plain or Brazilian notation.
// Both forms are rounded to cents.
type Money struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		d, err := validators.ParseMoney(raw)
		if err != nil {
			return err
		}
		m.Decimal = d
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// AmountOrZero returns the wrapped decimal, or zero for a nil Money.
func (m *Money) AmountOrZero() decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Decimal
}

// AmountRequest carries a single amount, used by deposit, withdraw and sweep.
type AmountRequest struct {
	Amount      *Money `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

// TransferRequest carries a destination and amount for any transfer channel.
type TransferRequest struct {
	DestinationAccountNumber string `json:"destinationAccountNumber" binding:"required,account_number"`
	Amount                   *Money `json:"amount" binding:"required"`
	Description              string `json:"description" binding:"max=255"`
}

// ValidateOperationRequest describes an operation to check without applying it.
type ValidateOperationRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=deposit withdrawal transfer pix wire paper"`
	Amount *Money `json:"amount" binding:"required"`
}

// ValidateOperationResponse reports the fee the operation would be charged.
type ValidateOperationResponse struct {
	Valid bool            `json:"valid"`
	Fee   decimal.Decimal `json:"fee"`
}

// OperationReceiptResponse is returned by every money-moving endpoint.
type OperationReceiptResponse struct {
	Movement     *MovementResponse `json:"movement,omitempty"`
	Account      AccountResponse   `json:"account"`
	Counterparty *AccountResponse  `json:"counterparty,omitempty"`
}

// ToOperationReceiptResponse converts a domain.OperationReceipt to its DTO
func ToOperationReceiptResponse(r *domain.OperationReceipt) OperationReceiptResponse {
	res := OperationReceiptResponse{
		Account: ToAccountResponse(&r.Account),
	}
	if r.Movement != nil {
		mv := ToMovementResponse(*r.Movement)
		res.Movement = &mv
	}
	if r.Counterparty != nil {
		cp := ToAccountResponse(r.Counterparty)
		res.Counterparty = &cp
	}
	return res
}
