package handlers_test

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) client(args mock.Arguments) (*domain.Client, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return m.client(m.Called(ctx, clientID))
}
func (m *MockClientService) GetClientByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	return m.client(m.Called(ctx, cpf))
}
func (m *MockClientService) ListActiveClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, operatorID string) (*domain.Client, error) {
	return m.client(m.Called(ctx, req, operatorID))
}
func (m *MockClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, operatorID string) (*domain.Client, error) {
	return m.client(m.Called(ctx, clientID, req, operatorID))
}
func (m *MockClientService) ActivateClient(ctx context.Context, clientID string, operatorID string) (*domain.Client, error) {
	return m.client(m.Called(ctx, clientID, operatorID))
}
func (m *MockClientService) DeactivateClient(ctx context.Context, clientID string, operatorID string) (*domain.Client, error) {
	return m.client(m.Called(ctx, clientID, operatorID))
}

// Ensure mock implements the interface
var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) receipt(args mock.Arguments) (*domain.OperationReceipt, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationReceipt), args.Error(1)
}

func (m *MockLedgerService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountNumber))
}
func (m *MockLedgerService) GetBalanceDetails(ctx context.Context, accountNumber string) (*domain.BalanceDetails, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceDetails), args.Error(1)
}
func (m *MockLedgerService) ListClientAccounts(ctx context.Context, clientID string) (*domain.ClientPortfolio, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientPortfolio), args.Error(1)
}
func (m *MockLedgerService) ListMovements(ctx context.Context, accountNumber string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	args := m.Called(ctx, accountNumber, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMovementsResponse), args.Error(1)
}
func (m *MockLedgerService) ProjectInterest(ctx context.Context, accountNumber string, months int) ([]domain.InterestProjection, error) {
	args := m.Called(ctx, accountNumber, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestProjection), args.Error(1)
}
func (m *MockLedgerService) ValidateOperation(ctx context.Context, accountNumber string, kind domain.OperationKind, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, kind, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) OpenChecking(ctx context.Context, clientID string, overdraftLimit *decimal.Decimal, operatorID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, clientID, overdraftLimit, operatorID))
}
func (m *MockLedgerService) OpenSavings(ctx context.Context, clientID string, operatorID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, clientID, operatorID))
}
func (m *MockLedgerService) ChangeOverdraftLimit(ctx context.Context, accountNumber string, limit decimal.Decimal, operatorID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountNumber, limit, operatorID))
}
func (m *MockLedgerService) BlockAccount(ctx context.Context, accountNumber string, reason string, operatorID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountNumber, reason, operatorID))
}
func (m *MockLedgerService) UnblockAccount(ctx context.Context, accountNumber string, operatorID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountNumber, operatorID))
}
func (m *MockLedgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, accountNumber, amount, description, operatorID))
}
func (m *MockLedgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, accountNumber, amount, description, operatorID))
}
func (m *MockLedgerService) Transfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, from, to, amount, description, operatorID))
}
func (m *MockLedgerService) Pix(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, from, to, amount, description, operatorID))
}
func (m *MockLedgerService) Wire(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, from, to, amount, description, operatorID))
}
func (m *MockLedgerService) PaperTransfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, from, to, amount, description, operatorID))
}
func (m *MockLedgerService) TransferToChecking(ctx context.Context, savingsNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, savingsNumber, amount, description, operatorID))
}
func (m *MockLedgerService) ApplyInterest(ctx context.Context, savingsNumber string, operatorID string) (*domain.OperationReceipt, error) {
	return m.receipt(m.Called(ctx, savingsNumber, operatorID))
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)
