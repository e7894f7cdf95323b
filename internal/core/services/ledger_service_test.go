package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/platform/observability"
	"github.com/SscSPs/bank_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const operator = "operator-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// tickingClock advances one second per reading so movements order deterministically.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// sequenceRandom replays values in order, repeating the last one.
type sequenceRandom struct {
	mu     sync.Mutex
	values []int
}

func (r *sequenceRandom) Intn(n int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v % n, nil
}

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	clock   *tickingClock
	clients portssvc.ClientSvcFacade
	ledger  portssvc.LedgerSvcFacade
	nextCPF int
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.clock = &tickingClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	suite.clients = services.NewClientService(suite.store, services.WithClientClock(suite.clock.Now))
	suite.ledger = services.NewLedgerService(suite.store,
		services.WithClock(suite.clock.Now),
		services.WithMetrics(observability.NewMetrics()),
		services.WithAccountNumberRetry(10, 0),
	)
}

func (suite *LedgerServiceTestSuite) newClient() *domain.Client {
	suite.nextCPF++
	client, err := suite.clients.CreateClient(suite.ctx, dto.CreateClientRequest{
		Name:  fmt.Sprintf("Client %d", suite.nextCPF),
		CPF:   fmt.Sprintf("%011d", suite.nextCPF),
		Email: fmt.Sprintf("client%d@example.com", suite.nextCPF),
	}, operator)
	suite.Require().NoError(err)
	return client
}

func (suite *LedgerServiceTestSuite) openChecking(balance string) *domain.Account {
	acc, err := suite.ledger.OpenChecking(suite.ctx, suite.newClient().ClientID, nil, operator)
	suite.Require().NoError(err)
	if b := dec(balance); b.IsPositive() {
		_, err = suite.ledger.Deposit(suite.ctx, acc.AccountNumber, b, "", operator)
		suite.Require().NoError(err)
	}
	return acc
}

func (suite *LedgerServiceTestSuite) openSavings(clientID, balance string) *domain.Account {
	acc, err := suite.ledger.OpenSavings(suite.ctx, clientID, operator)
	suite.Require().NoError(err)
	if b := dec(balance); b.IsPositive() {
		_, err = suite.ledger.Deposit(suite.ctx, acc.AccountNumber, b, "", operator)
		suite.Require().NoError(err)
	}
	return acc
}

func (suite *LedgerServiceTestSuite) balanceOf(number string) decimal.Decimal {
	acc, err := suite.ledger.GetAccountByNumber(suite.ctx, number)
	suite.Require().NoError(err)
	return acc.Balance
}

func (suite *LedgerServiceTestSuite) TestOverdraftWithdrawal() {
	client := suite.newClient()
	limit := dec("1500")
	acc, err := suite.ledger.OpenChecking(suite.ctx, client.ClientID, &limit, operator)
	suite.Require().NoError(err)
	suite.Regexp(`^\d{5}-\d$`, acc.AccountNumber)
	suite.True(acc.OverdraftLimit.Equal(limit))

	_, err = suite.ledger.Deposit(suite.ctx, acc.AccountNumber, dec("2000"), "", operator)
	suite.Require().NoError(err)

	details, err := suite.ledger.GetBalanceDetails(suite.ctx, acc.AccountNumber)
	suite.Require().NoError(err)
	suite.True(details.Balance.Equal(dec("2000")))
	suite.True(details.AvailableBalance.Equal(dec("3500")))

	receipt, err := suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("2000"), "", operator)
	suite.Require().NoError(err)
	suite.Require().NotNil(receipt.Movement)
	suite.True(receipt.Movement.Fee.Equal(dec("4.50")))
	suite.True(receipt.Movement.BalanceBefore.Equal(dec("2000")))
	suite.True(receipt.Movement.BalanceAfter.Equal(dec("-4.50")))
	suite.Equal(acc.AccountID, receipt.Movement.OriginAccountID)

	details, err = suite.ledger.GetBalanceDetails(suite.ctx, acc.AccountNumber)
	suite.Require().NoError(err)
	suite.True(details.Balance.Equal(dec("-4.50")))
	suite.Require().NotNil(details.UsingOverdraft)
	suite.True(*details.UsingOverdraft)
	suite.True(details.OverdraftUsage.Equal(dec("4.50")))
	suite.True(details.OverdraftHeadroom.Equal(dec("1495.50")))
}

func (suite *LedgerServiceTestSuite) TestApplyInterest() {
	client := suite.newClient()
	acc := suite.openSavings(client.ClientID, "5000")

	receipt, err := suite.ledger.ApplyInterest(suite.ctx, acc.AccountNumber, operator)
	suite.Require().NoError(err)
	suite.Require().NotNil(receipt.Movement)
	suite.Equal(domain.OpInterest, receipt.Movement.Kind)
	suite.True(receipt.Movement.Amount.Equal(dec("25")))
	suite.True(receipt.Account.Balance.Equal(dec("5025")))
	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("5025")))
}

func (suite *LedgerServiceTestSuite) TestApplyInterest_ZeroBalanceRecordsNothing() {
	acc := suite.openSavings(suite.newClient().ClientID, "0")

	receipt, err := suite.ledger.ApplyInterest(suite.ctx, acc.AccountNumber, operator)
	suite.Require().NoError(err)
	suite.Nil(receipt.Movement)
	suite.True(receipt.Account.Balance.IsZero())

	page, err := suite.ledger.ListMovements(suite.ctx, acc.AccountNumber, dto.ListMovementsParams{})
	suite.Require().NoError(err)
	suite.Empty(page.Movements)
}

func (suite *LedgerServiceTestSuite) TestApplyInterest_RejectsChecking() {
	acc := suite.openChecking("100")
	_, err := suite.ledger.ApplyInterest(suite.ctx, acc.AccountNumber, operator)
	suite.ErrorIs(err, domain.ErrNotASavings)
}

func (suite *LedgerServiceTestSuite) TestOpenChecking_Rejections() {
	client := suite.newClient()
	_, err := suite.ledger.OpenChecking(suite.ctx, client.ClientID, nil, operator)
	suite.Require().NoError(err)

	_, err = suite.ledger.OpenChecking(suite.ctx, client.ClientID, nil, operator)
	suite.ErrorIs(err, domain.ErrDuplicateAccountKind)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.OpenChecking(suite.ctx, "missing", nil, operator)
	suite.ErrorIs(err, domain.ErrClientNotFound)

	other := suite.newClient()
	tooHigh := dec("10000.01")
	_, err = suite.ledger.OpenChecking(suite.ctx, other.ClientID, &tooHigh, operator)
	suite.ErrorIs(err, domain.ErrLimitOutOfRange)

	_, err = suite.clients.DeactivateClient(suite.ctx, other.ClientID, operator)
	suite.Require().NoError(err)
	_, err = suite.ledger.OpenSavings(suite.ctx, other.ClientID, operator)
	suite.ErrorIs(err, domain.ErrClientInactive)
}

func (suite *LedgerServiceTestSuite) TestOpenSavings_DailyLimitAndDuplicate() {
	client := suite.newClient()
	acc, err := suite.ledger.OpenSavings(suite.ctx, client.ClientID, operator)
	suite.Require().NoError(err)
	suite.True(acc.DailyLimit.Equal(domain.SavingsDailyLimit))
	suite.True(acc.OverdraftLimit.IsZero())

	_, err = suite.ledger.OpenSavings(suite.ctx, client.ClientID, operator)
	suite.ErrorIs(err, domain.ErrDuplicateAccountKind)

	portfolio, err := suite.ledger.ListClientAccounts(suite.ctx, client.ClientID)
	suite.Require().NoError(err)
	suite.Len(portfolio.Accounts, 1)
}

func (suite *LedgerServiceTestSuite) TestBlockedWithdrawal() {
	acc := suite.openChecking("500")

	_, err := suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "fraud review", operator)
	suite.Require().NoError(err)

	_, err = suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("100"), "", operator)
	suite.ErrorIs(err, domain.ErrAccountBlocked)
	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("500")))

	_, err = suite.ledger.UnblockAccount(suite.ctx, acc.AccountNumber, operator)
	suite.Require().NoError(err)

	receipt, err := suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("100"), "", operator)
	suite.Require().NoError(err)
	suite.True(receipt.Account.Balance.Equal(dec("395.50")))
}

func (suite *LedgerServiceTestSuite) TestBlockTwice() {
	acc := suite.openChecking("0")

	blocked, err := suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.Require().NoError(err)
	suite.True(blocked.Blocked)

	_, err = suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.ErrorIs(err, domain.ErrAlreadyBlocked)

	current, err := suite.ledger.GetAccountByNumber(suite.ctx, acc.AccountNumber)
	suite.Require().NoError(err)
	suite.True(current.Blocked)
}

func (suite *LedgerServiceTestSuite) TestUnblock_Rejections() {
	acc := suite.openChecking("0")

	_, err := suite.ledger.UnblockAccount(suite.ctx, acc.AccountNumber, operator)
	suite.ErrorIs(err, domain.ErrNotBlocked)

	_, err = suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.Require().NoError(err)
	_, err = suite.clients.DeactivateClient(suite.ctx, acc.ClientID, operator)
	suite.Require().NoError(err)

	_, err = suite.ledger.UnblockAccount(suite.ctx, acc.AccountNumber, operator)
	suite.ErrorIs(err, domain.ErrClientInactive)
}

func (suite *LedgerServiceTestSuite) TestBlockedAccountAcceptsDeposits() {
	acc := suite.openChecking("0")
	_, err := suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.Require().NoError(err)

	receipt, err := suite.ledger.Deposit(suite.ctx, acc.AccountNumber, dec("10"), "", operator)
	suite.Require().NoError(err)
	suite.True(receipt.Account.Balance.Equal(dec("10")))
}

func (suite *LedgerServiceTestSuite) TestTransferToSelf() {
	acc := suite.openChecking("300")

	for _, send := range []func(context.Context, string, string, decimal.Decimal, string, string) (*domain.OperationReceipt, error){
		suite.ledger.Transfer, suite.ledger.Pix, suite.ledger.Wire, suite.ledger.PaperTransfer,
	} {
		_, err := send(suite.ctx, acc.AccountNumber, acc.AccountNumber, dec("10"), "", operator)
		suite.ErrorIs(err, domain.ErrSameAccount)
	}
	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("300")))
}

func (suite *LedgerServiceTestSuite) TestTransferConservation() {
	src := suite.openChecking("1000")
	dst := suite.openChecking("50")

	receipt, err := suite.ledger.Transfer(suite.ctx, src.AccountNumber, dst.AccountNumber, dec("200"), "rent", operator)
	suite.Require().NoError(err)
	suite.True(receipt.Movement.Fee.Equal(dec("8.50")))
	suite.Equal(src.AccountID, receipt.Movement.OriginAccountID)
	suite.Equal(dst.AccountID, receipt.Movement.DestinationAccountID)
	suite.Equal("rent", receipt.Movement.Description)
	suite.Require().NotNil(receipt.Counterparty)
	suite.True(receipt.Counterparty.Balance.Equal(dec("250")))

	before := dec("1050")
	after := suite.balanceOf(src.AccountNumber).Add(suite.balanceOf(dst.AccountNumber))
	suite.True(before.Sub(receipt.Movement.Fee).Equal(after))

	srcPage, err := suite.ledger.ListMovements(suite.ctx, src.AccountNumber, dto.ListMovementsParams{})
	suite.Require().NoError(err)
	dstPage, err := suite.ledger.ListMovements(suite.ctx, dst.AccountNumber, dto.ListMovementsParams{})
	suite.Require().NoError(err)
	suite.Equal(receipt.Movement.MovementID, srcPage.Movements[0].MovementID)
	suite.Equal(receipt.Movement.MovementID, dstPage.Movements[0].MovementID)
}

func (suite *LedgerServiceTestSuite) TestChannelFees() {
	testCases := []struct {
		name string
		send func(context.Context, string, string, decimal.Decimal, string, string) (*domain.OperationReceipt, error)
		kind domain.OperationKind
		fee  string
	}{
		{"pix", suite.ledger.Pix, domain.OpPix, "0"},
		{"wire", suite.ledger.Wire, domain.OpWire, "15.90"},
		{"paper", suite.ledger.PaperTransfer, domain.OpPaperTransfer, "12.90"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			src := suite.openChecking("100")
			dst := suite.openChecking("0")

			receipt, err := tc.send(suite.ctx, src.AccountNumber, dst.AccountNumber, dec("50"), "", operator)
			suite.Require().NoError(err)
			suite.Equal(tc.kind, receipt.Movement.Kind)
			suite.True(receipt.Movement.Fee.Equal(dec(tc.fee)))
			suite.True(suite.balanceOf(src.AccountNumber).Equal(dec("50").Sub(dec(tc.fee))))
			suite.True(suite.balanceOf(dst.AccountNumber).Equal(dec("50")))
		})
	}
}

func (suite *LedgerServiceTestSuite) TestSavingsChannelFees() {
	testCases := []struct {
		name string
		send func(context.Context, string, string, decimal.Decimal, string, string) (*domain.OperationReceipt, error)
		kind domain.OperationKind
		fee  string
	}{
		{"pix", suite.ledger.Pix, domain.OpPix, "0"},
		{"wire", suite.ledger.Wire, domain.OpWire, "10.90"},
		{"paper transfer", suite.ledger.PaperTransfer, domain.OpPaperTransfer, "8.90"},
		{"transfer", suite.ledger.Transfer, domain.OpTransfer, "1.00"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			sv := suite.openSavings(suite.newClient().ClientID, "100")
			dst := suite.openChecking("0")

			receipt, err := tc.send(suite.ctx, sv.AccountNumber, dst.AccountNumber, dec("50"), "", operator)
			suite.Require().NoError(err)
			suite.Equal(tc.kind, receipt.Movement.Kind)
			suite.True(receipt.Movement.Fee.Equal(dec(tc.fee)), "fee %s", receipt.Movement.Fee)
			suite.True(suite.balanceOf(sv.AccountNumber).Equal(dec("50").Sub(dec(tc.fee))))
			suite.True(suite.balanceOf(dst.AccountNumber).Equal(dec("50")))
		})
	}
}

func (suite *LedgerServiceTestSuite) TestSubCentAmountsAreRejected() {
	acc := suite.openChecking("100")
	dst := suite.openChecking("0")
	sv := suite.openSavings(suite.newClient().ClientID, "100")

	_, err := suite.ledger.Deposit(suite.ctx, acc.AccountNumber, dec("0.004"), "", operator)
	suite.ErrorIs(err, domain.ErrInvalidAmount)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("10.005"), "", operator)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = suite.ledger.Pix(suite.ctx, acc.AccountNumber, dst.AccountNumber, dec("10.005"), "", operator)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = suite.ledger.TransferToChecking(suite.ctx, sv.AccountNumber, dec("0.001"), "", operator)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = suite.ledger.ValidateOperation(suite.ctx, acc.AccountNumber, domain.OpWithdrawal, dec("10.005"))
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("100")))
	suite.True(suite.balanceOf(dst.AccountNumber).IsZero())
	suite.True(suite.balanceOf(sv.AccountNumber).Equal(dec("100")))

	page, err := suite.ledger.ListMovements(suite.ctx, acc.AccountNumber, dto.ListMovementsParams{})
	suite.Require().NoError(err)
	suite.Len(page.Movements, 1, "only the opening deposit is recorded")
}

func (suite *LedgerServiceTestSuite) TestTransferToChecking() {
	client := suite.newClient()
	sv := suite.openSavings(client.ClientID, "300")

	_, err := suite.ledger.TransferToChecking(suite.ctx, sv.AccountNumber, dec("100"), "", operator)
	suite.ErrorIs(err, domain.ErrNoCheckingAccount)

	checking, err := suite.ledger.OpenChecking(suite.ctx, client.ClientID, nil, operator)
	suite.Require().NoError(err)

	receipt, err := suite.ledger.TransferToChecking(suite.ctx, sv.AccountNumber, dec("100"), "", operator)
	suite.Require().NoError(err)
	suite.True(receipt.Movement.Fee.IsZero())
	suite.Equal(checking.AccountID, receipt.Counterparty.AccountID)
	suite.True(suite.balanceOf(sv.AccountNumber).Equal(dec("200")))
	suite.True(suite.balanceOf(checking.AccountNumber).Equal(dec("100")))

	_, err = suite.ledger.TransferToChecking(suite.ctx, checking.AccountNumber, dec("1"), "", operator)
	suite.ErrorIs(err, domain.ErrNotASavings)
}

func (suite *LedgerServiceTestSuite) TestDepositLimits() {
	acc := suite.openChecking("0")

	_, err := suite.ledger.Deposit(suite.ctx, acc.AccountNumber, dec("0"), "", operator)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = suite.ledger.Deposit(suite.ctx, acc.AccountNumber, dec("50000.01"), "", operator)
	suite.ErrorIs(err, domain.ErrAmountTooLarge)

	_, err = suite.ledger.Deposit(suite.ctx, "99999-9", dec("1"), "", operator)
	suite.ErrorIs(err, domain.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_DailyLimitAndFunds() {
	acc := suite.openChecking("6000")

	_, err := suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("5000.01"), "", operator)
	suite.ErrorIs(err, domain.ErrDailyLimitExceeded)

	client := suite.newClient()
	sv := suite.openSavings(client.ClientID, "100")
	_, err = suite.ledger.Withdraw(suite.ctx, sv.AccountNumber, dec("100.01"), "", operator)
	suite.ErrorIs(err, domain.ErrInsufficientFunds)

	receipt, err := suite.ledger.Withdraw(suite.ctx, sv.AccountNumber, dec("100"), "", operator)
	suite.Require().NoError(err)
	suite.True(receipt.Movement.Fee.IsZero())
	suite.True(receipt.Account.Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestChangeOverdraftLimit() {
	acc := suite.openChecking("0")
	_, err := suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("300"), "", operator)
	suite.Require().NoError(err)

	_, err = suite.ledger.ChangeOverdraftLimit(suite.ctx, acc.AccountNumber, dec("200"), operator)
	suite.ErrorIs(err, domain.ErrLimitBelowUsage)

	_, err = suite.ledger.ChangeOverdraftLimit(suite.ctx, acc.AccountNumber, dec("10001"), operator)
	suite.ErrorIs(err, domain.ErrLimitOutOfRange)

	_, err = suite.ledger.ChangeOverdraftLimit(suite.ctx, acc.AccountNumber, dec("1000.005"), operator)
	suite.ErrorIs(err, domain.ErrLimitOutOfRange)

	updated, err := suite.ledger.ChangeOverdraftLimit(suite.ctx, acc.AccountNumber, dec("2000"), operator)
	suite.Require().NoError(err)
	suite.True(updated.OverdraftLimit.Equal(dec("2000")))

	_, err = suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.Require().NoError(err)
	_, err = suite.ledger.ChangeOverdraftLimit(suite.ctx, acc.AccountNumber, dec("1000"), operator)
	suite.ErrorIs(err, domain.ErrAccountBlocked)

	sv := suite.openSavings(suite.newClient().ClientID, "0")
	_, err = suite.ledger.ChangeOverdraftLimit(suite.ctx, sv.AccountNumber, dec("100"), operator)
	suite.ErrorIs(err, domain.ErrNotAChecking)
}

func (suite *LedgerServiceTestSuite) TestValidateOperation() {
	acc := suite.openChecking("100")
	sv := suite.openSavings(suite.newClient().ClientID, "100")

	testCases := []struct {
		name    string
		number  string
		kind    domain.OperationKind
		amount  string
		fee     string
		wantErr error
	}{
		{"withdrawal fee", acc.AccountNumber, domain.OpWithdrawal, "50", "4.50", nil},
		{"wire beyond overdraft", acc.AccountNumber, domain.OpWire, "590", "", domain.ErrInsufficientFunds},
		{"wire up to overdraft", acc.AccountNumber, domain.OpWire, "584.10", "15.90", nil},
		{"deposit is free", acc.AccountNumber, domain.OpDeposit, "100", "0", nil},
		{"deposit ceiling", acc.AccountNumber, domain.OpDeposit, "50001", "", domain.ErrAmountTooLarge},
		{"zero amount", acc.AccountNumber, domain.OpTransfer, "0", "", domain.ErrInvalidAmount},
		{"savings pix is free", sv.AccountNumber, domain.OpPix, "10", "0", nil},
		{"savings wire fee", sv.AccountNumber, domain.OpWire, "10", "10.90", nil},
		{"sub-cent amount", acc.AccountNumber, domain.OpDeposit, "0.004", "", domain.ErrInvalidAmount},
		{"savings transfer fee", sv.AccountNumber, domain.OpTransfer, "10", "1.00", nil},
		{"interest is not validated", acc.AccountNumber, domain.OpInterest, "1", "", domain.ErrUnknownOperation},
		{"missing account", "12345-6", domain.OpDeposit, "1", "", domain.ErrAccountNotFound},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			fee, err := suite.ledger.ValidateOperation(suite.ctx, tc.number, tc.kind, dec(tc.amount))
			if tc.wantErr != nil {
				suite.ErrorIs(err, tc.wantErr)
				return
			}
			suite.Require().NoError(err)
			suite.True(fee.Equal(dec(tc.fee)), "fee %s", fee)
		})
	}

	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("100")))
}

func (suite *LedgerServiceTestSuite) TestValidateOperation_BlockedBeforeFunds() {
	acc := suite.openChecking("0")
	_, err := suite.ledger.BlockAccount(suite.ctx, acc.AccountNumber, "", operator)
	suite.Require().NoError(err)

	_, err = suite.ledger.ValidateOperation(suite.ctx, acc.AccountNumber, domain.OpWithdrawal, dec("99999"))
	suite.ErrorIs(err, domain.ErrAccountBlocked)
}

func (suite *LedgerServiceTestSuite) TestListMovements_Pagination() {
	acc := suite.openChecking("0")
	for i := 1; i <= 5; i++ {
		_, err := suite.ledger.Deposit(suite.ctx, acc.AccountNumber, decimal.NewFromInt(int64(i)), "", operator)
		suite.Require().NoError(err)
	}

	var amounts []string
	params := dto.ListMovementsParams{Limit: 2}
	for pages := 0; ; pages++ {
		suite.Require().Less(pages, 5)
		page, err := suite.ledger.ListMovements(suite.ctx, acc.AccountNumber, params)
		suite.Require().NoError(err)
		for _, mv := range page.Movements {
			amounts = append(amounts, mv.Amount.String())
		}
		if page.NextToken == nil {
			break
		}
		params.NextToken = *page.NextToken
	}
	suite.Equal([]string{"5", "4", "3", "2", "1"}, amounts)

	_, err := suite.ledger.ListMovements(suite.ctx, acc.AccountNumber, dto.ListMovementsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestProjectInterest() {
	sv := suite.openSavings(suite.newClient().ClientID, "1000")

	months, err := suite.ledger.ProjectInterest(suite.ctx, sv.AccountNumber, 3)
	suite.Require().NoError(err)
	suite.Require().Len(months, 3)
	suite.True(months[0].Interest.Equal(dec("5")))
	suite.True(months[1].BalanceAfter.Equal(dec("1010.03")))
	suite.True(suite.balanceOf(sv.AccountNumber).Equal(dec("1000")))

	_, err = suite.ledger.ProjectInterest(suite.ctx, sv.AccountNumber, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListClientAccounts() {
	client := suite.newClient()
	_, err := suite.ledger.OpenChecking(suite.ctx, client.ClientID, nil, operator)
	suite.Require().NoError(err)
	suite.openSavings(client.ClientID, "250.25")

	portfolio, err := suite.ledger.ListClientAccounts(suite.ctx, client.ClientID)
	suite.Require().NoError(err)
	suite.Len(portfolio.Accounts, 2)
	suite.True(portfolio.TotalBalance.Equal(dec("250.25")))

	_, err = suite.ledger.ListClientAccounts(suite.ctx, "missing")
	suite.ErrorIs(err, domain.ErrClientNotFound)
}

func (suite *LedgerServiceTestSuite) TestAccountNumberCollisionRetries() {
	random := &sequenceRandom{values: []int{0, 0, 0, 0, 1, 1}}
	ledger := services.NewLedgerService(suite.store,
		services.WithRandomSource(random),
		services.WithAccountNumberRetry(5, 0),
	)

	first, err := ledger.OpenChecking(suite.ctx, suite.newClient().ClientID, nil, operator)
	suite.Require().NoError(err)
	suite.Equal("10000-0", first.AccountNumber)

	second, err := ledger.OpenChecking(suite.ctx, suite.newClient().ClientID, nil, operator)
	suite.Require().NoError(err)
	suite.Equal("10001-1", second.AccountNumber)
}

func (suite *LedgerServiceTestSuite) TestAccountNumberExhaustion() {
	ledger := services.NewLedgerService(suite.store,
		services.WithRandomSource(&sequenceRandom{values: []int{0}}),
		services.WithAccountNumberRetry(3, 0),
	)

	_, err := ledger.OpenChecking(suite.ctx, suite.newClient().ClientID, nil, operator)
	suite.Require().NoError(err)

	loser := suite.newClient()
	_, err = ledger.OpenChecking(suite.ctx, loser.ClientID, nil, operator)
	suite.ErrorIs(err, domain.ErrAccountNumberExhausted)
	suite.ErrorIs(err, apperrors.ErrConflict)

	portfolio, err := ledger.ListClientAccounts(suite.ctx, loser.ClientID)
	suite.Require().NoError(err)
	suite.Empty(portfolio.Accounts)
}

// failingStore fails UpdateAccount for one account inside transactions.
type failingStore struct {
	*memory.Store
	failFor string
}

func (f *failingStore) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return f.Store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.RepositoryProvider) error {
		return fn(ctx, failingTx{RepositoryProvider: tx, failFor: f.failFor})
	})
}

type failingTx struct {
	portsrepo.RepositoryProvider
	failFor string
}

func (t failingTx) Accounts() portsrepo.AccountRepositoryFacade {
	return failingAccounts{AccountRepositoryFacade: t.RepositoryProvider.Accounts(), failFor: t.failFor}
}

type failingAccounts struct {
	portsrepo.AccountRepositoryFacade
	failFor string
}

func (a failingAccounts) UpdateAccount(ctx context.Context, account domain.Account) error {
	if account.AccountID == a.failFor {
		return errors.New("write failed")
	}
	return a.AccountRepositoryFacade.UpdateAccount(ctx, account)
}

func (suite *LedgerServiceTestSuite) TestTransferRollsBackOnDestinationFailure() {
	src := suite.openChecking("500")
	dst := suite.openChecking("0")

	ledger := services.NewLedgerService(&failingStore{Store: suite.store, failFor: dst.AccountID})
	_, err := ledger.Pix(suite.ctx, src.AccountNumber, dst.AccountNumber, dec("100"), "", operator)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)

	suite.True(suite.balanceOf(src.AccountNumber).Equal(dec("500")))
	suite.True(suite.balanceOf(dst.AccountNumber).IsZero())

	page, err := suite.ledger.ListMovements(suite.ctx, src.AccountNumber, dto.ListMovementsParams{})
	suite.Require().NoError(err)
	suite.Len(page.Movements, 1) // the opening deposit only
}

func (suite *LedgerServiceTestSuite) TestConcurrentWithdrawals() {
	acc := suite.openChecking("1000")

	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			_, err := suite.ledger.Withdraw(suite.ctx, acc.AccountNumber, dec("10"), "", operator)
			return err
		})
	}
	suite.Require().NoError(g.Wait())

	// 50 * (10 + 4.50)
	suite.True(suite.balanceOf(acc.AccountNumber).Equal(dec("275")))
}

func (suite *LedgerServiceTestSuite) TestConcurrentOpposingTransfers() {
	a := suite.openChecking("2000")
	b := suite.openChecking("2000")

	var g errgroup.Group
	for i := range 40 {
		from, to := a.AccountNumber, b.AccountNumber
		if i%2 == 1 {
			from, to = to, from
		}
		g.Go(func() error {
			_, err := suite.ledger.Transfer(suite.ctx, from, to, dec("10"), "", operator)
			return err
		})
	}
	suite.Require().NoError(g.Wait())

	total := suite.balanceOf(a.AccountNumber).Add(suite.balanceOf(b.AccountNumber))
	suite.True(total.Equal(dec("4000").Sub(dec("8.50").Mul(decimal.NewFromInt(40)))), "total %s", total)
}

func (suite *LedgerServiceTestSuite) TestConcurrentOpenSavingsYieldsOneAccount() {
	client := suite.newClient()

	var g errgroup.Group
	var mu sync.Mutex
	opened := 0
	for range 10 {
		g.Go(func() error {
			_, err := suite.ledger.OpenSavings(suite.ctx, client.ClientID, operator)
			if errors.Is(err, domain.ErrDuplicateAccountKind) {
				return nil
			}
			if err == nil {
				mu.Lock()
				opened++
				mu.Unlock()
			}
			return err
		})
	}
	suite.Require().NoError(g.Wait())
	suite.Equal(1, opened)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
