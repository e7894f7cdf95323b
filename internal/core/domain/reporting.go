package domain

import "github.com/shopspring/decimal"

// BalanceDetails is a read-only summary of an account's funds. Checking-only
// and savings-only fields are nil for the other kind.
type BalanceDetails struct {
	AccountNumber     string           `json:"accountNumber"`
	Kind              AccountKind      `json:"kind"`
	Balance           decimal.Decimal  `json:"balance"`
	AvailableBalance  decimal.Decimal  `json:"availableBalance"`
	Blocked           bool             `json:"blocked"`
	OverdraftLimit    *decimal.Decimal `json:"overdraftLimit,omitempty"`
	UsingOverdraft    *bool            `json:"usingOverdraft,omitempty"`
	OverdraftUsage    *decimal.Decimal `json:"overdraftUsage,omitempty"`
	OverdraftHeadroom *decimal.Decimal `json:"overdraftHeadroom,omitempty"`
	MonthlyInterest   *decimal.Decimal `json:"monthlyInterest,omitempty"`
}

// Details builds the balance summary for the account's kind.
func (a *Account) Details() BalanceDetails {
	d := BalanceDetails{
		AccountNumber:    a.AccountNumber,
		Kind:             a.Kind,
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance(),
		Blocked:          a.Blocked,
	}
	if c, err := a.Checking(); err == nil {
		limit, usage, headroom, using := c.OverdraftLimit, c.OverdraftUsage(), c.OverdraftHeadroom(), c.IsUsingOverdraft()
		d.OverdraftLimit = &limit
		d.OverdraftUsage = &usage
		d.OverdraftHeadroom = &headroom
		d.UsingOverdraft = &using
	}
	if s, err := a.Savings(); err == nil {
		interest := s.MonthlyInterest()
		d.MonthlyInterest = &interest
	}
	return d
}

// ClientPortfolio is a client together with all of their accounts.
type ClientPortfolio struct {
	Client       Client          `json:"client"`
	Accounts     []Account       `json:"accounts"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// NewClientPortfolio sums the balances of accounts.
func NewClientPortfolio(client Client, accounts []Account) ClientPortfolio {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return ClientPortfolio{Client: client, Accounts: accounts, TotalBalance: total}
}

// OperationReceipt is returned by every money-moving operation. Movement is
// nil when nothing was recorded, e.g. interest on a non-positive balance.
type OperationReceipt struct {
	Movement     *Movement `json:"movement,omitempty"`
	Account      Account   `json:"account"`
	Counterparty *Account  `json:"counterparty,omitempty"`
}
