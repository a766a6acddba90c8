package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/transport"
)

// CashClient reads and moves the account balance. The backend enforces
// balance sufficiency; any client-side check is advisory only.
type CashClient struct {
	t *transport.Client
}

// NewCashClient wraps a trading transport.
func NewCashClient(t *transport.Client) *CashClient {
	return &CashClient{t: t}
}

// GetCashBalance fetches the current balance.
func (c *CashClient) GetCashBalance(ctx context.Context) (Cash, error) {
	var cash Cash
	if err := c.t.Get(ctx, "/cash", nil, &cash); err != nil {
		return Cash{}, err
	}
	return cash, nil
}

// Deposit adds funds. The amount travels as a query parameter per the
// backend's contract.
func (c *CashClient) Deposit(ctx context.Context, amount decimal.Decimal) (Cash, error) {
	var cash Cash
	params := transport.Params{"amount": amount.String()}
	if err := c.t.Put(ctx, "/cash/deposit", params, &cash); err != nil {
		return Cash{}, err
	}
	return cash, nil
}

// Withdraw removes funds; fails upstream when the balance is insufficient.
func (c *CashClient) Withdraw(ctx context.Context, amount decimal.Decimal) (Cash, error) {
	var cash Cash
	params := transport.Params{"amount": amount.String()}
	if err := c.t.Put(ctx, "/cash/withdraw", params, &cash); err != nil {
		return Cash{}, err
	}
	return cash, nil
}
