package views

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/fraudsentry/internal/client/gateway"
	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

// NoTransactionsMessage is shown for an empty history.
const NoTransactionsMessage = "No transactions found."

// TransactionHistory shows the signed-in user's transfers in API order.
type TransactionHistory struct {
	base
	p  SessionProvider
	gw gateway.Gateway

	loaded bool
	txns   []models.Transaction
}

func NewTransactionHistory(p SessionProvider, gw gateway.Gateway) *TransactionHistory {
	return &TransactionHistory{p: p, gw: gw}
}

func (v *TransactionHistory) Mount(ctx context.Context) error {
	if _, err := v.requireSession(v.p); err != nil {
		return err
	}
	gen, err := v.begin()
	if err != nil {
		return err
	}

	var txns []models.Transaction
	err = v.p.Authorized(ctx, func(ctx context.Context, s models.Session) error {
		var err error
		txns, err = v.gw.FetchTransactions(ctx, s.UserID)
		return err
	})
	v.finish(gen, func() {
		v.loaded = err == nil
		if err != nil {
			v.txns = nil
			v.fail(err)
			return
		}
		v.txns = txns
	})
	return err
}

func (v *TransactionHistory) Transactions() []models.Transaction {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.txns)
}

// Empty reports a successful fetch that returned no transactions. A failed
// fetch is not empty; it has a banner.
func (v *TransactionHistory) Empty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded && len(v.txns) == 0
}
