package application

import (
	"context"

	"github.com/viyasan/FlowPoints/internal/ledger/domain"
)

// AccountInfoCase serves balance and history reads. All reads go through the
// ledger store; there is no other source of balance truth.
type AccountInfoCase struct {
	ledgerStore domain.LedgerStore
}

func NewAccountInfoCase(ledgerStore domain.LedgerStore) *AccountInfoCase {
	return &AccountInfoCase{
		ledgerStore: ledgerStore,
	}
}

func (ac *AccountInfoCase) GetBalance(ctx context.Context, username string) (int64, error) {
	accountSnapshot, err := ac.ledgerStore.GetAccount(ctx, username)
	if err != nil {
		return 0, err
	}

	return accountSnapshot.PointsBalance, nil
}

func (ac *AccountInfoCase) GetHistory(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	return ac.ledgerStore.History(ctx, username)
}
