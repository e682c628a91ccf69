package domain

import "context"

// AccountSnapshot is a read-only view of an account at some point in time.
type AccountSnapshot struct {
	Username      string
	PointsBalance int64
}

// LedgerStore is the authoritative owner of account balances and conversion
// history. Balances never go negative and history is append-only.
type LedgerStore interface {
	GetAccount(ctx context.Context, username string) (AccountSnapshot, error)

	// DebitPoints atomically subtracts amount from the account balance and
	// returns the new balance. Fails with InsufficientBalanceError if the
	// balance does not cover amount.
	DebitPoints(ctx context.Context, username string, amount int64) (int64, error)

	// AppendConversion appends record to the account history, preserving
	// insertion order. Existing records are never mutated or removed.
	AppendConversion(ctx context.Context, username string, record ConversionRecord) error

	// CommitConversion performs the affordability check, the debit and the
	// history append as one critical section per account. Either both
	// mutations happen or neither does.
	CommitConversion(ctx context.Context, username string, points int64, record ConversionRecord) (int64, error)

	History(ctx context.Context, username string) ([]ConversionRecord, error)
}
