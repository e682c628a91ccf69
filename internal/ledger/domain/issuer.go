package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type IssuanceStatus string

const (
	// IssuanceConfirmed means the issuance is final on the token backend.
	IssuanceConfirmed IssuanceStatus = "confirmed"

	// IssuanceSubmitted means the transaction was accepted but not yet
	// confirmed. The workflow treats it as a failure and keeps the ledger
	// untouched.
	IssuanceSubmitted IssuanceStatus = "submitted"
)

type Issuance struct {
	Reference string
	Status    IssuanceStatus
}

// TokenIssuer requests that token units be issued to a destination address.
// Calls may be slow and must be awaited without holding any ledger lock.
type TokenIssuer interface {
	Issue(ctx context.Context, destination string, amount decimal.Decimal) (Issuance, error)
}
