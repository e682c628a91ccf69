package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinConversionPoints is the inclusive lower bound for a single conversion.
	MinConversionPoints int64 = 100

	// ConversionRate is the number of loyalty points exchanged per token unit.
	ConversionRate int64 = 100
)

// ConversionRecord is an immutable audit entry appended to an account's
// history once a conversion has been committed.
type ConversionRecord struct {
	ID                string          `json:"id"`
	Points            int64           `json:"points"`
	TokenAmount       decimal.Decimal `json:"flowTokens"`
	Destination       string          `json:"flowAddress"`
	IssuanceReference string          `json:"transactionId"`
	CreatedAt         time.Time       `json:"timestamp"`
}

// ConversionRequest is the ephemeral input of the conversion workflow.
type ConversionRequest struct {
	Username    string
	Points      int64
	Destination string
}

type ConversionResult struct {
	Record           ConversionRecord
	RemainingBalance int64
}

// TokensFor converts a points amount into token units at ConversionRate.
// Division is exact decimal: 150 points yield 1.5 token units.
func TokensFor(points int64) decimal.Decimal {
	return decimal.NewFromInt(points).Div(decimal.NewFromInt(ConversionRate))
}
