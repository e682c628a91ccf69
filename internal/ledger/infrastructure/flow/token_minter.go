package flow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viyasan/FlowPoints/internal/ledger/domain"
	"github.com/viyasan/FlowPoints/internal/pkg/logging"
)

const referenceByteLength = 8

// TokenMinter simulates a Flow blockchain mint: it waits for a configurable
// transaction time and returns a random transaction reference. It never
// moves real value and must not be pointed at anything that does.
type TokenMinter struct {
	delay  time.Duration
	logger logging.Logger
}

func NewTokenMinter(delay time.Duration, logger logging.Logger) *TokenMinter {
	return &TokenMinter{
		delay:  delay,
		logger: logger,
	}
}

func (m *TokenMinter) Issue(ctx context.Context, destination string, amount decimal.Decimal) (domain.Issuance, error) {
	m.logger.Info("minting tokens", "destination", destination, "amount", amount.String())

	select {
	case <-time.After(m.delay):
	case <-ctx.Done():
		return domain.Issuance{}, &domain.IssuanceFailedError{Reason: ctx.Err().Error()}
	}

	reference, err := randomReference()
	if err != nil {
		return domain.Issuance{}, &domain.IssuanceFailedError{Reason: "failed to generate transaction reference"}
	}

	m.logger.Info("mint confirmed", "reference", reference)

	return domain.Issuance{
		Reference: reference,
		Status:    domain.IssuanceConfirmed,
	}, nil
}

func randomReference() (string, error) {
	buf := make([]byte, referenceByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return fmt.Sprintf("0x%s", hex.EncodeToString(buf)), nil
}
