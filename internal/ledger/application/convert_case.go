package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viyasan/FlowPoints/internal/ledger/domain"
	"github.com/viyasan/FlowPoints/internal/pkg/logging"
	"github.com/viyasan/FlowPoints/internal/pkg/metrics"
)

const (
	outcomeSuccess             = "success"
	outcomeBelowMinimum        = "below_minimum"
	outcomeInvalidDestination  = "invalid_destination"
	outcomeAccountNotFound     = "account_not_found"
	outcomeInsufficientBalance = "insufficient_balance"
	outcomeIssuanceFailed      = "issuance_failed"
)

type ConvertCase struct {
	ledgerStore  domain.LedgerStore
	tokenIssuer  domain.TokenIssuer
	logger       logging.Logger
	issueTimeout time.Duration
}

func NewConvertCase(
	ledgerStore domain.LedgerStore,
	tokenIssuer domain.TokenIssuer,
	logger logging.Logger,
	issueTimeout time.Duration,
) *ConvertCase {
	return &ConvertCase{
		ledgerStore:  ledgerStore,
		tokenIssuer:  tokenIssuer,
		logger:       logger,
		issueTimeout: issueTimeout,
	}
}

// Convert exchanges loyalty points for token units with an issue-then-commit
// ordering: the issuance call runs outside any ledger lock, and points are
// only debited, together with the history append, once the issuance is
// confirmed. A failed issuance leaves the ledger untouched.
func (cc *ConvertCase) Convert(ctx context.Context, request domain.ConversionRequest) (domain.ConversionResult, error) {
	result, err := cc.convert(ctx, request)
	metrics.Conversions().ObserveAttempt(outcomeOf(err))
	if err == nil {
		metrics.Conversions().ObserveCommitted(request.Points)
	}

	return result, err
}

func (cc *ConvertCase) convert(ctx context.Context, request domain.ConversionRequest) (domain.ConversionResult, error) {
	if request.Points < domain.MinConversionPoints {
		return domain.ConversionResult{}, &domain.BelowMinimumError{Msg: "minimum conversion is 100 points"}
	}

	if request.Destination == "" {
		return domain.ConversionResult{}, &domain.InvalidDestinationError{Msg: "destination address must not be empty"}
	}

	accountSnapshot, err := cc.ledgerStore.GetAccount(ctx, request.Username)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	// Advisory check only: it avoids a pointless issuance call, but the
	// authoritative check happens inside CommitConversion.
	if request.Points > accountSnapshot.PointsBalance {
		return domain.ConversionResult{}, &domain.InsufficientBalanceError{Msg: "insufficient points balance"}
	}

	tokenAmount := domain.TokensFor(request.Points)

	issueCtx := ctx
	if cc.issueTimeout > 0 {
		var cancel context.CancelFunc
		issueCtx, cancel = context.WithTimeout(ctx, cc.issueTimeout)
		defer cancel()
	}

	issueStart := time.Now()
	issuance, err := cc.tokenIssuer.Issue(issueCtx, request.Destination, tokenAmount)
	metrics.Conversions().ObserveIssuanceDuration(time.Since(issueStart))
	if err != nil {
		cc.logger.Error("token issuance failed",
			"username", request.Username,
			"destination", request.Destination,
			"error", err.Error(),
		)

		return domain.ConversionResult{}, wrapIssuanceError(err)
	}

	if issuance.Status != domain.IssuanceConfirmed {
		return domain.ConversionResult{}, &domain.IssuanceFailedError{
			Reason: "issuance not confirmed, status " + string(issuance.Status),
		}
	}

	record := domain.ConversionRecord{
		ID:                uuid.NewString(),
		Points:            request.Points,
		TokenAmount:       tokenAmount,
		Destination:       request.Destination,
		IssuanceReference: issuance.Reference,
		CreatedAt:         time.Now().UTC(),
	}

	remaining, err := cc.ledgerStore.CommitConversion(ctx, request.Username, request.Points, record)
	if err != nil {
		// Tokens were issued but the commit lost the balance race. The
		// ledger is untouched; the simulated issuance carries no real value.
		cc.logger.Warn("conversion commit rejected after issuance",
			"username", request.Username,
			"points", request.Points,
			"reference", issuance.Reference,
		)

		return domain.ConversionResult{}, err
	}

	return domain.ConversionResult{
		Record:           record,
		RemainingBalance: remaining,
	}, nil
}

func wrapIssuanceError(err error) error {
	if _, ok := err.(*domain.IssuanceFailedError); ok {
		return err
	}

	return &domain.IssuanceFailedError{Reason: err.Error()}
}

func outcomeOf(err error) string {
	switch err.(type) {
	case nil:
		return outcomeSuccess
	case *domain.BelowMinimumError:
		return outcomeBelowMinimum
	case *domain.InvalidDestinationError:
		return outcomeInvalidDestination
	case *domain.AccountNotFoundError:
		return outcomeAccountNotFound
	case *domain.InsufficientBalanceError:
		return outcomeInsufficientBalance
	case *domain.IssuanceFailedError:
		return outcomeIssuanceFailed
	default:
		return "internal_error"
	}
}
