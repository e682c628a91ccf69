package application

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ledgermocks "github.com/viyasan/FlowPoints/gen/mocks/ledger"
	logmocks "github.com/viyasan/FlowPoints/gen/mocks/logging"
	"github.com/viyasan/FlowPoints/internal/ledger/domain"
)

func TestConvertCase_Convert(t *testing.T) {
	t.Parallel()

	type deps struct {
		ledgerStore *ledgermocks.MockLedgerStore
		tokenIssuer *ledgermocks.MockTokenIssuer
	}

	type testCase struct {
		name    string
		request domain.ConversionRequest

		prepareFn func(t *testing.T, d *deps)

		expectedRemaining int64
		expectedTokens    string
		expectedErr       error
	}

	confirmedIssuance := domain.Issuance{
		Reference: "0xdeadbeef",
		Status:    domain.IssuanceConfirmed,
	}

	tests := []testCase{
		{
			name: "successful conversion",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", decimalMatcher("1.5")).
					Return(confirmedIssuance, nil)
				d.ledgerStore.EXPECT().CommitConversion(gomock.Any(), "testuser", int64(150), gomock.Any()).
					Return(int64(100), nil)
			},
			expectedRemaining: 100,
			expectedTokens:    "1.5",
		},
		{
			name: "minimum threshold is inclusive",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      100,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 100}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", decimalMatcher("1")).
					Return(confirmedIssuance, nil)
				d.ledgerStore.EXPECT().CommitConversion(gomock.Any(), "testuser", int64(100), gomock.Any()).
					Return(int64(0), nil)
			},
			expectedRemaining: 0,
			expectedTokens:    "1",
		},
		{
			name: "below minimum",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      99,
				Destination: "0xabcdef01",
			},
			prepareFn:   func(t *testing.T, d *deps) {},
			expectedErr: &domain.BelowMinimumError{},
		},
		{
			name: "empty destination",
			request: domain.ConversionRequest{
				Username: "testuser",
				Points:   150,
			},
			prepareFn:   func(t *testing.T, d *deps) {},
			expectedErr: &domain.InvalidDestinationError{},
		},
		{
			name: "account not found",
			request: domain.ConversionRequest{
				Username:    "ghost",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "ghost").
					Return(domain.AccountSnapshot{}, &domain.AccountNotFoundError{Msg: "account ghost not found"})
			},
			expectedErr: &domain.AccountNotFoundError{},
		},
		{
			name: "insufficient balance before issuance",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      300,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
			},
			expectedErr: &domain.InsufficientBalanceError{},
		},
		{
			name: "issuance failure leaves ledger untouched",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", gomock.Any()).
					Return(domain.Issuance{}, &domain.IssuanceFailedError{Reason: "node unreachable"})
			},
			expectedErr: &domain.IssuanceFailedError{},
		},
		{
			name: "unexpected issuer error is wrapped",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", gomock.Any()).
					Return(domain.Issuance{}, assert.AnError)
			},
			expectedErr: &domain.IssuanceFailedError{},
		},
		{
			name: "unconfirmed issuance does not commit",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", gomock.Any()).
					Return(domain.Issuance{Reference: "0xdeadbeef", Status: domain.IssuanceSubmitted}, nil)
			},
			expectedErr: &domain.IssuanceFailedError{},
		},
		{
			name: "commit loses balance race",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 250}, nil)
				d.tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", gomock.Any()).
					Return(confirmedIssuance, nil)
				d.ledgerStore.EXPECT().CommitConversion(gomock.Any(), "testuser", int64(150), gomock.Any()).
					Return(int64(0), &domain.InsufficientBalanceError{Msg: "insufficient points balance"})
			},
			expectedErr: &domain.InsufficientBalanceError{},
		},
		{
			name: "internal store error",
			request: domain.ConversionRequest{
				Username:    "testuser",
				Points:      150,
				Destination: "0xabcdef01",
			},
			prepareFn: func(t *testing.T, d *deps) {
				d.ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
					Return(domain.AccountSnapshot{}, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := &deps{
				ledgerStore: ledgermocks.NewMockLedgerStore(ctrl),
				tokenIssuer: ledgermocks.NewMockTokenIssuer(ctrl),
			}

			logger := logmocks.NewMockLogger(ctrl)
			logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
			logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
			logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

			tt.prepareFn(t, d)

			convertCase := NewConvertCase(d.ledgerStore, d.tokenIssuer, logger, time.Second)
			result, err := convertCase.Convert(context.Background(), tt.request)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedRemaining, result.RemainingBalance)
			assert.True(t, result.Record.TokenAmount.Equal(decimal.RequireFromString(tt.expectedTokens)),
				"expected %s tokens, got %s", tt.expectedTokens, result.Record.TokenAmount)
			assert.Equal(t, tt.request.Points, result.Record.Points)
			assert.Equal(t, tt.request.Destination, result.Record.Destination)
			assert.Equal(t, "0xdeadbeef", result.Record.IssuanceReference)
			assert.NotEmpty(t, result.Record.ID)
			assert.False(t, result.Record.CreatedAt.IsZero())
		})
	}
}

func TestConvertCase_RecordIDsAreUnique(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerStore := ledgermocks.NewMockLedgerStore(ctrl)
	tokenIssuer := ledgermocks.NewMockTokenIssuer(ctrl)

	logger := logmocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	ledgerStore.EXPECT().GetAccount(gomock.Any(), "testuser").
		Return(domain.AccountSnapshot{Username: "testuser", PointsBalance: 100000}, nil).AnyTimes()
	tokenIssuer.EXPECT().Issue(gomock.Any(), "0xabcdef01", gomock.Any()).
		Return(domain.Issuance{Reference: "0xdeadbeef", Status: domain.IssuanceConfirmed}, nil).AnyTimes()
	ledgerStore.EXPECT().CommitConversion(gomock.Any(), "testuser", int64(100), gomock.Any()).
		Return(int64(0), nil).AnyTimes()

	convertCase := NewConvertCase(ledgerStore, tokenIssuer, logger, time.Second)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		result, err := convertCase.Convert(context.Background(), domain.ConversionRequest{
			Username:    "testuser",
			Points:      100,
			Destination: "0xabcdef01",
		})
		require.NoError(t, err)
		assert.False(t, seen[result.Record.ID], "duplicate record id %s", result.Record.ID)
		seen[result.Record.ID] = true
	}
}

// decimalMatcher matches a decimal.Decimal argument by numeric value.
func decimalMatcher(value string) gomock.Matcher {
	return decimalEq{expected: decimal.RequireFromString(value)}
}

type decimalEq struct {
	expected decimal.Decimal
}

func (m decimalEq) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.expected)
}

func (m decimalEq) String() string {
	return "is decimal " + m.expected.String()
}
