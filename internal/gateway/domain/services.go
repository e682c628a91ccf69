package domain

import (
	"context"

	authdomain "github.com/viyasan/FlowPoints/internal/auth/domain"
	ledgerdomain "github.com/viyasan/FlowPoints/internal/ledger/domain"
)

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (authdomain.Profile, string, error)
}

type ConvertService interface {
	Convert(ctx context.Context, request ledgerdomain.ConversionRequest) (ledgerdomain.ConversionResult, error)
}

type AccountInfoService interface {
	GetBalance(ctx context.Context, username string) (int64, error)
	GetHistory(ctx context.Context, username string) ([]ledgerdomain.ConversionRecord, error)
}
