package domain

import "context"

type AccountsRepository interface {
	TryGetAccountAuth(ctx context.Context, username string) (AccountAuthInfo, bool, error)
}

type AccountAuthInfo struct {
	Username       string
	CredentialHash string
	PointsBalance  int64
}

// Profile is the public account view returned on a successful login.
type Profile struct {
	Username      string `json:"username"`
	PointsBalance int64  `json:"loyaltyPoints"`
}
