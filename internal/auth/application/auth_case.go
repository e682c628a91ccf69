package application

import (
	"context"
	"time"

	"github.com/viyasan/FlowPoints/internal/auth/domain"
	"github.com/viyasan/FlowPoints/internal/pkg/jwt"
)

const (
	tokenTimeLimit = time.Hour
)

type Authenticator struct {
	accountsRepository domain.AccountsRepository
	passwordHasher     domain.PasswordHasher
	tokenIssuer        jwt.TokenIssuer
	secretKey          []byte
}

func NewAuthenticator(
	accountsRepository domain.AccountsRepository,
	passwordHasher domain.PasswordHasher,
	tokenIssuer jwt.TokenIssuer,
	secretKey string,
) *Authenticator {
	return &Authenticator{
		accountsRepository: accountsRepository,
		passwordHasher:     passwordHasher,
		tokenIssuer:        tokenIssuer,
		secretKey:          []byte(secretKey),
	}
}

// Authenticate verifies the credential against the stored argon2id hash and
// returns the account profile plus a signed session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (domain.Profile, string, error) {
	authInfo, found, err := a.accountsRepository.TryGetAccountAuth(ctx, username)
	if err != nil {
		return domain.Profile{}, "", err
	}

	if !found {
		return domain.Profile{}, "", &domain.CredentialsMismatchError{Msg: "username or password is incorrect"}
	}

	valid, err := a.passwordHasher.VerifyPassword(password, authInfo.CredentialHash)
	if err != nil {
		return domain.Profile{}, "", err
	}

	if !valid {
		return domain.Profile{}, "", &domain.CredentialsMismatchError{Msg: "username or password is incorrect"}
	}

	token, err := a.tokenIssuer.IssueToken(a.secretKey, authInfo.Username, tokenTimeLimit)
	if err != nil {
		return domain.Profile{}, "", err
	}

	profile := domain.Profile{
		Username:      authInfo.Username,
		PointsBalance: authInfo.PointsBalance,
	}

	return profile, token, nil
}
