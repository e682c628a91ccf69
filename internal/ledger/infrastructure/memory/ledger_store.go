package memory

import (
	"context"
	"fmt"
	"sync"

	authdomain "github.com/viyasan/FlowPoints/internal/auth/domain"
	"github.com/viyasan/FlowPoints/internal/ledger/domain"
	"github.com/viyasan/FlowPoints/internal/pkg/logging"
)

type account struct {
	// mu guards balance and history. It is the per-account critical section:
	// two conversions for the same account serialize here, conversions for
	// different accounts never contend.
	mu sync.Mutex

	username       string
	credentialHash string
	balance        int64
	history        []domain.ConversionRecord
}

// LedgerStore is the authoritative in-memory account map. State lives for
// the process lifetime only.
type LedgerStore struct {
	logger logging.Logger

	// mu guards the accounts map itself, not the account contents.
	mu       sync.RWMutex
	accounts map[string]*account
}

func NewLedgerStore(logger logging.Logger) *LedgerStore {
	return &LedgerStore{
		logger:   logger,
		accounts: make(map[string]*account),
	}
}

// CreateAccount provisions an account with a hashed credential and an
// initial balance. Used at process start for the seed set.
func (s *LedgerStore) CreateAccount(ctx context.Context, username, credentialHash string, startBalance int64) error {
	if username == "" {
		return &domain.InvalidAccountError{Msg: "username must not be empty"}
	}
	if startBalance < 0 {
		return &domain.InvalidAccountError{Msg: fmt.Sprintf("start balance must not be negative, got %d", startBalance)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[username]; exists {
		return &domain.AccountExistsError{Msg: fmt.Sprintf("account %s already exists", username)}
	}

	s.accounts[username] = &account{
		username:       username,
		credentialHash: credentialHash,
		balance:        startBalance,
	}

	return nil
}

func (s *LedgerStore) GetAccount(ctx context.Context, username string) (domain.AccountSnapshot, error) {
	acc, err := s.lookup(username)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	return domain.AccountSnapshot{
		Username:      acc.username,
		PointsBalance: acc.balance,
	}, nil
}

func (s *LedgerStore) DebitPoints(ctx context.Context, username string, amount int64) (int64, error) {
	acc, err := s.lookup(username)
	if err != nil {
		return 0, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	return acc.debit(amount)
}

func (s *LedgerStore) AppendConversion(ctx context.Context, username string, record domain.ConversionRecord) error {
	acc, err := s.lookup(username)
	if err != nil {
		return err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	acc.history = append(acc.history, record)
	return nil
}

// CommitConversion is the single commit step of the conversion workflow:
// the authoritative affordability check, the debit and the history append
// all happen under one per-account lock. A request that lost the race to a
// concurrent conversion fails with InsufficientBalanceError and the account
// is left untouched.
func (s *LedgerStore) CommitConversion(ctx context.Context, username string, points int64, record domain.ConversionRecord) (int64, error) {
	acc, err := s.lookup(username)
	if err != nil {
		return 0, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	remaining, err := acc.debit(points)
	if err != nil {
		return 0, err
	}

	acc.history = append(acc.history, record)

	s.logger.Info("conversion committed",
		"username", username,
		"points", points,
		"remaining", remaining,
		"reference", record.IssuanceReference,
	)

	return remaining, nil
}

func (s *LedgerStore) History(ctx context.Context, username string) ([]domain.ConversionRecord, error) {
	acc, err := s.lookup(username)
	if err != nil {
		return nil, err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	records := make([]domain.ConversionRecord, len(acc.history))
	copy(records, acc.history)
	return records, nil
}

// TryGetAccountAuth exposes the credential view used by the auth layer.
func (s *LedgerStore) TryGetAccountAuth(ctx context.Context, username string) (authdomain.AccountAuthInfo, bool, error) {
	acc, err := s.lookup(username)
	if err != nil {
		return authdomain.AccountAuthInfo{}, false, nil
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	return authdomain.AccountAuthInfo{
		Username:       acc.username,
		CredentialHash: acc.credentialHash,
		PointsBalance:  acc.balance,
	}, true, nil
}

func (s *LedgerStore) lookup(username string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, exists := s.accounts[username]
	if !exists {
		return nil, &domain.AccountNotFoundError{Msg: fmt.Sprintf("account %s not found", username)}
	}

	return acc, nil
}

// debit requires acc.mu to be held.
func (a *account) debit(amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit amount must not be negative, got %d", amount)
	}
	if amount > a.balance {
		return 0, &domain.InsufficientBalanceError{Msg: "insufficient points balance"}
	}

	a.balance -= amount
	return a.balance, nil
}
