package bootstrap

import "time"

type SeedAccount struct {
	Username string
	Password string
	Points   int64
}

type ServerConfig struct {
	HttpPort  string
	JwtSecret string

	// MintDelay is the simulated Flow transaction time.
	MintDelay time.Duration

	// IssueTimeout bounds a single token issuance call. Zero disables the
	// timeout.
	IssueTimeout time.Duration

	SeedAccounts []SeedAccount
}
