package env

const (
	EnvHttpPort = "HTTP_PORT"

	EnvJwtSecret = "JWT_SECRET"

	EnvMintDelay    = "MINT_DELAY"
	EnvIssueTimeout = "ISSUE_TIMEOUT"

	EnvSeedUsername = "SEED_USERNAME"
	EnvSeedPassword = "SEED_PASSWORD"
	EnvSeedPoints   = "SEED_POINTS"
)
