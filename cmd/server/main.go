package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viyasan/FlowPoints/internal/gateway/bootstrap"
	"github.com/viyasan/FlowPoints/internal/pkg/env"
	"github.com/viyasan/FlowPoints/internal/pkg/logging"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLogger := logging.StdoutLogger

	httpPort := ":3001"
	jwtSecret := "dev_secret_change_me"
	mintDelay := time.Second
	issueTimeout := 10 * time.Second

	seedUsername := "testuser"
	seedPassword := "password123"
	seedPoints := int64(2500)

	env.TrySetFromEnv(env.EnvHttpPort, &httpPort)
	env.TrySetFromEnv(env.EnvJwtSecret, &jwtSecret)
	env.TrySetDurationFromEnv(env.EnvMintDelay, &mintDelay)
	env.TrySetDurationFromEnv(env.EnvIssueTimeout, &issueTimeout)
	env.TrySetFromEnv(env.EnvSeedUsername, &seedUsername)
	env.TrySetFromEnv(env.EnvSeedPassword, &seedPassword)
	env.TrySetInt64FromEnv(env.EnvSeedPoints, &seedPoints)

	cfg := bootstrap.ServerConfig{
		HttpPort:     httpPort,
		JwtSecret:    jwtSecret,
		MintDelay:    mintDelay,
		IssueTimeout: issueTimeout,
		SeedAccounts: []bootstrap.SeedAccount{
			{Username: seedUsername, Password: seedPassword, Points: seedPoints},
		},
	}

	app := bootstrap.NewServerApp(cfg, defaultLogger)

	if err := app.Run(mainCtx); err != nil {
		defaultLogger.Error("server stopped with error", "error", err.Error())
	}

	app.Shutdown()
}
