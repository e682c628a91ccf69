package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authapp "github.com/viyasan/FlowPoints/internal/auth/application"
	authdomain "github.com/viyasan/FlowPoints/internal/auth/domain"
	httpwrap "github.com/viyasan/FlowPoints/internal/gateway/infrastructure/http"
	ledgerapp "github.com/viyasan/FlowPoints/internal/ledger/application"
	"github.com/viyasan/FlowPoints/internal/ledger/infrastructure/flow"
	"github.com/viyasan/FlowPoints/internal/ledger/infrastructure/memory"
	"github.com/viyasan/FlowPoints/internal/pkg/jwt"
	"github.com/viyasan/FlowPoints/internal/pkg/logging"
)

const (
	shutdownTimeout = 5 * time.Second
)

type ServerApp struct {
	cfg    ServerConfig
	logger logging.Logger

	mu     sync.Mutex
	addr   string
	server *http.Server
}

func NewServerApp(cfg ServerConfig, logger logging.Logger) *ServerApp {
	return &ServerApp{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *ServerApp) Run(ctx context.Context) error {
	logger := a.logger
	cfg := a.cfg

	ledgerStore := memory.NewLedgerStore(logger)

	passwordHasher := authdomain.NewArgonPasswordHasher()
	if err := seedAccounts(ctx, ledgerStore, passwordHasher, cfg.SeedAccounts); err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	tokenMinter := flow.NewTokenMinter(cfg.MintDelay, logger)

	authenticator := authapp.NewAuthenticator(ledgerStore, passwordHasher, jwt.NewJWTTokenIssuer(), cfg.JwtSecret)
	convertCase := ledgerapp.NewConvertCase(ledgerStore, tokenMinter, logger, cfg.IssueTimeout)
	accountInfoCase := ledgerapp.NewAccountInfoCase(ledgerStore)

	router := gin.Default()

	authHandler := httpwrap.NewAuthHandler(authenticator)
	ledgerHandler := httpwrap.NewLedgerHandler(convertCase, accountInfoCase)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		authenticated := api.Group("/", httpwrap.NewAuthMiddleware(jwt.NewJWTTokenParser(), []byte(cfg.JwtSecret)))
		{
			authenticated.GET("/balance/:"+httpwrap.UsernameParamKey, ledgerHandler.GetBalance)
			authenticated.POST("/convert", ledgerHandler.Convert)
			authenticated.GET("/conversions/:"+httpwrap.UsernameParamKey, ledgerHandler.GetConversions)
		}
	}

	// Listen before spawning the serve goroutine so that a port ":0"
	// resolves to a concrete address by the time Run is underway.
	listener, err := net.Listen("tcp", cfg.HttpPort)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HttpPort, err)
	}

	a.mu.Lock()
	a.addr = listener.Addr().String()
	a.server = &http.Server{
		Handler: router,
	}
	a.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", a.Addr())
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("error while starting http server: %w", err)
			return
		}

		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Addr reports the address the server is bound to. Empty until Run has
// opened the listener.
func (a *ServerApp) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.addr
}

func (a *ServerApp) Shutdown() {
	a.mu.Lock()
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown failed", "error", err.Error())
	}
}

func seedAccounts(ctx context.Context, store *memory.LedgerStore, hasher authdomain.PasswordHasher, seeds []SeedAccount) error {
	for _, seed := range seeds {
		credentialHash, err := hasher.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("failed to hash credential for %s: %w", seed.Username, err)
		}

		if err := store.CreateAccount(ctx, seed.Username, credentialHash, seed.Points); err != nil {
			return err
		}
	}

	return nil
}
