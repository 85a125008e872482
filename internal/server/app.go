// Package server initializes and runs the MochaMagic server: the rewards
// gRPC endpoint and the storefront HTTP API, both over the shared store.
// It handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mochamagic/internal/auth"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/cart"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/ledger"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/orders"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	"github.com/dmitrijs2005/mochamagic/internal/server/config"
	"github.com/dmitrijs2005/mochamagic/internal/server/web"
	"github.com/dmitrijs2005/mochamagic/internal/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/mochamagic/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Storage
	grpc   *gs.GRPCServer
	web    *web.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	st, err := storage.Open(ctx, c.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return newApp(c, logger, st), nil
}

func newApp(c *config.Config, logger logging.Logger, st storage.Storage) *App {
	tokens := auth.NewManager([]byte(c.SecretKey), c.TokenValidityDuration)
	rec := web.NewRecorder()

	d := services.Deps{
		Users:       users.NewKVRepository(st, logger),
		Cart:        cart.NewKVRepository(st, logger),
		Ledger:      ledger.NewKVRepository(st, logger),
		Orders:      orders.NewKVRepository(st, logger),
		Tokens:      tokens,
		Notifier:    rec,
		Nav:         rec,
		Log:         logger,
		LoginByName: c.LoginByName,
	}

	rewardsAPI := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, d.Users, d.Ledger, tokens)

	authSvc := services.NewAuthService(d)
	cartSvc := services.NewCartService(d, nil)
	svc := web.Services{
		Auth:     authSvc,
		Cart:     cartSvc,
		Rewards:  services.NewRewardsService(d, authSvc),
		Checkout: services.NewCheckoutService(d, authSvc, cartSvc),
		API:      rewardsAPI,
	}

	return &App{
		config: c,
		logger: logger,
		store:  st,
		grpc:   rewardsAPI,
		web:    web.NewServer(c.EndpointAddrHTTP, logger, svc, rec),
	}
}

// Run serves both endpoints until ctx is cancelled, a shutdown signal
// arrives or one of them fails. The store is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage.Backend)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(ctx) })
	g.Go(func() error { return app.web.Run(ctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "Server stopped")
	return nil
}
