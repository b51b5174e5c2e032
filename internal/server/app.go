// Package server wires configuration, storage, the auth service and the
// HTTP and gRPC endpoints, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/quizauth/internal/logging"
	"github.com/dmitrijs2005/quizauth/internal/server/auth"
	"github.com/dmitrijs2005/quizauth/internal/server/config"
	"github.com/dmitrijs2005/quizauth/internal/server/httpserver"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
	"github.com/dmitrijs2005/quizauth/internal/server/ratelimit"
	"github.com/dmitrijs2005/quizauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/quizauth/internal/server/services"
	"github.com/dmitrijs2005/quizauth/internal/server/session"

	gs "github.com/dmitrijs2005/quizauth/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	redis      *redis.Client
	httpServer *httpserver.HTTPServer
	grpcServer *gs.GRPCServer
}

// connectBackoff governs startup connection attempts to Postgres and Redis.
var connectBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
}

// pingWithRetry retries ping until it succeeds, the backoff gives up, or ctx ends.
func pingWithRetry(ctx context.Context, logger logging.Logger, what string, ping func(context.Context) error) error {
	return retry.Do(ctx, connectBackoff(), func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			logger.Warn(ctx, "connection attempt failed", "target", what, "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend)
	if err != nil {
		return nil, err
	}

	if c.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{config: c, logger: logger}

	rm, err := app.initStorage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost, c.HashConcurrency)
	if err != nil {
		app.Close()
		return nil, err
	}
	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenLifetime)
	mx := metrics.New()

	svc := services.NewAuthService(app.db, rm, hasher, issuer, mx)

	carrier, err := session.NewCarrier(session.Options{
		Transport:  c.SessionTransport,
		CookieName: c.CookieName,
		Production: c.Production,
		MaxAge:     c.TokenLifetime,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	limiter, err := app.initLimiter(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	handler := httpserver.NewHandler(svc, carrier, logger, mx)
	router, err := httpserver.NewRouter(handler, limiter, logger, mx, c.TrustedProxies)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.httpServer = httpserver.NewHTTPServer(c.EndpointAddrHTTP, router, logger)

	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger)
	}

	return app, nil
}

func (app *App) initStorage(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "No database DSN configured, users are kept in memory")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	if err := pingWithRetry(ctx, app.logger, "postgres", db.PingContext); err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return rm, nil
}

func (app *App) initLimiter(ctx context.Context) (ratelimit.Limiter, error) {
	c := app.config
	if c.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(c.RateLimitMax, c.RateLimitWindow), nil
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       0,
	})
	ping := func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
	if err := pingWithRetry(ctx, app.logger, "redis", ping); err != nil {
		return nil, fmt.Errorf("redis connect error: %w", err)
	}
	return ratelimit.NewRedisLimiter(app.redis, c.RateLimitMax, c.RateLimitWindow), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.grpcServer.SetServing(true)
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives, or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "transport", app.config.SessionTransport, "production", app.config.Production)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.Close()
	app.logger.Info(context.Background(), "App stopped")

	// stdout may refuse fsync; nothing useful to do about it at exit
	_ = logging.Sync(app.logger)
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
	if app.redis != nil {
		_ = app.redis.Close()
		app.redis = nil
	}
}
