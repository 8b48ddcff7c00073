// Command todobook-server starts the todobook HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/todobook/todobook/internal/limiter"
	"github.com/todobook/todobook/internal/observability"
	"github.com/todobook/todobook/internal/repository/mongodb"
	"github.com/todobook/todobook/internal/server/httpapi"
	"github.com/todobook/todobook/internal/service"
	"github.com/todobook/todobook/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// envOr returns the named environment variable or def when unset.
func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// main parses configuration, connects to MongoDB, and starts the HTTP server.
func main() {
	// Flags, with environment fallbacks for container deployments
	addr := flag.String("addr", ":"+envOr("PORT", "5000"), "listen address")
	uri := flag.String("mongodb-uri", envOr("MONGODB_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	dbName := flag.String("db", envOr("MONGODB_DB", "todobookDB"), "database name")
	jwtKey := flag.String("jwt-key", os.Getenv("ACCESS_TOKEN_SECRET"), "HS256 signing key (required)")
	tokenTTL := flag.Duration("token-ttl", token.DefaultTTL, "issued token TTL")
	limWindow := flag.Duration("limiter-window", time.Minute, "issuance rate window")
	limMax := flag.Int("limiter-max", 30, "max issuances per window")
	limBlock := flag.Duration("limiter-block", 15*time.Minute, "lockout after exceeding the window")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *jwtKey == "" {
		logger.Fatal("missing jwt signing key (--jwt-key or ACCESS_TOKEN_SECRET)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := mongodb.Connect(connectCtx, *uri, *dbName)
	cancel()
	if err != nil {
		logger.Fatal("mongodb.Connect", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("mongodb close", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := mongodb.NewUserRepo(store)
	todoRepo := mongodb.NewTodoRepo(store)

	lim := limiter.NewMongo(store.DB, *limWindow, *limMax, *limBlock)

	// Services
	tokens := token.New([]byte(*jwtKey), *tokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, lim)
	todoSvc := service.NewTodoService(todoRepo)

	// HTTP server
	metrics := observability.New()
	app := httpapi.New(authSvc, todoSvc, tokens, metrics, logger)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
