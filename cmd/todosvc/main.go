package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaakkopy/todo-backend/internal/app"
	"github.com/jaakkopy/todo-backend/internal/auth"
	"github.com/jaakkopy/todo-backend/internal/observability"
	"github.com/jaakkopy/todo-backend/internal/platform/cache"
	"github.com/jaakkopy/todo-backend/internal/platform/db"
	"github.com/jaakkopy/todo-backend/internal/todo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Setup(ctx, pool); err != nil {
		logger.Error("setup schema", slog.Any("error", err))
		os.Exit(1)
	}

	var throttle *auth.SignInThrottle
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		throttle = auth.NewSignInThrottle(redisClient, cfg.SignInMaxFailures, cfg.SignInLockoutWindow)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, issuer, throttle)
	authHandler := auth.NewHandler(logger, authService)

	todoRepo := todo.NewRepository(pool)
	todoService := todo.NewService(todoRepo)
	todoHandler := todo.NewHandler(logger, todoService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		AuthHandler: authHandler,
		TodoHandler: todoHandler,
		Gate:        auth.Middleware(issuer),
		Metrics:     metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
