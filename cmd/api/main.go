package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MomchilovP/peachtree/internal/authority"
	"github.com/MomchilovP/peachtree/internal/config"
	peachHttp "github.com/MomchilovP/peachtree/internal/http"
	authHandler "github.com/MomchilovP/peachtree/internal/http/auth"
	txHandler "github.com/MomchilovP/peachtree/internal/http/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	var (
		authorityService = authority.NewService(cfg.Server.StartingBalance)
		tokens           = authority.NewTokens(cfg.Server.SecretKey, cfg.Server.TokenTTL)
	)

	var (
		authH        = authHandler.NewHandler(authorityService, tokens)
		transactionH = txHandler.NewHandler(authorityService)
	)

	router := peachHttp.New(authH, transactionH, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
