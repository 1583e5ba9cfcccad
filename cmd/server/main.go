package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Saarthi/internal/cli/bootstrap"
	"Saarthi/internal/config"
	"Saarthi/internal/handlers"
	"Saarthi/internal/logger"
	"Saarthi/internal/middleware"
)

func main() {
	cfg := config.NewConfig()

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = sugar.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	vault, closeVault, err := bootstrap.OpenVault(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to open vault", "error", err)
	}
	defer func() {
		if err := closeVault(); err != nil {
			sugar.Errorw("failed to close vault", "error", err)
		}
	}()

	h := handlers.NewHandler(vault, sugar, cfg)

	sugar.Infow("Starting server",
		"addr", cfg.ListenAddr,
		"profile", cfg.Profile,
		"vaultDB", cfg.VaultDBPath,
		"quota", cfg.QuotaBytes,
	)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("Server failed", "error", err)
	}
}
