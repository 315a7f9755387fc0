package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clementus360/mood-tracker/config"
	"clementus360/mood-tracker/handlers"
	"clementus360/mood-tracker/routes"
	"clementus360/mood-tracker/wellbeing"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load("")
	if err != nil {
		config.Logger.Fatal("Failed to load config: ", err)
	}
	config.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := wellbeing.Bootstrap(ctx, cfg, config.Logger)
	if err != nil {
		config.Logger.Fatal("Failed to start wellbeing service: ", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			config.Logger.Error("Failed to close resources: ", err)
		}
	}()

	go app.Service.RunSweeper(ctx, cfg.Alerts.SweepInterval)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           routes.NewRouter(handlers.New(app.Service)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Info("Server is running on ", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Error("HTTP server error: ", err)
			stop()
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Graceful shutdown failed: ", err)
	}
}
