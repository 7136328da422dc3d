// Command sweep runs one alert sweep and exits. It is intended to be invoked
// by an external cron job; for an in-process schedule use cmd/scheduler.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/checkbus/fleet-backend/internal/app"
	"github.com/checkbus/fleet-backend/internal/config"
)

func main() {
	windowDays := flag.Int("window-days", 0, "expiry window in days (0 = configured default)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	application, err := app.Build(ctx, logger, cfg)
	if err != nil {
		logger.Error("build application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	report, err := application.Alerts.Sweep(ctx, *windowDays)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("sweep completed",
		slog.Int("alerts", report.Total()),
		slog.Int("documents_expiring", report.DocumentsExpiring),
		slog.Int("documents_expired", report.DocumentsExpired),
		slog.Int("extinguishers", report.Extinguishers),
		slog.Int("inspections", report.Inspections),
		slog.Int("stale_incidents", report.StaleIncidents),
	)
}
