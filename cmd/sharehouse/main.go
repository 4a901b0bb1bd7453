package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/okatsu/sharehouse/internal/config"
	"github.com/okatsu/sharehouse/internal/ledger"
	"github.com/okatsu/sharehouse/internal/menu"
	"github.com/okatsu/sharehouse/internal/metrics"
	"github.com/okatsu/sharehouse/internal/storage/sqlite"
	"github.com/okatsu/sharehouse/internal/vault"
	"github.com/okatsu/sharehouse/pkg/logging"
)

func main() {
	// .env is optional for local development.
	_ = godotenv.Load()

	logging.Setup()
	// Every log line from this run carries the same id, so interleaved runs
	// against the same database can be told apart.
	slog.SetDefault(slog.Default().With("run_id", uuid.New().String()))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration invalid", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			slog.Info("Metrics listener starting", "address", cfg.MetricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("Metrics listener failed", "error", err)
			}
		}()
	}

	ldg := ledger.New(store, ledger.Options{
		RetainOriginHistory: cfg.RetainOriginHistory,
		Metrics:             m,
	})

	v, err := vault.New(store, cfg.VaultKey)
	if err != nil {
		slog.Error("Failed to initialize vault", "error", err)
		os.Exit(1)
	}

	if err := menu.New(ldg, v, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		slog.Error("Menu failed", "error", err)
		os.Exit(1)
	}
}
