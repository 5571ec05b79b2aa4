package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"splitpay/internal/api"
	"splitpay/internal/config"
	"splitpay/internal/payment"
	"splitpay/internal/service"
	"splitpay/internal/store"
	"splitpay/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	// The store lives for this session only; nothing is persisted.
	st := store.NewMemoryStore()
	if cfg.SeedDemoData {
		if err := store.Seed(context.Background(), st); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("Demo data seeded")
	}

	client := payment.NewBridgeClient(cfg.Bridge.URL, cfg.Bridge.Timeout)

	handler := api.NewHandler(
		service.NewGroupService(st),
		service.NewExpenseService(st),
		service.NewSettlementService(st, client),
	)
	router := api.Router(cfg.Server.Mode, handler)

	addr := cfg.Server.Addr()
	slog.Info("Server starting", "address", addr, "bridge", cfg.Bridge.URL)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
