package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	configAPI "property_valuation/pkg/api/config"
	valuationAPI "property_valuation/pkg/api/valuation"
	"property_valuation/pkg/core/agent"
	"property_valuation/pkg/core/comparables"
	"property_valuation/pkg/core/config"
	"property_valuation/pkg/core/logger"
	"property_valuation/pkg/core/prompt"
	"property_valuation/pkg/core/store"
	"property_valuation/pkg/core/valuation"
)

func main() {
	configPath := flag.String("config", "config/valuation.yaml", "path to the YAML config")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "valuation-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.PromptsDir != "" {
		n, err := prompt.LoadFromDirectory(prompt.Get(), cfg.PromptsDir)
		if err != nil {
			log.Warn("prompt overrides not loaded, using built-ins", zap.Error(err))
		} else {
			log.Info("prompt overrides loaded", zap.Int("count", n), zap.String("dir", cfg.PromptsDir))
		}
	}

	basis, _ := cfg.Basis()
	agentMgr := agent.NewManager(cfg.Agents)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := valuationAPI.NewHandler(log)
	handler.Options = valuation.Options{RentalBasis: basis}
	handler.Criteria = cfg.Comparables
	handler.Workers = cfg.ExportWorkers
	handler.Selector = comparables.NewSelector(agentMgr.TaskProvider(agent.TaskComparableSelection), log)

	// Database is optional: without it plots come inline and results go to files.
	var resultDB store.Querier
	if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
		log.Warn("database unavailable, using file result cache", zap.Error(err))
	} else {
		defer store.Close()
		handler.Plots = store.NewPlotRepo(store.GetPool())
		resultDB = store.GetPool()
	}
	handler.Results = store.NewValuationRepo(resultDB, cfg.ResultCacheDir, log)

	mux := http.NewServeMux()
	handler.Register(mux)

	configHandler := configAPI.NewHandler(agentMgr, log)
	mux.HandleFunc("/api/config", configHandler.HandleConfig)
	mux.HandleFunc("/api/config/switch", configHandler.HandleSwitch)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("API server starting",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("llm_provider", agentMgr.GetActiveProvider()),
		zap.Strings("routes", []string{
			"POST /api/valuation/compute",
			"POST /api/valuation/report",
			"POST /api/valuation/export",
			"POST /api/comparables/select",
			"GET  /api/config",
			"POST /api/config/switch",
		}))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server stopped")
}
