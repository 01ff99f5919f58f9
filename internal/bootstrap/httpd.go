package bootstrap

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/report-triage/internal/api"
	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/config"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/logger"
	"github.com/jonesrussell/report-triage/internal/predictor"
	"github.com/jonesrussell/report-triage/internal/processor"
	"github.com/jonesrussell/report-triage/internal/telemetry"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPComponents holds all components needed for the HTTP server. DB is nil
// when history persistence is disabled.
type HTTPComponents struct {
	DB      *sqlx.DB
	Handler *api.Handler
	Server  *api.Server
}

// NewHTTPComponents creates all components for the HTTP server.
func NewHTTPComponents(cfg *config.Config, log logger.Logger) (*HTTPComponents, error) {
	dbComps, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	cat := catalog.Load(cfg.Catalog.CategoriesPath, cfg.Catalog.RulesPath, log)
	eng := engine.New(cat, log)
	log.Info("Triage engine initialized",
		logger.String("version", engine.Version),
		logger.Int("categories", len(cat.Categories)),
	)

	tel := telemetry.NewProvider()

	batchProcessor := processor.NewBatchProcessor(eng, cfg.Service.Concurrency, log).
		WithTelemetry(tel)
	log.Info("Batch processor initialized", logger.Int("concurrency", cfg.Service.Concurrency))

	if cfg.Predictor.Enabled {
		client := predictor.NewClient(cfg.Predictor.URL, cfg.Predictor.Timeout)
		limiter := processor.NewRateLimiter(cfg.Service.RatePerSecond, cfg.Service.RatePerSecond, log)
		batchProcessor = batchProcessor.WithPredictor(client, limiter)
		log.Info("Predictor sidecar enabled", logger.String("url", cfg.Predictor.URL))
	}

	var db *sqlx.DB
	var history api.HistoryStore
	if dbComps != nil {
		db = dbComps.DB
		history = dbComps.HistoryRepo
		batchProcessor = batchProcessor.WithHistory(dbComps.HistoryRepo)
		pruneHistory(dbComps, cfg.Database.RetentionDays, log)
	}

	handler := api.NewHandler(
		batchProcessor,
		cat,
		history,
		tel.Handler(),
		cfg.Service.Name,
		cfg.Service.Version,
		log,
	)

	serverConfig := api.ServerConfig{
		Port:         cfg.Service.Port,
		ReadTimeout:  defaultHTTPTimeout,
		WriteTimeout: defaultHTTPTimeout,
		Debug:        cfg.Service.Debug,
	}
	server := api.NewServer(handler, serverConfig, log)

	return &HTTPComponents{
		DB:      db,
		Handler: handler,
		Server:  server,
	}, nil
}

// HTTPShutdownTimeout returns the timeout for HTTP server graceful shutdown.
func HTTPShutdownTimeout() time.Duration {
	return defaultHTTPTimeout
}

// pruneHistory removes triage history past the retention window. Runs in
// the background so a slow delete does not hold up startup.
func pruneHistory(dbComps *DatabaseComponents, retentionDays int, log logger.Logger) {
	if retentionDays <= 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		removed, err := dbComps.HistoryRepo.DeleteOlderThan(ctx, retentionDays)
		if err != nil {
			log.Warn("failed to prune triage history", logger.Error(err))
			return
		}
		if removed > 0 {
			log.Info("pruned triage history",
				logger.Int64("removed", removed),
				logger.Int("retention_days", retentionDays))
		}
	}()
}
