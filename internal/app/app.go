package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hit-analytics/internal/aggregators"
	"hit-analytics/internal/beacons"
	"hit-analytics/internal/classifiers"
	internalhttp "hit-analytics/internal/http"
	"hit-analytics/internal/sessions"
	"hit-analytics/internal/shared/configs"
	"hit-analytics/internal/shared/loggers"
	"hit-analytics/internal/stats"
	"hit-analytics/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	counterStore stores.CounterStore
	classifier   classifiers.Classifier
	flusher      aggregators.Flusher

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "hit-analytics").
		Logger()

	// Initialize durable counter storage
	counterStore, err := stores.NewBadgerCounterStore(stores.Config{
		DataDir:  config.Storage.DataDir,
		InMemory: config.Storage.InMemory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize counter store: %w", err)
	}

	// Initialize aggregation engine and its background flusher
	engineLogger := appLogger.With().Str(loggers.FieldComponent, "aggregation").Logger()
	engine := aggregators.NewEngine(aggregators.Config{
		GraceWindow:      time.Duration(config.Aggregation.GraceWindowSecs) * time.Second,
		ShardCount:       config.Aggregation.ShardCount,
		TopReferrers:     config.Aggregation.TopReferrers,
		MaxUniqueTracked: config.Aggregation.MaxUniqueTracked,
		FlushMaxAttempts: config.Aggregation.FlushMaxAttempts,
	}, counterStore, engineLogger)
	flusher := aggregators.NewFlusher(engine,
		time.Duration(config.Aggregation.FlushIntervalSecs)*time.Second, engineLogger)

	// Initialize ingestion pipeline
	classifier, err := classifiers.NewClassifier(classifiers.Config{
		AllowLocal:          config.Classifier.AllowLocal,
		AllowFrame:          config.Classifier.AllowFrame,
		IgnoreIPs:           config.Classifier.IgnoreIPs,
		DebounceWindow:      time.Duration(config.Classifier.DebounceWindowSecs) * time.Second,
		DebounceCacheSize:   config.Classifier.DebounceCacheSize,
		BlockedUASubstrings: config.Classifier.BlockedUASubstrs,
		BlockedUAPatterns:   config.Classifier.BlockedUAPatterns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}

	fingerprinter := sessions.NewFingerprinter(config.Session.Secret,
		time.Duration(config.Session.RotationPeriodHrs)*time.Hour)
	beaconService := beacons.NewBeaconService(beacons.NewParser(), classifier,
		fingerprinter, engine, beacons.SiteDefaults{})

	// Initialize read API
	statsService := stats.NewStatsService(counterStore)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(beaconService, statsService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:       config,
		appLogger:    appLogger,
		server:       server,
		counterStore: counterStore,
		classifier:   classifier,
		flusher:      flusher,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting hit-analytics service on port %d (log_level=%s, data_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.DataDir)

	// start background flusher
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.flusher.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application. Order matters: stop taking
// hits, flush what is in memory, then release the store.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop the flusher; its Stop performs the final drain flush
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.flusher.Stop()
	app.appLogger.Info().Msg("Flusher stopped")

	// 3) Release classifier and storage resources
	app.classifier.Close()
	if err := app.counterStore.Close(); err != nil {
		return fmt.Errorf("counter store close failed: %w", err)
	}
	app.appLogger.Info().Msg("Counter store closed")

	return nil
}
