package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "solar_advisor/docs"
	"solar_advisor/internal/advisory"
	"solar_advisor/internal/config"
	"solar_advisor/internal/handlers"
	"solar_advisor/internal/logger"
	"solar_advisor/internal/ml"
	"solar_advisor/internal/models"
	"solar_advisor/internal/notify"
	"solar_advisor/internal/recommend"
	"solar_advisor/internal/repository"
	"solar_advisor/internal/repository/db"
	"solar_advisor/internal/server"
	"solar_advisor/internal/service"
	"solar_advisor/internal/subsidy"
)

// @title                       Solar Efficiency Advisor API
// @version                     1.0
// @description                 Predicts solar panel efficiency from site conditions and returns maintenance alerts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml (+ .env, SOLAR_* overrides)
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	// open DB
	sqlDB, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// load model artifact; the service cannot run without it
	model, err := ml.Load(cfg.Model.Path)
	if err != nil {
		log.Fatalw("failed to load model", "path", cfg.Model.Path, "err", err)
	}
	info := model.Info()
	log.Infow("model_loaded", "path", info.Path, "trees", info.TreeCount, "sha256", info.SHA256)

	subsidies, err := subsidy.Load(cfg.Subsidies.Path)
	if err != nil {
		log.Fatalw("failed to load subsidy table", "path", cfg.Subsidies.Path, "err", err)
	}

	catalog := recommend.NewCatalog(recommend.Generate(cfg.Recommend.Seed, cfg.Recommend.CatalogSize))
	log.Infow("panel_catalog_ready", "panels", catalog.Len(), "seed", cfg.Recommend.Seed)

	notifier, closeNotifier := dialNotifier(cfg.MQTT, log)
	defer closeNotifier()

	startDate, _ := time.Parse(time.DateOnly, cfg.Simulator.StartDate) // validated by config.Load

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Model:     model,
		Engine:    advisory.NewEngine(cfg.Advisory),
		Notifier:  notifier,
		Subsidies: subsidies,
		Catalog:   catalog,
		Auth: service.AuthConfig{
			SigningKey: signingKey(cfg.Auth.SigningKey, log),
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Simulation: service.SimulationConfig{
			Seed:          cfg.Simulator.Seed,
			PanelAgeYears: cfg.Simulator.PanelAgeYears,
			StartDate:     startDate,
		},
		Log: log,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.Enabled {
		log.Infow("simulator_started", "tick", cfg.Simulator.Tick, "seed", cfg.Simulator.Seed)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.HTTP.ShutdownTimeout, log)
}

// openDB initializes the SQLite database.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		path = "app.db"
	}
	return db.InitDB(path)
}

// dialNotifier connects to MQTT when a broker is configured. A failed connection
// disables publishing instead of stopping the service.
func dialNotifier(cfg config.MQTTConfig, log *logger.Logger) (service.Notifier, func()) {
	if cfg.Broker == "" {
		return nil, func() {}
	}
	pub, err := notify.Dial(notify.Config{
		Broker:      cfg.Broker,
		ClientID:    cfg.ClientID,
		Username:    cfg.Username,
		Password:    cfg.Password,
		Topic:       cfg.Topic,
		MinSeverity: models.Severity(cfg.MinSeverity),
	}, log)
	if err != nil {
		log.Errorw("mqtt_disabled", "broker", cfg.Broker, "err", err)
		return nil, func() {}
	}
	return pub, pub.Close
}

// signingKey returns the configured JWT key, or a random per-process key when none is set.
func signingKey(configured string, log *logger.Logger) []byte {
	if configured != "" {
		return []byte(configured)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalw("failed to generate signing key", "err", err)
	}
	log.Warnw("auth.signing_key not set; generated a random key, tokens will not survive restarts")
	return key
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
