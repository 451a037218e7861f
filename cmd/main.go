package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maize_maturity/internal/config"
	"maize_maturity/internal/handlers"
	"maize_maturity/internal/logger"
	"maize_maturity/internal/model"
	"maize_maturity/internal/repository"
	"maize_maturity/internal/repository/db"
	"maize_maturity/internal/server"
	"maize_maturity/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title        Maize Maturity Prediction API
// @version      1.0.0
// @description  Classifies maize kernel maturity from RGB colour, temperature and humidity.
// @BasePath     /
func main() {
	// load configs/config.yml + env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	gin.SetMode(cfg.GinMode)

	predictor := loadModel(cfg, log)
	defer func() {
		if predictor != nil {
			if cerr := predictor.Close(); cerr != nil {
				log.Warnw("failed to release model", "err", cerr)
			}
		}
	}()

	conn := openDB(cfg.DBPath, log)
	defer func() {
		if conn == nil {
			return
		}
		if cerr := conn.Close(); cerr != nil {
			log.Warnw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(predictor, repos, log)
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// loadModel returns nil when the artifact cannot be used; the service then
// starts in degraded mode and /predict answers 503.
func loadModel(cfg *config.Config, log *logger.Logger) model.Predictor {
	p, err := model.Load(cfg.ModelPath,
		model.WithTensorNames(cfg.ModelInputName, cfg.ModelOutputName),
		model.WithONNXLibrary(cfg.ONNXLibrary),
	)
	if err != nil {
		log.Errorw("model_load_failed", "path", cfg.ModelPath, "err", err)
		return nil
	}
	log.Infow("model_loaded", "path", cfg.ModelPath)
	return p
}

// openDB returns nil when SQLite cannot be opened; requests are then not logged.
func openDB(path string, log *logger.Logger) *sql.DB {
	if path == "" {
		log.Infow("db_path not set; event log disabled")
		return nil
	}
	conn, err := db.InitDB(path)
	if err != nil {
		log.Warnw("failed to init sqlite; event log disabled", "path", path, "err", err)
		return nil
	}
	return conn
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("starting server", "addr", server.Addr(port))
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
