package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/camden-git/personsbackend/config"
	"github.com/camden-git/personsbackend/database"
	"github.com/camden-git/personsbackend/handlers"
	"github.com/camden-git/personsbackend/health"
	"github.com/camden-git/personsbackend/metrics"
	"github.com/camden-git/personsbackend/repository"
)

var version = "dev"

// openStore builds the person repository for the configured backend.
// The returned closer releases the underlying connection pool.
func openStore(cfg config.Config) (repository.PersonRepositoryInterface, io.Closer, error) {
	if cfg.DatabaseDriver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			log.Printf("Ensuring storage directory exists: %s", dir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
			}
		}
	}

	switch cfg.StoreBackend {
	case config.StoreBackendSQL:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLPersonRepository(db), db, nil

	default:
		db, err := database.InitGormDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrateModels(db); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
		}
		return repository.NewPersonRepository(db), sqlDB, nil
	}
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	repo, store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	registry, err := metrics.NewRegistry(ctx, metrics.Config{
		ServiceName: cfg.ServiceName,
		Version:     version,
		Exporter:    cfg.MetricsExporter,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize metrics: %v", err)
	}
	requestMetrics, err := metrics.NewRequestMetrics(registry.Meter())
	if err != nil {
		log.Fatalf("FATAL: Failed to register request metrics: %v", err)
	}

	opts := handlers.RouterOptions{
		Persons:        &handlers.PersonHandler{Repo: repo},
		Health:         health.NewMemoryIndicator(cfg.FreeMemoryThreshold),
		MetricsHandler: registry.Handler(),
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.CountRequests {
		opts.RequestMetrics = requestMetrics
		log.Printf("Counting every request in %s", metrics.RequestsTotal)
	}

	log.Printf("Using store backend: %s (driver: %s)", cfg.StoreBackend, cfg.DatabaseDriver)
	log.Printf("Metrics exporter: %s", cfg.MetricsExporter)
	log.Printf("Health free memory threshold: %d", cfg.FreeMemoryThreshold)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handlers.NewRouter(opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
		log.Printf("Server listening on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}
	if err := registry.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: %v", err)
	}
}
