package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interlink/internal/config"
	"interlink/internal/handler"
	"interlink/internal/middleware"
	catalogStore "interlink/internal/repository/catalog"
	"interlink/internal/repository/docstore"
	"interlink/internal/repository/docstore/memory"
	"interlink/internal/repository/postgres"
	"interlink/internal/service/catalog"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging, optionally teed into a rotating log file
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		out = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_driver", cfg.StoreDriver,
		"collection_prefix", cfg.CollectionPrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the document store up front so a bad DB_URI fails fast
	collections := catalogStore.NewCollections(cfg.CollectionPrefix)
	provider := docstore.NewProvider(openStore(cfg, collections, logger))
	if _, err := provider.Acquire(ctx); err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer provider.Close()

	// Create repositories
	repoConfig := &catalogStore.RepositoryConfig{
		Provider:    provider,
		Collections: collections,
		Logger:      logger,
	}
	projectRepo := catalogStore.NewProjectRepository(repoConfig)
	relationRepo := catalogStore.NewRelationRepository(repoConfig)
	connectorTypeRepo := catalogStore.NewConnectorTypeRepository(repoConfig)
	idSchemeRepo := catalogStore.NewIDSchemeRepository(repoConfig)
	cipRepo := catalogStore.NewCIPRepository(repoConfig)

	// Create services
	projectService := catalog.NewProjectService(projectRepo, logger)
	relationService := catalog.NewRelationService(relationRepo, logger)
	connectorTypeService := catalog.NewConnectorTypeService(connectorTypeRepo, relationRepo, logger)
	idSchemeService := catalog.NewIDSchemeService(idSchemeRepo, logger)
	cipService := catalog.NewCIPService(cipRepo, idSchemeRepo, logger)

	// Create handlers
	handlers := &handler.Handlers{
		Projects:       handler.NewProjectHandler(projectService, logger),
		Relations:      handler.NewRelationHandler(relationService, logger),
		ConnectorTypes: handler.NewConnectorTypeHandler(connectorTypeService, logger),
		CIPs:           handler.NewCIPHandler(cipService, logger),
		IDSchemes:      handler.NewIDSchemeHandler(idSchemeService, logger),
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handlers, middleware.RequireProject(projectService, logger))
	mux.Handle("GET /metrics", promhttp.Handler())

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	// Build middleware chain
	// Order: CORS → Recovery → Metrics → Routes
	var h http.Handler = mux
	h = metrics.Middleware(h)
	h = middleware.Recovery(logger)(h)

	// CORS - outermost so pre-flight requests never reach the routes
	h = middleware.CORS(cfg.CORSOriginList())(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("server shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStore picks the document store backend named by STORE_DRIVER.
func openStore(cfg *config.Config, collections catalogStore.Collections, logger *slog.Logger) docstore.Opener {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory document store, data is lost on restart")
		return memory.Open
	}
	return postgres.Open(postgres.Options{
		URI:         cfg.DBURI,
		Schema:      cfg.DBName,
		Collections: collections.Specs(),
		Logger:      logger,
	})
}
