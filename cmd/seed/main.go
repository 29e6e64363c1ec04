package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"interlink/internal/config"
	catalogStore "interlink/internal/repository/catalog"
	"interlink/internal/repository/docstore"
	"interlink/internal/repository/docstore/memory"
	"interlink/internal/repository/postgres"
	"interlink/internal/seed"
	"interlink/internal/service/catalog"
)

var errResetInProd = errors.New("refusing --reset in production environment")

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	app := &cli.Command{
		Name:      "seed",
		Usage:     "Load relation fixtures into the interlink catalog",
		ArgsUsage: "[fixture.yaml...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "schema-only",
				Usage: "only create collections and indexes, load nothing",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "drop every collection before seeding (refused in prod)",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProduction() && cmd.Bool("reset") {
		return errResetInProd
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	collections := catalogStore.NewCollections(cfg.CollectionPrefix)
	logger.Info("seeding",
		"environment", cfg.Environment,
		"store_driver", cfg.StoreDriver,
		"collection_prefix", cfg.CollectionPrefix,
	)

	if cfg.StoreDriver == config.StoreDriverPostgres {
		if err := prepareSchema(ctx, cfg, collections, cmd.Bool("reset"), logger); err != nil {
			return err
		}
	} else if cmd.Bool("schema-only") || cmd.Bool("reset") {
		logger.Warn("memory store has no schema, nothing to prepare")
	}

	if cmd.Bool("schema-only") {
		logger.Info("schema ready (schema-only mode)")
		return nil
	}

	if cmd.Args().Len() == 0 {
		return errors.New("no fixture files given")
	}

	var open docstore.Opener = memory.Open
	if cfg.StoreDriver == config.StoreDriverPostgres {
		open = postgres.Open(postgres.Options{
			URI:         cfg.DBURI,
			Schema:      cfg.DBName,
			Collections: collections.Specs(),
			Logger:      logger,
		})
	}
	provider := docstore.NewProvider(open)
	defer provider.Close()

	repoConfig := &catalogStore.RepositoryConfig{
		Provider:    provider,
		Collections: collections,
		Logger:      logger,
	}
	seeder := seed.NewSeeder(
		catalog.NewProjectService(catalogStore.NewProjectRepository(repoConfig), logger),
		catalog.NewRelationService(catalogStore.NewRelationRepository(repoConfig), logger),
		logger,
	)

	for _, path := range cmd.Args().Slice() {
		fixture, err := seed.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		result, err := seeder.Seed(ctx, fixture)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: project %s (%s), %d relations\n", path, result.Project.Name, result.Project.ID, len(result.Relations))
	}

	return nil
}

// prepareSchema drops (with reset) and recreates the Postgres collections.
func prepareSchema(ctx context.Context, cfg *config.Config, collections catalogStore.Collections, reset bool, logger *slog.Logger) error {
	if cfg.DBURI == "" || cfg.DBName == "" {
		return errors.New("DB_URI and DB_NAME must be set for the postgres store")
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DBURI)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	tm := postgres.NewTransactionManager(pool)
	specs := collections.Specs()

	if reset {
		if err := postgres.DropCollections(ctx, tm, cfg.DBName, specs); err != nil {
			return err
		}
		logger.Warn("collections dropped", "count", len(specs))
	}

	if err := postgres.EnsureSchema(ctx, tm, cfg.DBName, specs); err != nil {
		return err
	}
	logger.Info("schema ensured", "schema", cfg.DBName, "collections", len(specs))
	return nil
}
