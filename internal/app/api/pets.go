package api

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	petsredis "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/cache/redis"
	petsmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petsworkflows "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/workflows"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
)

// Pets holds the wired pets bounded context.
type Pets struct {
	Service petsports.Service
	Storage string
	Cached  bool
}

// BuildPets wires storage, the optional search cache and the observability
// decorator around the pets service. Postgres and Redis are optional: without
// them the service runs on the in-memory repository with no cache.
func BuildPets(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Pets, func(), error) {
	logger := instruments.Logger
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	pets := &Pets{}
	var repo petsports.Repository
	var idempotency petsports.IdempotencyStore
	db, closeDB := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if cfg.AutoMigrate {
			if err := migrations.Run(db); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		repo = petspostgres.NewRepository(db)
		idempotency = petspostgres.NewIdempotencyStore(db)
		pets.Storage = "postgres"
	} else {
		memRepo := petsmemory.NewRepository()
		petsmemory.SeedCatalog(memRepo)
		petsmemory.SeedDemoOwners(memRepo)
		repo = memRepo
		idempotency = petsmemory.NewIdempotencyStore()
		pets.Storage = "memory"
	}

	opts := []petsapp.Option{
		petsapp.WithIdempotencyStore(idempotency),
		petsapp.WithLogger(logger),
	}
	if cache, closeCache := buildSearchCache(ctx, cfg, logger); cache != nil {
		cleanups = append(cleanups, closeCache)
		opts = append(opts, petsapp.WithSearchCache(cache), petsapp.WithEventPublisher(cache))
		pets.Cached = true
	}

	core := petsapp.NewService(repo, opts...)
	pets.Service = petsobs.New(
		core,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)
	logger.Info("pets service configured", slog.String("storage", pets.Storage), slog.Bool("searchCache", pets.Cached))
	return pets, cleanup, nil
}

func buildSearchCache(ctx context.Context, cfg Config, logger *slog.Logger) (*petsredis.SearchCache, func()) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client, err := petsredis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, search cache disabled", slog.String("error", err.Error()))
		return nil, nil
	}
	return petsredis.NewSearchCache(client, cfg.SearchCacheTTL), func() { closeRedis(client, logger) }
}

func closeRedis(client *goredis.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn("failed to close redis client", slog.String("error", err.Error()))
	}
}

// BuildImporter returns the Temporal importer when the cluster is reachable,
// otherwise the in-process importer.
func BuildImporter(cfg Config, instruments *platformobservability.Instruments, service petsports.Service) (petsports.ListingImporter, func()) {
	logger := instruments.Logger
	temporalClient, err := platformtemporal.Dial(cfg.Temporal, logger, instruments.Tracer("temporal-client"))
	if err != nil {
		logger.Warn("Temporal workflows unavailable, importing inline", slog.String("error", err.Error()))
		return petsworkflows.NewInlineListingImporter(service), func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	return petsworkflows.NewTemporalListingImporter(temporalClient), temporalClient.Close
}
