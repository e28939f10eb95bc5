package app

import (
	"context"
	"fmt"
	"time"

	"agrotoken/internal/repository"
	"agrotoken/internal/service"
	"agrotoken/pkg/config"
	"agrotoken/pkg/postgres"
	"agrotoken/pkg/sqlite"

	"go.uber.org/zap"
)

// Services is the wired application graph shared by the API server and the seeder.
type Services struct {
	Store     repository.KVStore
	Converter *service.Converter
	Registry  *service.Registry
	Tokenizer *service.TokenizationService
	Documents *service.DocumentService
}

// OpenStore opens the key-value backend named by cfg.Storage.Driver.
// The returned close function releases it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, tokens are lost on restart")
		store := repository.NewMemoryStore()
		return store, func() {}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewSQLiteStore(db, logger)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close sqlite store", zap.Error(err))
			}
		}, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresStore(pool, logger), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// LedgerLatency turns the configured delays into a simulated-latency table.
func LedgerLatency(cfg config.LedgerConfig) service.FixedLatency {
	return service.FixedLatency{
		service.OpIssue:     cfg.IssueDelay,
		service.OpPurchase:  cfg.PurchaseDelay,
		service.OpTransfer:  cfg.TransferDelay,
		service.OpAssociate: cfg.AssociateDelay,
		service.OpRateFetch: cfg.RateFetchDelay,
	}
}

func NewServices(cfg *config.Config, store repository.KVStore, latency service.Latency, logger *zap.Logger) (*Services, error) {
	ids, err := service.NewSnowflakeIDs(cfg.Ledger.NodeID)
	if err != nil {
		return nil, err
	}

	clock := service.Clock(time.Now)
	source := service.RateSource(service.FluctuatingSource{})
	if !cfg.Converter.Fluctuate {
		source = service.StaticSource{}
	}

	converter := service.NewConverter(logger.Named("converter"),
		service.WithRateSource(source),
		service.WithCacheWindow(cfg.Converter.CacheWindow),
		service.WithConverterLatency(latency),
		service.WithConverterClock(clock),
	)

	repo := repository.NewTokenRepository(store, cfg.Storage.CacheSize, cfg.Storage.CacheTTL, logger.Named("repository"))
	registry := service.NewRegistry(repo, ids, latency, clock, logger.Named("registry"))

	tokenizer := service.NewTokenizationService(
		service.NewReceiptValidator(clock),
		service.NewAuthenticityChecker(clock),
		converter,
		registry,
		logger.Named("tokenizer"),
	)

	return &Services{
		Store:     store,
		Converter: converter,
		Registry:  registry,
		Tokenizer: tokenizer,
		Documents: service.NewDocumentService(cfg.Server.UploadDir, logger.Named("documents")),
	}, nil
}
