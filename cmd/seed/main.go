package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"agrotoken/internal/app"
	"agrotoken/internal/models"
	"agrotoken/internal/service"
	"agrotoken/pkg/config"
	"agrotoken/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStore()

	// seeding does not need simulated ledger latency
	services, err := app.NewServices(cfg, store, service.NoLatency{}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}

	appLogger.Info("Starting token seeding...")

	seedDir := filepath.Join("cmd", "seed")
	fixturesFile := filepath.Join(seedDir, "fixtures.json")
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")
	if err := seedTokens(ctx, fixturesFile, cacheFile, services, appLogger); err != nil {
		appLogger.Fatal("Failed to seed tokens", zap.Error(err))
	}

	appLogger.Info("Token seeding completed successfully!")
}

// Fixture is one demo receipt. Age is relative to the seeding time so
// the receipt passes the 24h recency rule.
type Fixture struct {
	Vendor            string            `json:"vendor"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	Age               string            `json:"age"`
	TreasuryAccountID string            `json:"treasury_account_id"`
	Symbol            string            `json:"symbol,omitempty"`
	Purchases         []FixturePurchase `json:"purchases,omitempty"`
}

type FixturePurchase struct {
	Buyer  string `json:"buyer"`
	Amount int64  `json:"amount"`
}

// SeededFixture records a fixture that already produced a token
type SeededFixture struct {
	Vendor   string    `json:"vendor"`
	TokenID  string    `json:"token_id"`
	SeededAt time.Time `json:"seeded_at"`
}

// CacheData stores seeded fixtures keyed by fixture hash
type CacheData struct {
	SeededFixtures map[string]SeededFixture `json:"seeded_fixtures"`
}

func loadFixtures(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var fixtures []json.RawMessage
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return fixtures, nil
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		SeededFixtures: make(map[string]SeededFixture),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.SeededFixtures == nil {
		cache.SeededFixtures = make(map[string]SeededFixture)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// fixtureHash fingerprints the raw fixture so edited fixtures are seeded again
func fixtureHash(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func seedTokens(
	ctx context.Context,
	fixturesFile string,
	cacheFile string,
	services *app.Services,
	logger *zap.Logger,
) error {
	fixtures, err := loadFixtures(fixturesFile)
	if err != nil {
		return err
	}

	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will seed all fixtures", zap.Error(err))
		cache = &CacheData{SeededFixtures: make(map[string]SeededFixture)}
	}

	seeded := 0
	for _, raw := range fixtures {
		hash := fixtureHash(raw)
		if cached, exists := cache.SeededFixtures[hash]; exists {
			logger.Info("Fixture already seeded, skipping",
				zap.String("vendor", cached.Vendor),
				zap.String("token_id", cached.TokenID),
				zap.Time("seeded_at", cached.SeededAt),
			)
			continue
		}

		var fixture Fixture
		if err := json.Unmarshal(raw, &fixture); err != nil {
			logger.Error("Invalid fixture, skipping", zap.Error(err))
			continue
		}

		token, err := seedFixture(ctx, fixture, services, logger)
		if err != nil {
			logger.Error("Failed to seed fixture", zap.String("vendor", fixture.Vendor), zap.Error(err))
			continue
		}

		cache.SeededFixtures[hash] = SeededFixture{
			Vendor:   fixture.Vendor,
			TokenID:  token.TokenID,
			SeededAt: time.Now().UTC(),
		}
		seeded++
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved",
			zap.Int("seeded_now", seeded),
			zap.Int("seeded_total", len(cache.SeededFixtures)),
		)
	}

	return nil
}

func seedFixture(ctx context.Context, fixture Fixture, services *app.Services, logger *zap.Logger) (*models.IssuedToken, error) {
	age, err := time.ParseDuration(fixture.Age)
	if err != nil {
		return nil, fmt.Errorf("invalid age %q: %w", fixture.Age, err)
	}

	result, err := services.Tokenizer.Tokenize(ctx, service.TokenizeRequest{
		Receipt: models.ReceiptRecord{
			Amount:   fixture.Amount,
			Currency: fixture.Currency,
			Date:     time.Now().Add(-age).UTC().Format(time.RFC3339),
			Vendor:   fixture.Vendor,
		},
		TreasuryAccountID: fixture.TreasuryAccountID,
		Symbol:            fixture.Symbol,
	})
	if err != nil {
		return nil, err
	}

	token := result.Token
	logger.Info("Seeded token",
		zap.String("token_id", token.TokenID),
		zap.String("name", token.Name),
		zap.Int64("supply", token.Supply),
		zap.Int("authenticity_score", result.Authenticity.Score),
	)

	for _, p := range fixture.Purchases {
		txID, err := services.Registry.Purchase(ctx, token.TokenID, p.Buyer, p.Amount)
		if err != nil {
			logger.Warn("Seed purchase failed", zap.String("buyer", p.Buyer), zap.Error(err))
			continue
		}
		logger.Info("Seeded purchase",
			zap.String("token_id", token.TokenID),
			zap.String("buyer", p.Buyer),
			zap.String("transaction_id", txID),
		)
	}

	return token, nil
}
