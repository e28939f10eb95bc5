package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agrotoken/internal/app"
	"agrotoken/internal/repository"
	"agrotoken/internal/service"
	"agrotoken/pkg/config"

	"go.uber.org/zap"
)

func newSeedServices(t *testing.T) *app.Services {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{UploadDir: t.TempDir()},
		Storage:   config.StorageConfig{CacheSize: 16, CacheTTL: time.Minute},
		Ledger:    config.LedgerConfig{NodeID: 9},
		Converter: config.ConverterConfig{CacheWindow: time.Minute},
	}
	services, err := app.NewServices(cfg, repository.NewMemoryStore(), service.NoLatency{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewServices returned error: %v", err)
	}
	return services
}

func TestSeedTokens_SkipsSeededFixtures(t *testing.T) {
	ctx := context.Background()
	services := newSeedServices(t)
	cacheFile := filepath.Join(t.TempDir(), ".seed_cache.json")

	if err := seedTokens(ctx, "fixtures.json", cacheFile, services, zap.NewNop()); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	tokens, err := services.Registry.AllTokens(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 4 {
		t.Fatalf("seeded %d tokens, want 4", len(tokens))
	}

	holdings, err := services.Registry.UserTokens(ctx, "0.0.7001")
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 2 {
		t.Errorf("buyer 0.0.7001 holds %d tokens, want 2", len(holdings))
	}

	if err := seedTokens(ctx, "fixtures.json", cacheFile, services, zap.NewNop()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	tokens, err = services.Registry.AllTokens(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 4 {
		t.Errorf("re-seeding created duplicates: %d tokens", len(tokens))
	}

	cache, err := loadCache(cacheFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(cache.SeededFixtures) != 4 {
		t.Errorf("cache has %d fixtures, want 4", len(cache.SeededFixtures))
	}
}

func TestSeedTokens_BadFixtureSkipped(t *testing.T) {
	ctx := context.Background()
	services := newSeedServices(t)
	dir := t.TempDir()
	fixtures := filepath.Join(dir, "fixtures.json")
	data := `[
		{"vendor": "Old Farm", "amount": 100, "currency": "USD", "age": "72h", "treasury_account_id": "0.0.1"},
		{"vendor": "Fresh Farm", "amount": 100, "currency": "USD", "age": "1h", "treasury_account_id": "0.0.1"},
		{"vendor": "Broken Farm", "amount": 100, "currency": "USD", "age": "soon", "treasury_account_id": "0.0.1"}
	]`
	if err := os.WriteFile(fixtures, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if err := seedTokens(ctx, fixtures, filepath.Join(dir, "cache.json"), services, zap.NewNop()); err != nil {
		t.Fatalf("seedTokens failed: %v", err)
	}

	tokens, err := services.Registry.AllTokens(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Name != "Fresh Farm Receipt Token" {
		t.Errorf("tokens = %+v, want only Fresh Farm", tokens)
	}
}

func TestLoadCache_Missing(t *testing.T) {
	cache, err := loadCache(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("loadCache returned error: %v", err)
	}
	if cache.SeededFixtures == nil || len(cache.SeededFixtures) != 0 {
		t.Errorf("cache = %+v", cache)
	}
}
