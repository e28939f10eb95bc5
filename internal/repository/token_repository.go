package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agrotoken/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	allTokensKey     = "all_tokens"
	tokenKeyPrefix   = "token_"
	ownerKeyPrefix   = "ownership_"
	soldSupplyPrefix = "supply_sold_"
)

var (
	tokenCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrotoken_token_cache_hits_total",
		Help: "Token lookups served from the in-memory cache.",
	})
	tokenCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrotoken_token_cache_misses_total",
		Help: "Token lookups that went to the key-value store.",
	})
)

func TokenKey(tokenID string) string {
	return tokenKeyPrefix + tokenID
}

func OwnershipKey(address string) string {
	return ownerKeyPrefix + address
}

func SoldSupplyKey(tokenID string) string {
	return soldSupplyPrefix + tokenID
}

// TokenRepository maps issued tokens and holdings onto a KVStore.
// It does no locking of its own; the registry serialises read-modify-write.
type TokenRepository struct {
	store  KVStore
	cache  *expirable.LRU[string, models.IssuedToken]
	logger *zap.Logger
}

func NewTokenRepository(store KVStore, cacheSize int, cacheTTL time.Duration, logger *zap.Logger) *TokenRepository {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	return &TokenRepository{
		store:  store,
		cache:  expirable.NewLRU[string, models.IssuedToken](cacheSize, nil, cacheTTL),
		logger: logger,
	}
}

// GetToken returns nil, nil when the token does not exist.
func (r *TokenRepository) GetToken(ctx context.Context, tokenID string) (*models.IssuedToken, error) {
	if token, ok := r.cache.Get(tokenID); ok {
		tokenCacheHits.Inc()
		return &token, nil
	}
	tokenCacheMisses.Inc()

	var token models.IssuedToken
	found, err := r.getJSON(ctx, TokenKey(tokenID), &token)
	if err != nil || !found {
		return nil, err
	}
	r.cache.Add(tokenID, token)
	return &token, nil
}

// ListTokens returns every issued token in insertion order.
func (r *TokenRepository) ListTokens(ctx context.Context) ([]models.IssuedToken, error) {
	tokens := []models.IssuedToken{}
	if _, err := r.getJSON(ctx, allTokensKey, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// AppendToken writes the token record and the extended token list in one batch.
func (r *TokenRepository) AppendToken(ctx context.Context, token models.IssuedToken) error {
	tokens, err := r.ListTokens(ctx)
	if err != nil {
		return err
	}
	tokens = append(tokens, token)

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	listJSON, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to encode token list: %w", err)
	}

	if err := r.store.SetMany(ctx, []Entry{
		{Key: TokenKey(token.TokenID), Value: tokenJSON},
		{Key: allTokensKey, Value: listJSON},
	}); err != nil {
		return err
	}

	r.cache.Add(token.TokenID, token)
	return nil
}

// Ownership returns tokenID -> amount for an owner; empty when none recorded.
func (r *TokenRepository) Ownership(ctx context.Context, address string) (map[string]int64, error) {
	holdings := map[string]int64{}
	if _, err := r.getJSON(ctx, OwnershipKey(address), &holdings); err != nil {
		return nil, err
	}
	// a stored JSON null decodes to a nil map
	if holdings == nil {
		holdings = map[string]int64{}
	}
	return holdings, nil
}

func (r *TokenRepository) SoldSupply(ctx context.Context, tokenID string) (int64, error) {
	var sold int64
	if _, err := r.getJSON(ctx, SoldSupplyKey(tokenID), &sold); err != nil {
		return 0, err
	}
	return sold, nil
}

// SavePurchase stores the buyer's holdings and the token's sold counter together.
func (r *TokenRepository) SavePurchase(ctx context.Context, buyer string, holdings map[string]int64, tokenID string, sold int64) error {
	holdingsJSON, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings: %w", err)
	}
	soldJSON, err := json.Marshal(sold)
	if err != nil {
		return fmt.Errorf("failed to encode sold supply: %w", err)
	}
	return r.store.SetMany(ctx, []Entry{
		{Key: OwnershipKey(buyer), Value: holdingsJSON},
		{Key: SoldSupplyKey(tokenID), Value: soldJSON},
	})
}

// SaveHoldings stores several owners' holdings in one batch.
func (r *TokenRepository) SaveHoldings(ctx context.Context, byOwner map[string]map[string]int64) error {
	entries := make([]Entry, 0, len(byOwner))
	for owner, holdings := range byOwner {
		data, err := json.Marshal(holdings)
		if err != nil {
			return fmt.Errorf("failed to encode holdings: %w", err)
		}
		entries = append(entries, Entry{Key: OwnershipKey(owner), Value: data})
	}
	return r.store.SetMany(ctx, entries)
}

func (r *TokenRepository) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, found, err := r.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Corrupt value in key-value store", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}
