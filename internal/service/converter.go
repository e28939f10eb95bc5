package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"agrotoken/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultRateCacheWindow = 5 * time.Minute

	minAssetRate     = 0.05
	defaultAssetRate = 0.08
)

// TokenPrecision is the number of decimals kept in ConversionResult.TokenAmount.
const TokenPrecision int32 = 4

// SeedRates is the reference fiat table: one unit of each currency in USD.
var SeedRates = []models.ExchangeRate{
	{Currency: "USD", RateToUSD: 1.0},
	{Currency: "EUR", RateToUSD: 1.08},
	{Currency: "GBP", RateToUSD: 1.27},
	{Currency: "CAD", RateToUSD: 0.74},
	{Currency: "AUD", RateToUSD: 0.66},
	{Currency: "JPY", RateToUSD: 0.0067},
	{Currency: "CHF", RateToUSD: 1.12},
	{Currency: "CNY", RateToUSD: 0.14},
}

// RateSource produces the next set of rates from the current ones.
// Implementations must not mutate their inputs.
type RateSource interface {
	Fetch(ctx context.Context, rates []models.ExchangeRate, asset models.AssetRate, now time.Time) ([]models.ExchangeRate, models.AssetRate, error)
}

// FluctuatingSource mocks a price feed: ±1% on fiat rates (USD fixed),
// ±4% on the asset rate with a floor of 0.05.
type FluctuatingSource struct {
	Random func() float64 // uniform in [0,1); rand.Float64 when nil
}

func (s FluctuatingSource) Fetch(_ context.Context, rates []models.ExchangeRate, asset models.AssetRate, now time.Time) ([]models.ExchangeRate, models.AssetRate, error) {
	random := s.Random
	if random == nil {
		random = rand.Float64
	}

	next := make([]models.ExchangeRate, len(rates))
	for i, rate := range rates {
		next[i] = rate
		if rate.Currency == "USD" {
			continue
		}
		next[i].RateToUSD = rate.RateToUSD * (1 + (random()-0.5)*0.02)
		next[i].LastUpdated = now
	}

	asset.AssetToUSD = math.Max(minAssetRate, asset.AssetToUSD*(1+(random()-0.5)*0.08))
	asset.LastUpdated = now

	return next, asset, nil
}

// StaticSource keeps rates unchanged and only stamps them as fresh.
type StaticSource struct{}

func (StaticSource) Fetch(_ context.Context, rates []models.ExchangeRate, asset models.AssetRate, now time.Time) ([]models.ExchangeRate, models.AssetRate, error) {
	next := make([]models.ExchangeRate, len(rates))
	for i, rate := range rates {
		next[i] = rate
		next[i].LastUpdated = now
	}
	asset.LastUpdated = now
	return next, asset, nil
}

type ConverterOption func(*Converter)

func WithRateSource(source RateSource) ConverterOption {
	return func(c *Converter) { c.source = source }
}

func WithConverterClock(clock Clock) ConverterOption {
	return func(c *Converter) { c.clock = clock }
}

func WithConverterLatency(latency Latency) ConverterOption {
	return func(c *Converter) { c.latency = latency }
}

func WithCacheWindow(window time.Duration) ConverterOption {
	return func(c *Converter) { c.window = window }
}

// WithMarketRandom sets the random source of the mocked 24h changes.
func WithMarketRandom(random func() float64) ConverterOption {
	return func(c *Converter) { c.random = random }
}

// WithSeed replaces the reference table. A nil asset leaves the asset rate
// unset, so every conversion fails with ErrRateUnavailable.
func WithSeed(rates []models.ExchangeRate, asset *models.AssetRate) ConverterOption {
	return func(c *Converter) {
		c.seedRates = rates
		c.seedAsset = asset
	}
}

// Converter turns receipt amounts into settlement asset amounts using a
// refreshable rate cache.
type Converter struct {
	refreshMu sync.Mutex // serialises RefreshRates
	mu        sync.RWMutex
	order     []string
	rates     map[string]models.ExchangeRate
	asset     *models.AssetRate
	lastFetch time.Time

	seedRates []models.ExchangeRate
	seedAsset *models.AssetRate
	window    time.Duration
	source    RateSource
	latency   Latency
	clock     Clock
	random    func() float64
	logger    *zap.Logger
}

func NewConverter(logger *zap.Logger, opts ...ConverterOption) *Converter {
	c := &Converter{
		seedRates: SeedRates,
		seedAsset: &models.AssetRate{AssetToUSD: defaultAssetRate},
		window:    DefaultRateCacheWindow,
		source:    FluctuatingSource{},
		latency:   NoLatency{},
		random:    rand.Float64,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	now := c.clock.Now()
	c.rates = make(map[string]models.ExchangeRate, len(c.seedRates))
	for _, rate := range c.seedRates {
		code := strings.ToUpper(rate.Currency)
		rate.Currency = code
		rate.LastUpdated = now
		if _, dup := c.rates[code]; !dup {
			c.order = append(c.order, code)
		}
		c.rates[code] = rate
	}
	if c.seedAsset != nil {
		c.asset = &models.AssetRate{AssetToUSD: c.seedAsset.AssetToUSD, LastUpdated: now}
	}

	return c
}

// RefreshRates pulls new rates unless the last refresh is inside the cache
// window. It never fails: on a source error the cached rates stay in use and
// the next call retries.
func (c *Converter) RefreshRates(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	now := c.clock.Now()
	c.mu.RLock()
	fresh := !c.lastFetch.IsZero() && now.Sub(c.lastFetch) < c.window
	current := c.snapshot()
	var asset models.AssetRate
	hasAsset := c.asset != nil
	if hasAsset {
		asset = *c.asset
	}
	c.mu.RUnlock()
	if fresh {
		return
	}

	rates, nextAsset, err := c.fetch(ctx, current, asset, now)
	if err != nil {
		rateRefreshesTotal.WithLabelValues("error").Inc()
		c.logger.Warn("Failed to refresh exchange rates, using cached rates", zap.Error(err))
		return
	}

	c.mu.Lock()
	for _, rate := range rates {
		if _, ok := c.rates[rate.Currency]; ok && rate.RateToUSD > 0 {
			c.rates[rate.Currency] = rate
		}
	}
	if hasAsset && nextAsset.AssetToUSD > 0 {
		c.asset = &nextAsset
	}
	c.lastFetch = now
	c.mu.Unlock()

	rateRefreshesTotal.WithLabelValues("ok").Inc()
	c.logger.Debug("Exchange rates refreshed", zap.Float64("asset_to_usd", nextAsset.AssetToUSD))
}

// fetch converts a panicking source into an error.
func (c *Converter) fetch(ctx context.Context, rates []models.ExchangeRate, asset models.AssetRate, now time.Time) (next []models.ExchangeRate, nextAsset models.AssetRate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rate source panicked: %v", r)
		}
	}()

	if err := c.latency.Wait(ctx, OpRateFetch); err != nil {
		return nil, asset, err
	}
	return c.source.Fetch(ctx, rates, asset, now)
}

// Convert refreshes rates and converts amount in currency into USD, the
// settlement asset, and a token amount truncated to TokenPrecision decimals.
func (c *Converter) Convert(ctx context.Context, amount float64, currency string) (*models.ConversionResult, error) {
	c.RefreshRates(ctx)

	code := strings.ToUpper(strings.TrimSpace(currency))
	c.mu.RLock()
	rate, ok := c.rates[code]
	asset := c.asset
	var assetToUSD float64
	if asset != nil {
		assetToUSD = asset.AssetToUSD
	}
	c.mu.RUnlock()

	if !ok {
		conversionsTotal.WithLabelValues("unsupported", "unsupported_currency").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	if asset == nil {
		conversionsTotal.WithLabelValues(code, "rate_unavailable").Inc()
		return nil, ErrRateUnavailable
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		conversionsTotal.WithLabelValues(code, "invalid_amount").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	usdAmount := amount * rate.RateToUSD
	assetAmount := usdAmount * assetToUSD

	conversionsTotal.WithLabelValues(code, "ok").Inc()
	return &models.ConversionResult{
		OriginalAmount:   amount,
		OriginalCurrency: code,
		USDAmount:        usdAmount,
		AssetAmount:      assetAmount,
		TokenAmount:      TruncateTokenAmount(assetAmount),
		ExchangeRate:     rate.RateToUSD,
		AssetRate:        assetToUSD,
	}, nil
}

// TruncateTokenAmount drops digits past TokenPrecision decimals without rounding.
func TruncateTokenAmount(amount float64) float64 {
	truncated, _ := decimal.NewFromFloat(amount).Truncate(TokenPrecision).Float64()
	return truncated
}

var maxSupplyUnits = decimal.NewFromInt(math.MaxInt64)

// SupplyUnits converts a token amount into smallest units (10^TokenPrecision per token).
// Amounts that do not fit in int64 units fail with ErrInvalidAmount.
func SupplyUnits(tokenAmount float64) (int64, error) {
	if math.IsNaN(tokenAmount) || math.IsInf(tokenAmount, 0) || tokenAmount < 0 {
		return 0, fmt.Errorf("%w: token amount %v", ErrInvalidAmount, tokenAmount)
	}
	units := decimal.NewFromFloat(tokenAmount).Truncate(TokenPrecision).Shift(TokenPrecision)
	if units.GreaterThan(maxSupplyUnits) {
		return 0, fmt.Errorf("%w: token amount %v exceeds the supply range", ErrInvalidAmount, tokenAmount)
	}
	return units.IntPart(), nil
}

// MarketData refreshes rates and reports prices with mocked 24h changes.
func (c *Converter) MarketData(ctx context.Context) models.MarketData {
	c.RefreshRates(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()

	price := defaultAssetRate
	if c.asset != nil {
		price = c.asset.AssetToUSD
	}

	quotes := make([]models.CurrencyQuote, 0, len(c.order))
	for _, code := range c.order {
		quotes = append(quotes, models.CurrencyQuote{
			Currency:  code,
			Rate:      c.rates[code].RateToUSD,
			Change24h: (c.random() - 0.5) * 4,
		})
	}

	return models.MarketData{
		AssetPrice:          price,
		AssetChange24h:      (c.random() - 0.5) * 10,
		SupportedCurrencies: quotes,
	}
}

func (c *Converter) SupportedCurrencies() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

func (c *Converter) ExchangeRate(currency string) (models.ExchangeRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(currency))]
	return rate, ok
}

func (c *Converter) AssetRate() (models.AssetRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.asset == nil {
		return models.AssetRate{}, false
	}
	return *c.asset, true
}

// snapshot copies the rate table in seed order; callers hold c.mu.
func (c *Converter) snapshot() []models.ExchangeRate {
	rates := make([]models.ExchangeRate, 0, len(c.order))
	for _, code := range c.order {
		rates = append(rates, c.rates[code])
	}
	return rates
}
