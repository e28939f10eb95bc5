package models

import "time"

// ExchangeRate is the fiat-to-USD rate of one supported currency.
type ExchangeRate struct {
	Currency    string    `json:"currency"`
	RateToUSD   float64   `json:"rate_to_usd"`
	LastUpdated time.Time `json:"last_updated"`
}

// AssetRate is the settlement asset (HBAR) reference rate.
type AssetRate struct {
	AssetToUSD  float64   `json:"asset_to_usd"`
	LastUpdated time.Time `json:"last_updated"`
}

type ConversionResult struct {
	OriginalAmount   float64 `json:"original_amount"`
	OriginalCurrency string  `json:"original_currency"`
	USDAmount        float64 `json:"usd_amount"`
	AssetAmount      float64 `json:"asset_amount"`
	TokenAmount      float64 `json:"token_amount"`
	ExchangeRate     float64 `json:"exchange_rate"`
	AssetRate        float64 `json:"asset_rate"`
}

type CurrencyQuote struct {
	Currency  string  `json:"currency"`
	Rate      float64 `json:"rate"`
	Change24h float64 `json:"change_24h"`
}

type MarketData struct {
	AssetPrice          float64         `json:"asset_price"`
	AssetChange24h      float64         `json:"asset_change_24h"`
	SupportedCurrencies []CurrencyQuote `json:"supported_currencies"`
}
