package dto

import "agrotoken/internal/models"

type ConvertRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type ConversionResponse = models.ConversionResult

type CurrencyResponse struct {
	Currency    string  `json:"currency"`
	RateToUSD   float64 `json:"rate_to_usd"`
	LastUpdated string  `json:"last_updated"`
}

type MarketDataResponse = models.MarketData

type PurchaseRequest struct {
	Buyer  string `json:"buyer"`
	Amount int64  `json:"amount"`
}

type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type AssociateRequest struct {
	Account string `json:"account"`
}

// TransactionResponse acknowledges a simulated ledger transaction.
type TransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	TokenID       string `json:"token_id"`
	Status        string `json:"status"`
}
