package models

import "time"

type TokenReceiptData struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Date        string  `json:"date"`
	Vendor      string  `json:"vendor"`
	ReceiptHash string  `json:"receipt_hash"`
}

// TokenMetadata is the issuance request for a receipt-backed token.
// InitialSupply is expressed in smallest units (10^Decimals per token).
type TokenMetadata struct {
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Decimals          int              `json:"decimals"`
	InitialSupply     int64            `json:"initial_supply"`
	TreasuryAccountID string           `json:"treasury_account_id"`
	ReceiptData       TokenReceiptData `json:"receipt_data"`
}

// IssuedToken is immutable once written.
type IssuedToken struct {
	TokenID         string           `json:"token_id"`
	Name            string           `json:"name"`
	Symbol          string           `json:"symbol"`
	Decimals        int              `json:"decimals"`
	Supply          int64            `json:"supply"`
	TreasuryAccount string           `json:"treasury_account"`
	CreatedAt       time.Time        `json:"created_at"`
	ReceiptData     TokenReceiptData `json:"receipt_data"`
	TransactionID   string           `json:"transaction_id"`
}

// Holding is one owner's balance of a token joined with the token record.
type Holding struct {
	TokenID string       `json:"token_id"`
	Amount  int64        `json:"amount"`
	Token   *IssuedToken `json:"token"`
}
