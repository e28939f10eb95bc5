package dto

import (
	"time"

	"agrotoken/internal/models"

	"github.com/shopspring/decimal"
)

type IssueTokenRequest struct {
	Name              string                  `json:"name"`
	Symbol            string                  `json:"symbol"`
	Decimals          int                     `json:"decimals"`
	InitialSupply     int64                   `json:"initial_supply"`
	TreasuryAccountID string                  `json:"treasury_account_id"`
	ReceiptData       models.TokenReceiptData `json:"receipt_data"`
}

func (r IssueTokenRequest) ToModel() models.TokenMetadata {
	return models.TokenMetadata{
		Name:              r.Name,
		Symbol:            r.Symbol,
		Decimals:          r.Decimals,
		InitialSupply:     r.InitialSupply,
		TreasuryAccountID: r.TreasuryAccountID,
		ReceiptData:       r.ReceiptData,
	}
}

type TokenizeRequest struct {
	Receipt           ReceiptRequest       `json:"receipt"`
	FileMetadata      *FileMetadataRequest `json:"file_metadata,omitempty"`
	TreasuryAccountID string               `json:"treasury_account_id"`
	Name              string               `json:"name,omitempty"`
	Symbol            string               `json:"symbol,omitempty"`
}

type TokenResponse struct {
	TokenID         string                  `json:"token_id"`
	Name            string                  `json:"name"`
	Symbol          string                  `json:"symbol"`
	Decimals        int                     `json:"decimals"`
	Supply          int64                   `json:"supply"`
	DisplaySupply   string                  `json:"display_supply"`
	TreasuryAccount string                  `json:"treasury_account"`
	CreatedAt       string                  `json:"created_at"`
	ReceiptData     models.TokenReceiptData `json:"receipt_data"`
	TransactionID   string                  `json:"transaction_id"`
}

type TokenizeResponse struct {
	RequestID    string                   `json:"request_id"`
	Validation   ValidationResponse       `json:"validation"`
	Authenticity AuthenticityResponse     `json:"authenticity"`
	Conversion   *models.ConversionResult `json:"conversion,omitempty"`
	Token        *TokenResponse           `json:"token,omitempty"`
}

type HoldingResponse struct {
	TokenID       string         `json:"token_id"`
	Amount        int64          `json:"amount"`
	DisplayAmount string         `json:"display_amount"`
	Token         *TokenResponse `json:"token"`
}

func NewTokenResponse(t *models.IssuedToken) *TokenResponse {
	if t == nil {
		return nil
	}
	return &TokenResponse{
		TokenID:         t.TokenID,
		Name:            t.Name,
		Symbol:          t.Symbol,
		Decimals:        t.Decimals,
		Supply:          t.Supply,
		DisplaySupply:   DisplayAmount(t.Supply, t.Decimals),
		TreasuryAccount: t.TreasuryAccount,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		ReceiptData:     t.ReceiptData,
		TransactionID:   t.TransactionID,
	}
}

func NewTokenResponses(tokens []models.IssuedToken) []TokenResponse {
	out := make([]TokenResponse, 0, len(tokens))
	for i := range tokens {
		out = append(out, *NewTokenResponse(&tokens[i]))
	}
	return out
}

func NewHoldingResponses(holdings []models.Holding) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		decimals := 0
		if h.Token != nil {
			decimals = h.Token.Decimals
		}
		out = append(out, HoldingResponse{
			TokenID:       h.TokenID,
			Amount:        h.Amount,
			DisplayAmount: DisplayAmount(h.Amount, decimals),
			Token:         NewTokenResponse(h.Token),
		})
	}
	return out
}

// DisplayAmount renders smallest units as a whole-token decimal string,
// e.g. 1440000 with 4 decimals is "144.0000".
func DisplayAmount(units int64, decimals int) string {
	return decimal.New(units, -int32(decimals)).StringFixed(int32(decimals))
}
