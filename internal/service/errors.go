package service

import "errors"

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrRateUnavailable means the settlement asset rate was never seeded.
	ErrRateUnavailable = errors.New("settlement asset rate not available")

	ErrIssuanceFailed    = errors.New("failed to create token")
	ErrPurchaseFailed    = errors.New("failed to purchase tokens")
	ErrTransferFailed    = errors.New("failed to transfer tokens")
	ErrAssociationFailed = errors.New("failed to associate token")

	ErrTokenNotFound        = errors.New("token not found")
	ErrSupplyExceeded       = errors.New("purchase exceeds remaining token supply")
	ErrInsufficientHoldings = errors.New("insufficient token holdings")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidAccount       = errors.New("invalid account")
	ErrReceiptRejected      = errors.New("receipt failed validation")
	ErrFileTooLarge         = errors.New("receipt file too large")
)
