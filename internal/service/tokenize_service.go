package service

import (
	"context"
	"fmt"
	"strings"

	"agrotoken/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTokenSymbol   = "ART"
	DefaultTokenDecimals = int(TokenPrecision)
)

type TokenizeRequest struct {
	Receipt           models.ReceiptRecord
	FileMetadata      *models.FileMetadata
	TreasuryAccountID string
	Name              string // defaults to "<vendor> Receipt Token"
	Symbol            string // defaults to DefaultTokenSymbol
}

// TokenizeResult carries every intermediate report. On rejection only
// Validation and Authenticity are set.
type TokenizeResult struct {
	RequestID    uuid.UUID
	Validation   models.ValidationResult
	Authenticity models.AuthenticityResult
	Conversion   *models.ConversionResult
	Token        *models.IssuedToken
}

// TokenizationService runs receipt -> validation -> conversion -> issuance.
type TokenizationService struct {
	validator    *ReceiptValidator
	authenticity *AuthenticityChecker
	converter    *Converter
	registry     *Registry
	logger       *zap.Logger
}

func NewTokenizationService(
	validator *ReceiptValidator,
	authenticity *AuthenticityChecker,
	converter *Converter,
	registry *Registry,
	logger *zap.Logger,
) *TokenizationService {
	return &TokenizationService{
		validator:    validator,
		authenticity: authenticity,
		converter:    converter,
		registry:     registry,
		logger:       logger,
	}
}

// Review validates a receipt and scores its authenticity without side effects.
func (s *TokenizationService) Review(receipt models.ReceiptRecord, meta *models.FileMetadata) (models.ValidationResult, models.AuthenticityResult) {
	return s.validator.Validate(receipt), s.authenticity.Check(receipt, meta)
}

// Tokenize issues a token backed by the receipt. A receipt with validation
// errors is rejected with ErrReceiptRejected and the partial result.
func (s *TokenizationService) Tokenize(ctx context.Context, req TokenizeRequest) (*TokenizeResult, error) {
	result := &TokenizeResult{RequestID: uuid.New()}
	log := s.logger.With(zap.String("request_id", result.RequestID.String()))

	if strings.TrimSpace(req.TreasuryAccountID) == "" {
		return result, fmt.Errorf("%w: treasury account is required", ErrInvalidAccount)
	}

	result.Validation, result.Authenticity = s.Review(req.Receipt, req.FileMetadata)
	if !result.Validation.IsValid {
		log.Info("Receipt rejected",
			zap.Int("score", result.Validation.Score),
			zap.Int("errors", len(result.Validation.Errors)),
		)
		return result, fmt.Errorf("%w: %s", ErrReceiptRejected, result.Validation.Summary)
	}
	if result.Authenticity.Score < 60 {
		log.Warn("Tokenizing receipt with low authenticity score",
			zap.Int("authenticity_score", result.Authenticity.Score),
			zap.Strings("flags", result.Authenticity.Flags),
		)
	}

	conversion, err := s.converter.Convert(ctx, req.Receipt.Amount, req.Receipt.Currency)
	if err != nil {
		return result, err
	}
	result.Conversion = conversion

	vendor := strings.TrimSpace(sanitizeUTF8(req.Receipt.Vendor))
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = vendor + " Receipt Token"
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		symbol = DefaultTokenSymbol
	}

	supply, err := SupplyUnits(conversion.TokenAmount)
	if err != nil {
		log.Warn("Converted amount does not fit the token supply", zap.Float64("token_amount", conversion.TokenAmount))
		return result, err
	}

	token, err := s.registry.Issue(ctx, models.TokenMetadata{
		Name:              sanitizeUTF8(name),
		Symbol:            symbol,
		Decimals:          DefaultTokenDecimals,
		InitialSupply:     supply,
		TreasuryAccountID: req.TreasuryAccountID,
		ReceiptData: models.TokenReceiptData{
			Amount:      req.Receipt.Amount,
			Currency:    conversion.OriginalCurrency,
			Date:        req.Receipt.Date,
			Vendor:      vendor,
			ReceiptHash: ReceiptHash(req.Receipt),
		},
	})
	if err != nil {
		return result, err
	}
	result.Token = token

	log.Info("Receipt tokenized",
		zap.String("token_id", token.TokenID),
		zap.Float64("token_amount", conversion.TokenAmount),
		zap.String("currency", conversion.OriginalCurrency),
	)
	return result, nil
}
