package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agrotoken/internal/models"
	"agrotoken/internal/repository"

	"go.uber.org/zap"
)

// Registry simulates token issuance and ownership bookkeeping on top of a
// key-value store. All mutations are serialised by mu so concurrent
// purchases cannot lose updates to the same ownership record.
type Registry struct {
	mu      sync.Mutex
	repo    *repository.TokenRepository
	ids     IDGenerator
	latency Latency
	clock   Clock
	logger  *zap.Logger
}

func NewRegistry(repo *repository.TokenRepository, ids IDGenerator, latency Latency, clock Clock, logger *zap.Logger) *Registry {
	if latency == nil {
		latency = NoLatency{}
	}
	return &Registry{
		repo:    repo,
		ids:     ids,
		latency: latency,
		clock:   clock,
		logger:  logger,
	}
}

// Issue creates a token for a validated receipt. On any failure nothing is
// persisted and the error wraps ErrIssuanceFailed.
func (r *Registry) Issue(ctx context.Context, meta models.TokenMetadata) (*models.IssuedToken, error) {
	if meta.InitialSupply < 0 {
		return nil, fmt.Errorf("%w: initial supply %d", ErrInvalidAmount, meta.InitialSupply)
	}

	if err := r.latency.Wait(ctx, OpIssue); err != nil {
		ledgerOpsTotal.WithLabelValues(string(OpIssue), "error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrIssuanceFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token := models.IssuedToken{
		TokenID:         r.ids.TokenID(),
		Name:            meta.Name,
		Symbol:          meta.Symbol,
		Decimals:        meta.Decimals,
		Supply:          meta.InitialSupply,
		TreasuryAccount: meta.TreasuryAccountID,
		CreatedAt:       r.clock.Now().UTC(),
		ReceiptData:     meta.ReceiptData,
		TransactionID:   r.ids.TransactionID(),
	}

	if err := r.repo.AppendToken(ctx, token); err != nil {
		ledgerOpsTotal.WithLabelValues(string(OpIssue), "error").Inc()
		r.logger.Error("Token creation failed", zap.String("token_id", token.TokenID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIssuanceFailed, err)
	}

	ledgerOpsTotal.WithLabelValues(string(OpIssue), "ok").Inc()
	r.logger.Info("Token created",
		zap.String("token_id", token.TokenID),
		zap.String("transaction_id", token.TransactionID),
		zap.Int64("supply", token.Supply),
		zap.String("treasury", token.TreasuryAccount),
	)
	return &token, nil
}

// AllTokens returns every issued token in issuance order.
func (r *Registry) AllTokens(ctx context.Context) ([]models.IssuedToken, error) {
	return r.repo.ListTokens(ctx)
}

// TokenInfo returns nil, nil for an unknown token.
func (r *Registry) TokenInfo(ctx context.Context, tokenID string) (*models.IssuedToken, error) {
	return r.repo.GetToken(ctx, tokenID)
}

// Purchase credits amount smallest units of tokenID to buyer and returns the
// transaction ID. Cumulative purchases of a token are capped at its supply.
func (r *Registry) Purchase(ctx context.Context, tokenID, buyer string, amount int64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if strings.TrimSpace(buyer) == "" {
		return "", fmt.Errorf("%w: buyer address is required", ErrInvalidAccount)
	}

	if err := r.latency.Wait(ctx, OpPurchase); err != nil {
		ledgerOpsTotal.WithLabelValues(string(OpPurchase), "error").Inc()
		return "", fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	txID, err := r.purchaseLocked(ctx, tokenID, buyer, amount)
	ledgerOpsTotal.WithLabelValues(string(OpPurchase), resultLabel(err)).Inc()
	if err != nil {
		r.logger.Warn("Token purchase failed",
			zap.String("token_id", tokenID),
			zap.String("buyer", buyer),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return "", err
	}

	r.logger.Info("Tokens purchased",
		zap.String("token_id", tokenID),
		zap.String("buyer", buyer),
		zap.Int64("amount", amount),
		zap.String("transaction_id", txID),
	)
	return txID, nil
}

func (r *Registry) purchaseLocked(ctx context.Context, tokenID, buyer string, amount int64) (string, error) {
	token, err := r.repo.GetToken(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	if token == nil {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}

	sold, err := r.repo.SoldSupply(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	// sold never exceeds supply, so the subtraction cannot overflow
	if amount > token.Supply-sold {
		return "", fmt.Errorf("%w: %d requested, %d of %d remaining", ErrSupplyExceeded, amount, token.Supply-sold, token.Supply)
	}

	holdings, err := r.repo.Ownership(ctx, buyer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	holdings[tokenID] += amount

	if err := r.repo.SavePurchase(ctx, buyer, holdings, tokenID, sold+amount); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPurchaseFailed, err)
	}
	return r.ids.TransactionID(), nil
}

// Transfer moves amount smallest units of tokenID between two owners.
func (r *Registry) Transfer(ctx context.Context, tokenID, from, to string, amount int64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" || from == to {
		return "", fmt.Errorf("%w: sender and recipient must be distinct", ErrInvalidAccount)
	}

	if err := r.latency.Wait(ctx, OpTransfer); err != nil {
		ledgerOpsTotal.WithLabelValues(string(OpTransfer), "error").Inc()
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	txID, err := r.transferLocked(ctx, tokenID, from, to, amount)
	ledgerOpsTotal.WithLabelValues(string(OpTransfer), resultLabel(err)).Inc()
	if err != nil {
		r.logger.Warn("Token transfer failed", zap.String("token_id", tokenID), zap.Error(err))
		return "", err
	}

	r.logger.Info("Tokens transferred",
		zap.String("token_id", tokenID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int64("amount", amount),
		zap.String("transaction_id", txID),
	)
	return txID, nil
}

func (r *Registry) transferLocked(ctx context.Context, tokenID, from, to string, amount int64) (string, error) {
	token, err := r.repo.GetToken(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if token == nil {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}

	fromHoldings, err := r.repo.Ownership(ctx, from)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if fromHoldings[tokenID] < amount {
		return "", fmt.Errorf("%w: %s holds %d", ErrInsufficientHoldings, from, fromHoldings[tokenID])
	}
	toHoldings, err := r.repo.Ownership(ctx, to)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	fromHoldings[tokenID] -= amount
	if fromHoldings[tokenID] == 0 {
		delete(fromHoldings, tokenID)
	}
	toHoldings[tokenID] += amount

	if err := r.repo.SaveHoldings(ctx, map[string]map[string]int64{
		from: fromHoldings,
		to:   toHoldings,
	}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return r.ids.TransactionID(), nil
}

// Associate simulates enabling account to hold tokenID. Nothing is persisted.
func (r *Registry) Associate(ctx context.Context, tokenID, account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", fmt.Errorf("%w: account is required", ErrInvalidAccount)
	}

	token, err := r.repo.GetToken(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssociationFailed, err)
	}
	if token == nil {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}

	if err := r.latency.Wait(ctx, OpAssociate); err != nil {
		ledgerOpsTotal.WithLabelValues(string(OpAssociate), "error").Inc()
		return "", fmt.Errorf("%w: %w", ErrAssociationFailed, err)
	}

	ledgerOpsTotal.WithLabelValues(string(OpAssociate), "ok").Inc()
	return r.ids.TransactionID(), nil
}

// UserTokens joins an owner's holdings with the issued-token list. Holdings
// of tokens that no longer resolve are dropped. Order follows issuance.
func (r *Registry) UserTokens(ctx context.Context, owner string) ([]models.Holding, error) {
	holdings, err := r.repo.Ownership(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return []models.Holding{}, nil
	}

	tokens, err := r.repo.ListTokens(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Holding, 0, len(holdings))
	for i := range tokens {
		amount, ok := holdings[tokens[i].TokenID]
		if !ok {
			continue
		}
		result = append(result, models.Holding{
			TokenID: tokens[i].TokenID,
			Amount:  amount,
			Token:   &tokens[i],
		})
	}
	return result, nil
}
