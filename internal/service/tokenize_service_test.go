package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agrotoken/internal/models"
	"agrotoken/internal/repository"

	"go.uber.org/zap"
)

func newTestTokenizer(t *testing.T, store repository.KVStore) (*TokenizationService, *Registry) {
	t.Helper()
	clock := newTestClock().Now
	registry := newTestRegistry(t, store)
	svc := NewTokenizationService(
		NewReceiptValidator(clock),
		NewAuthenticityChecker(clock),
		newStaticConverter(clock),
		registry,
		zap.NewNop(),
	)
	return svc, registry
}

func seedVendorReceipt() models.ReceiptRecord {
	return models.ReceiptRecord{
		Amount:   1800,
		Currency: "usd",
		Date:     iso(testNow.Add(-2 * time.Hour)),
		Vendor:   "Midwest Seed Co.",
	}
}

func TestTokenize_IssuesToken(t *testing.T) {
	svc, registry := newTestTokenizer(t, repository.NewMemoryStore())
	ctx := context.Background()

	result, err := svc.Tokenize(ctx, TokenizeRequest{
		Receipt:           seedVendorReceipt(),
		TreasuryAccountID: "0.0.5005",
	})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}

	token := result.Token
	if token == nil {
		t.Fatal("expected an issued token")
	}
	if token.Name != "Midwest Seed Co. Receipt Token" {
		t.Errorf("Name = %q", token.Name)
	}
	if token.Symbol != DefaultTokenSymbol || token.Decimals != 4 {
		t.Errorf("Symbol = %q Decimals = %d", token.Symbol, token.Decimals)
	}
	// 1800 USD at 0.08 asset per USD is 144 tokens of 10^4 units
	if token.Supply != 1440000 {
		t.Errorf("Supply = %d, want 1440000", token.Supply)
	}
	if token.ReceiptData.Currency != "USD" {
		t.Errorf("ReceiptData.Currency = %q, want USD", token.ReceiptData.Currency)
	}
	if !strings.HasPrefix(token.ReceiptData.ReceiptHash, "blake2b:") {
		t.Errorf("ReceiptHash = %q", token.ReceiptData.ReceiptHash)
	}
	if result.Conversion == nil || result.Conversion.TokenAmount != 144 {
		t.Errorf("Conversion = %+v", result.Conversion)
	}
	if !result.Validation.IsValid {
		t.Errorf("Validation = %+v", result.Validation)
	}
	// 1800 is a round amount
	if result.Authenticity.Score != 90 {
		t.Errorf("Authenticity.Score = %d, want 90", result.Authenticity.Score)
	}

	stored, err := registry.TokenInfo(ctx, token.TokenID)
	if err != nil || stored == nil {
		t.Fatalf("TokenInfo = %v, %v", stored, err)
	}
}

func TestTokenize_CustomNameAndSymbol(t *testing.T) {
	svc, _ := newTestTokenizer(t, repository.NewMemoryStore())

	result, err := svc.Tokenize(context.Background(), TokenizeRequest{
		Receipt:           seedVendorReceipt(),
		TreasuryAccountID: "0.0.5005",
		Name:              "  Spring Planting  ",
		Symbol:            "seed",
	})
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if result.Token.Name != "Spring Planting" || result.Token.Symbol != "SEED" {
		t.Errorf("got name %q symbol %q", result.Token.Name, result.Token.Symbol)
	}
}

func TestTokenize_RejectsInvalidReceipt(t *testing.T) {
	svc, registry := newTestTokenizer(t, repository.NewMemoryStore())
	ctx := context.Background()
	receipt := seedVendorReceipt()
	receipt.Date = iso(testNow.Add(-48 * time.Hour))

	result, err := svc.Tokenize(ctx, TokenizeRequest{Receipt: receipt, TreasuryAccountID: "0.0.5005"})

	if !errors.Is(err, ErrReceiptRejected) {
		t.Fatalf("error = %v, want ErrReceiptRejected", err)
	}
	if result == nil || result.Validation.IsValid || result.Token != nil || result.Conversion != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	tokens, err := registry.AllTokens(ctx)
	if err != nil {
		t.Fatalf("AllTokens returned error: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("rejected receipt issued %d tokens", len(tokens))
	}
}

func TestTokenize_RequiresTreasury(t *testing.T) {
	svc, _ := newTestTokenizer(t, repository.NewMemoryStore())

	_, err := svc.Tokenize(context.Background(), TokenizeRequest{Receipt: seedVendorReceipt()})

	if !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("error = %v, want ErrInvalidAccount", err)
	}
}

func TestTokenize_IssuanceFailure(t *testing.T) {
	store := newFailingStore()
	store.failWrites.Store(true)
	svc, _ := newTestTokenizer(t, store)

	result, err := svc.Tokenize(context.Background(), TokenizeRequest{
		Receipt:           seedVendorReceipt(),
		TreasuryAccountID: "0.0.5005",
	})

	if !errors.Is(err, ErrIssuanceFailed) {
		t.Fatalf("error = %v, want ErrIssuanceFailed", err)
	}
	if result.Conversion == nil || result.Token != nil {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestTokenize_AmountBeyondSupplyRange(t *testing.T) {
	svc, registry := newTestTokenizer(t, repository.NewMemoryStore())
	ctx := context.Background()
	receipt := seedVendorReceipt()
	receipt.Amount = 1e17

	result, err := svc.Tokenize(ctx, TokenizeRequest{Receipt: receipt, TreasuryAccountID: "0.0.5005"})

	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("error = %v, want ErrInvalidAmount", err)
	}
	if result.Conversion == nil || result.Token != nil {
		t.Errorf("unexpected result %+v", result)
	}
	tokens, err := registry.AllTokens(ctx)
	if err != nil {
		t.Fatalf("AllTokens returned error: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("oversized receipt issued %d tokens", len(tokens))
	}
}

func TestReceiptHash(t *testing.T) {
	a := models.ReceiptRecord{Amount: 12.5, Currency: "usd", Date: "2026-03-11", Vendor: "Farm Depot"}
	b := models.ReceiptRecord{Amount: 12.5, Currency: "USD", Date: "2026-03-11", Vendor: " Farm Depot "}
	c := models.ReceiptRecord{Amount: 12.51, Currency: "USD", Date: "2026-03-11", Vendor: "Farm Depot"}

	if ReceiptHash(a) != ReceiptHash(b) {
		t.Error("currency case or vendor padding changed the hash")
	}
	if ReceiptHash(a) == ReceiptHash(c) {
		t.Error("different amounts produced the same hash")
	}
	if got := len(ReceiptHash(a)); got != len("blake2b:")+64 {
		t.Errorf("hash length = %d", got)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	if got := sanitizeUTF8("Farm\xffDepot"); got != "FarmDepot" {
		t.Errorf("sanitizeUTF8 = %q", got)
	}
	if got := sanitizeUTF8("Ferme Côté"); got != "Ferme Côté" {
		t.Errorf("valid input changed to %q", got)
	}
}
