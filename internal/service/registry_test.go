package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"agrotoken/internal/models"
	"agrotoken/internal/repository"

	"go.uber.org/zap"
)

func issueTestToken(t *testing.T, r *Registry, supply int64) *models.IssuedToken {
	t.Helper()
	token, err := r.Issue(context.Background(), models.TokenMetadata{
		Name:              "Midwest Seed Co. Receipt Token",
		Symbol:            "ART",
		Decimals:          4,
		InitialSupply:     supply,
		TreasuryAccountID: "0.0.5005",
		ReceiptData: models.TokenReceiptData{
			Amount:   1800,
			Currency: "USD",
			Vendor:   "Midwest Seed Co.",
		},
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	return token
}

func TestRegistry_IssueAssignsDistinctIDs(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()

	first := issueTestToken(t, r, 1000)
	second := issueTestToken(t, r, 1000)

	if first.TokenID == second.TokenID {
		t.Fatalf("identical metadata produced the same token ID %s", first.TokenID)
	}
	if first.TransactionID == second.TransactionID {
		t.Errorf("identical metadata produced the same transaction ID %s", first.TransactionID)
	}
	if !first.CreatedAt.Equal(testNow) || first.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", first.CreatedAt, testNow)
	}

	tokens, err := r.AllTokens(ctx)
	if err != nil {
		t.Fatalf("AllTokens returned error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].TokenID != first.TokenID || tokens[1].TokenID != second.TokenID {
		t.Fatalf("AllTokens = %+v, want both tokens in issuance order", tokens)
	}

	info, err := r.TokenInfo(ctx, second.TokenID)
	if err != nil || info == nil {
		t.Fatalf("TokenInfo = %v, %v", info, err)
	}
	if info.Supply != 1000 || info.TreasuryAccount != "0.0.5005" {
		t.Errorf("TokenInfo = %+v", info)
	}
}

func TestRegistry_TokenInfoUnknown(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())

	info, err := r.TokenInfo(context.Background(), "0.0.404")

	if err != nil || info != nil {
		t.Errorf("TokenInfo = %v, %v, want nil, nil", info, err)
	}
}

func TestRegistry_IssueRejectsNegativeSupply(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())

	_, err := r.Issue(context.Background(), models.TokenMetadata{InitialSupply: -1})

	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestRegistry_IssueFailureLeavesNoToken(t *testing.T) {
	store := newFailingStore()
	r := newTestRegistry(t, store)
	ctx := context.Background()
	existing := issueTestToken(t, r, 500)

	store.failWrites.Store(true)
	_, err := r.Issue(ctx, models.TokenMetadata{Name: "Doomed", InitialSupply: 10})
	if !errors.Is(err, ErrIssuanceFailed) {
		t.Fatalf("error = %v, want ErrIssuanceFailed", err)
	}
	if !errors.Is(err, errStoreDown) {
		t.Errorf("error %v should wrap the store failure", err)
	}

	tokens, err := r.AllTokens(ctx)
	if err != nil {
		t.Fatalf("AllTokens returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].TokenID != existing.TokenID {
		t.Errorf("AllTokens = %+v, want only the earlier token", tokens)
	}
}

func TestRegistry_IssueCancelled(t *testing.T) {
	store := repository.NewMemoryStore()
	ids, err := NewSnowflakeIDs(2)
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewTokenRepository(store, 16, time.Minute, zap.NewNop())
	r := NewRegistry(repo, ids, FixedLatency{OpIssue: time.Hour}, newTestClock().Now, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Issue(ctx, models.TokenMetadata{Name: "Late", InitialSupply: 10})

	if !errors.Is(err, ErrIssuanceFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want ErrIssuanceFailed wrapping context.Canceled", err)
	}
	if _, found, _ := store.Get(context.Background(), "all_tokens"); found {
		t.Error("cancelled issuance wrote the token list")
	}
}

func TestRegistry_PurchaseAccumulates(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 1000)

	tx1, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 10)
	if err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	tx2, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 5)
	if err != nil {
		t.Fatalf("second purchase failed: %v", err)
	}
	if tx1 == tx2 || !strings.HasPrefix(tx1, "0.0.") {
		t.Errorf("unexpected transaction IDs %q and %q", tx1, tx2)
	}

	holdings, err := r.UserTokens(ctx, "0.0.alice")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Amount != 15 {
		t.Fatalf("holdings = %+v, want one holding of 15", holdings)
	}
	if holdings[0].Token == nil || holdings[0].Token.TokenID != token.TokenID {
		t.Errorf("holding not joined with its token: %+v", holdings[0])
	}
}

func TestRegistry_PurchaseErrors(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 20)

	testCases := []struct {
		name    string
		tokenID string
		buyer   string
		amount  int64
		wantErr error
	}{
		{"unknown token", "0.0.404", "0.0.alice", 1, ErrTokenNotFound},
		{"zero amount", token.TokenID, "0.0.alice", 0, ErrInvalidAmount},
		{"negative amount", token.TokenID, "0.0.alice", -3, ErrInvalidAmount},
		{"missing buyer", token.TokenID, " ", 1, ErrInvalidAccount},
		{"beyond supply", token.TokenID, "0.0.alice", 21, ErrSupplyExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.Purchase(ctx, tc.tokenID, tc.buyer, tc.amount); !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegistry_SupplyCeiling(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 20)

	if _, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 15); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.bob", 10); !errors.Is(err, ErrSupplyExceeded) {
		t.Fatalf("error = %v, want ErrSupplyExceeded", err)
	}
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.bob", 5); err != nil {
		t.Fatalf("purchase of the remaining supply failed: %v", err)
	}

	bob, err := r.UserTokens(ctx, "0.0.bob")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(bob) != 1 || bob[0].Amount != 5 {
		t.Errorf("bob holdings = %+v, want 5", bob)
	}
}

func TestRegistry_SupplyCeilingHugeAmount(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 10)

	if _, err := r.Purchase(ctx, token.TokenID, "0.0.500", 1); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.500", math.MaxInt64); !errors.Is(err, ErrSupplyExceeded) {
		t.Fatalf("error = %v, want ErrSupplyExceeded", err)
	}

	holdings, err := r.UserTokens(ctx, "0.0.500")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Amount != 1 {
		t.Errorf("holdings = %+v, want a single holding of 1", holdings)
	}
}

func TestRegistry_PurchaseFailureLeavesHoldings(t *testing.T) {
	store := newFailingStore()
	r := newTestRegistry(t, store)
	ctx := context.Background()
	token := issueTestToken(t, r, 100)

	if _, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 10); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	store.failWrites.Store(true)
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 10); !errors.Is(err, ErrPurchaseFailed) {
		t.Fatalf("error = %v, want ErrPurchaseFailed", err)
	}
	store.failWrites.Store(false)

	holdings, err := r.UserTokens(ctx, "0.0.alice")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Amount != 10 {
		t.Errorf("holdings = %+v, want 10", holdings)
	}

	// the failed purchase did not consume supply
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.bob", 90); err != nil {
		t.Errorf("purchase of remaining supply failed: %v", err)
	}
}

func TestRegistry_ConcurrentPurchases(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 40)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		exceeded int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrSupplyExceeded):
				exceeded++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 40 || exceeded != 10 {
		t.Errorf("got %d successes and %d rejections, want 40 and 10", ok, exceeded)
	}
	holdings, err := r.UserTokens(ctx, "0.0.alice")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Amount != 40 {
		t.Errorf("holdings = %+v, want 40", holdings)
	}
}

func TestRegistry_Transfer(t *testing.T) {
	store := newFailingStore()
	r := newTestRegistry(t, store)
	ctx := context.Background()
	token := issueTestToken(t, r, 100)
	if _, err := r.Purchase(ctx, token.TokenID, "0.0.alice", 10); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if _, err := r.Transfer(ctx, token.TokenID, "0.0.alice", "0.0.bob", 4); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	assertHolding(t, r, "0.0.alice", token.TokenID, 6)
	assertHolding(t, r, "0.0.bob", token.TokenID, 4)

	if _, err := r.Transfer(ctx, token.TokenID, "0.0.alice", "0.0.bob", 7); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("error = %v, want ErrInsufficientHoldings", err)
	}
	if _, err := r.Transfer(ctx, token.TokenID, "0.0.alice", "0.0.alice", 1); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("error = %v, want ErrInvalidAccount", err)
	}
	if _, err := r.Transfer(ctx, "0.0.404", "0.0.alice", "0.0.bob", 1); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("error = %v, want ErrTokenNotFound", err)
	}

	store.failWrites.Store(true)
	if _, err := r.Transfer(ctx, token.TokenID, "0.0.alice", "0.0.bob", 1); !errors.Is(err, ErrTransferFailed) {
		t.Errorf("error = %v, want ErrTransferFailed", err)
	}
	store.failWrites.Store(false)
	assertHolding(t, r, "0.0.alice", token.TokenID, 6)

	// moving the whole balance drops the holding
	if _, err := r.Transfer(ctx, token.TokenID, "0.0.alice", "0.0.carol", 6); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	alice, err := r.UserTokens(ctx, "0.0.alice")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(alice) != 0 {
		t.Errorf("alice holdings = %+v, want none", alice)
	}
}

func assertHolding(t *testing.T, r *Registry, owner, tokenID string, want int64) {
	t.Helper()
	holdings, err := r.UserTokens(context.Background(), owner)
	if err != nil {
		t.Fatalf("UserTokens(%s) returned error: %v", owner, err)
	}
	for _, h := range holdings {
		if h.TokenID == tokenID {
			if h.Amount != want {
				t.Errorf("%s holds %d of %s, want %d", owner, h.Amount, tokenID, want)
			}
			return
		}
	}
	t.Errorf("%s holds no %s, want %d", owner, tokenID, want)
}

func TestRegistry_UserTokensDropsUnresolved(t *testing.T) {
	store := repository.NewMemoryStore()
	r := newTestRegistry(t, store)
	ctx := context.Background()
	first := issueTestToken(t, r, 100)
	second := issueTestToken(t, r, 100)

	raw, err := json.Marshal(map[string]int64{
		second.TokenID: 3,
		"0.0.gone":     7,
		first.TokenID:  9,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, repository.OwnershipKey("0.0.dave"), raw); err != nil {
		t.Fatal(err)
	}

	holdings, err := r.UserTokens(ctx, "0.0.dave")
	if err != nil {
		t.Fatalf("UserTokens returned error: %v", err)
	}
	if len(holdings) != 2 {
		t.Fatalf("holdings = %+v, want 2 resolved", holdings)
	}
	if holdings[0].TokenID != first.TokenID || holdings[0].Amount != 9 {
		t.Errorf("holdings[0] = %+v", holdings[0])
	}
	if holdings[1].TokenID != second.TokenID || holdings[1].Amount != 3 {
		t.Errorf("holdings[1] = %+v", holdings[1])
	}

	empty, err := r.UserTokens(ctx, "0.0.nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("UserTokens(nobody) = %v, %v, want empty slice", empty, err)
	}
}

func TestRegistry_Associate(t *testing.T) {
	r := newTestRegistry(t, repository.NewMemoryStore())
	ctx := context.Background()
	token := issueTestToken(t, r, 100)

	txID, err := r.Associate(ctx, token.TokenID, "0.0.erin")
	if err != nil {
		t.Fatalf("Associate returned error: %v", err)
	}
	if !strings.HasPrefix(txID, "0.0.") {
		t.Errorf("transaction ID %q has unexpected format", txID)
	}

	if _, err := r.Associate(ctx, "0.0.404", "0.0.erin"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("error = %v, want ErrTokenNotFound", err)
	}
	if _, err := r.Associate(ctx, token.TokenID, ""); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("error = %v, want ErrInvalidAccount", err)
	}
}
