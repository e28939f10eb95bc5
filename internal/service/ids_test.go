package service

import (
	"regexp"
	"testing"
)

var (
	tokenIDPattern       = regexp.MustCompile(`^0\.0\.\d+$`)
	transactionIDPattern = regexp.MustCompile(`^0\.0\.\d+-\d+-\d{1,2}$`)
)

func TestSnowflakeIDs_UniqueAndFormatted(t *testing.T) {
	ids, err := NewSnowflakeIDs(7)
	if err != nil {
		t.Fatalf("NewSnowflakeIDs returned error: %v", err)
	}

	seen := make(map[string]struct{}, 2000)
	for i := 0; i < 1000; i++ {
		tokenID := ids.TokenID()
		txID := ids.TransactionID()

		if !tokenIDPattern.MatchString(tokenID) {
			t.Fatalf("token ID %q has unexpected format", tokenID)
		}
		if !transactionIDPattern.MatchString(txID) {
			t.Fatalf("transaction ID %q has unexpected format", txID)
		}
		for _, id := range []string{tokenID, txID} {
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate ID %q after %d iterations", id, i)
			}
			seen[id] = struct{}{}
		}
	}
}

func TestNewSnowflakeIDs_RejectsBadNode(t *testing.T) {
	if _, err := NewSnowflakeIDs(-1); err == nil {
		t.Error("expected error for negative node ID")
	}
	if _, err := NewSnowflakeIDs(1 << 20); err == nil {
		t.Error("expected error for node ID out of range")
	}
}
