package service

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"agrotoken/internal/models"

	"golang.org/x/crypto/blake2b"
)

// sanitizeUTF8 drops invalid UTF-8 sequences so vendor-derived names
// round-trip through JSON and the database unchanged.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// ReceiptHash fingerprints the receipt fields that back a token.
// Equal receipts hash equally regardless of currency case or vendor padding.
func ReceiptHash(r models.ReceiptRecord) string {
	canonical := strings.Join([]string{
		strconv.FormatFloat(r.Amount, 'f', -1, 64),
		strings.ToUpper(strings.TrimSpace(r.Currency)),
		strings.TrimSpace(r.Date),
		strings.TrimSpace(r.Vendor),
	}, "|")
	sum := blake2b.Sum256([]byte(canonical))
	return "blake2b:" + hex.EncodeToString(sum[:])
}
