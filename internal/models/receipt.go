package models

import (
	"strings"
	"time"
)

// ReceiptRecord is the structured output of document intake. Fields may be
// missing or malformed; validation classifies them rather than rejecting.
type ReceiptRecord struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"` // ISO-8601
	Vendor   string  `json:"vendor"`
}

var receiptDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsedDate returns the receipt date, or false when it is missing or not ISO-8601.
func (r ReceiptRecord) ParsedDate() (time.Time, bool) {
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range receiptDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HasDate reports whether a date value was supplied at all, parseable or not.
func (r ReceiptRecord) HasDate() bool {
	return strings.TrimSpace(r.Date) != ""
}
