package service

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"agrotoken/internal/models"
)

var supportedCurrencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CHF", "CNY"}

var agriculturalKeywords = []string{
	"farm",
	"seed",
	"fertilizer",
	"equipment",
	"supply",
	"agricultural",
	"agri",
	"crop",
	"livestock",
	"feed",
	"grain",
	"harvest",
	"tractor",
	"irrigation",
}

// DefaultRules returns the receipt rule table in evaluation order.
func DefaultRules() []models.ValidationRule {
	return []models.ValidationRule{
		{
			ID:          "date_recent",
			Name:        "Recent Date",
			Description: "Receipt must be from within the last 24 hours",
			Severity:    models.SeverityError,
			Check: func(r models.ReceiptRecord, now time.Time) bool {
				date, ok := r.ParsedDate()
				return ok && now.Sub(date) <= 24*time.Hour
			},
			Message: "Receipt date must be within the last 24 hours",
		},
		{
			ID:          "amount_valid",
			Name:        "Valid Amount",
			Description: "Receipt must have a valid payment amount",
			Severity:    models.SeverityError,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return r.Amount > 0
			},
			Message: "Receipt must contain a valid payment amount greater than 0",
		},
		{
			ID:          "currency_supported",
			Name:        "Supported Currency",
			Description: "Currency must be supported by the platform",
			Severity:    models.SeverityError,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return r.Currency != "" && slices.Contains(supportedCurrencies, strings.ToUpper(r.Currency))
			},
			Message: "Currency is not supported by the platform",
		},
		{
			ID:          "vendor_present",
			Name:        "Vendor Information",
			Description: "Receipt must contain vendor information",
			Severity:    models.SeverityError,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return utf8.RuneCountInString(strings.TrimSpace(r.Vendor)) >= 3
			},
			Message: "Receipt must contain valid vendor information",
		},
		{
			ID:          "amount_reasonable",
			Name:        "Reasonable Amount",
			Description: "Amount should be within typical agricultural purchase range",
			Severity:    models.SeverityWarning,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return r.Amount >= 50 && r.Amount <= 50000
			},
			Message: "Amount seems unusually high or low for agricultural purchases",
		},
		{
			ID:          "vendor_agricultural",
			Name:        "Agricultural Vendor",
			Description: "Vendor appears to be agriculture-related",
			Severity:    models.SeverityWarning,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				vendor := strings.ToLower(r.Vendor)
				return vendor != "" && slices.ContainsFunc(agriculturalKeywords, func(k string) bool {
					return strings.Contains(vendor, k)
				})
			},
			Message: "Vendor may not be agriculture-related",
		},
		{
			ID:          "date_not_future",
			Name:        "Not Future Date",
			Description: "Receipt date should not be in the future",
			Severity:    models.SeverityWarning,
			Check: func(r models.ReceiptRecord, now time.Time) bool {
				if !r.HasDate() {
					return true
				}
				date, ok := r.ParsedDate()
				return ok && !date.After(now)
			},
			Message: "Receipt date appears to be in the future",
		},
		{
			ID:          "format_standard",
			Name:        "Standard Format",
			Description: "Receipt follows standard formatting",
			Severity:    models.SeverityInfo,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return r.HasDate() && r.Amount != 0 && !math.IsNaN(r.Amount) && r.Vendor != "" && r.Currency != ""
			},
			Message: "Receipt contains all standard fields",
		},
		{
			ID:          "high_value",
			Name:        "High Value Transaction",
			Description: "Transaction is of significant value",
			Severity:    models.SeverityInfo,
			Check: func(r models.ReceiptRecord, _ time.Time) bool {
				return r.Amount > 5000
			},
			Message: "This is a high-value transaction",
		},
	}
}

// ReceiptValidator evaluates a fixed rule table against receipts. It never
// fails: malformed input just fails the rules that look at it.
type ReceiptValidator struct {
	rules []models.ValidationRule
	clock Clock
}

func NewReceiptValidator(clock Clock) *ReceiptValidator {
	return NewReceiptValidatorWithRules(clock, DefaultRules())
}

func NewReceiptValidatorWithRules(clock Clock, rules []models.ValidationRule) *ReceiptValidator {
	return &ReceiptValidator{
		rules: slices.Clone(rules),
		clock: clock,
	}
}

// Rules returns a copy of the rule table.
func (v *ReceiptValidator) Rules() []models.ValidationRule {
	return slices.Clone(v.rules)
}

func (v *ReceiptValidator) Validate(receipt models.ReceiptRecord) models.ValidationResult {
	now := v.clock.Now()
	result := models.ValidationResult{
		Errors:   []models.ValidationRule{},
		Warnings: []models.ValidationRule{},
		Infos:    []models.ValidationRule{},
	}

	scored := 0
	for _, rule := range v.rules {
		passed := rule.Check != nil && rule.Check(receipt, now)

		switch rule.Severity {
		case models.SeverityError:
			scored++
			if !passed {
				result.Errors = append(result.Errors, rule)
			}
		case models.SeverityWarning:
			scored++
			if !passed {
				result.Warnings = append(result.Warnings, rule)
			}
		case models.SeverityInfo:
			// info rules only report positive findings
			if passed {
				result.Infos = append(result.Infos, rule)
			}
		}
	}

	result.Score = 100
	if scored > 0 {
		passed := scored - len(result.Errors) - len(result.Warnings)
		result.Score = clampScore(int(math.Round(100 * float64(passed) / float64(scored))))
	}
	result.IsValid = len(result.Errors) == 0
	result.Summary = summarize(len(result.Errors), len(result.Warnings))

	switch {
	case !result.IsValid:
		validationsTotal.WithLabelValues("invalid").Inc()
	case len(result.Warnings) > 0:
		validationsTotal.WithLabelValues("warning").Inc()
	default:
		validationsTotal.WithLabelValues("valid").Inc()
	}

	return result
}

func summarize(errCount, warnCount int) string {
	switch {
	case errCount > 0:
		return fmt.Sprintf("Receipt failed validation with %d %s", errCount, plural(errCount, "error"))
	case warnCount > 0:
		return fmt.Sprintf("Receipt is valid with %d %s", warnCount, plural(warnCount, "warning"))
	default:
		return "Receipt passed all validation checks"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
