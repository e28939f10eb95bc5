package models

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleCheck reports whether the receipt satisfies a rule at evaluation time now.
type RuleCheck func(r ReceiptRecord, now time.Time) bool

// ValidationRule is one declarative check.
type ValidationRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Check       RuleCheck `json:"-"`
	Message     string    `json:"message"`
}

type ValidationResult struct {
	IsValid  bool             `json:"is_valid"`
	Score    int              `json:"score"`
	Errors   []ValidationRule `json:"errors"`
	Warnings []ValidationRule `json:"warnings"`
	Infos    []ValidationRule `json:"infos"`
	Summary  string           `json:"summary"`
}

type AuthenticityResult struct {
	Score          int      `json:"score"`
	Flags          []string `json:"flags"`
	Recommendation string   `json:"recommendation"`
}
