package service

import (
	"math"
	"strings"
	"time"

	"agrotoken/internal/models"
)

const (
	FlagRecentFile    = "PDF was created very recently"
	FlagFakeProducer  = "PDF producer suggests artificial generation"
	FlagRoundAmount   = "Amount is a round number, which is uncommon for real purchases"
	FlagWeekendDate   = "Receipt is dated on a weekend when many suppliers are closed"
	FlagRecentReceipt = "Receipt timestamp is very recent (less than 30 minutes ago)"
)

const (
	recentFilePenalty   = 20
	fakeProducerPenalty = 30
	contentFlagPenalty  = 10
)

const (
	RecommendAuthentic = "Receipt appears authentic and can be safely tokenized"
	RecommendCaution   = "Receipt has some suspicious elements but may be valid - proceed with caution"
	RecommendReview    = "Receipt shows multiple signs of being inauthentic - manual review recommended"
)

// AuthenticityChecker scores fraud signals independently of rule validation.
type AuthenticityChecker struct {
	clock Clock
}

func NewAuthenticityChecker(clock Clock) *AuthenticityChecker {
	return &AuthenticityChecker{clock: clock}
}

// DetectSuspiciousPatterns inspects receipt content only.
func (a *AuthenticityChecker) DetectSuspiciousPatterns(receipt models.ReceiptRecord) []string {
	return a.detect(receipt, a.clock.Now())
}

func (a *AuthenticityChecker) detect(receipt models.ReceiptRecord, now time.Time) []string {
	flags := []string{}

	if receipt.Amount > 1000 && math.Mod(receipt.Amount, 100) == 0 {
		flags = append(flags, FlagRoundAmount)
	}

	if date, ok := receipt.ParsedDate(); ok {
		// weekday in the receipt's own offset
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			flags = append(flags, FlagWeekendDate)
		}
		if now.Sub(date) < 30*time.Minute {
			flags = append(flags, FlagRecentReceipt)
		}
	}

	return flags
}

// Check scores a receipt and optional file metadata. meta may be nil.
func (a *AuthenticityChecker) Check(receipt models.ReceiptRecord, meta *models.FileMetadata) models.AuthenticityResult {
	now := a.clock.Now()
	flags := []string{}
	score := 100

	if meta != nil {
		if meta.CreatedDate != nil && now.Sub(*meta.CreatedDate) < time.Hour {
			flags = append(flags, FlagRecentFile)
			score -= recentFilePenalty
		}
		if strings.Contains(meta.Producer, "fake") {
			flags = append(flags, FlagFakeProducer)
			score -= fakeProducerPenalty
		}
	}

	patterns := a.detect(receipt, now)
	flags = append(flags, patterns...)
	score -= len(patterns) * contentFlagPenalty

	score = clampScore(score)

	return models.AuthenticityResult{
		Score:          score,
		Flags:          flags,
		Recommendation: recommend(score),
	}
}

func recommend(score int) string {
	switch {
	case score >= 80:
		return RecommendAuthentic
	case score >= 60:
		return RecommendCaution
	default:
		return RecommendReview
	}
}
