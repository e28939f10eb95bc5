package dto

import (
	"time"

	"agrotoken/internal/models"
)

type ReceiptRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Vendor   string  `json:"vendor"`
}

func (r ReceiptRequest) ToModel() models.ReceiptRecord {
	return models.ReceiptRecord{
		Amount:   r.Amount,
		Currency: r.Currency,
		Date:     r.Date,
		Vendor:   r.Vendor,
	}
}

type FileMetadataRequest struct {
	CreatedDate *time.Time `json:"created_date,omitempty"`
	Size        int64      `json:"size"`
	Name        string     `json:"name"`
	Producer    string     `json:"producer"`
}

// ToModel returns nil for a nil request so callers can pass it straight through.
func (r *FileMetadataRequest) ToModel() *models.FileMetadata {
	if r == nil {
		return nil
	}
	return &models.FileMetadata{
		CreatedDate: r.CreatedDate,
		Size:        r.Size,
		Name:        r.Name,
		Producer:    r.Producer,
	}
}

type ValidateReceiptRequest struct {
	Receipt      ReceiptRequest       `json:"receipt"`
	FileMetadata *FileMetadataRequest `json:"file_metadata,omitempty"`
}

type ValidationRuleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
}

type ValidationResponse struct {
	IsValid  bool                     `json:"is_valid"`
	Score    int                      `json:"score"`
	Errors   []ValidationRuleResponse `json:"errors"`
	Warnings []ValidationRuleResponse `json:"warnings"`
	Infos    []ValidationRuleResponse `json:"infos"`
	Summary  string                   `json:"summary"`
}

type AuthenticityResponse struct {
	Score          int      `json:"score"`
	Flags          []string `json:"flags"`
	Recommendation string   `json:"recommendation"`
}

type ReceiptReviewResponse struct {
	Validation   ValidationResponse   `json:"validation"`
	Authenticity AuthenticityResponse `json:"authenticity"`
	Document     *DocumentResponse    `json:"document,omitempty"`
}

func NewValidationResponse(v models.ValidationResult) ValidationResponse {
	return ValidationResponse{
		IsValid:  v.IsValid,
		Score:    v.Score,
		Errors:   newRuleResponses(v.Errors),
		Warnings: newRuleResponses(v.Warnings),
		Infos:    newRuleResponses(v.Infos),
		Summary:  v.Summary,
	}
}

func newRuleResponses(rules []models.ValidationRule) []ValidationRuleResponse {
	out := make([]ValidationRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, ValidationRuleResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Severity:    string(r.Severity),
			Message:     r.Message,
		})
	}
	return out
}

func NewAuthenticityResponse(a models.AuthenticityResult) AuthenticityResponse {
	flags := a.Flags
	if flags == nil {
		flags = []string{}
	}
	return AuthenticityResponse{
		Score:          a.Score,
		Flags:          flags,
		Recommendation: a.Recommendation,
	}
}
