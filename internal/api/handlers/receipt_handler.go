package handlers

import (
	"errors"
	"strconv"
	"time"

	"agrotoken/internal/dto"
	"agrotoken/internal/models"
	"agrotoken/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	tokenizer  *service.TokenizationService
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewReceiptHandler(tokenizer *service.TokenizationService, docService *service.DocumentService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		tokenizer:  tokenizer,
		docService: docService,
		logger:     logger,
	}
}

// ValidateReceipt godoc
// @Summary Validate a receipt
// @Description Run the rule engine and authenticity heuristics on a parsed receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body dto.ValidateReceiptRequest true "Receipt and optional file metadata"
// @Success 200 {object} dto.ReceiptReviewResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/receipts/validate [post]
func (h *ReceiptHandler) ValidateReceipt(c *fiber.Ctx) error {
	var req dto.ValidateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	validation, authenticity := h.tokenizer.Review(req.Receipt.ToModel(), req.FileMetadata.ToModel())

	return c.JSON(dto.ReceiptReviewResponse{
		Validation:   dto.NewValidationResponse(validation),
		Authenticity: dto.NewAuthenticityResponse(authenticity),
	})
}

// UploadReceipt godoc
// @Summary Upload a receipt file
// @Description Store a receipt document and review the receipt fields submitted with it
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt document (PDF or image)"
// @Param amount formData number false "Receipt amount"
// @Param currency formData string false "ISO currency code"
// @Param date formData string false "Receipt date (RFC 3339 or YYYY-MM-DD)"
// @Param vendor formData string false "Vendor name"
// @Param created_date formData string false "File creation time (RFC 3339)"
// @Success 201 {object} dto.ReceiptReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /api/v1/receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "File is required")
	}

	receipt, err := receiptFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var createdDate *time.Time
	if raw := c.FormValue("created_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "created_date must be RFC 3339")
		}
		createdDate = &parsed
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to open file")
	}
	defer src.Close()

	doc, err := h.docService.SaveDocument(c.Context(), src, file.Filename, createdDate)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to upload receipt")
	}

	validation, authenticity := h.tokenizer.Review(receipt, &doc.Metadata)

	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptReviewResponse{
		Validation:   dto.NewValidationResponse(validation),
		Authenticity: dto.NewAuthenticityResponse(authenticity),
		Document:     dto.NewDocumentResponse(doc),
	})
}

func receiptFromForm(c *fiber.Ctx) (models.ReceiptRecord, error) {
	receipt := models.ReceiptRecord{
		Currency: c.FormValue("currency"),
		Date:     c.FormValue("date"),
		Vendor:   c.FormValue("vendor"),
	}
	if raw := c.FormValue("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return receipt, errors.New("amount must be a number")
		}
		receipt.Amount = amount
	}
	return receipt, nil
}

// Tokenize godoc
// @Summary Tokenize a receipt
// @Description Validate, convert and issue a token backed by the receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body dto.TokenizeRequest true "Receipt and issuance options"
// @Success 201 {object} dto.TokenizeResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} dto.TokenizeResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/tokenize [post]
func (h *ReceiptHandler) Tokenize(c *fiber.Ctx) error {
	var req dto.TokenizeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.tokenizer.Tokenize(c.Context(), service.TokenizeRequest{
		Receipt:           req.Receipt.ToModel(),
		FileMetadata:      req.FileMetadata.ToModel(),
		TreasuryAccountID: req.TreasuryAccountID,
		Name:              req.Name,
		Symbol:            req.Symbol,
	})
	if errors.Is(err, service.ErrReceiptRejected) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(newTokenizeResponse(result))
	}
	if err != nil {
		return respondError(c, h.logger, err, "Failed to tokenize receipt")
	}

	return c.Status(fiber.StatusCreated).JSON(newTokenizeResponse(result))
}

func newTokenizeResponse(result *service.TokenizeResult) dto.TokenizeResponse {
	return dto.TokenizeResponse{
		RequestID:    result.RequestID.String(),
		Validation:   dto.NewValidationResponse(result.Validation),
		Authenticity: dto.NewAuthenticityResponse(result.Authenticity),
		Conversion:   result.Conversion,
		Token:        dto.NewTokenResponse(result.Token),
	}
}
