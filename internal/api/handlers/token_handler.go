package handlers

import (
	"agrotoken/internal/dto"
	"agrotoken/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TokenHandler struct {
	registry *service.Registry
	logger   *zap.Logger
}

func NewTokenHandler(registry *service.Registry, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		registry: registry,
		logger:   logger,
	}
}

// IssueToken godoc
// @Summary Issue a token
// @Description Create a receipt-backed token from explicit metadata
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "Token metadata"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/tokens [post]
func (h *TokenHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.IssueTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Symbol == "" || req.TreasuryAccountID == "" {
		return badRequest(c, "name, symbol and treasury_account_id are required")
	}
	if req.Decimals < 0 || req.Decimals > 18 {
		return badRequest(c, "decimals must be between 0 and 18")
	}

	token, err := h.registry.Issue(c.Context(), req.ToModel())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTokenResponse(token))
}

// ListTokens godoc
// @Summary List issued tokens
// @Tags tokens
// @Produce json
// @Success 200 {array} dto.TokenResponse
// @Router /api/v1/tokens [get]
func (h *TokenHandler) ListTokens(c *fiber.Ctx) error {
	tokens, err := h.registry.AllTokens(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list tokens")
	}

	return c.JSON(dto.NewTokenResponses(tokens))
}

// GetToken godoc
// @Summary Get a token
// @Tags tokens
// @Produce json
// @Param id path string true "Token ID"
// @Success 200 {object} dto.TokenResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/tokens/{id} [get]
func (h *TokenHandler) GetToken(c *fiber.Ctx) error {
	token, err := h.registry.TokenInfo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load token")
	}
	if token == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Token not found",
		})
	}

	return c.JSON(dto.NewTokenResponse(token))
}

// PurchaseToken godoc
// @Summary Purchase tokens
// @Description Credit smallest units of a token to the buyer, capped by the issued supply
// @Tags tokens
// @Accept json
// @Produce json
// @Param id path string true "Token ID"
// @Param request body dto.PurchaseRequest true "Buyer and amount in smallest units"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/tokens/{id}/purchase [post]
func (h *TokenHandler) PurchaseToken(c *fiber.Ctx) error {
	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tokenID := c.Params("id")
	txID, err := h.registry.Purchase(c.Context(), tokenID, req.Buyer, req.Amount)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to purchase tokens")
	}

	return c.JSON(dto.TransactionResponse{TransactionID: txID, TokenID: tokenID, Status: "SUCCESS"})
}

// TransferToken godoc
// @Summary Transfer tokens
// @Tags tokens
// @Accept json
// @Produce json
// @Param id path string true "Token ID"
// @Param request body dto.TransferRequest true "Sender, recipient and amount in smallest units"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/tokens/{id}/transfer [post]
func (h *TokenHandler) TransferToken(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tokenID := c.Params("id")
	txID, err := h.registry.Transfer(c.Context(), tokenID, req.From, req.To, req.Amount)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to transfer tokens")
	}

	return c.JSON(dto.TransactionResponse{TransactionID: txID, TokenID: tokenID, Status: "SUCCESS"})
}

// AssociateToken godoc
// @Summary Associate an account with a token
// @Tags tokens
// @Accept json
// @Produce json
// @Param id path string true "Token ID"
// @Param request body dto.AssociateRequest true "Account to associate"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/tokens/{id}/associate [post]
func (h *TokenHandler) AssociateToken(c *fiber.Ctx) error {
	var req dto.AssociateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tokenID := c.Params("id")
	txID, err := h.registry.Associate(c.Context(), tokenID, req.Account)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to associate account")
	}

	return c.JSON(dto.TransactionResponse{TransactionID: txID, TokenID: tokenID, Status: "SUCCESS"})
}

// AccountTokens godoc
// @Summary List an account's holdings
// @Tags tokens
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {array} dto.HoldingResponse
// @Router /api/v1/accounts/{address}/tokens [get]
func (h *TokenHandler) AccountTokens(c *fiber.Ctx) error {
	holdings, err := h.registry.UserTokens(c.Context(), c.Params("address"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load holdings")
	}

	return c.JSON(dto.NewHoldingResponses(holdings))
}
