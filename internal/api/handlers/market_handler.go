package handlers

import (
	"time"

	"agrotoken/internal/dto"
	"agrotoken/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MarketHandler struct {
	converter *service.Converter
	logger    *zap.Logger
}

func NewMarketHandler(converter *service.Converter, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		converter: converter,
		logger:    logger,
	}
}

// Convert godoc
// @Summary Convert a receipt amount
// @Description Convert a fiat amount into USD, the settlement asset and a token amount
// @Tags market
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Amount and currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/conversions [post]
func (h *MarketHandler) Convert(c *fiber.Ctx) error {
	var req dto.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.converter.Convert(c.Context(), req.Amount, req.Currency)
	if err != nil {
		return respondError(c, h.logger, err, "Exchange rates unavailable")
	}

	return c.JSON(result)
}

// Currencies godoc
// @Summary List supported currencies
// @Tags market
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Router /api/v1/currencies [get]
func (h *MarketHandler) Currencies(c *fiber.Ctx) error {
	h.converter.RefreshRates(c.Context())

	codes := h.converter.SupportedCurrencies()
	out := make([]dto.CurrencyResponse, 0, len(codes))
	for _, code := range codes {
		rate, ok := h.converter.ExchangeRate(code)
		if !ok {
			continue
		}
		out = append(out, dto.CurrencyResponse{
			Currency:    rate.Currency,
			RateToUSD:   rate.RateToUSD,
			LastUpdated: rate.LastUpdated.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(out)
}

// Market godoc
// @Summary Market snapshot
// @Description Settlement asset price and fiat rates with 24h changes
// @Tags market
// @Produce json
// @Success 200 {object} dto.MarketDataResponse
// @Router /api/v1/market [get]
func (h *MarketHandler) Market(c *fiber.Ctx) error {
	return c.JSON(h.converter.MarketData(c.Context()))
}
