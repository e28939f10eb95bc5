package handlers

import (
	"errors"

	"agrotoken/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps service sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrUnsupportedCurrency):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrTokenNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSupplyExceeded),
		errors.Is(err, service.ErrInsufficientHoldings):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrReceiptRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRateUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Client errors echo the service message;
// server errors are logged and replaced by fallback.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": fallback,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
