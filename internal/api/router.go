package api

import (
	"os"

	"agrotoken/docs"
	"agrotoken/internal/api/handlers"
	"agrotoken/pkg/config"
	"agrotoken/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// bodyLimit leaves room for a 10 MiB receipt plus multipart overhead.
const bodyLimit = 11 << 20

type Handlers struct {
	Receipts *handlers.ReceiptHandler
	Market   *handlers.MarketHandler
	Tokens   *handlers.TokenHandler
	Health   *handlers.HealthHandler
}

func SetupRouter(h Handlers, cfg *config.Config, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())
	app.Use(middleware.Metrics())

	_ = docs.SwaggerInfo // registers the OpenAPI document with swag
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", h.Health.Health)

	if uploadDir := cfg.Server.UploadDir; uploadDir != "" && dirExists(uploadDir) {
		appLogger.Info("Serving uploads", zap.String("path", uploadDir))
		app.Static("/uploads", uploadDir)
	}

	v1 := app.Group("/api/v1", middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, appLogger))

	receipts := v1.Group("/receipts")
	receipts.Post("/validate", h.Receipts.ValidateReceipt)
	receipts.Post("/upload", h.Receipts.UploadReceipt)
	v1.Post("/tokenize", h.Receipts.Tokenize)

	v1.Post("/conversions", h.Market.Convert)
	v1.Get("/currencies", h.Market.Currencies)
	v1.Get("/market", h.Market.Market)

	tokens := v1.Group("/tokens")
	tokens.Post("", h.Tokens.IssueToken)
	tokens.Get("", h.Tokens.ListTokens)
	tokens.Get("/:id", h.Tokens.GetToken)
	tokens.Post("/:id/purchase", h.Tokens.PurchaseToken)
	tokens.Post("/:id/transfer", h.Tokens.TransferToken)
	tokens.Post("/:id/associate", h.Tokens.AssociateToken)

	v1.Get("/accounts/:address/tokens", h.Tokens.AccountTokens)

	return app
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
