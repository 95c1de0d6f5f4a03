package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/balances/internal/accounts"
	"github.com/congo-pay/balances/internal/config"
	"github.com/congo-pay/balances/internal/ledger"
	"github.com/congo-pay/balances/internal/middleware"
	"github.com/congo-pay/balances/internal/notification"
	"github.com/congo-pay/balances/internal/transfers"
)

const transferRateWindow = time.Minute

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Ledger ledger.Ledger
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Ledger == nil {
		return fmt.Errorf("ledger is required")
	}
	// Enforce Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() && d.Cache == nil {
		return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	notifier := notification.NewLoggerNotifier(d.Logger)
	accountHandler := accounts.NewHandler(accounts.NewService(d.Ledger, d.Logger))
	transferHandler := transfers.NewHandler(transfers.NewService(d.Ledger, notifier, d.Logger))

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals(middleware.RequestIDKey).(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	var idempotency fiber.Handler
	if d.Cache != nil {
		idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	rateLimit := middleware.RateLimit(d.Cache, "transfer", d.Cfg.TransferRateLimit, transferRateWindow, middleware.BodyField("from"))
	admin := middleware.AdminAuth(d.Cfg.AdminTokenHash)

	RegisterAccountRoutes(api, accountHandler, admin)
	RegisterTransferRoutes(api, transferHandler, rateLimit, idempotency)

	return nil
}
