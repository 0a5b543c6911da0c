package routes

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/payout-desk/payout_desk/internal/auth"
	"github.com/payout-desk/payout_desk/internal/config"
	"github.com/payout-desk/payout_desk/internal/identity"
	"github.com/payout-desk/payout_desk/internal/middleware"
	"github.com/payout-desk/payout_desk/internal/withdrawal"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. A nil DB wires the
// in-memory repositories, which is how the handler tests run.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// CORS stays wide open; the dashboard may be hosted anywhere. Lock this
	// down at the network layer when deploying.
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	app.Use(middleware.RateLimit(d.Cache, d.Cfg.RateLimitMax, d.Cfg.RateLimitWindow))

	RegisterHealthRoutes(app, d)

	var identityRepo identity.Repository
	var withdrawalRepo withdrawal.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		withdrawalRepo = withdrawal.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		withdrawalRepo = withdrawal.NewMemoryRepository()
	}

	identitySvc := identity.NewService(identityRepo)
	if err := identitySvc.EnsureAdmin(context.Background(), d.Cfg.AdminUsername, d.Cfg.AdminPassword); err != nil {
		return err
	}

	tokens := auth.NewService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	authHandler := auth.NewHandler(identitySvc, tokens)
	withdrawalHandler := withdrawal.NewHandler(withdrawal.NewService(withdrawalRepo))

	api := app.Group("/api")
	RegisterAuthRoutes(api, authHandler)
	RegisterWithdrawalRoutes(api, withdrawalHandler, tokens)

	// Dashboard frontend; the root path serves its entry document.
	if d.Cfg.StaticDir != "" {
		app.Static("/", d.Cfg.StaticDir)
	}

	return nil
}
