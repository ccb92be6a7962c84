package app

import (
	"agrifund-backend/internal/auth"
	"agrifund-backend/internal/config"
	"agrifund-backend/internal/database"
	"agrifund-backend/internal/funding"
	"agrifund-backend/internal/health"
	"agrifund-backend/internal/middleware"
	"agrifund-backend/internal/treasury"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis client for startup checks and the
// scheduler.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{}))

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health (no auth)
	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/health/json", healthHandlers.JSON)

	// Auth (no auth middleware): register, login, me, logout
	authHandlers := &auth.Handlers{DB: db, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil {
		treasuryService := &treasury.Service{DB: db}
		treasuryHandlers := &treasury.Handlers{Service: treasuryService}
		treasuryGroup := app.Group("/api/v1/treasury", middleware.RequireAuth())
		treasuryGroup.Post("/deposit", treasuryHandlers.Deposit)
		treasuryGroup.Get("/view-balance", treasuryHandlers.ViewBalance)
		treasuryGroup.Get("/view-transfers", treasuryHandlers.ViewTransfers)

		fundingService := &funding.Service{
			DB:                   db,
			Treasury:             treasuryService,
			AllowExpiredWithdraw: cfg.AllowExpiredWithdraw,
		}
		fundingHandlers := &funding.Handlers{Service: fundingService}
		campaignGroup := app.Group("/api/v1/campaigns", middleware.RequireAuth())
		campaignGroup.Post("/create-campaign", fundingHandlers.CreateCampaign)
		campaignGroup.Get("/get-all-campaigns", fundingHandlers.GetAllCampaigns)
		campaignGroup.Get("/get-campaign/:id", fundingHandlers.GetCampaign)
		campaignGroup.Get("/get-investors/:id", fundingHandlers.GetInvestors)
		campaignGroup.Get("/get-events/:id", fundingHandlers.GetEvents)
		campaignGroup.Post("/invest", fundingHandlers.Invest)
		campaignGroup.Post("/withdraw", fundingHandlers.Withdraw)
		campaignGroup.Post("/return-profits", fundingHandlers.ReturnProfits)
		campaignGroup.Post("/refund", fundingHandlers.Refund)
	}

	return app, db, rdb, nil
}
