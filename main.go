package main

import (
	"log"
	"time"

	"github.com/fenilmodi00/raffle-admin/config"
	"github.com/fenilmodi00/raffle-admin/database"
	"github.com/fenilmodi00/raffle-admin/handlers"
	"github.com/fenilmodi00/raffle-admin/jobs"
	"github.com/fenilmodi00/raffle-admin/services"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if cfg.ShopDomain == "" || cfg.AdminAPIToken == "" {
		log.Fatal("SHOP_DOMAIN and ADMIN_API_TOKEN must be configured")
	}

	// Connect to the optional audit database
	var auditService *services.AuditService
	if cfg.DatabaseURL != "" {
		if err := database.Connect(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to connect to audit database: %v", err)
		}
		defer database.Close()

		if err := database.Migrate("database/schema.sql"); err != nil {
			log.Printf("Migration warning: %v", err)
		}

		auditService = services.NewAuditService(database.DB)
	} else {
		logrus.Warn("DATABASE_URL not set, create-attempt audit log disabled")
	}

	// Initialize services
	clientFactory := shared.NewHTTPClientFactory(cfg.GetAdminTimeout())
	platformClient := services.NewShopifyAdminClient(cfg, clientFactory)
	cacheService := services.NewCacheService(cfg.GetListCacheTTL(), 1000)
	raffleService := services.NewRaffleService(platformClient, cacheService, auditService)

	logrus.WithFields(logrus.Fields{
		"shop_domain":    cfg.ShopDomain,
		"api_version":    cfg.AdminAPIVersion,
		"admin_timeout":  cfg.GetAdminTimeout(),
		"list_cache_ttl": cfg.GetListCacheTTL(),
		"audit_enabled":  auditService != nil,
	}).Info("Raffle admin services initialized")

	// Initialize handlers
	productHandler := handlers.NewProductHandler(raffleService)
	raffleHandler := handlers.NewRaffleHandler(raffleService)
	pageHandler := handlers.NewPageHandler(raffleService)
	adminHandler := handlers.NewAdminHandler(raffleService, auditService, platformClient.Metrics)

	// Initialize background jobs
	listRefreshJob := jobs.NewListRefreshJob(raffleService)
	cleanupJob := jobs.NewCacheCleanupJob(cacheService)

	go func() {
		// Warm the list cache on startup
		go listRefreshJob.Run()

		refreshTicker := time.NewTicker(cfg.GetListCacheTTL())
		cleanupTicker := time.NewTicker(30 * time.Minute)

		for {
			select {
			case <-refreshTicker.C:
				listRefreshJob.Run()
			case <-cleanupTicker.C:
				cleanupJob.Run()
			}
		}
	}()

	// Setup Fiber with the admin page template engine
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Admin pages
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/raffles", fiber.StatusSeeOther)
	})
	app.Get("/raffles", pageHandler.RafflesPage)
	app.Get("/raffles/new", pageHandler.NewRafflePage)
	app.Post("/raffles/new", pageHandler.SubmitRafflePage)

	// JSON API
	api := app.Group("/api/v1")

	api.Get("/products/search", productHandler.SearchProducts)
	api.Get("/raffles", raffleHandler.ListRaffles)
	api.Post("/raffles", raffleHandler.CreateRaffle)

	// Admin routes
	admin := api.Group("/admin")
	// TODO: Add auth middleware
	admin.Get("/audit", adminHandler.GetAuditLog)
	admin.Post("/cache/refresh", adminHandler.RefreshListCache)

	// Performance routes
	api.Get("/performance/metrics", adminHandler.GetPerformanceMetrics)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
