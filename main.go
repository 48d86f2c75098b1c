// main.go - Sistema Coringas API server
package main

import (
	"log"
	"os"
	"time"

	"coringas/database"
	"coringas/handlers"
	"coringas/handlers/admin"
	"coringas/middleware"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	events := services.NewEventBroker()
	questService := services.NewQuestService(db, events)
	teamService := services.NewTeamService(db, questService)
	rankingService := services.NewRankingService(db)
	whatsappService := services.NewWhatsAppService(db)

	storageService, err := services.NewStorageService()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if !storageService.Configured() {
		log.Println("Warning: object storage not configured, quest document uploads disabled")
	}

	// Quest schedule window runner
	scheduler := services.NewQuestScheduler(questService, whatsappService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start quest scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db)
	gameHandler := handlers.NewGameHandler(db)
	questHandler := handlers.NewQuestHandler(db, questService, teamService)
	teamHandler := handlers.NewTeamHandler(teamService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	wsHandler := handlers.NewWSHandler(events)

	adminMembers := admin.NewMemberHandler(db, whatsappService)
	adminGames := admin.NewGameHandler(db)
	adminQuests := admin.NewQuestHandler(db, questService, storageService)
	adminTeams := admin.NewTeamHandler(teamService)
	adminEvaluations := admin.NewEvaluationHandler(questService)
	adminSettings := admin.NewSettingsHandler(db, whatsappService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    8 * 1024 * 1024, // 8MB, quest documents included
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Member profile routes
	memberGroup := api.Group("/members")
	memberGroup.Use(middleware.AuthMiddleware)
	memberGroup.Get("/me", authHandler.Me)
	memberGroup.Put("/me", authHandler.UpdateMe)

	// Game routes
	api.Get("/games", gameHandler.ListGames)
	api.Get("/games/:id", gameHandler.GetGame)

	gameGroup := api.Group("/games")
	gameGroup.Use(middleware.AuthMiddleware)
	gameGroup.Get("/:id/quests", questHandler.ListGameQuests)
	gameGroup.Get("/:id/ranking", rankingHandler.GetRanking)
	gameGroup.Get("/:id/my-team", teamHandler.GetMyTeam)

	// Quest routes
	questGroup := api.Group("/quests")
	questGroup.Use(middleware.AuthMiddleware)
	questGroup.Get("/:id", questHandler.GetQuest)
	questGroup.Post("/:id/submit", questHandler.SubmitAnswer)

	// Team routes
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Post("/", teamHandler.CreateTeam)
	teamGroup.Get("/:id/members", teamHandler.GetTeamMembers)
	teamGroup.Post("/:id/join", teamHandler.JoinTeam)
	teamGroup.Post("/:id/members/:membershipId/approve", teamHandler.ApproveJoiner)
	teamGroup.Post("/:id/members/:membershipId/reject", teamHandler.RejectJoiner)
	teamGroup.Delete("/:id/members/:membershipId", teamHandler.RemoveMember)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)

	// Member approval workflow
	adminGroup.Get("/members", adminMembers.GetMembers)
	adminGroup.Post("/members/:id/approve", adminMembers.ApproveMember)
	adminGroup.Post("/members/:id/reject", adminMembers.RejectMember)

	// Game management
	adminGroup.Get("/games", adminGames.GetGames)
	adminGroup.Post("/games", adminGames.CreateGame)
	adminGroup.Put("/games/:id", adminGames.UpdateGame)

	// Quest management
	adminGroup.Get("/games/:id/quests", adminQuests.GetGameQuests)
	adminGroup.Post("/games/:id/quests", adminQuests.CreateQuest)
	adminGroup.Put("/quests/:id", adminQuests.UpdateQuest)
	adminGroup.Post("/quests/:id/activate", adminQuests.ActivateQuest)
	adminGroup.Post("/quests/:id/deactivate", adminQuests.DeactivateQuest)
	adminGroup.Post("/quests/:id/finalize", adminQuests.FinalizeQuest)
	adminGroup.Post("/quests/:id/document", adminQuests.UploadDocument)

	// Evaluation
	adminGroup.Get("/quests/:id/submissions", adminQuests.GetSubmissions)
	adminGroup.Post("/evaluations", adminEvaluations.Evaluate)

	// Team approval
	adminGroup.Get("/games/:id/teams", adminTeams.GetGameTeams)
	adminGroup.Post("/teams/:id/activate", adminTeams.ActivateTeam)
	adminGroup.Post("/teams/:id/reject", adminTeams.RejectTeam)

	// Settings
	adminGroup.Get("/settings/whatsapp", adminSettings.GetWhatsAppSettings)
	adminGroup.Put("/settings/whatsapp", adminSettings.UpdateWhatsAppSettings)
	adminGroup.Get("/settings/billing", adminSettings.GetBillingSettings)
	adminGroup.Put("/settings/billing", adminSettings.UpdateBillingSettings)

	// Realtime feed
	app.Use("/ws", wsHandler.Upgrade)
	app.Get("/ws/games/:id", wsHandler.GameFeed())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
