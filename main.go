package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"litter-cleanup-system/config"
	"litter-cleanup-system/handlers"
	"litter-cleanup-system/middleware"
	"litter-cleanup-system/models"
	"litter-cleanup-system/services"
	"litter-cleanup-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: (cfg.Photo.MaxSizeMB + 1) * 1024 * 1024,
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware(cfg.Sync.ServiceToken))

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max: cfg.RateLimit.GeneralPerMin,
	}))

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Report{},
		&models.ReportVerification{},
		&models.UserScore{},
		&models.ScoreEvent{},
		&models.CleanupUser{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	photoStore, err := services.NewPhotoStore(cfg.S3)
	if err != nil {
		log.Fatal("failed to initialize photo store:", err)
	}

	clock := services.UTCClock{}
	spatial := services.NewPostGISIndex(db)
	userDirectory := services.NewUserDirectory(db)
	scoringService := services.NewScoringService(db, cfg.Scoring, clock, spatial)
	reportService := services.NewReportService(db, scoringService, userDirectory, spatial, clock)
	verificationService := services.NewVerificationService(db, scoringService)
	feedService := services.NewFeedService(db)

	if cfg.Sync.ServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}

	syncWorker := workers.NewUserSyncWorker(db, cfg.Sync.ServiceURL, cfg.Sync.EndpointPath, cfg.Sync.ServiceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Starting User Sync Worker...")
		syncWorker.Start(ctx)
	}()

	scoringService.StartLedgerRetention(cfg.Scoring.LedgerRetentionDays)

	// ✅ Setup routes — now with enforced Gateway auth
	handlers.SetupReportRoutes(app, reportService, photoStore, cfg)
	handlers.SetupVerificationRoutes(app, verificationService, cfg)
	handlers.SetupLeaderboardRoutes(app, scoringService)
	handlers.SetupFeedRoutes(app, feedService)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://%s", addr)
	log.Println("✅ User Sync Worker running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
