package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bingo-archive-system/handlers"
	"bingo-archive-system/middleware"
	"bingo-archive-system/models"
	"bingo-archive-system/services"
	"bingo-archive-system/utils"
	"bingo-archive-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const snapshotTTL = 5 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024, // board images only, nothing huge
	})

	// All traffic must come through the gateway.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if !utils.R2Enabled() {
		log.Println("R2 not configured, board images will be stored under ./uploads")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Board{},
		&models.Match{},
		&models.MatchPlayer{},
		&models.Comment{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	snapshotCache := services.NewSnapshotCache(snapshotTTL)
	playerService := services.NewPlayerService(db)
	boardService := services.NewBoardService(db)
	matchService := services.NewMatchService(db, snapshotCache)
	statsService := services.NewStatsService(db, snapshotCache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional: mirror accounts from the profile service into players.
	if profileURL := os.Getenv("PROFILE_SERVICE_URL"); profileURL != "" {
		serviceToken := os.Getenv("ARCHIVE_SERVICE_TOKEN")
		syncWorker := workers.NewPlayerSyncWorker(db, profileURL, "/api/v1/public/profiles", serviceToken)
		syncWorker.Start(ctx)
	} else {
		log.Println("PROFILE_SERVICE_URL not set, player sync worker disabled")
	}

	statsService.StartCacheSweeper()

	handlers.SetupPlayerRoutes(app, playerService)
	handlers.SetupBoardRoutes(app, boardService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupStatsRoutes(app, statsService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("Server running on http://localhost:5300")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
