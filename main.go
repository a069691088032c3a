package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admindash/cache"
	"admindash/config"
	"admindash/database"
	"admindash/handlers"
	"admindash/middleware"
	"admindash/remote"
	"admindash/routes"
	"admindash/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env before viper reads the environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis (best-effort read cache for upstream fetches)
	cache.InitRedis(cfg.RedisURL)
	defer cache.Close()

	// Open the local store database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	st := store.New(store.NewGormBlob(db))
	rc := remote.NewClient(
		cfg.APIBaseURL,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)
	h := handlers.New(st, rc)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Admin Dashboard API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Setup routes
	routes.Setup(app, h)

	// Initial loads plus fixed-interval auto-refresh per page
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go func() {
		if err := h.Dashboard.Load(refreshCtx); err != nil {
			log.Printf("Initial dashboard load failed: %v", err)
		}
		h.Dashboard.Run(refreshCtx, time.Duration(cfg.DashboardRefreshMinutes)*time.Minute)
	}()
	go func() {
		if err := h.Users.Load(refreshCtx); err != nil {
			log.Printf("Initial users load failed: %v", err)
		}
		h.Users.Run(refreshCtx, time.Duration(cfg.UsersRefreshMinutes)*time.Minute)
	}()
	go func() {
		if err := h.Posts.Load(refreshCtx); err != nil {
			log.Printf("Initial posts load failed: %v", err)
		}
		h.Posts.Run(refreshCtx, time.Duration(cfg.PostsRefreshMinutes)*time.Minute)
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		stopRefresh()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
