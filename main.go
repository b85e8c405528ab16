package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-floorplan/config"
	"github.com/yeremiapane/restaurant-floorplan/database"
	"github.com/yeremiapane/restaurant-floorplan/middlewares"
	"github.com/yeremiapane/restaurant-floorplan/router"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/storage"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
)

func init() {
	utils.InitLogger()

	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Printf("Warning: .env file not found or error loading: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Database hanya dibutuhkan untuk backend gorm
	var db *gorm.DB
	if cfg.KVBackend == config.BackendGorm {
		db, err = config.InitDB(cfg)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
		}
		utils.InitDB(db)
	}

	kv, closeKV, err := config.NewKV(ctx, cfg, db)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to set up %s storage: %v", cfg.KVBackend, err)
	}
	defer closeKV()

	deps := router.NewDependencies(kv, storage.NewKeys(cfg.KVNamespace), time.Now, cfg.Location, cfg.CanvasIdleTTL)
	deps.CORSOrigin = cfg.CORSOrigin
	deps.RateLimiter = middlewares.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	// Monitor status: reserved -> occupied saat jam reservasi lewat
	monitor := services.NewOccupancyMonitor(deps.Registry, cfg.MonitorInterval)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(deps)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (storage=%s)", cfg.Port, cfg.KVBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
	utils.InfoLogger.Println("Server stopped")
}
