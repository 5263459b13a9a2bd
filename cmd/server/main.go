package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quesadillascandy/candy-backend/internal/alerts"
	"github.com/quesadillascandy/candy-backend/internal/api"
	"github.com/quesadillascandy/candy-backend/internal/cache"
	"github.com/quesadillascandy/candy-backend/internal/config"
	"github.com/quesadillascandy/candy-backend/internal/extract"
	"github.com/quesadillascandy/candy-backend/internal/ledger"
	"github.com/quesadillascandy/candy-backend/internal/repository"
	"github.com/quesadillascandy/candy-backend/internal/repository/postgres"
	"github.com/quesadillascandy/candy-backend/internal/scaninbox"
	"github.com/quesadillascandy/candy-backend/internal/scheduler"
	"github.com/quesadillascandy/candy-backend/internal/service"
	"github.com/quesadillascandy/candy-backend/internal/storage"
	"github.com/quesadillascandy/candy-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	inventoryRepo := postgres.NewInventoryRepository(db)
	recipeRepo := postgres.NewRecipeRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	alertCache, err := cache.NewAlertCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Alert cache unavailable, continuing without")
		alertCache = cache.NewNoopAlertCache()
	}
	notifier, err := cache.NewChangeNotifier(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Change notifier unavailable, continuing without")
		notifier = cache.NewNoopChangeNotifier()
	}

	stockLedger := ledger.New(inventoryRepo, ledger.Policy{
		DefaultExpiryDays: cfg.Ledger.DefaultExpiryDays,
	})
	generator := alerts.NewGenerator(alerts.Config{
		CriticalFactor:   alerts.DefaultConfig().CriticalFactor,
		ExpiryWindowDays: cfg.Alerts.ExpiryWindowDays,
	})

	inventoryService := service.NewInventoryService(inventoryRepo, stockLedger, generator, alertCache, notifier)
	recipeService := service.NewRecipeService(recipeRepo, inventoryRepo)
	orderService := service.NewOrderService(orderRepo, recipeRepo, inventoryRepo)

	var extractor extract.Extractor
	if cfg.Extract.APIKey != "" {
		extractor = extract.NewExtractor(cfg.Extract)
	}

	inbox := buildScanInbox(cfg, extractor, inventoryRepo, postgres.NewScanRepository(db))

	sched := scheduler.New(cfg, inventoryService, inbox)
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(&api.Services{
		Inventory: inventoryService,
		Recipes:   recipeService,
		Orders:    orderService,
		Extractor: extractor,
	}, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildScanInbox wires the Drive poller when it is fully configured. Any
// missing piece disables it rather than failing startup.
func buildScanInbox(
	cfg *config.Config,
	extractor extract.Extractor,
	inventoryRepo repository.InventoryRepository,
	scanRepo repository.ScanRepository,
) *scaninbox.Inbox {
	if !cfg.ScanInbox.Enabled {
		return nil
	}
	if cfg.ScanInbox.CredentialsJSON == "" || extractor == nil {
		logger.Log.Warn().Msg("Scan inbox enabled but not fully configured, skipping")
		return nil
	}

	driveClient, err := scaninbox.NewDriveClient(context.Background(), cfg.ScanInbox.CredentialsJSON)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Drive client init failed, scan inbox disabled")
		return nil
	}

	archive, err := storage.NewMinioClient(cfg.Archive)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Archive storage init failed, scan inbox disabled")
		return nil
	}

	return scaninbox.NewInbox(driveClient, extractor, archive, inventoryRepo, scanRepo, cfg.ScanInbox.FolderID)
}
