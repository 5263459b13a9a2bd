package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/api/handlers"
	"github.com/quesadillascandy/candy-backend/internal/api/middleware"
	"github.com/quesadillascandy/candy-backend/internal/extract"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

type Services struct {
	Inventory *service.InventoryService
	Recipes   *service.RecipeService
	Orders    *service.OrderService
	Extractor extract.Extractor
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Name", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Identity())

	if services == nil {
		return router
	}

	if services.Inventory != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		inventoryGroup := apiGroup.Group("/inventory")
		inventoryGroup.Use(middleware.RequireStaff())
		{
			inventoryGroup.GET("/items", inventoryHandler.ListItems)
			inventoryGroup.GET("/items/:id", inventoryHandler.GetItem)
			inventoryGroup.GET("/items/:id/kardex", inventoryHandler.Kardex)
			inventoryGroup.GET("/items/:id/kardex/verify", inventoryHandler.VerifyKardex)
			inventoryGroup.POST("/movements", inventoryHandler.CreateMovement)
			inventoryGroup.GET("/alerts", inventoryHandler.Alerts)
		}
	}

	if services.Recipes != nil {
		recipeHandler := handlers.NewRecipeHandler(services.Recipes)
		recipeGroup := apiGroup.Group("/recipes")
		recipeGroup.Use(middleware.RequireStaff())
		{
			recipeGroup.GET("", recipeHandler.ListRecipes)
			recipeGroup.GET("/:id", recipeHandler.GetRecipe)
			recipeGroup.GET("/:id/cost", recipeHandler.Cost)
			recipeGroup.POST("/:id/simulate", recipeHandler.Simulate)
		}
		apiGroup.GET("/products", recipeHandler.ListProducts)
	}

	if services.Orders != nil {
		orderHandler := handlers.NewOrderHandler(services.Orders)
		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.GET("", orderHandler.ListOrders)
			orderGroup.POST("", orderHandler.CreateOrder)
			orderGroup.GET("/needs", middleware.RequireStaff(), orderHandler.Needs)
			orderGroup.GET("/:id", orderHandler.GetOrder)
			orderGroup.PATCH("/:id/status", orderHandler.UpdateStatus)
		}
	}

	if services.Extractor != nil {
		extractHandler := handlers.NewExtractHandler(services.Extractor, services.Inventory, services.Recipes)
		extractGroup := apiGroup.Group("/extract")
		extractGroup.Use(middleware.RequireStaff())
		{
			extractGroup.POST("/invoice", extractHandler.ParseInvoice)
			extractGroup.POST("/whatsapp", extractHandler.ParseWhatsAppOrder)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
