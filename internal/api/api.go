// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/stockpilot/internal/api/handlers"
	"github.com/andresuchdata/stockpilot/internal/api/middleware"
	"github.com/andresuchdata/stockpilot/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	InventoryService *service.InventoryService
	ActionService    *service.ActionService
}

type Options struct {
	AllowedOrigins   []string
	DefaultItemCount int
}

func NewRouter(services *Services, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService, opts.DefaultItemCount)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/items", inventoryHandler.GetItems)
				inventoryGroup.GET("/summary", inventoryHandler.GetSummary)
				inventoryGroup.POST("/items/:id/preview", inventoryHandler.PreviewAction)
			}
		}

		if services.ActionService != nil {
			actionHandler := handlers.NewActionHandler(services.ActionService)
			actionGroup := apiGroup.Group("/actions")
			{
				actionGroup.POST("", actionHandler.Confirm)
				actionGroup.GET("", actionHandler.List)
				actionGroup.GET("/:id", actionHandler.Get)
				actionGroup.PATCH("/:id/status", actionHandler.UpdateStatus)
				actionGroup.POST("/:id/outcome", actionHandler.SimulateOutcome)
				actionGroup.POST("/:id/evaluation", actionHandler.Evaluate)
				actionGroup.DELETE("", actionHandler.Clear)
			}
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
