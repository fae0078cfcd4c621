// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/api/handlers"
	"github.com/andresuchdata/fbaplan/backend-go/internal/api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Planning  handlers.PlanningService
	Shipments handlers.ShipmentService
	// Location anchors "today" when a request does not override it.
	Location *time.Location
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
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

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	brandGroup := router.Group("/api/v1/brands/:brand")

	if services != nil {
		loc := services.Location
		if loc == nil {
			loc = time.Local
		}

		if services.Planning != nil {
			planningHandler := handlers.NewPlanningHandler(services.Planning, loc)
			brandGroup.GET("/forecast", planningHandler.GetForecast)
			brandGroup.GET("/stocking", planningHandler.GetStockingPlan)
			brandGroup.GET("/promotions", planningHandler.ListPromotions)
			brandGroup.GET("/promotions/:id/plan", planningHandler.GetPromotionPlan)
		}

		if services.Shipments != nil {
			shipmentHandler := handlers.NewShipmentHandler(services.Shipments, loc)
			shipmentGroup := brandGroup.Group("/shipments")
			{
				shipmentGroup.GET("", shipmentHandler.ListShipments)
				shipmentGroup.POST("", shipmentHandler.CreateShipment)
				shipmentGroup.POST("/import", shipmentHandler.ImportShipments)
				shipmentGroup.GET("/:tracking", shipmentHandler.GetShipment)
				shipmentGroup.POST("/:tracking/arrival", shipmentHandler.ConfirmArrival)
				shipmentGroup.DELETE("/:tracking/arrival", shipmentHandler.UndoArrival)
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
