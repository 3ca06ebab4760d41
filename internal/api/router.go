// Package api exposes the route service to the map UI over HTTP.
package api

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/config"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/gin-gonic/gin"
)

// RouteService is the behavior the handlers depend on.
type RouteService interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
	Distance(from, to models.Coordinate) (models.DistanceReport, error)
	PlanRoute(ctx context.Context, input service.RouteInput) (*models.RouteSummary, error)
	History(ctx context.Context, limit int) ([]models.RouteRecord, error)
	BackendHealth(ctx context.Context) (*models.HealthStatus, error)
}

// Handler serves the HTTP API.
type Handler struct {
	svc    RouteService
	mapCfg config.MapConfig
	log    *slog.Logger
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(log *slog.Logger, svc RouteService, m *metrics.Metrics, mapCfg config.MapConfig) *gin.Engine {
	h := &Handler{svc: svc, mapCfg: mapCfg, log: log}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(log, m))

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/config", h.mapConfig)
		api.GET("/search", h.search)
		api.POST("/distance", h.distance)
		api.POST("/path", h.path)
		api.POST("/path/export", h.exportPath)
		api.GET("/routes", h.routes)
		api.GET("/demo/locations", h.demoLocations)
		api.GET("/demo/algorithms", h.demoAlgorithms)
	}

	return router
}
