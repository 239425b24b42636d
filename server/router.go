package server

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the HTTP surface: the recommendations endpoint, the
// readiness probe, and prometheus metrics.
func SetupRoutes(e *echo.Echo, handler *RecommendationHandler) {
	e.Use(echomiddleware.Recover())

	e.GET("/", handler.Index)
	e.POST("/api/recommendations", handler.Recommend)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
