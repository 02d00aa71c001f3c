package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/handler"
	"github.com/deppfellow/go-quizbank/internal/server"
)

// registerSystemRoutes registers the endpoints outside the API: health,
// prometheus scrape, docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
