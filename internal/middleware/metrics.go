package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/server"
)

// MetricsMiddleware counts finished requests by route template and status.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.server.Metrics.ObserveHTTP(c.Request().Method, route, statusFor(c, err))
			return err
		}
	}
}
