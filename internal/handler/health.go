package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/deppfellow/go-quizbank/internal/middleware"
	"github.com/deppfellow/go-quizbank/internal/server"
)

const defaultCheckTimeout = 5 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	// Required checks turn the whole status unhealthy when they fail.
	Required bool
	Probe    func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler probes the database (required) and redis (degraded only)
// when they are listed in observability.health_checks.
func NewHealthHandler(s *server.Server, extra ...HealthCheck) *HealthHandler {
	cfg := s.Config.Observability.HealthChecks

	var checks []HealthCheck
	if cfg.Has("database") && s.DB != nil {
		checks = append(checks, HealthCheck{Name: "database", Required: true, Probe: s.DB.Ping})
	}
	if cfg.Has("redis") && s.Redis != nil {
		checks = append(checks, HealthCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}})
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  append(checks, extra...),
		timeout: timeout,
	}
}

type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth runs every check concurrently. 200 when all required checks
// pass, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}

	var (
		mu      sync.Mutex
		healthy = true
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	for _, check := range h.checks {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			checkStart := time.Now()
			err := check.Probe(checkCtx)
			result := CheckResult{Status: "healthy", ResponseTime: time.Since(checkStart).String()}

			if err != nil {
				result.Status = "unhealthy"
				result.Error = err.Error()

				logger.Error().Err(err).Str("check", check.Name).Msg("health check failed")
				h.recordFailure(check.Name, time.Since(checkStart), err)
			}

			mu.Lock()
			response.Checks[check.Name] = result
			if err != nil && check.Required {
				healthy = false
			}
			mu.Unlock()

			// Failures are reported in the body; the group never cancels.
			return nil
		})
	}
	_ = g.Wait()

	status := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	return c.JSON(status, response)
}

func (h *HealthHandler) recordFailure(check string, took time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": took.Milliseconds(),
		"error_message":    err.Error(),
	})
}
