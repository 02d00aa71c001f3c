package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/config"
	"github.com/deppfellow/go-quizbank/internal/handler"
	"github.com/deppfellow/go-quizbank/internal/metrics"
	"github.com/deppfellow/go-quizbank/internal/middleware"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/router"
	"github.com/deppfellow/go-quizbank/internal/server"
)

type staticCategories []model.Category

func (s staticCategories) List(context.Context) ([]model.Category, error) { return s, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"http://localhost:3000"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &logger,
		Metrics: metrics.NewCollector(),
	}

	h := &handler.Handlers{
		Health:        handler.NewHealthHandler(s),
		OpenAPI:       handler.NewOpenAPIHandler(s),
		Categories:    handler.NewCategoryHandler(s, staticCategories{{ID: 1, Type: "Science"}}),
		Questions:     handler.NewQuestionHandler(s, nil, nil),
		Quizzes:       handler.NewQuizHandler(s, nil),
		Events:        handler.NewEventHandler(s, nil),
		Organisations: handler.NewOrganisationHandler(s, nil),
	}
	return router.NewRouter(s, h)
}

func request(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func Test_Router_PublicRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := request(r, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"categories":{"1":"Science"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func Test_Router_WriteRoutesNeedSession(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/api/v1/questions"},
		{http.MethodDelete, "/api/v1/questions/1"},
		{http.MethodPost, "/api/v1/events/1/participants"},
		{http.MethodDelete, "/api/v1/events/1/participants/2"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := request(r, tc.method, tc.target, `{}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func Test_Router_UnknownRoute(t *testing.T) {
	rec := request(newTestRouter(t), http.MethodGet, "/api/v1/nope", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Route not found"`)
}

func Test_Router_SystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := request(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	request(r, http.MethodGet, "/api/v1/categories", "")

	rec = request(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `quizbank_http_requests_total{method="GET",route="/api/v1/categories",status="200"} 1`)
}
