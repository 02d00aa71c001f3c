// Package router builds the echo instance: global middleware, the error
// handler, the /api/v1 routes and the system routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/handler"
	"github.com/deppfellow/go-quizbank/internal/middleware"
	"github.com/deppfellow/go-quizbank/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	return newRouter(s, h, middleware.NewMiddlewares(s))
}

func newRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Metrics wraps the limiter so rejected requests are counted too.
	router.Use(
		mw.Metrics.Observe(),
		mw.RateLimit.Limit(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerTriviaRoutes(v1, h, mw.Auth)
	registerVolunteerRoutes(v1, h, mw.Auth)

	return router
}

func registerTriviaRoutes(g *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	g.GET("/categories", handler.Handle(h.Categories.Handler, h.Categories.ListCategories, http.StatusOK))
	g.GET("/categories/:id/questions", handler.Handle(h.Questions.Handler, h.Questions.ListCategoryQuestions, http.StatusOK))

	questions := g.Group("/questions")
	questions.GET("", handler.Handle(h.Questions.Handler, h.Questions.ListQuestions, http.StatusOK))
	questions.GET("/:id", handler.Handle(h.Questions.Handler, h.Questions.GetQuestion, http.StatusOK))
	questions.POST("/search", handler.Handle(h.Questions.Handler, h.Questions.SearchQuestions, http.StatusOK))
	questions.POST("", handler.Handle(h.Questions.Handler, h.Questions.CreateQuestion, http.StatusCreated),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionCreateQuestions))
	questions.DELETE("/:id", handler.Handle(h.Questions.Handler, h.Questions.DeleteQuestion, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionDeleteQuestions))

	g.POST("/quizzes", handler.Handle(h.Quizzes.Handler, h.Quizzes.Play, http.StatusOK))
}

func registerVolunteerRoutes(g *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	events := g.Group("/events")
	events.GET("", handler.Handle(h.Events.Handler, h.Events.ListEvents, http.StatusOK))
	events.GET("/suggestion", handler.Handle(h.Events.Handler, h.Events.SuggestEvent, http.StatusOK))
	events.GET("/:id", handler.Handle(h.Events.Handler, h.Events.GetEvent, http.StatusOK))
	events.POST("/:id/participants", handler.Handle(h.Events.Handler, h.Events.AddParticipant, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionAddParticipant))
	events.DELETE("/:id/participants/:user_id", handler.Handle(h.Events.Handler, h.Events.RemoveParticipant, http.StatusOK),
		auth.RequireAuth, auth.RequirePermission(middleware.PermissionRemoveParticipant))

	organisations := g.Group("/organisations")
	organisations.GET("", handler.Handle(h.Organisations.Handler, h.Organisations.ListOrganisations, http.StatusOK))
	organisations.GET("/:id", handler.Handle(h.Organisations.Handler, h.Organisations.GetOrganisation, http.StatusOK))
}
