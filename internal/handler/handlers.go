// Package handler is the HTTP layer: it binds and validates requests, calls
// the service layer and shapes the JSON responses.
package handler

import (
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Categories    *CategoryHandler
	Questions     *QuestionHandler
	Quizzes       *QuizHandler
	Events        *EventHandler
	Organisations *OrganisationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Categories:    NewCategoryHandler(s, services.Categories),
		Questions:     NewQuestionHandler(s, services.Questions, services.Categories),
		Quizzes:       NewQuizHandler(s, services.Questions),
		Events:        NewEventHandler(s, services.Events),
		Organisations: NewOrganisationHandler(s, services.Organisations),
	}
}
