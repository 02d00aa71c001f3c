package service

import (
	"github.com/deppfellow/go-quizbank/internal/cache"
	"github.com/deppfellow/go-quizbank/internal/lib/job"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/repository"
	"github.com/deppfellow/go-quizbank/internal/server"
)

type Services struct {
	Auth          *AuthService
	Job           *job.JobService
	Categories    *CategoryService
	Questions     *QuestionService
	Events        *EventService
	Organisations *OrganisationService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	coreOpts := []query.Option{
		query.WithDefaultPageSize(s.Config.Query.DefaultPageSize),
		query.WithLogger(s.Logger),
	}

	categories := NewCategoryService(
		repos.Categories,
		cache.NewCategoryCache(s.Redis, s.Config.Cache.CategoryTTL),
		s.Logger,
	)

	return &Services{
		Job:           s.Job,
		Auth:          authService,
		Categories:    categories,
		Questions:     NewQuestionService(repos.Questions, categories, s.Metrics, s.Logger, coreOpts...),
		Events:        NewEventService(repos.Events, repos.Participants, repos.Users, s.Job, s.Metrics, s.Logger, coreOpts...),
		Organisations: NewOrganisationService(repos.Organisations, repos.Events),
	}, nil
}
