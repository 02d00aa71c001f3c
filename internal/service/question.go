package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/errs"
	"github.com/deppfellow/go-quizbank/internal/metrics"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/repository"
)

type questionRepository interface {
	Scoped(q query.Query) query.Store[model.Question]
	GetByID(ctx context.Context, id int64) (model.Question, error)
	Create(ctx context.Context, in repository.NewQuestion) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type categoryChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type QuestionService struct {
	questions  questionRepository
	categories categoryChecker
	metrics    *metrics.Collector
	logger     *zerolog.Logger
	opts       []query.Option
}

// NewQuestionService builds the trivia service. opts are passed to every
// core query.Service it creates.
func NewQuestionService(
	questions questionRepository,
	categories categoryChecker,
	collector *metrics.Collector,
	logger *zerolog.Logger,
	opts ...query.Option,
) *QuestionService {
	return &QuestionService{
		questions:  questions,
		categories: categories,
		metrics:    collector,
		logger:     logger,
		opts:       opts,
	}
}

func (s *QuestionService) core(q query.Query) *query.Service[model.Question] {
	return query.NewService(s.questions.Scoped(q), model.QuestionFields, s.opts...)
}

// List returns one page of questions in id order, optionally restricted to
// a category.
func (s *QuestionService) List(ctx context.Context, category query.Category, page int) (query.Page[model.Question], error) {
	q := query.Query{Category: category, Page: page}
	return listWithMetrics(ctx, s.metrics, recordQuestion, s.core(q), q)
}

// Search pages through questions whose text contains term, ignoring case.
func (s *QuestionService) Search(ctx context.Context, term string, page int) (query.Page[model.Question], error) {
	if strings.TrimSpace(term) == "" {
		return query.Page[model.Question]{}, &query.MalformedQueryError{Field: "search_term", Reason: "must not be empty"}
	}

	q := query.Query{Category: query.AllCategories()}.WithSearch(term).WithPage(page, 0)
	return listWithMetrics(ctx, s.metrics, recordQuestion, s.core(q), q)
}

func (s *QuestionService) Get(ctx context.Context, id int64) (model.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Create inserts a question into an existing category.
func (s *QuestionService) Create(ctx context.Context, in repository.NewQuestion) (int64, error) {
	ok, err := s.categories.Exists(ctx, in.Category)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.NewBadRequestError("Category does not exist", true, nil,
			[]errs.FieldError{{Field: "category", Error: "unknown category"}}, nil)
	}

	id, err := s.questions.Create(ctx, in)
	if err != nil {
		return 0, err
	}

	requestLogger(ctx, s.logger).Info().
		Int64("question_id", id).
		Int64("category", in.Category).
		Msg("question created")
	return id, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	requestLogger(ctx, s.logger).Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// Play draws the next quiz question from category, skipping previous.
// An exhausted category yields a Draw with Found == false.
func (s *QuestionService) Play(ctx context.Context, category query.Category, previous []int64) (query.Draw[model.Question], error) {
	q := query.Query{Category: category}.WithExcluded(previous...)
	return drawWithMetrics(ctx, s.metrics, recordQuestion, s.core(q), q)
}
