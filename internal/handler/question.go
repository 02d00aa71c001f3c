package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/errs"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/repository"
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/validation"
)

type questionService interface {
	List(ctx context.Context, category query.Category, page int) (query.Page[model.Question], error)
	Search(ctx context.Context, term string, page int) (query.Page[model.Question], error)
	Get(ctx context.Context, id int64) (model.Question, error)
	Create(ctx context.Context, in repository.NewQuestion) (int64, error)
	Delete(ctx context.Context, id int64) error
	Play(ctx context.Context, category query.Category, previous []int64) (query.Draw[model.Question], error)
}

type QuestionHandler struct {
	Handler
	questions  questionService
	categories categoryLister
}

func NewQuestionHandler(s *server.Server, questions questionService, categories categoryLister) *QuestionHandler {
	return &QuestionHandler{
		Handler:    NewHandler(s),
		questions:  questions,
		categories: categories,
	}
}

// QuestionsResponse is one page of questions. Categories is only filled on
// the browse endpoints.
type QuestionsResponse struct {
	Success         bool             `json:"success"`
	Questions       []model.Question `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	Categories      map[int64]string `json:"categories,omitempty"`
	CurrentCategory *int64           `json:"current_category"`
}

type ListQuestionsRequest struct {
	Page     int   `query:"page"`
	Category int64 `query:"category"`
}

func (r *ListQuestionsRequest) Validate() error { return nil }

type CategoryQuestionsRequest struct {
	CategoryID int64 `param:"id"`
	Page       int   `query:"page"`
}

func (r *CategoryQuestionsRequest) Validate() error { return nil }

// ListQuestions pages through all questions, or one category when
// ?category is non-zero. A page past the end is a 404.
func (h *QuestionHandler) ListQuestions(c echo.Context, req *ListQuestionsRequest) (*QuestionsResponse, error) {
	return h.browse(c.Request().Context(), wireCategory(req.Category), req.Page)
}

// ListCategoryQuestions is ListQuestions with the category taken from the
// path, where the id always names a specific category.
func (h *QuestionHandler) ListCategoryQuestions(c echo.Context, req *CategoryQuestionsRequest) (*QuestionsResponse, error) {
	return h.browse(c.Request().Context(), query.CategoryID(req.CategoryID), req.Page)
}

func (h *QuestionHandler) browse(ctx context.Context, category query.Category, page int) (*QuestionsResponse, error) {
	result, err := h.questions.List(ctx, category, page)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, errs.NewNotFoundError("No questions found on this page", true, nil)
	}

	categories, err := categoryMap(ctx, h.categories)
	if err != nil {
		return nil, err
	}

	return &QuestionsResponse{
		Success:         true,
		Questions:       result.Items,
		TotalQuestions:  result.TotalMatched,
		Categories:      categories,
		CurrentCategory: currentCategory(category),
	}, nil
}

type QuestionResponse struct {
	Success  bool           `json:"success"`
	Question model.Question `json:"question"`
}

func (h *QuestionHandler) GetQuestion(c echo.Context, req *IDRequest) (*QuestionResponse, error) {
	question, err := h.questions.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &QuestionResponse{Success: true, Question: question}, nil
}

type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required,max=1000"`
	Answer     string `json:"answer" validate:"required,max=1000"`
	Category   int64  `json:"category" validate:"gt=0"`
	Difficulty int    `json:"difficulty" validate:"min=1,max=5"`
}

func (r *CreateQuestionRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	r.Answer = strings.TrimSpace(r.Answer)
	return validation.Struct(r)
}

type CreatedResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

func (h *QuestionHandler) CreateQuestion(c echo.Context, req *CreateQuestionRequest) (*CreatedResponse, error) {
	id, err := h.questions.Create(c.Request().Context(), repository.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return nil, err
	}
	return &CreatedResponse{Success: true, Created: id}, nil
}

type DeletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

func (h *QuestionHandler) DeleteQuestion(c echo.Context, req *IDRequest) (*DeletedResponse, error) {
	if err := h.questions.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &DeletedResponse{Success: true, Deleted: req.ID}, nil
}

// SearchRequest accepts both "search" and the older "searchTerm" key.
type SearchRequest struct {
	Search     string `json:"search"`
	SearchTerm string `json:"searchTerm"`
	Page       int    `json:"page"`
}

func (r *SearchRequest) Validate() error { return nil }

func (r *SearchRequest) term() string {
	if r.Search != "" {
		return r.Search
	}
	return r.SearchTerm
}

// SearchQuestions matches question text case-insensitively. No match is an
// empty list, not an error.
func (h *QuestionHandler) SearchQuestions(c echo.Context, req *SearchRequest) (*QuestionsResponse, error) {
	result, err := h.questions.Search(c.Request().Context(), req.term(), req.Page)
	if err != nil {
		return nil, err
	}

	return &QuestionsResponse{
		Success:        true,
		Questions:      result.Items,
		TotalQuestions: result.TotalMatched,
	}, nil
}
