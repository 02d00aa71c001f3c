package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/validation"
)

type QuizHandler struct {
	Handler
	questions questionService
}

func NewQuizHandler(s *server.Server, questions questionService) *QuizHandler {
	return &QuizHandler{Handler: NewHandler(s), questions: questions}
}

// QuizCategory is the category picked in the quiz UI. ID 0 means all.
type QuizCategory struct {
	ID   flexibleID `json:"id"`
	Type string     `json:"type"`
}

type PlayRequest struct {
	PreviousQuestions []int64       `json:"previous_questions" validate:"max=1000"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

func (r *PlayRequest) Validate() error { return validation.Struct(r) }

// category is Unset when the client sent no quiz_category at all.
func (r *PlayRequest) category() query.Category {
	if r.QuizCategory == nil {
		return query.Category{}
	}
	return wireCategory(int64(r.QuizCategory.ID))
}

// QuizResponse carries the next question, null once the category is
// exhausted.
type QuizResponse struct {
	Success  bool            `json:"success"`
	Question *model.Question `json:"question"`
}

// Play draws a random question not yet in previous_questions.
func (h *QuizHandler) Play(c echo.Context, req *PlayRequest) (*QuizResponse, error) {
	category := req.category()
	if !category.IsSet() {
		return nil, &query.MalformedQueryError{Field: "quiz_category", Reason: "is required"}
	}

	draw, err := h.questions.Play(c.Request().Context(), category, req.PreviousQuestions)
	if err != nil {
		return nil, err
	}

	resp := &QuizResponse{Success: true}
	if draw.Found {
		resp.Question = &draw.Record
	}
	return resp, nil
}
