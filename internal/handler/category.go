package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/server"
)

type categoryLister interface {
	List(ctx context.Context) ([]model.Category, error)
}

type CategoryHandler struct {
	Handler
	categories categoryLister
}

func NewCategoryHandler(s *server.Server, categories categoryLister) *CategoryHandler {
	return &CategoryHandler{Handler: NewHandler(s), categories: categories}
}

type CategoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

// ListCategories answers with the id -> type map the quiz frontend expects.
func (h *CategoryHandler) ListCategories(c echo.Context, _ *EmptyRequest) (*CategoriesResponse, error) {
	categories, err := categoryMap(c.Request().Context(), h.categories)
	if err != nil {
		return nil, err
	}
	return &CategoriesResponse{Success: true, Categories: categories}, nil
}

func categoryMap(ctx context.Context, lister categoryLister) (map[int64]string, error) {
	categories, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]string, len(categories))
	for _, cat := range categories {
		out[cat.ID] = cat.Type
	}
	return out, nil
}
