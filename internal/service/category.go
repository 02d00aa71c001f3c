package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/model"
)

type categoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoryCache interface {
	Get(ctx context.Context) ([]model.Category, bool, error)
	Set(ctx context.Context, categories []model.Category) error
}

// CategoryService serves the category list from Redis when it can.
// Cache failures are logged and never fail the request.
type CategoryService struct {
	repo   categoryRepository
	cache  categoryCache
	logger *zerolog.Logger
}

func NewCategoryService(repo categoryRepository, cache categoryCache, logger *zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	cached, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Msg("category cache read failed")
	case ok:
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, categories); err != nil {
		s.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return categories, nil
}

// Exists always asks the database; question inserts depend on it.
func (s *CategoryService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
