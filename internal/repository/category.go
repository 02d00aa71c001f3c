package repository

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
)

const categoriesTable = "categories"

// CategoryRepository reads the fixed list of trivia categories.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func buildCategoryList() *goqu.SelectDataset {
	return dialect.From(categoriesTable).
		Prepared(true).
		Select("id", "type").
		Order(goqu.I("id").Asc())
}

func buildCategoryExists(id int64) *goqu.SelectDataset {
	return dialect.From(categoriesTable).
		Prepared(true).
		Select(goqu.COUNT("*")).
		Where(goqu.C("id").Eq(id))
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	return selectAll[model.Category](ctx, r.db, buildCategoryList())
}

// Exists reports whether a category with id exists.
func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := toSQL(buildCategoryExists(id))
	if err != nil {
		return false, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
