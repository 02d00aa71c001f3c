package repository

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

const usersTable = "users"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func buildUserByID(id int64) *goqu.SelectDataset {
	return dialect.From(usersTable).
		Prepared(true).
		Select("id", "name", "email_contact").
		Where(goqu.C("id").Eq(id))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := selectOne[model.User](ctx, r.db, buildUserByID(id))
	if sqlerr.IsNoRows(err) {
		return model.User{}, sqlerr.NoRows(usersTable)
	}
	return u, err
}
