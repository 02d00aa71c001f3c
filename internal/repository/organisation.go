package repository

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

const organisationsTable = "organisations"

type OrganisationRepository struct {
	db DBTX
}

func NewOrganisationRepository(db DBTX) *OrganisationRepository {
	return &OrganisationRepository{db: db}
}

func selectOrganisations() *goqu.SelectDataset {
	return dialect.From(organisationsTable).
		Prepared(true).
		Select("id", "name", "description", "website", "phone_contact", "email_contact").
		Order(goqu.I("name").Asc(), goqu.I("id").Asc())
}

func (r *OrganisationRepository) List(ctx context.Context) ([]model.Organisation, error) {
	return selectAll[model.Organisation](ctx, r.db, selectOrganisations())
}

func (r *OrganisationRepository) GetByID(ctx context.Context, id int64) (model.Organisation, error) {
	o, err := selectOne[model.Organisation](ctx, r.db, selectOrganisations().Where(goqu.C("id").Eq(id)))
	if sqlerr.IsNoRows(err) {
		return model.Organisation{}, sqlerr.NoRows(organisationsTable)
	}
	return o, err
}
