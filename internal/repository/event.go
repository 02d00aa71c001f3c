package repository

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

const eventsTable = "events"

// EventRepository reads volunteering events joined with their organisation.
type EventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// Natural order is start time, then id.
func selectEvents() *goqu.SelectDataset {
	return dialect.From(goqu.T(eventsTable).As("e")).
		Prepared(true).
		Join(goqu.T(organisationsTable).As("o"), goqu.On(goqu.I("e.organisation_id").Eq(goqu.I("o.id")))).
		Select(
			goqu.I("e.id"),
			goqu.I("e.name"),
			goqu.I("e.type"),
			goqu.I("e.description"),
			goqu.I("e.start_datetime"),
			goqu.I("e.end_datetime"),
			goqu.I("e.address"),
			goqu.I("e.organisation_id"),
			goqu.I("o.name").As("organisation_name"),
		).
		Order(goqu.I("e.start_datetime").Asc(), goqu.I("e.id").Asc())
}

func buildEventFilter(q query.Query) *goqu.SelectDataset {
	ds := selectEvents()

	if tag := strings.TrimSpace(q.Tag); tag != "" {
		ds = ds.Where(goqu.I("e.type").Eq(tag))
	}
	if len(q.Excluded) > 0 {
		ds = ds.Where(goqu.I("e.id").NotIn(q.Excluded))
	}
	return ds
}

func buildEventByID(id int64) *goqu.SelectDataset {
	return selectEvents().Where(goqu.I("e.id").Eq(id))
}

func buildEventsByOrganisation(organisationID int64) *goqu.SelectDataset {
	return selectEvents().Where(goqu.I("e.organisation_id").Eq(organisationID))
}

// Filter implements query.Store over every event.
func (r *EventRepository) Filter(ctx context.Context, pred query.Predicate[model.Event]) ([]model.Event, error) {
	return r.Scoped(query.Query{}).Filter(ctx, pred)
}

// Scoped returns a query.Store narrowed in SQL by q's type and exclusions.
func (r *EventRepository) Scoped(q query.Query) query.Store[model.Event] {
	return &scopedEvents{db: r.db, ds: buildEventFilter(q)}
}

type scopedEvents struct {
	db DBTX
	ds *goqu.SelectDataset
}

func (s *scopedEvents) Filter(ctx context.Context, pred query.Predicate[model.Event]) ([]model.Event, error) {
	rows, err := selectAll[model.Event](ctx, s.db, s.ds)
	if err != nil {
		return nil, err
	}
	return filterRows(rows, pred), nil
}

// GetByID returns one event or an error matching pgx.ErrNoRows.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (model.Event, error) {
	e, err := selectOne[model.Event](ctx, r.db, buildEventByID(id))
	if sqlerr.IsNoRows(err) {
		return model.Event{}, sqlerr.NoRows(eventsTable)
	}
	return e, err
}

// ListByOrganisation returns the events hosted by one organisation.
func (r *EventRepository) ListByOrganisation(ctx context.Context, organisationID int64) ([]model.Event, error) {
	return selectAll[model.Event](ctx, r.db, buildEventsByOrganisation(organisationID))
}
