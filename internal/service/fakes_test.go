package service

import (
	"context"
	"errors"
	"slices"

	"github.com/deppfellow/go-quizbank/internal/lib/job"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/repository"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

var errBoom = errors.New("boom")

type failingStore[R query.Record] struct{ err error }

func (f failingStore[R]) Filter(context.Context, query.Predicate[R]) ([]R, error) {
	return nil, f.err
}

type fakeQuestions struct {
	*query.SliceStore[model.Question]
	scoped    []query.Query
	filterErr error
}

func newFakeQuestions(qs ...model.Question) *fakeQuestions {
	return &fakeQuestions{SliceStore: query.NewSliceStore(qs...)}
}

func (f *fakeQuestions) Scoped(q query.Query) query.Store[model.Question] {
	f.scoped = append(f.scoped, q)
	if f.filterErr != nil {
		return failingStore[model.Question]{err: f.filterErr}
	}
	return f.SliceStore
}

func (f *fakeQuestions) GetByID(_ context.Context, id int64) (model.Question, error) {
	for _, q := range f.All() {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Question{}, sqlerr.NoRows("questions")
}

func (f *fakeQuestions) Create(_ context.Context, in repository.NewQuestion) (int64, error) {
	id := int64(len(f.All()) + 1)
	f.Add(model.Question{
		ID:         id,
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	return id, nil
}

func (f *fakeQuestions) Delete(ctx context.Context, id int64) error {
	if _, err := f.GetByID(ctx, id); err != nil {
		return err
	}
	return nil
}

type fakeCategories struct {
	categories []model.Category
	listCalls  int
	err        error
}

func (f *fakeCategories) List(context.Context) ([]model.Category, error) {
	f.listCalls++
	return f.categories, f.err
}

func (f *fakeCategories) Exists(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return slices.ContainsFunc(f.categories, func(c model.Category) bool { return c.ID == id }), nil
}

type fakeCache struct {
	stored  []model.Category
	hit     bool
	getErr  error
	setErr  error
	setCall int
}

func (f *fakeCache) Get(context.Context) ([]model.Category, bool, error) {
	return f.stored, f.hit, f.getErr
}

func (f *fakeCache) Set(_ context.Context, categories []model.Category) error {
	f.setCall++
	f.stored = categories
	return f.setErr
}

type fakeEvents struct {
	*query.SliceStore[model.Event]
	scoped []query.Query
}

func newFakeEvents(es ...model.Event) *fakeEvents {
	return &fakeEvents{SliceStore: query.NewSliceStore(es...)}
}

func (f *fakeEvents) Scoped(q query.Query) query.Store[model.Event] {
	f.scoped = append(f.scoped, q)
	return f.SliceStore
}

func (f *fakeEvents) GetByID(_ context.Context, id int64) (model.Event, error) {
	for _, e := range f.All() {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, sqlerr.NoRows("events")
}

func (f *fakeEvents) ListByOrganisation(_ context.Context, organisationID int64) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.All() {
		if e.OrganisationID == organisationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeParticipants struct {
	byEvent map[int64][]model.Participant
}

func newFakeParticipants() *fakeParticipants {
	return &fakeParticipants{byEvent: map[int64][]model.Participant{}}
}

func (f *fakeParticipants) List(_ context.Context, eventID int64) ([]model.Participant, error) {
	return append([]model.Participant{}, f.byEvent[eventID]...), nil
}

func (f *fakeParticipants) Add(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	f.byEvent[eventID] = append(f.byEvent[eventID], model.Participant{EventID: eventID, UserID: userID})
	return f.List(ctx, eventID)
}

func (f *fakeParticipants) Remove(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	current := f.byEvent[eventID]
	idx := slices.IndexFunc(current, func(p model.Participant) bool { return p.UserID == userID })
	if idx < 0 {
		return nil, sqlerr.NoRows("participants")
	}
	f.byEvent[eventID] = slices.Delete(current, idx, idx+1)
	return f.List(ctx, eventID)
}

type fakeUsers map[int64]model.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (model.User, error) {
	u, ok := f[id]
	if !ok {
		return model.User{}, sqlerr.NoRows("users")
	}
	return u, nil
}

type fakeNotifier struct {
	sent []job.ParticipantJoinedPayload
	err  error
}

func (f *fakeNotifier) EnqueueParticipantJoined(_ context.Context, p job.ParticipantJoinedPayload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

type fakeOrganisations []model.Organisation

func (f fakeOrganisations) List(context.Context) ([]model.Organisation, error) {
	return f, nil
}

func (f fakeOrganisations) GetByID(_ context.Context, id int64) (model.Organisation, error) {
	for _, o := range f {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Organisation{}, sqlerr.NoRows("organisations")
}
