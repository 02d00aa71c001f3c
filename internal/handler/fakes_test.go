package handler_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/config"
	"github.com/deppfellow/go-quizbank/internal/metrics"
	"github.com/deppfellow/go-quizbank/internal/middleware"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/repository"
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/service"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &logger,
		Metrics: metrics.NewCollector(),
	}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type questionRepo struct {
	*query.SliceStore[model.Question]
	deleted []int64
}

func (r *questionRepo) Scoped(query.Query) query.Store[model.Question] { return r.SliceStore }

func (r *questionRepo) GetByID(_ context.Context, id int64) (model.Question, error) {
	for _, q := range r.All() {
		if q.ID == id {
			return q, nil
		}
	}
	return model.Question{}, sqlerr.NoRows("questions")
}

func (r *questionRepo) Create(_ context.Context, in repository.NewQuestion) (int64, error) {
	id := int64(len(r.All()) + 1)
	r.Add(model.Question{ID: id, Question: in.Question, Answer: in.Answer, Category: in.Category, Difficulty: in.Difficulty})
	return id, nil
}

func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type categoryRepo []model.Category

func (c categoryRepo) List(context.Context) ([]model.Category, error) { return c, nil }

func (c categoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, cat := range c {
		if cat.ID == id {
			return true, nil
		}
	}
	return false, nil
}

var categories = categoryRepo{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}, {ID: 3, Type: "History"}}

// twelveQuestions spreads ids 1..12 over categories 1..3 round-robin.
// Questions 3 and 7 mention "title".
func twelveQuestions() *questionRepo {
	repo := &questionRepo{SliceStore: query.NewSliceStore[model.Question]()}
	for i := int64(1); i <= 12; i++ {
		text := fmt.Sprintf("Question %d?", i)
		if i == 3 || i == 7 {
			text = fmt.Sprintf("Which book has the longest Title, part %d?", i)
		}
		repo.Add(model.Question{ID: i, Question: text, Answer: "a", Category: (i-1)%3 + 1, Difficulty: 1})
	}
	return repo
}

func questionService(s *server.Server, repo *questionRepo) *service.QuestionService {
	first := query.NewSelector(func(int) int { return 0 })
	return service.NewQuestionService(repo, categories, s.Metrics, s.Logger, query.WithSelector(first))
}

type fakeEvents struct {
	filter   service.EventFilter
	page     query.Page[model.Event]
	suggest  query.Draw[model.Event]
	excluded []int64
	joined   [2]int64
	removed  [2]int64
	err      error
}

func (f *fakeEvents) List(_ context.Context, filter service.EventFilter) (query.Page[model.Event], error) {
	f.filter = filter
	return f.page, f.err
}

func (f *fakeEvents) Get(_ context.Context, id int64) (service.EventDetail, error) {
	if f.err != nil {
		return service.EventDetail{}, f.err
	}
	return service.EventDetail{Event: model.Event{ID: id, Name: "Beach clean"}, Participants: []model.Participant{}}, nil
}

func (f *fakeEvents) Suggest(_ context.Context, _ string, exclude []int64) (query.Draw[model.Event], error) {
	f.excluded = exclude
	return f.suggest, f.err
}

func (f *fakeEvents) AddParticipant(_ context.Context, eventID, userID int64) ([]model.Participant, error) {
	f.joined = [2]int64{eventID, userID}
	return []model.Participant{{EventID: eventID, UserID: userID, Name: "Ada"}}, f.err
}

func (f *fakeEvents) RemoveParticipant(_ context.Context, eventID, userID int64) ([]model.Participant, error) {
	f.removed = [2]int64{eventID, userID}
	return []model.Participant{}, f.err
}

type fakeOrganisations struct{}

func (fakeOrganisations) List(context.Context) ([]model.Organisation, error) {
	return []model.Organisation{{ID: 1, Name: "Shore Keepers"}}, nil
}

func (fakeOrganisations) Get(_ context.Context, id int64) (service.OrganisationDetail, error) {
	if id != 1 {
		return service.OrganisationDetail{}, sqlerr.NoRows("organisations")
	}
	return service.OrganisationDetail{
		Organisation:   model.Organisation{ID: 1, Name: "Shore Keepers"},
		PastEvents:     []model.Event{},
		UpcomingEvents: []model.Event{{ID: 2}},
	}, nil
}

func statusOf(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
