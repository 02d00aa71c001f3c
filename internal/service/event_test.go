package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/go-quizbank/internal/errs"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func seedEvents() []model.Event {
	return []model.Event{
		{ID: 1, Name: "Beach cleanup", Type: "environment", Description: "Pick up litter", StartDatetime: now.Add(-48 * time.Hour), EndDatetime: now.Add(-44 * time.Hour), OrganisationID: 1, OrganisationName: "Green"},
		{ID: 2, Name: "Tree planting", Type: "environment", Description: "Plant saplings in the park", StartDatetime: now.Add(24 * time.Hour), EndDatetime: now.Add(28 * time.Hour), OrganisationID: 1, OrganisationName: "Green"},
		{ID: 3, Name: "Food bank shift", Type: "community", Description: "Sort donations", StartDatetime: now.Add(48 * time.Hour), EndDatetime: now.Add(52 * time.Hour), OrganisationID: 2, OrganisationName: "Kitchen"},
		{ID: 4, Name: "River cleanup", Type: "environment", Description: "Clear the riverbank", StartDatetime: now.Add(72 * time.Hour), EndDatetime: now.Add(76 * time.Hour), OrganisationID: 1, OrganisationName: "Green"},
	}
}

type eventFixture struct {
	svc          *EventService
	events       *fakeEvents
	participants *fakeParticipants
	notifier     *fakeNotifier
}

func newEventFixture(opts ...query.Option) eventFixture {
	logger := zerolog.Nop()
	f := eventFixture{
		events:       newFakeEvents(seedEvents()...),
		participants: newFakeParticipants(),
		notifier:     &fakeNotifier{},
	}
	users := fakeUsers{
		7: {ID: 7, Name: "Ada", EmailContact: "ada@example.com"},
		8: {ID: 8, Name: "Bob"},
	}
	f.svc = NewEventService(f.events, f.participants, users, f.notifier, nil, &logger, opts...)
	f.svc.now = func() time.Time { return now }
	return f
}

func Test_EventService_List(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()

	page, err := f.svc.List(ctx, EventFilter{Type: "environment"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalMatched)

	page, err = f.svc.List(ctx, EventFilter{Type: "environment", Search: "CLEANUP", PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalMatched)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(4), page.Items[0].ID)

	page, err = f.svc.List(ctx, EventFilter{Search: "donations"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Items[0].ID)

	_, err = f.svc.List(ctx, EventFilter{PageSize: -1})
	assert.ErrorIs(t, err, query.ErrMalformedQuery)
}

func Test_EventService_Suggest_SkipsPastAndExcluded(t *testing.T) {
	f := newEventFixture(query.WithSelector(query.NewSelector(func(int) int { return 0 })))
	ctx := context.Background()

	d, err := f.svc.Suggest(ctx, "environment", nil)
	require.NoError(t, err)
	require.True(t, d.Found)
	assert.Equal(t, int64(2), d.Record.ID, "event 1 has already ended")

	d, err = f.svc.Suggest(ctx, "environment", []int64{2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), d.Record.ID)

	d, err = f.svc.Suggest(ctx, "environment", []int64{2, 4})
	require.NoError(t, err)
	assert.True(t, d.None())

	d, err = f.svc.Suggest(ctx, "", []int64{2, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Record.ID)
}

func Test_EventService_Get(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()

	_, err := f.svc.AddParticipant(ctx, 2, 7)
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Tree planting", detail.Name)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, int64(7), detail.Participants[0].UserID)

	_, err = f.svc.Get(ctx, 99)
	assert.Contains(t, err.Error(), "table:events")
}

func Test_EventService_AddParticipant(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()

	participants, err := f.svc.AddParticipant(ctx, 2, 7)
	require.NoError(t, err)
	assert.Len(t, participants, 1)

	require.Len(t, f.notifier.sent, 1)
	sent := f.notifier.sent[0]
	assert.Equal(t, "ada@example.com", sent.To)
	assert.Equal(t, "Tree planting", sent.EventName)
	assert.Equal(t, "Green", sent.OrganisationName)

	// No e-mail on file: joined, nothing enqueued.
	participants, err = f.svc.AddParticipant(ctx, 2, 8)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
	assert.Len(t, f.notifier.sent, 1)
}

func Test_EventService_AddParticipant_EnqueueFailureIsNotFatal(t *testing.T) {
	f := newEventFixture()
	f.notifier.err = errBoom

	participants, err := f.svc.AddParticipant(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func Test_EventService_AddParticipant_Unknown(t *testing.T) {
	tests := []struct {
		name    string
		eventID int64
		userID  int64
		field   string
	}{
		{name: "unknown_event", eventID: 1000, userID: 7, field: "event_id"},
		{name: "unknown_user", eventID: 2, userID: 1000, field: "user_id"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newEventFixture()

			_, err := f.svc.AddParticipant(context.Background(), tc.eventID, tc.userID)
			httpErr, ok := errs.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, tc.field, httpErr.Errors[0].Field)
			assert.Empty(t, f.notifier.sent)
		})
	}
}

func Test_EventService_RemoveParticipant(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()

	_, err := f.svc.AddParticipant(ctx, 2, 7)
	require.NoError(t, err)
	_, err = f.svc.AddParticipant(ctx, 2, 8)
	require.NoError(t, err)

	participants, err := f.svc.RemoveParticipant(ctx, 2, 7)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, int64(8), participants[0].UserID)

	_, err = f.svc.RemoveParticipant(ctx, 2, 7)
	assert.Contains(t, err.Error(), "table:participants")

	_, err = f.svc.RemoveParticipant(ctx, 1000, 7)
	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
}
