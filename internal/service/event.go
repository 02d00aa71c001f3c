package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/go-quizbank/internal/errs"
	"github.com/deppfellow/go-quizbank/internal/lib/job"
	"github.com/deppfellow/go-quizbank/internal/metrics"
	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/sqlerr"
)

type eventRepository interface {
	Scoped(q query.Query) query.Store[model.Event]
	GetByID(ctx context.Context, id int64) (model.Event, error)
	ListByOrganisation(ctx context.Context, organisationID int64) ([]model.Event, error)
}

type participantRepository interface {
	List(ctx context.Context, eventID int64) ([]model.Participant, error)
	Add(ctx context.Context, eventID, userID int64) ([]model.Participant, error)
	Remove(ctx context.Context, eventID, userID int64) ([]model.Participant, error)
}

type userRepository interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
}

// participantNotifier is satisfied by *job.JobService.
type participantNotifier interface {
	EnqueueParticipantJoined(ctx context.Context, p job.ParticipantJoinedPayload) error
}

// EventDetail is an event together with its current participants.
type EventDetail struct {
	model.Event
	Participants []model.Participant `json:"participants"`
}

// EventFilter is the listing input. Type matches the event type exactly,
// Search looks into name and description.
type EventFilter struct {
	Type     string
	Search   string
	Page     int
	PageSize int
}

type EventService struct {
	events       eventRepository
	participants participantRepository
	users        userRepository
	notifier     participantNotifier
	metrics      *metrics.Collector
	logger       *zerolog.Logger
	opts         []query.Option
	now          func() time.Time
}

func NewEventService(
	events eventRepository,
	participants participantRepository,
	users userRepository,
	notifier participantNotifier,
	collector *metrics.Collector,
	logger *zerolog.Logger,
	opts ...query.Option,
) *EventService {
	return &EventService{
		events:       events,
		participants: participants,
		users:        users,
		notifier:     notifier,
		metrics:      collector,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
	}
}

func (s *EventService) List(ctx context.Context, f EventFilter) (query.Page[model.Event], error) {
	q := query.Query{Category: query.AllCategories(), Tag: f.Type, Search: f.Search}.
		WithPage(f.Page, f.PageSize)

	core := query.NewService(s.events.Scoped(q), model.EventFields, s.opts...)
	return listWithMetrics(ctx, s.metrics, recordEvent, core, q)
}

func (s *EventService) Get(ctx context.Context, id int64) (EventDetail, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return EventDetail{}, err
	}

	participants, err := s.participants.List(ctx, id)
	if err != nil {
		return EventDetail{}, err
	}
	return EventDetail{Event: event, Participants: participants}, nil
}

// Suggest draws one upcoming event of the given type (any type when empty)
// that is not in exclude.
func (s *EventService) Suggest(ctx context.Context, eventType string, exclude []int64) (query.Draw[model.Event], error) {
	q := query.Query{Category: query.AllCategories(), Tag: eventType}.WithExcluded(exclude...)

	store := upcomingEvents{inner: s.events.Scoped(q), now: s.now()}
	core := query.NewService[model.Event](store, model.EventFields, s.opts...)
	return drawWithMetrics(ctx, s.metrics, recordEvent, core, q)
}

// AddParticipant joins a user to an event and schedules the confirmation
// e-mail. Unknown events or users are unprocessable.
func (s *EventService) AddParticipant(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	event, user, err := s.lookupPair(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participants.Add(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	log := requestLogger(ctx, s.logger).With().Int64("event_id", eventID).Int64("user_id", userID).Logger()
	log.Info().Msg("participant added")

	if s.notifier != nil && user.EmailContact != "" {
		err := s.notifier.EnqueueParticipantJoined(ctx, job.ParticipantJoinedPayload{
			To:               user.EmailContact,
			UserName:         user.Name,
			EventID:          event.ID,
			EventName:        event.Name,
			OrganisationName: event.OrganisationName,
			Address:          event.Address,
			StartDatetime:    event.StartDatetime,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to enqueue participant joined email")
		}
	}

	return participants, nil
}

// RemoveParticipant drops a user from an event. Removing someone who never
// joined is reported as not found.
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, userID int64) ([]model.Participant, error) {
	if _, _, err := s.lookupPair(ctx, eventID, userID); err != nil {
		return nil, err
	}

	participants, err := s.participants.Remove(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	requestLogger(ctx, s.logger).Info().Int64("event_id", eventID).Int64("user_id", userID).Msg("participant removed")
	return participants, nil
}

func (s *EventService) lookupPair(ctx context.Context, eventID, userID int64) (model.Event, model.User, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if sqlerr.IsNoRows(err) {
		return model.Event{}, model.User{}, unprocessable("event_id", "event does not exist")
	}
	if err != nil {
		return model.Event{}, model.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if sqlerr.IsNoRows(err) {
		return model.Event{}, model.User{}, unprocessable("user_id", "user does not exist")
	}
	if err != nil {
		return model.Event{}, model.User{}, err
	}
	return event, user, nil
}

func unprocessable(field, reason string) *errs.HTTPError {
	return errs.NewUnprocessableEntityError("Unprocessable: "+reason, true,
		[]errs.FieldError{{Field: field, Error: reason}})
}

// upcomingEvents narrows a store to events that have not ended at now.
type upcomingEvents struct {
	inner query.Store[model.Event]
	now   time.Time
}

func (u upcomingEvents) Filter(ctx context.Context, pred query.Predicate[model.Event]) ([]model.Event, error) {
	var upcoming query.Predicate[model.Event] = func(e model.Event) bool { return !e.IsPast(u.now) }
	return u.inner.Filter(ctx, query.And(pred, upcoming))
}
