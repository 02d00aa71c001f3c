package service

import (
	"context"
	"time"

	"github.com/deppfellow/go-quizbank/internal/model"
)

type organisationRepository interface {
	List(ctx context.Context) ([]model.Organisation, error)
	GetByID(ctx context.Context, id int64) (model.Organisation, error)
}

// OrganisationDetail splits an organisation's events around the current time.
type OrganisationDetail struct {
	model.Organisation
	PastEvents     []model.Event `json:"past_events"`
	UpcomingEvents []model.Event `json:"upcoming_events"`
}

type OrganisationService struct {
	organisations organisationRepository
	events        eventRepository
	now           func() time.Time
}

func NewOrganisationService(organisations organisationRepository, events eventRepository) *OrganisationService {
	return &OrganisationService{organisations: organisations, events: events, now: time.Now}
}

func (s *OrganisationService) List(ctx context.Context) ([]model.Organisation, error) {
	return s.organisations.List(ctx)
}

func (s *OrganisationService) Get(ctx context.Context, id int64) (OrganisationDetail, error) {
	org, err := s.organisations.GetByID(ctx, id)
	if err != nil {
		return OrganisationDetail{}, err
	}

	events, err := s.events.ListByOrganisation(ctx, id)
	if err != nil {
		return OrganisationDetail{}, err
	}

	past, upcoming := model.SplitEvents(events, s.now())
	return OrganisationDetail{Organisation: org, PastEvents: past, UpcomingEvents: upcoming}, nil
}
