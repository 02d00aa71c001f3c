package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/query"
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/service"
	"github.com/deppfellow/go-quizbank/internal/validation"
)

type eventService interface {
	List(ctx context.Context, f service.EventFilter) (query.Page[model.Event], error)
	Get(ctx context.Context, id int64) (service.EventDetail, error)
	Suggest(ctx context.Context, eventType string, exclude []int64) (query.Draw[model.Event], error)
	AddParticipant(ctx context.Context, eventID, userID int64) ([]model.Participant, error)
	RemoveParticipant(ctx context.Context, eventID, userID int64) ([]model.Participant, error)
}

type EventHandler struct {
	Handler
	events eventService
}

func NewEventHandler(s *server.Server, events eventService) *EventHandler {
	return &EventHandler{Handler: NewHandler(s), events: events}
}

// DataResponse is the envelope of the volunteering endpoints.
type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func success[T any](data T) *DataResponse[T] {
	return &DataResponse[T]{Success: true, Data: data}
}

type EventPage struct {
	Events     []model.Event `json:"events"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type ListEventsRequest struct {
	Type     string `query:"type" validate:"max=100"`
	Search   string `query:"search" validate:"max=200"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size" validate:"max=100"`
}

func (r *ListEventsRequest) Validate() error { return validation.Struct(r) }

// ListEvents pages through events. Unlike questions, an empty page is a
// normal 200.
func (h *EventHandler) ListEvents(c echo.Context, req *ListEventsRequest) (*DataResponse[EventPage], error) {
	page, err := h.events.List(c.Request().Context(), service.EventFilter{
		Type:     req.Type,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	return success(EventPage{
		Events:     page.Items,
		Total:      page.TotalMatched,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}), nil
}

func (h *EventHandler) GetEvent(c echo.Context, req *IDRequest) (*DataResponse[service.EventDetail], error) {
	detail, err := h.events.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return success(detail), nil
}

type SuggestEventRequest struct {
	Type    string  `query:"type" validate:"max=100"`
	Exclude []int64 `query:"exclude" validate:"max=1000"`
}

func (r *SuggestEventRequest) Validate() error { return validation.Struct(r) }

// SuggestEvent picks a random upcoming event; data is null when none is left.
func (h *EventHandler) SuggestEvent(c echo.Context, req *SuggestEventRequest) (*DataResponse[*model.Event], error) {
	draw, err := h.events.Suggest(c.Request().Context(), req.Type, req.Exclude)
	if err != nil {
		return nil, err
	}
	if !draw.Found {
		return success[*model.Event](nil), nil
	}
	return success(&draw.Record), nil
}

type AddParticipantRequest struct {
	EventID int64 `param:"id" validate:"gt=0"`
	UserID  int64 `json:"user_id" validate:"gt=0"`
}

func (r *AddParticipantRequest) Validate() error { return validation.Struct(r) }

func (h *EventHandler) AddParticipant(c echo.Context, req *AddParticipantRequest) (*DataResponse[[]model.Participant], error) {
	participants, err := h.events.AddParticipant(c.Request().Context(), req.EventID, req.UserID)
	if err != nil {
		return nil, err
	}
	return success(participants), nil
}

type RemoveParticipantRequest struct {
	EventID int64 `param:"id" validate:"gt=0"`
	UserID  int64 `param:"user_id" validate:"gt=0"`
}

func (r *RemoveParticipantRequest) Validate() error { return validation.Struct(r) }

func (h *EventHandler) RemoveParticipant(c echo.Context, req *RemoveParticipantRequest) (*DataResponse[[]model.Participant], error) {
	participants, err := h.events.RemoveParticipant(c.Request().Context(), req.EventID, req.UserID)
	if err != nil {
		return nil, err
	}
	return success(participants), nil
}
