package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-quizbank/internal/model"
	"github.com/deppfellow/go-quizbank/internal/server"
	"github.com/deppfellow/go-quizbank/internal/service"
)

type organisationService interface {
	List(ctx context.Context) ([]model.Organisation, error)
	Get(ctx context.Context, id int64) (service.OrganisationDetail, error)
}

type OrganisationHandler struct {
	Handler
	organisations organisationService
}

func NewOrganisationHandler(s *server.Server, organisations organisationService) *OrganisationHandler {
	return &OrganisationHandler{Handler: NewHandler(s), organisations: organisations}
}

func (h *OrganisationHandler) ListOrganisations(c echo.Context, _ *EmptyRequest) (*DataResponse[[]model.Organisation], error) {
	organisations, err := h.organisations.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return success(organisations), nil
}

// GetOrganisation returns the organisation with its events split into past
// and upcoming.
func (h *OrganisationHandler) GetOrganisation(c echo.Context, req *IDRequest) (*DataResponse[service.OrganisationDetail], error) {
	detail, err := h.organisations.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return success(detail), nil
}
