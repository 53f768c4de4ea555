package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

const referenceUnavailableWarning = "reference data is temporarily unavailable"

type referenceService interface {
	Athletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error)
	Competitions(ctx context.Context) ([]models.Competition, error)
	Catalog(ctx context.Context, name string) ([]models.CatalogEntry, error)
}

// ReferenceHandler exposes roster, competitions and lookup catalogs.
type ReferenceHandler struct {
	service referenceService
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(service referenceService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Athletes godoc
// @Summary List active athletes
// @Tags Reference
// @Produce json
// @Param squad query string false "Squad"
// @Param position query string false "Position"
// @Success 200 {object} response.Envelope
// @Router /reference/athletes [get]
func (h *ReferenceHandler) Athletes(c *gin.Context) {
	var filter models.AthleteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	athletes, err := h.service.Athletes(c.Request.Context(), filter)
	if errors.Is(err, appErrors.ErrStoreUnavailable) {
		respond(c, []models.Athlete{}, nil, referenceUnavailableWarning)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, athletes, nil)
}

// Competitions godoc
// @Summary List competitions
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reference/competitions [get]
func (h *ReferenceHandler) Competitions(c *gin.Context) {
	competitions, err := h.service.Competitions(c.Request.Context())
	if errors.Is(err, appErrors.ErrStoreUnavailable) {
		respond(c, []models.Competition{}, nil, referenceUnavailableWarning)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, competitions, nil)
}

// Catalog godoc
// @Summary List the entries of a lookup catalog
// @Tags Reference
// @Produce json
// @Param name path string true "body_zones, stimulus_types or rehab_types"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reference/catalogs/{name} [get]
func (h *ReferenceHandler) Catalog(c *gin.Context) {
	entries, err := h.service.Catalog(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
