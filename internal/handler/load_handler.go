package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

type loadService interface {
	AthleteReport(ctx context.Context, athleteID string, query dto.LoadReportQuery, claims *models.JWTClaims) (*dto.LoadReport, error)
}

// LoadHandler serves individual training-load reports.
type LoadHandler struct {
	service loadService
}

// NewLoadHandler constructs the handler.
func NewLoadHandler(service loadService) *LoadHandler {
	return &LoadHandler{service: service}
}

// AthleteReport godoc
// @Summary Individual training-load report
// @Description Load metrics, rolling ACWR series, risk semaphore and interpretation for one athlete.
// @Tags Load
// @Produce json
// @Param id path string true "Athlete ID"
// @Param end query string false "Reference day (YYYY-MM-DD), defaults to today"
// @Param shift query string false "Restrict to one shift"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /athletes/{id}/load [get]
func (h *LoadHandler) AthleteReport(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.LoadReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	report, err := h.service.AthleteReport(c.Request.Context(), c.Param("id"), query, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, report, nil, report.Warning)
}
