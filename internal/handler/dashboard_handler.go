package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

type dashboardService interface {
	GroupDashboard(ctx context.Context, query dto.GroupDashboardQuery, claims *models.JWTClaims) (*dto.GroupDashboard, error)
}

type groupExporter interface {
	ExportGroup(ctx context.Context, query dto.GroupDashboardQuery, format string, claims *models.JWTClaims) (*dto.ExportFile, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service  dashboardService
	exporter groupExporter
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, exporter groupExporter) *DashboardHandler {
	return &DashboardHandler{service: service, exporter: exporter}
}

// Group godoc
// @Summary Group wellness and load dashboard
// @Tags Dashboard
// @Produce json
// @Param period query string false "today, last_day, week or month. Defaults to the narrowest period with data"
// @Param squad query string false "Squad"
// @Param position query string false "Position"
// @Success 200 {object} response.Envelope
// @Router /dashboard/group [get]
func (h *DashboardHandler) Group(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.GroupDashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	dashboard, err := h.service.GroupDashboard(c.Request.Context(), query, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, dashboard, nil, dashboard.Warning)
}

// Export godoc
// @Summary Download the group summary
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Param period query string false "Period"
// @Param squad query string false "Squad"
// @Param position query string false "Position"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /dashboard/group/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export is not configured"))
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.GroupDashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	file, err := h.exporter.ExportGroup(c.Request.Context(), query, c.Query("format"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
