package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
	"github.com/noah-isme/athlete-load-api/pkg/response"
)

type wellnessService interface {
	SubmitCheckIn(ctx context.Context, req dto.CheckInRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error)
	SubmitCheckOut(ctx context.Context, req dto.CheckOutRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error)
	Get(ctx context.Context, query dto.WellnessKeyQuery, claims *models.JWTClaims) (*models.WellnessRecord, error)
	List(ctx context.Context, query dto.WellnessListQuery, claims *models.JWTClaims) (*dto.WellnessListResult, error)
	Delete(ctx context.Context, req dto.DeleteWellnessRequest, claims *models.JWTClaims) (*dto.DeleteWellnessResult, error)
}

type wellnessExporter interface {
	ExportWellness(ctx context.Context, query dto.WellnessListQuery, format string, claims *models.JWTClaims) (*dto.ExportFile, error)
}

// WellnessHandler serves the check-in/check-out workflow and record listings.
type WellnessHandler struct {
	service  wellnessService
	exporter wellnessExporter
}

// NewWellnessHandler constructs the handler.
func NewWellnessHandler(service wellnessService, exporter wellnessExporter) *WellnessHandler {
	return &WellnessHandler{service: service, exporter: exporter}
}

// CheckIn godoc
// @Summary Submit a pre-session wellness check-in
// @Description Creates the record for (athlete, date, shift) or overwrites an existing one.
// @Tags Wellness
// @Accept json
// @Produce json
// @Param payload body dto.CheckInRequest true "Check-in questionnaire"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /wellness/check-in [post]
func (h *WellnessHandler) CheckIn(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check-in payload"))
		return
	}
	result, err := h.service.SubmitCheckIn(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(c, status, result, nil)
}

// CheckOut godoc
// @Summary Submit a post-session check-out
// @Description Completes the day's check-in with duration and RPE. Training load is RPE x minutes.
// @Tags Wellness
// @Accept json
// @Produce json
// @Param payload body dto.CheckOutRequest true "Session effort"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /wellness/check-out [post]
func (h *WellnessHandler) CheckOut(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid check-out payload"))
		return
	}
	result, err := h.service.SubmitCheckOut(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List wellness records
// @Tags Wellness
// @Produce json
// @Param athlete_id query string false "Athlete ID"
// @Param squad query string false "Squad"
// @Param position query string false "Position"
// @Param shift query string false "Shift"
// @Param phase query string false "checkin or checkout"
// @Param from query string false "First session date (YYYY-MM-DD)"
// @Param to query string false "Last session date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param sort query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /wellness [get]
func (h *WellnessHandler) List(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.WellnessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	result, err := h.service.List(c.Request.Context(), query, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := result.Pagination
	respond(c, result, &pagination, result.Warning)
}

// Get godoc
// @Summary Fetch one record by natural key
// @Tags Wellness
// @Produce json
// @Param athlete_id query string true "Athlete ID"
// @Param date query string true "Session date (YYYY-MM-DD)"
// @Param shift query string false "Shift"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /wellness/key [get]
func (h *WellnessHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.WellnessKeyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	record, err := h.service.Get(c.Request.Context(), query, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete wellness records
// @Tags Wellness
// @Accept json
// @Produce json
// @Param payload body dto.DeleteWellnessRequest true "Record ids"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /wellness [delete]
func (h *WellnessHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.DeleteWellnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid delete payload"))
		return
	}
	result, err := h.service.Delete(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Download wellness records
// @Tags Wellness
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Failure 503 {object} response.Envelope
// @Router /wellness/export [get]
func (h *WellnessHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export is not configured"))
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.WellnessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	file, err := h.exporter.ExportWellness(c.Request.Context(), query, c.Query("format"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
