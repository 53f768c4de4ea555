package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
	"github.com/noah-isme/athlete-load-api/pkg/export"
)

const exportPageSize = 500

type wellnessLister interface {
	List(ctx context.Context, query dto.WellnessListQuery, claims *models.JWTClaims) (*dto.WellnessListResult, error)
}

type groupDashboarder interface {
	GroupDashboard(ctx context.Context, query dto.GroupDashboardQuery, claims *models.JWTClaims) (*dto.GroupDashboard, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders record listings and group summaries as downloads.
type ExportService struct {
	wellness  wellnessLister
	dashboard groupDashboarder
	csv       csvRenderer
	pdf       pdfRenderer
	title     string
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(wellness wellnessLister, dashboard groupDashboarder, csv csvRenderer, pdf pdfRenderer, title string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Athlete Load Report"
	}
	return &ExportService{
		wellness:  wellness,
		dashboard: dashboard,
		csv:       csv,
		pdf:       pdf,
		title:     title,
		logger:    logger,
		now:       time.Now,
	}
}

// ExportWellness renders every record matching query.
func (s *ExportService) ExportWellness(ctx context.Context, query dto.WellnessListQuery, format string, claims *models.JWTClaims) (*dto.ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Validation(err.Error())
	}

	var records []models.WellnessRecord
	query.Page, query.PageSize = 1, exportPageSize
	for {
		page, err := s.wellness.List(ctx, query, claims)
		if err != nil {
			return nil, err
		}
		if page.Warning != "" {
			return nil, appErrors.ErrStoreUnavailable
		}
		records = append(records, page.Items...)
		if len(page.Items) < exportPageSize || len(records) >= page.Pagination.TotalCount {
			break
		}
		query.Page++
	}

	data := export.Dataset{
		Title:    s.title + " - Wellness records",
		Subtitle: s.subtitle(claims),
		Headers: []string{
			"id", "athlete_id", "session_date", "shift", "phase",
			"recovery", "energy", "sleep", "stress", "pain", "pain_body_parts",
			"tactical_periodization", "session_minutes", "rpe", "training_load",
			"recorded_by", "recorded_at",
		},
		Rows: make([][]string, 0, len(records)),
	}
	for _, r := range records {
		data.Rows = append(data.Rows, []string{
			r.ID, r.AthleteID, r.SessionDate.Format(models.DateLayout), r.Shift, string(r.Phase),
			strconv.Itoa(r.Recovery), strconv.Itoa(r.Energy), strconv.Itoa(r.Sleep), strconv.Itoa(r.Stress), strconv.Itoa(r.Pain),
			strings.Join(r.PainBodyParts, "; "),
			r.TacticalPeriodization, optionalInt(r.SessionMinutes), optionalInt(r.RPE), optionalInt(r.TrainingLoad),
			r.RecordedBy, r.RecordedAt.UTC().Format(time.RFC3339),
		})
	}
	return s.render(f, "wellness", data)
}

// ExportGroup renders the per-athlete rollup of the group dashboard.
func (s *ExportService) ExportGroup(ctx context.Context, query dto.GroupDashboardQuery, format string, claims *models.JWTClaims) (*dto.ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Validation(err.Error())
	}
	dashboard, err := s.dashboard.GroupDashboard(ctx, query, claims)
	if err != nil {
		return nil, err
	}
	if dashboard.Warning != "" {
		return nil, appErrors.ErrStoreUnavailable
	}

	data := export.Dataset{
		Title: s.title + " - Group summary",
		Subtitle: fmt.Sprintf("%s | period %s | %d/%d athletes at risk (%.1f%%)",
			s.subtitle(claims), dashboard.Period, dashboard.Cards.Alerts.AtRisk, dashboard.Cards.Alerts.Total, dashboard.Cards.Alerts.Percent),
		Headers: []string{"athlete", "position", "records", "recovery", "energy", "sleep", "stress", "pain", "score", "rpe_mean", "load_total", "sessions", "at_risk"},
		Rows:    make([][]string, 0, len(dashboard.Athletes)),
	}
	for _, a := range dashboard.Athletes {
		data.Rows = append(data.Rows, []string{
			a.Name, a.PositionLabel, strconv.Itoa(a.Records),
			oneDecimal(a.Recovery), oneDecimal(a.Energy), oneDecimal(a.Sleep), oneDecimal(a.Stress), oneDecimal(a.Pain),
			oneDecimal(a.Score), optionalFloat(a.RPEMean), oneDecimal(a.LoadTotal), strconv.Itoa(a.Sessions),
			strconv.FormatBool(a.AtRisk),
		})
	}
	return s.render(f, "group-"+string(dashboard.Period), data)
}

func (s *ExportService) render(f export.Format, name string, data export.Dataset) (*dto.ExportFile, error) {
	var (
		content []byte
		err     error
	)
	switch f {
	case export.FormatPDF:
		content, err = s.pdf.Render(data)
	default:
		content, err = s.csv.Render(data)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	filename := fmt.Sprintf("%s-%s.%s", name, s.now().UTC().Format("20060102-150405"), f)
	s.logger.Info("export rendered", zap.String("file", filename), zap.Int("rows", len(data.Rows)), zap.Int("bytes", len(content)))
	return &dto.ExportFile{Filename: filename, ContentType: f.ContentType(), Content: content}, nil
}

func (s *ExportService) subtitle(claims *models.JWTClaims) string {
	return fmt.Sprintf("generated %s by %s", s.now().UTC().Format("2006-01-02 15:04 MST"), claims.Actor())
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return oneDecimal(*v)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
