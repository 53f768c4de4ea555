package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

const computationGroup = "group"

type athleteLister interface {
	Athletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error)
}

// DashboardService composes the group dashboard.
type DashboardService struct {
	store     seriesReader
	roster    athleteLister
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	ttl       time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Store     seriesReader
	Roster    athleteLister
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Clock     func() time.Time
	CacheTTL  time.Duration
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	svc := &DashboardService{
		store:     params.Store,
		roster:    params.Roster,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		now:       params.Clock,
		ttl:       params.CacheTTL,
	}
	if svc.validator == nil {
		svc.validator = NewValidator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.ttl <= 0 {
		svc.ttl = 5 * time.Minute
	}
	return svc
}

// GroupDashboard aggregates the records of the selected period. Without an
// explicit period the narrowest period containing data is chosen.
func (s *DashboardService) GroupDashboard(ctx context.Context, query dto.GroupDashboardQuery, claims *models.JWTClaims) (*dto.GroupDashboard, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err)
	}

	today := workload.Day(s.now())
	namespace := claims.Namespace()
	key := ReportKey(namespace, "dashboard", today.Format(models.DateLayout), query.Period, query.Squad, query.Position)
	var cached dto.GroupDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	athletes, err := s.roster.Athletes(ctx, models.AthleteFilter{Squad: query.Squad, Position: query.Position})
	if err != nil {
		if degraded(err) {
			return s.neutralDashboard(query, err), nil
		}
		return nil, err
	}

	filter := models.WellnessFilter{Namespace: namespace}
	if query.Squad != "" || query.Position != "" {
		if len(athletes) == 0 {
			return buildGroupDashboard(query, nil, athletes, today), nil
		}
		for _, a := range athletes {
			filter.AthleteIDs = append(filter.AthleteIDs, a.ID)
		}
	}

	records, err := s.store.Series(ctx, filter)
	if err != nil {
		if degraded(err) {
			return s.neutralDashboard(query, err), nil
		}
		return nil, err
	}

	dashboard := buildGroupDashboard(query, records, athletes, today)
	s.metrics.RecordComputation(computationGroup)
	s.cache.Set(ctx, key, dashboard, s.ttl)
	return dashboard, nil
}

func buildGroupDashboard(query dto.GroupDashboardQuery, records []models.WellnessRecord, athletes []models.Athlete, today time.Time) *dto.GroupDashboard {
	period := workload.Period(query.Period)
	if !period.Valid() {
		period = workload.DefaultPeriod(records, today)
	}
	filtered := workload.FilterByPeriod(records, period, today)
	cards := workload.BuildCards(filtered, period)

	byID := make(map[string]models.Athlete, len(athletes))
	for _, a := range athletes {
		byID[a.ID] = a
	}
	rollup := workload.GroupWellnessRisk(filtered)
	summaries := make([]dto.AthleteSummary, 0, len(rollup))
	for _, w := range rollup {
		summary := dto.AthleteSummary{AthleteWellness: w, Name: w.AthleteID}
		if a, ok := byID[w.AthleteID]; ok {
			summary.Name = a.FullName()
			summary.Position = a.Position
			summary.PositionLabel = models.PositionLabel(a.Position)
		}
		summaries = append(summaries, summary)
	}

	return &dto.GroupDashboard{
		Period:         period,
		Squad:          query.Squad,
		Position:       query.Position,
		Records:        len(filtered),
		Cards:          cards,
		Interpretation: workload.InterpretGroup(cards),
		Athletes:       summaries,
		Weekly:         workload.WeeklyIndices(records),
		DailyRPE:       workload.DailyRPE(filtered),
	}
}

func (s *DashboardService) neutralDashboard(query dto.GroupDashboardQuery, cause error) *dto.GroupDashboard {
	s.logger.Warn("group dashboard degraded", zap.Error(cause))
	dashboard := buildGroupDashboard(query, nil, nil, workload.Day(s.now()))
	dashboard.Warning = storeUnavailableWarning
	return dashboard
}
