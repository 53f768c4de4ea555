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

const computationIndividual = "individual"

type seriesReader interface {
	Series(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, error)
}

type athleteReader interface {
	Athlete(ctx context.Context, id string) (*models.Athlete, error)
}

// LoadService builds individual training-load reports.
type LoadService struct {
	store     seriesReader
	roster    athleteReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	ttl       time.Duration
}

// LoadServiceParams groups constructor dependencies.
type LoadServiceParams struct {
	Store     seriesReader
	Roster    athleteReader
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// NewLoadService constructs a LoadService.
func NewLoadService(params LoadServiceParams) *LoadService {
	svc := &LoadService{
		store:     params.Store,
		roster:    params.Roster,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		ttl:       params.CacheTTL,
	}
	if svc.validator == nil {
		svc.validator = NewValidator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.ttl <= 0 {
		svc.ttl = 5 * time.Minute
	}
	return svc
}

// AthleteReport computes the load metrics, rolling ACWR series and risk
// semaphore of one athlete up to the requested end day. The end day
// defaults to the athlete's latest session.
func (s *LoadService) AthleteReport(ctx context.Context, athleteID string, query dto.LoadReportQuery, claims *models.JWTClaims) (*dto.LoadReport, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if athleteID == "" {
		return nil, appErrors.Validation("athlete id is required")
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err)
	}

	var end *time.Time
	if query.End != "" {
		t, _ := time.Parse(models.DateLayout, query.End)
		end = &t
	}

	athlete, err := s.roster.Athlete(ctx, athleteID)
	if err != nil {
		if degraded(err) {
			return s.neutralReport(nil, end, err), nil
		}
		return nil, err
	}

	namespace := claims.Namespace()
	shift := "*"
	if query.Shift != nil {
		shift = "=" + *query.Shift
	}
	key := ReportKey(namespace, "load", athleteID, query.End, shift)
	var cached dto.LoadReport
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := s.store.Series(ctx, models.WellnessFilter{
		Namespace:  namespace,
		AthleteIDs: []string{athleteID},
		Shift:      query.Shift,
		To:         end,
	})
	if err != nil {
		if degraded(err) {
			return s.neutralReport(athlete, end, err), nil
		}
		return nil, err
	}

	report := buildLoadReport(athlete, records, end)
	s.metrics.RecordComputation(computationIndividual)
	s.cache.Set(ctx, key, report, s.ttl)
	return report, nil
}

func buildLoadReport(athlete *models.Athlete, records []models.WellnessRecord, end *time.Time) *dto.LoadReport {
	metrics := workload.ComputeLoadMetrics(records, end)
	series := workload.RollingACWR(records)

	var fatigue *float64
	if n := len(records); n > 0 {
		latest := records[n-1]
		for _, r := range records[:n-1] {
			if r.SessionDate.After(latest.SessionDate) ||
				(r.SessionDate.Equal(latest.SessionDate) && r.RecordedAt.After(latest.RecordedAt)) {
				latest = r
			}
		}
		energy := float64(latest.Energy)
		fatigue = &energy
	}

	// The reported fatigue and ACWR are the inputs of the semaphore, so a
	// trailing check-in without load still moves the risk.
	latestACWR := workload.LatestACWR(series)

	return &dto.LoadReport{
		Athlete:        athlete,
		Metrics:        metrics,
		Series:         series,
		LatestACWR:     latestACWR,
		Fatigue:        fatigue,
		Risk:           workload.ClassifyRisk(latestACWR, fatigue),
		Interpretation: workload.Interpret(metrics),
		Weekly:         workload.WeeklyIndices(records),
	}
}

func (s *LoadService) neutralReport(athlete *models.Athlete, end *time.Time, cause error) *dto.LoadReport {
	s.logger.Warn("load report degraded", zap.Error(cause))
	report := buildLoadReport(athlete, nil, end)
	report.Warning = storeUnavailableWarning
	return report
}
