package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

const (
	defaultMatchDayPlus  = "MD+1"
	defaultMatchDayMinus = "MD-6"

	noCheckInMessage        = "no prior check-in exists for this athlete/date/shift"
	storeUnavailableWarning = "the record store is unreachable, results may be incomplete"
)

type wellnessStore interface {
	FindByKey(ctx context.Context, key models.WellnessKey) (*models.WellnessRecord, error)
	UpsertCheckIn(ctx context.Context, rec *models.WellnessRecord) (bool, error)
	ApplyCheckOut(ctx context.Context, key models.WellnessKey, fields models.CheckOutFields) (*models.WellnessRecord, error)
	DeleteMany(ctx context.Context, namespace models.Namespace, ids []string) (int64, error)
	List(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, int, error)
}

type rosterReader interface {
	Athlete(ctx context.Context, id string) (*models.Athlete, error)
	AthleteIDs(ctx context.Context, filter models.AthleteFilter) ([]string, bool, error)
	CatalogEntryName(ctx context.Context, catalog string, id int64) (string, error)
}

// WellnessService runs the check-in/check-out reconciliation workflow.
//
// A check-in inserts the row for its natural key or overwrites it in full.
// A check-out only updates an existing row and never creates one.
type WellnessService struct {
	store         wellnessStore
	roster        rosterReader
	cache         *CacheService
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
	rehabStimulus string
}

// WellnessServiceParams groups constructor dependencies.
type WellnessServiceParams struct {
	Store             wellnessStore
	Roster            rosterReader
	Cache             *CacheService
	Metrics           *MetricsService
	Validator         *validator.Validate
	Logger            *zap.Logger
	Clock             func() time.Time
	RehabStimulusName string
}

// NewWellnessService constructs the workflow with sane defaults.
func NewWellnessService(params WellnessServiceParams) *WellnessService {
	svc := &WellnessService{
		store:         params.Store,
		roster:        params.Roster,
		cache:         params.Cache,
		metrics:       params.Metrics,
		validator:     params.Validator,
		logger:        params.Logger,
		now:           params.Clock,
		rehabStimulus: params.RehabStimulusName,
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
	if svc.rehabStimulus == "" {
		svc.rehabStimulus = "Readaptación"
	}
	return svc
}

// SubmitCheckIn validates and stores a check-in for the caller's namespace.
func (s *WellnessService) SubmitCheckIn(ctx context.Context, req dto.CheckInRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	rec, err := s.buildCheckIn(ctx, req, claims)
	if err != nil {
		return nil, s.rejected(models.PhaseCheckIn, err)
	}

	created, err := s.store.UpsertCheckIn(ctx, rec)
	if err != nil {
		return nil, s.rejected(models.PhaseCheckIn, err)
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	s.metrics.RecordSubmission(models.PhaseCheckIn, outcome)
	s.cache.InvalidateReports(ctx, rec.Namespace)
	s.logger.Info("wellness check-in stored",
		zap.String("key", rec.Key().String()),
		zap.Bool("created", created),
		zap.String("recorded_by", rec.RecordedBy),
	)
	return &dto.SubmissionResult{Record: rec, Created: created}, nil
}

func (s *WellnessService) buildCheckIn(ctx context.Context, req dto.CheckInRequest, claims *models.JWTClaims) (*models.WellnessRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	parts := cleanBodyParts(req.PainBodyParts)
	if req.Pain > 1 && len(parts) == 0 {
		return nil, appErrors.Validation("pain_body_parts must list at least one location when pain is above 1")
	}
	if req.Pain <= 1 {
		parts = models.BodyParts{}
	}

	now := s.now()
	sessionDate, err := parseSessionDate(req.SessionDate, now)
	if err != nil {
		return nil, err
	}

	plus, minus := req.MatchDayPlus, req.MatchDayMinus
	if plus == "" {
		plus = defaultMatchDayPlus
	}
	if minus == "" {
		minus = defaultMatchDayMinus
	}
	label, err := workload.PeriodizationLabel(plus, minus)
	if err != nil {
		return nil, appErrors.Validation(err.Error())
	}

	athlete, err := s.roster.Athlete(ctx, req.AthleteID)
	if err != nil {
		return nil, err
	}

	rec := &models.WellnessRecord{
		AthleteID:             athlete.ID,
		SessionDate:           sessionDate,
		Shift:                 strings.TrimSpace(req.Shift),
		Namespace:             claims.Namespace(),
		Phase:                 models.PhaseCheckIn,
		Recovery:              req.Recovery,
		Energy:                req.Energy,
		Sleep:                 req.Sleep,
		Stress:                req.Stress,
		Pain:                  req.Pain,
		PainBodyParts:         parts,
		TacticalPeriodization: label,
		StimulusTypeID:        req.StimulusTypeID,
		Notes:                 trimmedOrNil(req.Notes),
		RecordedBy:            claims.Actor(),
		RecordedAt:            now.UTC(),
	}
	if athlete.IsFemale() {
		rec.InMenstrualPeriod = req.InMenstrualPeriod
	}
	if req.RehabTypeID != nil && req.StimulusTypeID != nil {
		name, err := s.roster.CatalogEntryName(ctx, models.CatalogStimulusTypes, *req.StimulusTypeID)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(name, s.rehabStimulus) {
			rec.RehabTypeID = req.RehabTypeID
		}
	}
	return rec, nil
}

// SubmitCheckOut records session minutes and RPE on an existing row.
func (s *WellnessService) SubmitCheckOut(ctx context.Context, req dto.CheckOutRequest, claims *models.JWTClaims) (*dto.SubmissionResult, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, s.rejected(models.PhaseCheckOut, validationError(err))
	}

	now := s.now()
	sessionDate, err := parseSessionDate(req.SessionDate, now)
	if err != nil {
		return nil, s.rejected(models.PhaseCheckOut, err)
	}
	key := models.WellnessKey{
		AthleteID:   req.AthleteID,
		SessionDate: sessionDate,
		Shift:       strings.TrimSpace(req.Shift),
		Namespace:   claims.Namespace(),
	}
	fields := models.CheckOutFields{
		SessionMinutes: req.SessionMinutes,
		RPE:            req.RPE,
		TrainingLoad:   req.RPE * req.SessionMinutes,
		RecordedBy:     claims.Actor(),
		RecordedAt:     now.UTC(),
	}

	rec, err := s.store.ApplyCheckOut(ctx, key, fields)
	if err != nil {
		return nil, s.rejected(models.PhaseCheckOut, err)
	}
	if rec == nil {
		return nil, s.rejected(models.PhaseCheckOut, appErrors.Validation(noCheckInMessage))
	}

	s.metrics.RecordSubmission(models.PhaseCheckOut, OutcomeUpdated)
	s.cache.InvalidateReports(ctx, key.Namespace)
	s.logger.Info("wellness check-out stored",
		zap.String("key", key.String()),
		zap.Int("training_load", fields.TrainingLoad),
		zap.String("recorded_by", fields.RecordedBy),
	)
	return &dto.SubmissionResult{Record: rec}, nil
}

// Get returns the record for a natural key in the caller's namespace.
func (s *WellnessService) Get(ctx context.Context, query dto.WellnessKeyQuery, claims *models.JWTClaims) (*models.WellnessRecord, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err)
	}
	sessionDate, err := parseSessionDate(query.SessionDate, s.now())
	if err != nil {
		return nil, err
	}
	key := models.WellnessKey{
		AthleteID:   query.AthleteID,
		SessionDate: sessionDate,
		Shift:       strings.TrimSpace(query.Shift),
		Namespace:   claims.Namespace(),
	}
	rec, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, appErrors.NotFound(fmt.Sprintf("no wellness record for athlete %s on %s", key.AthleteID, query.SessionDate))
	}
	return rec, nil
}

// List returns a page of records. A store outage yields an empty page with
// a warning instead of an error.
func (s *WellnessService) List(ctx context.Context, query dto.WellnessListQuery, claims *models.JWTClaims) (*dto.WellnessListResult, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, validationError(err)
	}

	filter, empty, err := s.listFilter(ctx, query, claims)
	if err != nil {
		if degraded(err) {
			return s.emptyList(filter, err), nil
		}
		return nil, err
	}
	if empty {
		return &dto.WellnessListResult{Items: []models.WellnessRecord{}, Pagination: models.Pagination{Page: filter.Page, PageSize: filter.PageSize}}, nil
	}

	items, total, err := s.store.List(ctx, filter)
	if err != nil {
		if degraded(err) {
			return s.emptyList(filter, err), nil
		}
		return nil, err
	}
	if items == nil {
		items = []models.WellnessRecord{}
	}
	return &dto.WellnessListResult{
		Items:      items,
		Pagination: models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total},
	}, nil
}

func (s *WellnessService) emptyList(filter models.WellnessFilter, err error) *dto.WellnessListResult {
	s.logger.Warn("wellness listing degraded", zap.Error(err))
	return &dto.WellnessListResult{
		Items:      []models.WellnessRecord{},
		Pagination: models.Pagination{Page: filter.Page, PageSize: filter.PageSize},
		Warning:    storeUnavailableWarning,
	}
}

// listFilter translates the HTTP query into a store filter. empty is true
// when the roster filter matched no athletes.
func (s *WellnessService) listFilter(ctx context.Context, query dto.WellnessListQuery, claims *models.JWTClaims) (models.WellnessFilter, bool, error) {
	filter := models.WellnessFilter{
		Namespace: claims.Namespace(),
		Shift:     query.Shift,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortOrder: query.Sort,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	if query.Phase != "" {
		phase := models.Phase(query.Phase)
		filter.Phase = &phase
	}
	if query.From != "" {
		from, _ := time.Parse(models.DateLayout, query.From)
		filter.From = &from
	}
	if query.To != "" {
		to, _ := time.Parse(models.DateLayout, query.To)
		filter.To = &to
	}

	ids, narrowed, err := s.roster.AthleteIDs(ctx, models.AthleteFilter{Squad: query.Squad, Position: query.Position})
	if err != nil {
		return filter, false, err
	}
	switch {
	case query.AthleteID != "" && narrowed:
		if !containsString(ids, query.AthleteID) {
			return filter, true, nil
		}
		filter.AthleteIDs = []string{query.AthleteID}
	case query.AthleteID != "":
		filter.AthleteIDs = []string{query.AthleteID}
	case narrowed:
		if len(ids) == 0 {
			return filter, true, nil
		}
		filter.AthleteIDs = ids
	}
	return filter, false, nil
}

// Delete physically removes records by id within the caller's namespace.
func (s *WellnessService) Delete(ctx context.Context, req dto.DeleteWellnessRequest, claims *models.JWTClaims) (*dto.DeleteWellnessResult, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleAdmin && claims.Role != models.RoleDeveloper {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	namespace := claims.Namespace()
	deleted, err := s.store.DeleteMany(ctx, namespace, uniqueStrings(req.IDs))
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateReports(ctx, namespace)
	s.logger.Info("wellness records deleted",
		zap.String("namespace", string(namespace)),
		zap.Int("requested", len(req.IDs)),
		zap.Int64("deleted", deleted),
		zap.String("actor", claims.Actor()),
	)
	return &dto.DeleteWellnessResult{Deleted: deleted}, nil
}

func (s *WellnessService) rejected(phase models.Phase, err error) error {
	outcome := OutcomeFailed
	switch {
	case errors.Is(err, appErrors.ErrValidation), errors.Is(err, appErrors.ErrNotFound):
		outcome = OutcomeRejected
	case degraded(err):
		outcome = OutcomeUnavailable
	}
	s.metrics.RecordSubmission(phase, outcome)
	if outcome != OutcomeRejected {
		s.logger.Error("wellness submission failed", zap.String("phase", string(phase)), zap.Error(err))
	}
	return err
}

func cleanBodyParts(parts []string) models.BodyParts {
	seen := make(map[string]struct{}, len(parts))
	out := models.BodyParts{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
