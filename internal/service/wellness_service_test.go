package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

type wellnessFixture struct {
	svc     *WellnessService
	store   *fakeWellnessStore
	roster  *fakeRoster
	cache   *memoryCache
	metrics *MetricsService
}

func newWellnessFixture(t *testing.T) *wellnessFixture {
	t.Helper()
	store := newFakeWellnessStore()
	roster := newFakeRoster(lucia, marco, pablo)
	cache := newMemoryCache()
	metrics := NewMetricsService()
	svc := NewWellnessService(WellnessServiceParams{
		Store:   store,
		Roster:  roster,
		Cache:   NewCacheService(cache, metrics, 0, zap.NewNop(), true),
		Metrics: metrics,
		Logger:  zap.NewNop(),
		Clock:   fixedClock,
	})
	return &wellnessFixture{svc: svc, store: store, roster: roster, cache: cache, metrics: metrics}
}

func validCheckIn(athleteID string) dto.CheckInRequest {
	return dto.CheckInRequest{
		AthleteID:   athleteID,
		SessionDate: "2024-05-06",
		Shift:       "Shift 1",
		Recovery:    4,
		Energy:      3,
		Sleep:       4,
		Stress:      2,
		Pain:        1,
	}
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrValidation), "expected validation error, got %v", err)
	return appErrors.FromError(err).Message
}

func TestWellnessServiceCheckInCreatesRecord(t *testing.T) {
	f := newWellnessFixture(t)

	res, err := f.svc.SubmitCheckIn(context.Background(), validCheckIn("ath-2"), coachClaims())
	require.NoError(t, err)
	assert.True(t, res.Created)

	rec := res.Record
	assert.Equal(t, models.PhaseCheckIn, rec.Phase)
	assert.Equal(t, models.NamespaceStandard, rec.Namespace)
	assert.Equal(t, "2024-05-06", rec.SessionDate.Format(models.DateLayout))
	assert.Equal(t, []int{4, 3, 4, 2, 1}, []int{rec.Recovery, rec.Energy, rec.Sleep, rec.Stress, rec.Pain})
	assert.Equal(t, models.BodyParts{}, rec.PainBodyParts)
	assert.Equal(t, "MD+1 / MD-6", rec.TacticalPeriodization)
	assert.Nil(t, rec.SessionMinutes)
	assert.Nil(t, rec.RPE)
	assert.Nil(t, rec.TrainingLoad)
	assert.Equal(t, "coach", rec.RecordedBy)
	assert.Equal(t, fixedNow, rec.RecordedAt)

	stored, err := f.store.FindByKey(context.Background(), rec.Key())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rec.ID, stored.ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.submissions.WithLabelValues("checkin", OutcomeCreated)))
	assert.Equal(t, []string{"report:standard:*"}, f.cache.deleted)
}

func TestWellnessServiceCheckInDefaultsSessionDateToToday(t *testing.T) {
	f := newWellnessFixture(t)
	req := validCheckIn("ath-2")
	req.SessionDate = ""

	res, err := f.svc.SubmitCheckIn(context.Background(), req, coachClaims())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", res.Record.SessionDate.Format(models.DateLayout))
}

func TestWellnessServiceCheckInValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*dto.CheckInRequest)
		message string
	}{
		{"energy above range", func(r *dto.CheckInRequest) { r.Energy = 6 }, "energy must be between 1 and 5"},
		{"missing recovery", func(r *dto.CheckInRequest) { r.Recovery = 0 }, "recovery must be between 1 and 5"},
		{"pain without location", func(r *dto.CheckInRequest) { r.Pain = 3 }, "pain_body_parts must list at least one location when pain is above 1"},
		{"pain with blank locations", func(r *dto.CheckInRequest) { r.Pain = 3; r.PainBodyParts = []string{" ", ""} }, "pain_body_parts must list at least one location when pain is above 1"},
		{"bad date", func(r *dto.CheckInRequest) { r.SessionDate = "06/05/2024" }, "session_date must be a date in YYYY-MM-DD format"},
		{"match day out of range", func(r *dto.CheckInRequest) { r.MatchDayPlus = "MD+15" }, "match_day_plus must be between MD0 and MD+14"},
		{"missing athlete", func(r *dto.CheckInRequest) { r.AthleteID = "" }, "athlete_id is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newWellnessFixture(t)
			req := validCheckIn("ath-2")
			tc.mutate(&req)

			_, err := f.svc.SubmitCheckIn(context.Background(), req, coachClaims())
			assert.Equal(t, tc.message, validationMessage(t, err))
			assert.Empty(t, f.store.rows)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.submissions.WithLabelValues("checkin", OutcomeRejected)))
		})
	}
}

func TestWellnessServiceCheckInPainLocations(t *testing.T) {
	f := newWellnessFixture(t)
	req := validCheckIn("ath-2")
	req.Pain = 3
	req.PainBodyParts = []string{" Rodilla ", "Tobillo", "Rodilla", ""}

	res, err := f.svc.SubmitCheckIn(context.Background(), req, coachClaims())
	require.NoError(t, err)
	assert.Equal(t, models.BodyParts{"Rodilla", "Tobillo"}, res.Record.PainBodyParts)

	req.Pain = 1
	res, err = f.svc.SubmitCheckIn(context.Background(), req, coachClaims())
	require.NoError(t, err)
	assert.Empty(t, res.Record.PainBodyParts)
}

func TestWellnessServiceCheckInUnknownAthlete(t *testing.T) {
	f := newWellnessFixture(t)

	_, err := f.svc.SubmitCheckIn(context.Background(), validCheckIn("ghost"), coachClaims())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, f.store.rows)
}

func TestWellnessServiceCheckInConditionalFields(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()

	female := validCheckIn("ath-1")
	female.InMenstrualPeriod = boolPtr(true)
	female.StimulusTypeID = int64Ptr(6)
	female.RehabTypeID = int64Ptr(2)
	res, err := f.svc.SubmitCheckIn(ctx, female, coachClaims())
	require.NoError(t, err)
	require.NotNil(t, res.Record.InMenstrualPeriod)
	assert.True(t, *res.Record.InMenstrualPeriod)
	require.NotNil(t, res.Record.RehabTypeID)
	assert.Equal(t, int64(2), *res.Record.RehabTypeID)

	male := validCheckIn("ath-2")
	male.InMenstrualPeriod = boolPtr(true)
	male.StimulusTypeID = int64Ptr(1)
	male.RehabTypeID = int64Ptr(2)
	res, err = f.svc.SubmitCheckIn(ctx, male, coachClaims())
	require.NoError(t, err)
	assert.Nil(t, res.Record.InMenstrualPeriod)
	assert.Nil(t, res.Record.RehabTypeID)
	require.NotNil(t, res.Record.StimulusTypeID)
	assert.Equal(t, int64(1), *res.Record.StimulusTypeID)
}

func TestWellnessServiceCheckOutComputesLoad(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()

	checkIn := validCheckIn("ath-2")
	checkIn.Pain = 2
	checkIn.PainBodyParts = []string{"Gemelo"}
	_, err := f.svc.SubmitCheckIn(ctx, checkIn, coachClaims())
	require.NoError(t, err)

	medical := &models.JWTClaims{UserID: "u-med", Username: "physio", Role: models.RoleMedical}
	res, err := f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{
		AthleteID:      "ath-2",
		SessionDate:    "2024-05-06",
		Shift:          "Shift 1",
		SessionMinutes: 75,
		RPE:            6,
	}, medical)
	require.NoError(t, err)

	rec := res.Record
	assert.False(t, res.Created)
	assert.Equal(t, models.PhaseCheckOut, rec.Phase)
	assert.Equal(t, 450, *rec.TrainingLoad)
	assert.Equal(t, 75, *rec.SessionMinutes)
	assert.Equal(t, 6, *rec.RPE)
	assert.Equal(t, "physio", rec.RecordedBy)
	assert.Equal(t, []int{4, 3, 4, 2, 2}, []int{rec.Recovery, rec.Energy, rec.Sleep, rec.Stress, rec.Pain})
	assert.Equal(t, models.BodyParts{"Gemelo"}, rec.PainBodyParts)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.submissions.WithLabelValues("checkout", OutcomeUpdated)))
}

func TestWellnessServiceCheckOutWithoutCheckIn(t *testing.T) {
	f := newWellnessFixture(t)

	_, err := f.svc.SubmitCheckOut(context.Background(), dto.CheckOutRequest{
		AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 60, RPE: 5,
	}, coachClaims())
	assert.Equal(t, "no prior check-in exists for this athlete/date/shift", validationMessage(t, err))
	assert.Empty(t, f.store.rows)
}

func TestWellnessServiceCheckOutValidation(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()
	checkIn, err := f.svc.SubmitCheckIn(ctx, validCheckIn("ath-2"), coachClaims())
	require.NoError(t, err)

	_, err = f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 0, RPE: 5}, coachClaims())
	assert.Equal(t, "session_minutes must be a positive integer", validationMessage(t, err))

	_, err = f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 60, RPE: 11}, coachClaims())
	assert.Equal(t, "rpe must be between 1 and 10", validationMessage(t, err))

	_, err = f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 300000000, RPE: 10}, coachClaims())
	assert.Equal(t, "session_minutes must be at most 1440", validationMessage(t, err))

	rec, err := f.store.FindByKey(ctx, checkIn.Record.Key())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.PhaseCheckIn, rec.Phase)
	assert.Nil(t, rec.TrainingLoad)
}

func TestWellnessServiceCheckInOverwritesExistingRow(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()

	first, err := f.svc.SubmitCheckIn(ctx, validCheckIn("ath-2"), coachClaims())
	require.NoError(t, err)
	_, err = f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 60, RPE: 5}, coachClaims())
	require.NoError(t, err)

	edit := validCheckIn("ath-2")
	edit.Energy = 5
	second, err := f.svc.SubmitCheckIn(ctx, edit, coachClaims())
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Len(t, f.store.rows, 1)

	stored, err := f.store.FindByKey(ctx, second.Record.Key())
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Energy)
	assert.Equal(t, models.PhaseCheckIn, stored.Phase)
	assert.Nil(t, stored.TrainingLoad)
}

func TestWellnessServiceNamespacesAreIsolated(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()

	res, err := f.svc.SubmitCheckIn(ctx, validCheckIn("ath-2"), developerClaims())
	require.NoError(t, err)
	assert.Equal(t, models.NamespaceDeveloper, res.Record.Namespace)

	_, err = f.svc.Get(ctx, dto.WellnessKeyQuery{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1"}, coachClaims())
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = f.svc.SubmitCheckOut(ctx, dto.CheckOutRequest{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1", SessionMinutes: 60, RPE: 5}, coachClaims())
	assert.Equal(t, noCheckInMessage, validationMessage(t, err))

	standard, err := f.svc.SubmitCheckIn(ctx, validCheckIn("ath-2"), coachClaims())
	require.NoError(t, err)
	assert.True(t, standard.Created)
	assert.Len(t, f.store.rows, 2)

	got, err := f.svc.Get(ctx, dto.WellnessKeyQuery{AthleteID: "ath-2", SessionDate: "2024-05-06", Shift: "Shift 1"}, developerClaims())
	require.NoError(t, err)
	assert.Equal(t, res.Record.ID, got.ID)
}

func TestWellnessServiceWritesSurfaceStoreOutage(t *testing.T) {
	f := newWellnessFixture(t)
	f.store.err = unavailable()

	_, err := f.svc.SubmitCheckIn(context.Background(), validCheckIn("ath-2"), coachClaims())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStoreUnavailable))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.submissions.WithLabelValues("checkin", OutcomeUnavailable)))
}

func TestWellnessServiceListDegradesOnOutage(t *testing.T) {
	f := newWellnessFixture(t)
	f.store.err = unavailable()

	res, err := f.svc.List(context.Background(), dto.WellnessListQuery{}, coachClaims())
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, storeUnavailableWarning, res.Warning)
}

func TestWellnessServiceListFilters(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()
	for _, id := range []string{"ath-1", "ath-2", "ath-3"} {
		_, err := f.svc.SubmitCheckIn(ctx, validCheckIn(id), coachClaims())
		require.NoError(t, err)
	}

	res, err := f.svc.List(ctx, dto.WellnessListQuery{Squad: "U19"}, coachClaims())
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Pagination.TotalCount)

	res, err = f.svc.List(ctx, dto.WellnessListQuery{Squad: "U19", AthleteID: "ath-3"}, coachClaims())
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = f.svc.List(ctx, dto.WellnessListQuery{Squad: "NOBODY"}, coachClaims())
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = f.svc.List(ctx, dto.WellnessListQuery{Phase: "checkout"}, coachClaims())
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = f.svc.List(ctx, dto.WellnessListQuery{Phase: "done"}, coachClaims())
	assert.Equal(t, "phase must be one of: checkin checkout", validationMessage(t, err))
}

func TestWellnessServiceDelete(t *testing.T) {
	f := newWellnessFixture(t)
	ctx := context.Background()
	res, err := f.svc.SubmitCheckIn(ctx, validCheckIn("ath-2"), developerClaims())
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, dto.DeleteWellnessRequest{IDs: []string{res.Record.ID}}, coachClaims())
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = f.svc.Delete(ctx, dto.DeleteWellnessRequest{}, developerClaims())
	assert.Equal(t, "ids is required", validationMessage(t, err))

	admin := &models.JWTClaims{UserID: "u-admin", Username: "admin", Role: models.RoleAdmin}
	out, err := f.svc.Delete(ctx, dto.DeleteWellnessRequest{IDs: []string{res.Record.ID}}, admin)
	require.NoError(t, err)
	assert.Zero(t, out.Deleted)

	out, err = f.svc.Delete(ctx, dto.DeleteWellnessRequest{IDs: []string{res.Record.ID, res.Record.ID}}, developerClaims())
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Deleted)
	assert.Empty(t, f.store.rows)
}

func TestWellnessServiceRequiresClaims(t *testing.T) {
	f := newWellnessFixture(t)
	_, err := f.svc.SubmitCheckIn(context.Background(), validCheckIn("ath-2"), nil)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
