package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/athlete-load-api/internal/dto"
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

type fakeLoadSrv struct {
	report    *dto.LoadReport
	err       error
	athleteID string
	query     dto.LoadReportQuery
}

func (f *fakeLoadSrv) AthleteReport(ctx context.Context, athleteID string, query dto.LoadReportQuery, claims *models.JWTClaims) (*dto.LoadReport, error) {
	f.athleteID = athleteID
	f.query = query
	return f.report, f.err
}

func TestLoadHandlerAthleteReport(t *testing.T) {
	acwr := 1.1
	srv := &fakeLoadSrv{report: &dto.LoadReport{LatestACWR: &acwr, Risk: workload.RiskLow}}
	handler := NewLoadHandler(srv)

	c, w := newGinContext(http.MethodGet, "/athletes/ath-1/load?end=2024-05-06&shift=Shift%201", nil)
	withClaims(c, models.RoleCoach)
	c.AddParam("id", "ath-1")
	handler.AthleteReport(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ath-1", srv.athleteID)
	assert.Equal(t, "2024-05-06", srv.query.End)
	require.NotNil(t, srv.query.Shift)
	assert.Equal(t, "Shift 1", *srv.query.Shift)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &report))
	assert.Equal(t, 1.1, report["latest_acwr"])
	assert.Equal(t, string(workload.RiskLow), report["risk"])
}

func TestLoadHandlerDegradedReport(t *testing.T) {
	handler := NewLoadHandler(&fakeLoadSrv{report: &dto.LoadReport{Warning: "the record store is unreachable, results may be incomplete"}})

	c, w := newGinContext(http.MethodGet, "/athletes/ath-1/load", nil)
	withClaims(c, models.RoleCoach)
	c.AddParam("id", "ath-1")
	handler.AthleteReport(c)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope.Meta["degraded"])
	assert.Equal(t, "the record store is unreachable, results may be incomplete", envelope.Meta["warning"])
}

func TestLoadHandlerUnknownAthlete(t *testing.T) {
	handler := NewLoadHandler(&fakeLoadSrv{err: appErrors.NotFound("athlete ghost not found")})

	c, w := newGinContext(http.MethodGet, "/athletes/ghost/load", nil)
	withClaims(c, models.RoleCoach)
	c.AddParam("id", "ghost")
	handler.AthleteReport(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
