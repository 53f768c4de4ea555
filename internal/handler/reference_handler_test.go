package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/athlete-load-api/internal/models"
	appErrors "github.com/noah-isme/athlete-load-api/pkg/errors"
)

type fakeReferenceSrv struct {
	athletes []models.Athlete
	err      error
	filter   models.AthleteFilter
}

func (f *fakeReferenceSrv) Athletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error) {
	f.filter = filter
	return f.athletes, f.err
}

func (f *fakeReferenceSrv) Competitions(ctx context.Context) ([]models.Competition, error) {
	return []models.Competition{{ID: 1, Name: "Liga Sub-19"}}, f.err
}

func (f *fakeReferenceSrv) Catalog(ctx context.Context, name string) ([]models.CatalogEntry, error) {
	if !models.ValidCatalog(name) {
		return nil, appErrors.NotFound("catalog " + name + " not found")
	}
	return []models.CatalogEntry{{ID: 1, Name: "Rodilla"}}, nil
}

func TestReferenceHandlerAthletes(t *testing.T) {
	srv := &fakeReferenceSrv{athletes: []models.Athlete{{ID: "ath-1", FirstName: "Lucia"}}}
	handler := NewReferenceHandler(srv)

	c, w := newGinContext(http.MethodGet, "/reference/athletes?squad=U19&position=DEF", nil)
	handler.Athletes(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AthleteFilter{Squad: "U19", Position: "DEF"}, srv.filter)

	var athletes []models.Athlete
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &athletes))
	require.Len(t, athletes, 1)
	assert.Equal(t, "ath-1", athletes[0].ID)
}

func TestReferenceHandlerDegradesOnOutage(t *testing.T) {
	handler := NewReferenceHandler(&fakeReferenceSrv{err: appErrors.ErrStoreUnavailable})

	c, w := newGinContext(http.MethodGet, "/reference/competitions", nil)
	handler.Competitions(c)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Empty(t, envelope.Data)
	assert.Equal(t, referenceUnavailableWarning, envelope.Meta["warning"])
}

func TestReferenceHandlerCatalog(t *testing.T) {
	handler := NewReferenceHandler(&fakeReferenceSrv{})

	c, w := newGinContext(http.MethodGet, "/reference/catalogs/body_zones", nil)
	c.AddParam("name", "body_zones")
	handler.Catalog(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/reference/catalogs/injuries", nil)
	c.AddParam("name", "injuries")
	handler.Catalog(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
