package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

var athleteColumnNames = []string{
	"id", "first_name", "last_name", "squad", "position", "sex", "birth_date", "jersey_number",
	"nationality", "height_cm", "weight_kg", "photo_url", "active",
}

func newReferenceRepoMock(t *testing.T) (*ReferenceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewReferenceRepository(sqlxDB), mock, func() { _ = sqlxDB.Close() }
}

func TestReferenceRepositoryListAthletesFilters(t *testing.T) {
	repo, mock, cleanup := newReferenceRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM athletes WHERE active = TRUE AND squad = $1 AND position = $2 ORDER BY last_name ASC, first_name ASC")).
		WithArgs("U19", "DEF").
		WillReturnRows(sqlmock.NewRows(athleteColumnNames).
			AddRow("ath-1", "Lucia", "Ramos", "U19", "DEF", "F", nil, 4, nil, "168.5", nil, nil, true))

	athletes, err := repo.ListAthletes(context.Background(), models.AthleteFilter{Squad: "U19", Position: "DEF"})
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, "Lucia Ramos", athletes[0].FullName())
	assert.True(t, athletes[0].IsFemale())
	require.NotNil(t, athletes[0].HeightCM)
	assert.InDelta(t, 168.5, *athletes[0].HeightCM, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepositoryGetAthleteMissing(t *testing.T) {
	repo, mock, cleanup := newReferenceRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM athletes WHERE id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	athlete, err := repo.GetAthlete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, athlete)
}

func TestReferenceRepositoryInsertAthletesSkipsExisting(t *testing.T) {
	repo, mock, cleanup := newReferenceRepoMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WithArgs("dev-1", "Ana", "Diaz", "DEV", "MC", "F", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WithArgs("dev-2", "Ben", "Ortiz", "DEV", "DEL", "M", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.InsertAthletes(context.Background(), []models.Athlete{
		{ID: "dev-1", FirstName: "Ana", LastName: "Diaz", Squad: "DEV", Position: "MC", Sex: models.SexFemale},
		{ID: "dev-2", FirstName: "Ben", LastName: "Ortiz", Squad: "DEV", Position: "DEL", Sex: models.SexMale},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepositoryListCatalog(t *testing.T) {
	repo, mock, cleanup := newReferenceRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM stimulus_types ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Fuerza").AddRow(2, "Readaptación"))

	entries, err := repo.ListCatalog(context.Background(), models.CatalogStimulusTypes)
	require.NoError(t, err)
	assert.Equal(t, []models.CatalogEntry{{ID: 1, Name: "Fuerza"}, {ID: 2, Name: "Readaptación"}}, entries)

	_, err = repo.ListCatalog(context.Background(), "users; DROP TABLE athletes")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepositoryListCompetitions(t *testing.T) {
	repo, mock, cleanup := newReferenceRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code FROM competitions ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}).AddRow(1, "Liga Sub-19", "U19"))

	competitions, err := repo.ListCompetitions(context.Background())
	require.NoError(t, err)
	require.Len(t, competitions, 1)
	assert.Equal(t, "U19", competitions[0].Code)
}
