package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

const athleteColumns = `id, first_name, last_name, squad, position, sex, birth_date, jersey_number,
	nationality, height_cm, weight_kg, photo_url, active`

// catalogTables whitelists the lookup tables that may be read by name.
var catalogTables = map[string]string{
	models.CatalogBodyZones:     "body_zones",
	models.CatalogStimulusTypes: "stimulus_types",
	models.CatalogRehabTypes:    "rehab_types",
}

// ReferenceRepository reads roster, competition and catalog data.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository constructs the repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListAthletes returns active athletes ordered by name.
func (r *ReferenceRepository) ListAthletes(ctx context.Context, filter models.AthleteFilter) ([]models.Athlete, error) {
	where := []string{"active = TRUE"}
	args := []interface{}{}
	if filter.Squad != "" {
		args = append(args, filter.Squad)
		where = append(where, fmt.Sprintf("squad = $%d", len(args)))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		where = append(where, fmt.Sprintf("position = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM athletes WHERE %s ORDER BY last_name ASC, first_name ASC", athleteColumns, strings.Join(where, " AND "))

	var athletes []models.Athlete
	if err := r.db.SelectContext(ctx, &athletes, query, args...); err != nil {
		return nil, storeError(err, "list athletes")
	}
	return athletes, nil
}

// GetAthlete returns the athlete or nil when unknown.
func (r *ReferenceRepository) GetAthlete(ctx context.Context, id string) (*models.Athlete, error) {
	var athlete models.Athlete
	if err := r.db.GetContext(ctx, &athlete, "SELECT "+athleteColumns+" FROM athletes WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(err, "get athlete")
	}
	return &athlete, nil
}

// InsertAthletes adds roster entries, skipping ids that already exist.
func (r *ReferenceRepository) InsertAthletes(ctx context.Context, athletes []models.Athlete) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeError(err, "begin athlete insert")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO athletes (id, first_name, last_name, squad, position, sex, birth_date, jersey_number, nationality, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
ON CONFLICT (id) DO NOTHING`
	for _, a := range athletes {
		if _, err = tx.ExecContext(ctx, query, a.ID, a.FirstName, a.LastName, a.Squad, a.Position, a.Sex, a.BirthDate, a.JerseyNumber, a.Nationality); err != nil {
			return storeError(err, "insert athlete")
		}
	}
	if err = tx.Commit(); err != nil {
		return storeError(err, "commit athlete insert")
	}
	return nil
}

// ListCompetitions returns every competition ordered by name.
func (r *ReferenceRepository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	var competitions []models.Competition
	if err := r.db.SelectContext(ctx, &competitions, "SELECT id, name, code FROM competitions ORDER BY name ASC"); err != nil {
		return nil, storeError(err, "list competitions")
	}
	return competitions, nil
}

// ListCatalog returns the entries of a named lookup table.
func (r *ReferenceRepository) ListCatalog(ctx context.Context, name string) ([]models.CatalogEntry, error) {
	table, ok := catalogTables[name]
	if !ok {
		return nil, fmt.Errorf("unknown catalog %q", name)
	}
	var entries []models.CatalogEntry
	if err := r.db.SelectContext(ctx, &entries, fmt.Sprintf("SELECT id, name FROM %s ORDER BY name ASC", table)); err != nil {
		return nil, storeError(err, "list "+name)
	}
	return entries, nil
}
