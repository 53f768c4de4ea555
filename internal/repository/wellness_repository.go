package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

const wellnessColumns = `id, athlete_id, session_date, shift, namespace, phase,
	recovery, energy, sleep, stress, pain, pain_body_parts, tactical_periodization,
	stimulus_type_id, rehab_type_id, in_menstrual_period, notes,
	session_minutes, rpe, training_load, recorded_by, recorded_at`

const (
	defaultWellnessPageSize = 50
	maxWellnessPageSize     = 500
)

// WellnessRepository persists wellness records keyed by athlete, session
// date, shift and namespace.
type WellnessRepository struct {
	db *sqlx.DB
}

// NewWellnessRepository constructs the repository.
func NewWellnessRepository(db *sqlx.DB) *WellnessRepository {
	return &WellnessRepository{db: db}
}

// FindByKey returns the record for the natural key, or nil when absent.
func (r *WellnessRepository) FindByKey(ctx context.Context, key models.WellnessKey) (*models.WellnessRecord, error) {
	return findByKey(ctx, r.db, key, false)
}

func findByKey(ctx context.Context, q sqlx.QueryerContext, key models.WellnessKey, lock bool) (*models.WellnessRecord, error) {
	query := `SELECT ` + wellnessColumns + ` FROM wellness_records
WHERE athlete_id = $1 AND session_date = $2 AND shift = $3 AND namespace = $4`
	if lock {
		query += " FOR UPDATE"
	}

	var rec models.WellnessRecord
	if err := sqlx.GetContext(ctx, q, &rec, query, key.AthleteID, key.SessionDate, key.Shift, key.Namespace); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(err, "find wellness record")
	}
	return &rec, nil
}

// insertRecord writes a new record, assigning its id when empty.
func insertRecord(ctx context.Context, ex sqlx.ExecerContext, rec *models.WellnessRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	const query = `INSERT INTO wellness_records (` + wellnessColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := ex.ExecContext(ctx, query,
		rec.ID, rec.AthleteID, rec.SessionDate, rec.Shift, rec.Namespace, rec.Phase,
		rec.Recovery, rec.Energy, rec.Sleep, rec.Stress, rec.Pain, rec.PainBodyParts, rec.TacticalPeriodization,
		rec.StimulusTypeID, rec.RehabTypeID, rec.InMenstrualPeriod, rec.Notes,
		rec.SessionMinutes, rec.RPE, rec.TrainingLoad, rec.RecordedBy, rec.RecordedAt,
	)
	return storeError(err, "insert wellness record")
}

// updateRecord overwrites every non-key column of the record identified by rec.ID.
func updateRecord(ctx context.Context, ex sqlx.ExecerContext, rec *models.WellnessRecord) error {
	const query = `UPDATE wellness_records SET
	phase = $2, recovery = $3, energy = $4, sleep = $5, stress = $6, pain = $7,
	pain_body_parts = $8, tactical_periodization = $9, stimulus_type_id = $10, rehab_type_id = $11,
	in_menstrual_period = $12, notes = $13, session_minutes = $14, rpe = $15, training_load = $16,
	recorded_by = $17, recorded_at = $18
WHERE id = $1`
	_, err := ex.ExecContext(ctx, query,
		rec.ID, rec.Phase, rec.Recovery, rec.Energy, rec.Sleep, rec.Stress, rec.Pain,
		rec.PainBodyParts, rec.TacticalPeriodization, rec.StimulusTypeID, rec.RehabTypeID,
		rec.InMenstrualPeriod, rec.Notes, rec.SessionMinutes, rec.RPE, rec.TrainingLoad,
		rec.RecordedBy, rec.RecordedAt,
	)
	return storeError(err, "update wellness record")
}

// UpsertCheckIn locks the row for rec's natural key and either inserts rec
// or overwrites the existing row in full. created reports which happened.
func (r *WellnessRepository) UpsertCheckIn(ctx context.Context, rec *models.WellnessRecord) (created bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, storeError(err, "begin check-in transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	existing, err := findByKey(ctx, tx, rec.Key(), true)
	if err != nil {
		return false, err
	}
	if existing == nil {
		rec.ID = ""
		if err = insertRecord(ctx, tx, rec); err != nil {
			return false, err
		}
		created = true
	} else {
		rec.ID = existing.ID
		if err = updateRecord(ctx, tx, rec); err != nil {
			return false, err
		}
	}

	if err = tx.Commit(); err != nil {
		return false, storeError(err, "commit check-in")
	}
	return created, nil
}

// ApplyCheckOut locks the row for key and writes only the check-out columns.
// It returns nil without writing when no row exists for the key.
func (r *WellnessRepository) ApplyCheckOut(ctx context.Context, key models.WellnessKey, fields models.CheckOutFields) (rec *models.WellnessRecord, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeError(err, "begin check-out transaction")
	}
	defer func() {
		if err != nil || rec == nil {
			_ = tx.Rollback()
		}
	}()

	rec, err = findByKey(ctx, tx, key, true)
	if err != nil || rec == nil {
		return nil, err
	}

	const query = `UPDATE wellness_records SET
	phase = $2, session_minutes = $3, rpe = $4, training_load = $5, recorded_by = $6, recorded_at = $7
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, query, rec.ID, models.PhaseCheckOut, fields.SessionMinutes, fields.RPE, fields.TrainingLoad, fields.RecordedBy, fields.RecordedAt); err != nil {
		return nil, storeError(err, "apply check-out")
	}
	if err = tx.Commit(); err != nil {
		return nil, storeError(err, "commit check-out")
	}

	rec.Phase = models.PhaseCheckOut
	rec.SessionMinutes = &fields.SessionMinutes
	rec.RPE = &fields.RPE
	rec.TrainingLoad = &fields.TrainingLoad
	rec.RecordedBy = fields.RecordedBy
	rec.RecordedAt = fields.RecordedAt
	return rec, nil
}

// DeleteMany physically removes the listed records within a namespace and
// returns how many rows were deleted.
func (r *WellnessRepository) DeleteMany(ctx context.Context, namespace models.Namespace, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `DELETE FROM wellness_records WHERE namespace = $1 AND id = ANY($2)`
	res, err := r.db.ExecContext(ctx, query, namespace, pq.Array(ids))
	if err != nil {
		return 0, storeError(err, "delete wellness records")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeError(err, "delete wellness records")
	}
	return n, nil
}

// List returns one page of records, newest session first, plus the total count.
func (r *WellnessRepository) List(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, int, error) {
	whereClause, args := wellnessWhere(filter)

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultWellnessPageSize
	}
	if size > maxWellnessPageSize {
		size = maxWellnessPageSize
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM wellness_records WHERE %s
ORDER BY session_date %s, recorded_at %s
LIMIT %d OFFSET %d`, wellnessColumns, whereClause, order, order, size, offset)

	var rows []models.WellnessRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, storeError(err, "list wellness records")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM wellness_records WHERE "+whereClause, args...); err != nil {
		return nil, 0, storeError(err, "count wellness records")
	}
	return rows, total, nil
}

// Series returns every matching record in chronological order, for metric
// computation.
func (r *WellnessRepository) Series(ctx context.Context, filter models.WellnessFilter) ([]models.WellnessRecord, error) {
	whereClause, args := wellnessWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM wellness_records WHERE %s
ORDER BY session_date ASC, recorded_at ASC`, wellnessColumns, whereClause)

	var rows []models.WellnessRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeError(err, "load wellness series")
	}
	return rows, nil
}

func wellnessWhere(filter models.WellnessFilter) (string, []interface{}) {
	namespace := filter.Namespace
	if namespace == "" {
		namespace = models.NamespaceStandard
	}
	where := []string{"namespace = $1"}
	args := []interface{}{namespace}

	if len(filter.AthleteIDs) > 0 {
		args = append(args, pq.Array(filter.AthleteIDs))
		where = append(where, fmt.Sprintf("athlete_id = ANY($%d)", len(args)))
	}
	if filter.Shift != nil {
		args = append(args, *filter.Shift)
		where = append(where, fmt.Sprintf("shift = $%d", len(args)))
	}
	if filter.Phase != nil && filter.Phase.Valid() {
		args = append(args, *filter.Phase)
		where = append(where, fmt.Sprintf("phase = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("session_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("session_date <= $%d", len(args)))
	}
	return strings.Join(where, " AND "), args
}
