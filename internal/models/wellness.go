package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Phase records which half of the daily workflow last wrote a record.
type Phase string

const (
	PhaseCheckIn  Phase = "checkin"
	PhaseCheckOut Phase = "checkout"
)

// Valid returns true when the phase is a supported value.
func (p Phase) Valid() bool {
	return p == PhaseCheckIn || p == PhaseCheckOut
}

// Namespace partitions records so developer test data never mixes with real data.
type Namespace string

const (
	NamespaceStandard  Namespace = "standard"
	NamespaceDeveloper Namespace = "developer"
)

// NamespaceForRole maps a caller role onto its record partition.
func NamespaceForRole(role UserRole) Namespace {
	if role == RoleDeveloper {
		return NamespaceDeveloper
	}
	return NamespaceStandard
}

// DateLayout is the wire and storage layout for session dates.
const DateLayout = "2006-01-02"

// BodyParts is stored as a JSON array column.
type BodyParts []string

// Value implements driver.Valuer.
func (b BodyParts) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(b))
}

// Scan implements sql.Scanner.
func (b *BodyParts) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*b = BodyParts{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("body parts: unsupported type %T", src)
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("body parts: %w", err)
	}
	*b = parts
	return nil
}

// WellnessRecord is one athlete's wellness and session-load entry for a
// session date and shift.
type WellnessRecord struct {
	ID                    string    `db:"id" json:"id"`
	AthleteID             string    `db:"athlete_id" json:"athlete_id"`
	SessionDate           time.Time `db:"session_date" json:"session_date"`
	Shift                 string    `db:"shift" json:"shift"`
	Namespace             Namespace `db:"namespace" json:"namespace"`
	Phase                 Phase     `db:"phase" json:"phase"`
	Recovery              int       `db:"recovery" json:"recovery"`
	Energy                int       `db:"energy" json:"energy"`
	Sleep                 int       `db:"sleep" json:"sleep"`
	Stress                int       `db:"stress" json:"stress"`
	Pain                  int       `db:"pain" json:"pain"`
	PainBodyParts         BodyParts `db:"pain_body_parts" json:"pain_body_parts"`
	TacticalPeriodization string    `db:"tactical_periodization" json:"tactical_periodization"`
	StimulusTypeID        *int64    `db:"stimulus_type_id" json:"stimulus_type_id,omitempty"`
	RehabTypeID           *int64    `db:"rehab_type_id" json:"rehab_type_id,omitempty"`
	InMenstrualPeriod     *bool     `db:"in_menstrual_period" json:"in_menstrual_period,omitempty"`
	Notes                 *string   `db:"notes" json:"notes,omitempty"`
	SessionMinutes        *int      `db:"session_minutes" json:"session_minutes"`
	RPE                   *int      `db:"rpe" json:"rpe"`
	TrainingLoad          *int      `db:"training_load" json:"training_load"`
	RecordedBy            string    `db:"recorded_by" json:"recorded_by"`
	RecordedAt            time.Time `db:"recorded_at" json:"recorded_at"`
}

// Key returns the record's natural key.
func (r WellnessRecord) Key() WellnessKey {
	return WellnessKey{AthleteID: r.AthleteID, SessionDate: r.SessionDate, Shift: r.Shift, Namespace: r.Namespace}
}

// HasLoad reports whether the record contributes to training-load metrics.
func (r WellnessRecord) HasLoad() bool {
	return r.Phase == PhaseCheckOut && r.TrainingLoad != nil
}

// WellnessKey identifies at most one record.
type WellnessKey struct {
	AthleteID   string
	SessionDate time.Time
	Shift       string
	Namespace   Namespace
}

func (k WellnessKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Namespace, k.AthleteID, k.SessionDate.Format(DateLayout), k.Shift)
}

// CheckOutFields are the only columns a check-out is allowed to touch.
type CheckOutFields struct {
	SessionMinutes int
	RPE            int
	TrainingLoad   int
	RecordedBy     string
	RecordedAt     time.Time
}

// WellnessFilter narrows record listings. Namespace is mandatory.
type WellnessFilter struct {
	Namespace  Namespace
	AthleteIDs []string
	Shift      *string
	Phase      *Phase
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
	SortOrder  string
}
