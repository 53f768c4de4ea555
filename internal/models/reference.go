package models

import "time"

// Sex values recorded for athletes.
const (
	SexFemale = "F"
	SexMale   = "M"
)

// Catalog names exposed by the reference API.
const (
	CatalogBodyZones     = "body_zones"
	CatalogStimulusTypes = "stimulus_types"
	CatalogRehabTypes    = "rehab_types"
)

// ValidCatalog reports whether name is a known catalog.
func ValidCatalog(name string) bool {
	switch name {
	case CatalogBodyZones, CatalogStimulusTypes, CatalogRehabTypes:
		return true
	default:
		return false
	}
}

var positionLabels = map[string]string{
	"POR": "Goalkeeper",
	"DEF": "Defender",
	"MC":  "Midfielder",
	"DEL": "Forward",
}

// PositionLabel translates a position code, returning the code when unknown.
func PositionLabel(code string) string {
	if label, ok := positionLabels[code]; ok {
		return label
	}
	return code
}

// Athlete is a roster entry.
type Athlete struct {
	ID           string     `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Squad        string     `db:"squad" json:"squad"`
	Position     string     `db:"position" json:"position"`
	Sex          string     `db:"sex" json:"sex"`
	BirthDate    *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	JerseyNumber *int       `db:"jersey_number" json:"jersey_number,omitempty"`
	Nationality  *string    `db:"nationality" json:"nationality,omitempty"`
	HeightCM     *float64   `db:"height_cm" json:"height_cm,omitempty"`
	WeightKG     *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	PhotoURL     *string    `db:"photo_url" json:"photo_url,omitempty"`
	Active       bool       `db:"active" json:"active"`
}

// FullName joins first and last name.
func (a Athlete) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}

// IsFemale reports whether menstrual-cycle fields apply to the athlete.
func (a Athlete) IsFemale() bool {
	return a.Sex == SexFemale
}

// AthleteFilter narrows roster lookups.
type AthleteFilter struct {
	Squad    string `form:"squad"`
	Position string `form:"position"`
}

// Competition groups athletes into a squad.
type Competition struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}

// CatalogEntry is a row of a named lookup table.
type CatalogEntry struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
