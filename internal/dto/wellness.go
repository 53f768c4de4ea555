package dto

import "github.com/noah-isme/athlete-load-api/internal/models"

// CheckInRequest is the pre-session wellness questionnaire.
type CheckInRequest struct {
	AthleteID         string   `json:"athlete_id" validate:"required,max=64"`
	SessionDate       string   `json:"session_date" validate:"omitempty,iso_date"`
	Shift             string   `json:"shift" validate:"max=32"`
	Recovery          int      `json:"recovery" validate:"score"`
	Energy            int      `json:"energy" validate:"score"`
	Sleep             int      `json:"sleep" validate:"score"`
	Stress            int      `json:"stress" validate:"score"`
	Pain              int      `json:"pain" validate:"score"`
	PainBodyParts     []string `json:"pain_body_parts" validate:"omitempty,dive,max=64"`
	MatchDayPlus      string   `json:"match_day_plus" validate:"omitempty,match_day_plus"`
	MatchDayMinus     string   `json:"match_day_minus" validate:"omitempty,match_day_minus"`
	StimulusTypeID    *int64   `json:"stimulus_type_id" validate:"omitempty,gt=0"`
	RehabTypeID       *int64   `json:"rehab_type_id" validate:"omitempty,gt=0"`
	InMenstrualPeriod *bool    `json:"in_menstrual_period"`
	Notes             *string  `json:"notes" validate:"omitempty,max=2000"`
}

// CheckOutRequest is the post-session effort report.
type CheckOutRequest struct {
	AthleteID      string `json:"athlete_id" validate:"required,max=64"`
	SessionDate    string `json:"session_date" validate:"omitempty,iso_date"`
	Shift          string `json:"shift" validate:"max=32"`
	SessionMinutes int    `json:"session_minutes" validate:"gt=0,lte=1440"`
	RPE            int    `json:"rpe" validate:"rpe"`
}

// SubmissionResult is returned by both workflow submissions.
type SubmissionResult struct {
	Record  *models.WellnessRecord `json:"record"`
	Created bool                   `json:"created"`
}

// WellnessKeyQuery addresses one record by natural key.
type WellnessKeyQuery struct {
	AthleteID   string `form:"athlete_id" validate:"required"`
	SessionDate string `form:"date" validate:"required,iso_date"`
	Shift       string `form:"shift"`
}

// WellnessListQuery carries the listing filters accepted over HTTP.
type WellnessListQuery struct {
	AthleteID string  `form:"athlete_id"`
	Squad     string  `form:"squad"`
	Position  string  `form:"position"`
	Shift     *string `form:"shift"`
	Phase     string  `form:"phase" validate:"omitempty,oneof=checkin checkout"`
	From      string  `form:"from" validate:"omitempty,iso_date"`
	To        string  `form:"to" validate:"omitempty,iso_date"`
	Page      int     `form:"page" validate:"omitempty,min=1"`
	PageSize  int     `form:"page_size" validate:"omitempty,min=1,max=500"`
	Sort      string  `form:"sort" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// WellnessListResult is one page of records.
type WellnessListResult struct {
	Items      []models.WellnessRecord `json:"items"`
	Pagination models.Pagination       `json:"pagination"`
	Warning    string                  `json:"warning,omitempty"`
}

// DeleteWellnessRequest lists record ids to remove.
type DeleteWellnessRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// DeleteWellnessResult reports how many rows were removed.
type DeleteWellnessResult struct {
	Deleted int64 `json:"deleted"`
}
