package dto

import (
	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/workload"
)

// LoadReportQuery selects the reference day and shift of an individual report.
type LoadReportQuery struct {
	End   string  `form:"end" validate:"omitempty,iso_date"`
	Shift *string `form:"shift"`
}

// LoadReport is the individual athlete training-load report.
type LoadReport struct {
	Athlete        *models.Athlete             `json:"athlete,omitempty"`
	Metrics        workload.LoadMetrics        `json:"metrics"`
	Series         []workload.SessionPoint     `json:"series"`
	LatestACWR     *float64                    `json:"latest_acwr"`
	Fatigue        *float64                    `json:"fatigue"`
	Risk           workload.RiskLevel          `json:"risk"`
	Interpretation workload.LoadInterpretation `json:"interpretation"`
	Weekly         []workload.WeeklyIndex      `json:"weekly"`
	Warning        string                      `json:"warning,omitempty"`
}
