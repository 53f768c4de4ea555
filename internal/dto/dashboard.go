package dto

import "github.com/noah-isme/athlete-load-api/internal/workload"

// GroupDashboardQuery narrows the group dashboard.
type GroupDashboardQuery struct {
	Period   string `form:"period" validate:"omitempty,oneof=today last_day week month"`
	Squad    string `form:"squad"`
	Position string `form:"position"`
}

// GroupDashboard is the squad overview.
type GroupDashboard struct {
	Period         workload.Period              `json:"period"`
	Squad          string                       `json:"squad,omitempty"`
	Position       string                       `json:"position,omitempty"`
	Records        int                          `json:"records"`
	Cards          workload.GroupCards          `json:"cards"`
	Interpretation workload.GroupInterpretation `json:"interpretation"`
	Athletes       []AthleteSummary             `json:"athletes"`
	Weekly         []workload.WeeklyIndex       `json:"weekly"`
	DailyRPE       []workload.DailyValue        `json:"daily_rpe"`
	Warning        string                       `json:"warning,omitempty"`
}

// AthleteSummary is one row of the per-athlete rollup.
type AthleteSummary struct {
	workload.AthleteWellness
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	PositionLabel string `json:"position_label,omitempty"`
}
