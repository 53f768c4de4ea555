package workload

import (
	"sort"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

const (
	wellnessRiskCutoff  = 15.0
	painRiskCutoff      = 3.0
	wellnessSubscoreNum = 5
)

// AthleteWellness summarises one athlete's wellness scores over a set of records.
type AthleteWellness struct {
	AthleteID  string   `json:"athlete_id"`
	Records    int      `json:"records"`
	Recovery   float64  `json:"recovery"`
	Energy     float64  `json:"energy"`
	Sleep      float64  `json:"sleep"`
	Stress     float64  `json:"stress"`
	Pain       float64  `json:"pain"`
	MeanOfFive float64  `json:"mean_of_five"`
	Score      float64  `json:"score"`
	RPEMean    *float64 `json:"rpe_mean"`
	LoadMean   *float64 `json:"load_mean"`
	LoadTotal  float64  `json:"load_total"`
	Sessions   int      `json:"sessions"`
	AtRisk     bool     `json:"at_risk"`
}

// GroupWellnessRisk computes per-athlete means of the five sub-scores and
// flags an athlete when mean*5 < 15 or mean pain > 3. Results are ordered by
// athlete id. This signal is independent of the ACWR semaphore.
func GroupWellnessRisk(records []models.WellnessRecord) []AthleteWellness {
	type acc struct {
		scores   [wellnessSubscoreNum][]float64
		rpe      []float64
		load     []float64
		sessions int
	}
	byAthlete := make(map[string]*acc)
	for _, r := range records {
		a, ok := byAthlete[r.AthleteID]
		if !ok {
			a = &acc{}
			byAthlete[r.AthleteID] = a
		}
		for i, v := range []int{r.Recovery, r.Energy, r.Sleep, r.Stress, r.Pain} {
			a.scores[i] = append(a.scores[i], float64(v))
		}
		if r.RPE != nil {
			a.rpe = append(a.rpe, float64(*r.RPE))
		}
		if r.HasLoad() {
			a.load = append(a.load, float64(*r.TrainingLoad))
			a.sessions++
		}
	}

	out := make([]AthleteWellness, 0, len(byAthlete))
	for id, a := range byAthlete {
		w := AthleteWellness{
			AthleteID: id,
			Records:   len(a.scores[0]),
			Recovery:  mean(a.scores[0]),
			Energy:    mean(a.scores[1]),
			Sleep:     mean(a.scores[2]),
			Stress:    mean(a.scores[3]),
			Pain:      mean(a.scores[4]),
			LoadTotal: sum(a.load),
			Sessions:  a.sessions,
		}
		w.MeanOfFive = mean([]float64{w.Recovery, w.Energy, w.Sleep, w.Stress, w.Pain})
		w.Score = w.MeanOfFive * wellnessSubscoreNum
		w.AtRisk = w.Score < wellnessRiskCutoff || w.Pain > painRiskCutoff
		if len(a.rpe) > 0 {
			w.RPEMean = ptr(mean(a.rpe))
		}
		if len(a.load) > 0 {
			w.LoadMean = ptr(mean(a.load))
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AthleteID < out[j].AthleteID })
	return out
}

// RiskBase returns the check-in phase records, or every record when none
// remain in check-in phase. A check-out keeps its check-in scores, so the
// fallback still measures wellness.
func RiskBase(records []models.WellnessRecord) []models.WellnessRecord {
	base := make([]models.WellnessRecord, 0, len(records))
	for _, r := range records {
		if r.Phase == models.PhaseCheckIn {
			base = append(base, r)
		}
	}
	if len(base) == 0 {
		return records
	}
	return base
}

// AlertSummary counts athletes flagged by the group wellness risk rule.
type AlertSummary struct {
	AtRisk   int               `json:"at_risk"`
	Total    int               `json:"total"`
	Percent  float64           `json:"percent"`
	Athletes []AthleteWellness `json:"athletes"`
}

// Alerts evaluates the group wellness risk over the records of one period.
func Alerts(records []models.WellnessRecord) AlertSummary {
	if len(records) == 0 {
		return AlertSummary{Athletes: []AthleteWellness{}}
	}
	athletes := GroupWellnessRisk(RiskBase(records))
	summary := AlertSummary{Total: len(athletes), Athletes: athletes}
	for _, a := range athletes {
		if a.AtRisk {
			summary.AtRisk++
		}
	}
	if summary.Total > 0 {
		summary.Percent = round(float64(summary.AtRisk)/float64(summary.Total)*100, 1)
	}
	return summary
}
