package workload

import (
	"sort"
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

const (
	weeklyBaselineWeeks = 4
	weeklyBaselineMin   = 2
)

// WeeklyIndex aggregates the load of a group (or athlete) over one ISO week.
type WeeklyIndex struct {
	Year      int       `json:"year"`
	Week      int       `json:"week"`
	Range     DateRange `json:"range"`
	Sessions  int       `json:"sessions"`
	TotalLoad float64   `json:"total_load"`
	MeanLoad  float64   `json:"mean_load"`
	RPEMean   *float64  `json:"rpe_mean"`
	Monotony  *float64  `json:"monotony"`
	Strain    *float64  `json:"strain"`
	ACWR      *float64  `json:"acwr"`
}

// WeeklyIndices groups load-bearing sessions by ISO week, oldest first.
// Monotony uses the sample deviation of session loads inside the week and
// strain is total load times monotony. ACWR compares the week with the mean
// of up to four preceding weeks, requiring at least two of them.
func WeeklyIndices(records []models.WellnessRecord) []WeeklyIndex {
	type acc struct {
		loads []float64
		rpe   []float64
		start time.Time
	}
	byWeek := make(map[time.Time]*acc)
	for _, r := range records {
		if !r.HasLoad() {
			continue
		}
		start := WeekRange(r.SessionDate).Start
		a, ok := byWeek[start]
		if !ok {
			a = &acc{start: start}
			byWeek[start] = a
		}
		a.loads = append(a.loads, float64(*r.TrainingLoad))
		if r.RPE != nil {
			a.rpe = append(a.rpe, float64(*r.RPE))
		}
	}

	weeks := make([]*acc, 0, len(byWeek))
	for _, a := range byWeek {
		weeks = append(weeks, a)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].start.Before(weeks[j].start) })

	out := make([]WeeklyIndex, 0, len(weeks))
	for i, a := range weeks {
		year, week := a.start.ISOWeek()
		idx := WeeklyIndex{
			Year:      year,
			Week:      week,
			Range:     WeekRange(a.start),
			Sessions:  len(a.loads),
			TotalLoad: sum(a.loads),
			MeanLoad:  mean(a.loads),
		}
		if len(a.rpe) > 0 {
			idx.RPEMean = ptr(mean(a.rpe))
		}
		if std, ok := stddev(a.loads, 1); ok && std > 0 {
			idx.Monotony = ptr(idx.MeanLoad / std)
			idx.Strain = ptr(idx.TotalLoad * *idx.Monotony)
		}

		from := i - weeklyBaselineWeeks
		if from < 0 {
			from = 0
		}
		if i-from >= weeklyBaselineMin {
			baseline := make([]float64, 0, i-from)
			for _, prev := range weeks[from:i] {
				baseline = append(baseline, sum(prev.loads))
			}
			if m := mean(baseline); m != 0 {
				idx.ACWR = ptr(idx.TotalLoad / m)
			}
		}
		out = append(out, idx)
	}
	return out
}

// DailyRPE returns the mean RPE per session date, oldest first.
func DailyRPE(records []models.WellnessRecord) []DailyValue {
	byDay := make(map[time.Time][]float64)
	for _, r := range records {
		if r.RPE == nil {
			continue
		}
		day := Day(r.SessionDate)
		byDay[day] = append(byDay[day], float64(*r.RPE))
	}
	out := make([]DailyValue, 0, len(byDay))
	for day, vs := range byDay {
		out = append(out, DailyValue{Date: day, Value: mean(vs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// DailyValue is a single dated observation.
type DailyValue struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
