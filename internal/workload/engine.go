// Package workload computes sport-science training-load indices from
// wellness records. Every function is pure: no I/O, no clock access.
package workload

import (
	"sort"
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

const (
	acuteWindowDays   = 7
	chronicWindowDays = 28
)

// DailyLoad is the sum of training load and minutes for one session date.
type DailyLoad struct {
	Date     time.Time `json:"date"`
	Load     float64   `json:"load"`
	Minutes  float64   `json:"minutes"`
	Sessions int       `json:"sessions"`
}

// LoadMetrics holds the day-indexed load indices for one reference day.
// Totals default to zero while ratios stay nil when undefined.
type LoadMetrics struct {
	HasData bool      `json:"has_data"`
	EndDay  time.Time `json:"end_day"`

	DayLoad    float64 `json:"day_load"`
	DayMinutes float64 `json:"day_minutes"`

	Week              DateRange `json:"week"`
	WeekLoad          float64   `json:"week_load"`
	WeekMean          float64   `json:"week_mean"`
	WeekStd           float64   `json:"week_std"`
	WeekDays          int       `json:"week_days"`
	WeeklyVariability float64   `json:"weekly_variability"`
	Monotony          *float64  `json:"monotony"`

	Month     DateRange `json:"month"`
	MonthLoad float64   `json:"month_load"`
	MonthMean float64   `json:"month_mean"`

	AcuteLoad   float64  `json:"acute_load"`
	ChronicLoad float64  `json:"chronic_load"`
	ACWR        *float64 `json:"acwr"`
	Adaptation  float64  `json:"adaptation"`

	Daily []DailyLoad `json:"daily"`
}

// LoadRecords keeps the check-out records that carry a training load.
func LoadRecords(records []models.WellnessRecord) []models.WellnessRecord {
	out := make([]models.WellnessRecord, 0, len(records))
	for _, r := range records {
		if r.HasLoad() {
			out = append(out, r)
		}
	}
	return out
}

// AggregateDaily groups load-bearing records by session date, oldest first.
// Dates without sessions are absent rather than zero-filled.
func AggregateDaily(records []models.WellnessRecord) []DailyLoad {
	byDay := make(map[time.Time]*DailyLoad)
	for _, r := range records {
		if !r.HasLoad() {
			continue
		}
		day := Day(r.SessionDate)
		agg, ok := byDay[day]
		if !ok {
			agg = &DailyLoad{Date: day}
			byDay[day] = agg
		}
		agg.Load += float64(*r.TrainingLoad)
		if r.SessionMinutes != nil {
			agg.Minutes += float64(*r.SessionMinutes)
		}
		agg.Sessions++
	}

	daily := make([]DailyLoad, 0, len(byDay))
	for _, agg := range byDay {
		daily = append(daily, *agg)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })
	return daily
}

// ComputeLoadMetrics derives the day-indexed indices from records. The
// reference day is referenceDate when given, otherwise the latest session
// date with load. Empty input yields a zero result with HasData false.
func ComputeLoadMetrics(records []models.WellnessRecord, referenceDate *time.Time) LoadMetrics {
	daily := AggregateDaily(records)

	var endDay time.Time
	switch {
	case referenceDate != nil:
		endDay = Day(*referenceDate)
	case len(daily) > 0:
		endDay = daily[len(daily)-1].Date
	default:
		return LoadMetrics{Daily: daily}
	}

	res := LoadMetrics{
		HasData: len(daily) > 0,
		EndDay:  endDay,
		Week:    WeekRange(endDay),
		Month:   MonthRange(endDay),
		Daily:   daily,
	}

	acute := TrailingRange(endDay, acuteWindowDays)
	chronic := TrailingRange(endDay, chronicWindowDays)

	var weekLoads, monthLoads, acuteLoads, chronicLoads []float64
	for _, d := range daily {
		if d.Date.Equal(endDay) {
			res.DayLoad = d.Load
			res.DayMinutes = d.Minutes
		}
		if res.Week.Contains(d.Date) {
			weekLoads = append(weekLoads, d.Load)
		}
		if res.Month.Contains(d.Date) {
			monthLoads = append(monthLoads, d.Load)
		}
		if acute.Contains(d.Date) {
			acuteLoads = append(acuteLoads, d.Load)
		}
		if chronic.Contains(d.Date) {
			chronicLoads = append(chronicLoads, d.Load)
		}
	}

	res.WeekLoad = sum(weekLoads)
	res.WeekMean = mean(weekLoads)
	res.WeekDays = len(weekLoads)
	if std, ok := stddev(weekLoads, 0); ok {
		res.WeekStd = std
	}
	res.WeeklyVariability = res.WeekStd
	if res.WeekDays >= 2 && res.WeekStd > 0 {
		res.Monotony = ptr(res.WeekMean / res.WeekStd)
	}

	res.MonthLoad = sum(monthLoads)
	res.MonthMean = mean(monthLoads)

	res.AcuteLoad = sum(acuteLoads)
	res.ChronicLoad = mean(chronicLoads)
	normalizedAcute := res.AcuteLoad / acuteWindowDays
	if res.ChronicLoad != 0 {
		res.ACWR = ptr(normalizedAcute / res.ChronicLoad)
	}
	res.Adaptation = res.ChronicLoad - normalizedAcute

	return res
}
