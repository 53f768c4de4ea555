package workload

import (
	"sort"
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

// Period selects the slice of records a dashboard reports on.
type Period string

const (
	PeriodToday   Period = "today"
	PeriodLastDay Period = "last_day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
)

// Valid reports whether p is a supported period.
func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodLastDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// DefaultPeriod picks the narrowest period that has data relative to today:
// today, then yesterday, then the previous week, otherwise the month.
func DefaultPeriod(records []models.WellnessRecord, today time.Time) Period {
	today = Day(today)
	days := make(map[time.Time]struct{}, len(records))
	for _, r := range records {
		days[Day(r.SessionDate)] = struct{}{}
	}
	has := func(offset int) bool {
		_, ok := days[today.AddDate(0, 0, -offset)]
		return ok
	}

	switch {
	case has(0):
		return PeriodToday
	case has(1):
		return PeriodLastDay
	}
	for i := 2; i <= 7; i++ {
		if has(i) {
			return PeriodWeek
		}
	}
	return PeriodMonth
}

// FilterByPeriod selects the records of a period. Today matches the session
// date against today; the other periods are anchored on the most recent
// recorded_at: last_day keeps its session date, week and month keep records
// written within 7 and 30 days of it.
func FilterByPeriod(records []models.WellnessRecord, period Period, today time.Time) []models.WellnessRecord {
	out := make([]models.WellnessRecord, 0, len(records))
	if len(records) == 0 {
		return out
	}

	latest := records[0].RecordedAt
	for _, r := range records[1:] {
		if r.RecordedAt.After(latest) {
			latest = r.RecordedAt
		}
	}

	var keep func(models.WellnessRecord) bool
	switch period {
	case PeriodToday:
		day := Day(today)
		keep = func(r models.WellnessRecord) bool { return Day(r.SessionDate).Equal(day) }
	case PeriodLastDay:
		day := Day(latest)
		keep = func(r models.WellnessRecord) bool { return Day(r.SessionDate).Equal(day) }
	case PeriodWeek:
		cutoff := latest.Add(-7 * 24 * time.Hour)
		keep = func(r models.WellnessRecord) bool { return !r.RecordedAt.Before(cutoff) }
	default:
		cutoff := latest.Add(-30 * 24 * time.Hour)
		keep = func(r models.WellnessRecord) bool { return !r.RecordedAt.Before(cutoff) }
	}

	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Delta is the percentage change between the last two values, rounded to
// one decimal. It is 0 with fewer than two values or a zero baseline.
func Delta(values []float64) float64 {
	if len(values) < 2 || values[len(values)-2] == 0 {
		return 0
	}
	prev, last := values[len(values)-2], values[len(values)-1]
	return round((last-prev)/prev*100, 1)
}

// MetricCard is one headline figure with its trend series.
type MetricCard struct {
	Value float64   `json:"value"`
	Trend []float64 `json:"trend"`
	Delta float64   `json:"delta"`
}

// GroupCards are the headline figures of the group dashboard.
type GroupCards struct {
	Wellness MetricCard   `json:"wellness"`
	RPE      MetricCard   `json:"rpe"`
	Load     MetricCard   `json:"load"`
	Alerts   AlertSummary `json:"alerts"`
}

type aggKind int

const (
	aggMean aggKind = iota
	aggSum
)

// BuildCards computes the group headline figures for a filtered period.
// Wellness is the mean 5-score total on a 25 scale. Single-day periods show
// the plain value; week and month periods trend by ISO week or calendar month.
func BuildCards(records []models.WellnessRecord, period Period) GroupCards {
	wellness := func(r models.WellnessRecord) (float64, bool) {
		return float64(r.Recovery + r.Energy + r.Sleep + r.Stress + r.Pain), true
	}
	rpe := func(r models.WellnessRecord) (float64, bool) {
		if r.RPE == nil {
			return 0, false
		}
		return float64(*r.RPE), true
	}
	load := func(r models.WellnessRecord) (float64, bool) {
		if !r.HasLoad() {
			return 0, false
		}
		return float64(*r.TrainingLoad), true
	}

	return GroupCards{
		Wellness: metricCard(records, period, wellness, aggMean),
		RPE:      metricCard(records, period, rpe, aggMean),
		Load:     metricCard(records, period, load, aggSum),
		Alerts:   Alerts(records),
	}
}

func metricCard(records []models.WellnessRecord, period Period, value func(models.WellnessRecord) (float64, bool), kind aggKind) MetricCard {
	bucketOf := func(r models.WellnessRecord) time.Time { return Day(r.SessionDate) }
	switch period {
	case PeriodWeek:
		bucketOf = func(r models.WellnessRecord) time.Time { return WeekRange(r.SessionDate).Start }
	case PeriodMonth:
		bucketOf = func(r models.WellnessRecord) time.Time { return MonthRange(r.SessionDate).Start }
	}

	buckets := make(map[time.Time][]float64)
	var all []float64
	for _, r := range records {
		v, ok := value(r)
		if !ok {
			continue
		}
		b := bucketOf(r)
		buckets[b] = append(buckets[b], v)
		all = append(all, v)
	}

	reduce := func(vs []float64) float64 {
		if kind == aggSum {
			return sum(vs)
		}
		return mean(vs)
	}

	if period == PeriodToday || period == PeriodLastDay {
		v := round(reduce(all), 1)
		return MetricCard{Value: v, Trend: []float64{v}}
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	trend := make([]float64, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, reduce(buckets[k]))
	}

	card := MetricCard{Trend: trend, Delta: Delta(trend)}
	if len(trend) > 0 {
		card.Value = round(trend[len(trend)-1], 1)
	}
	return card
}
