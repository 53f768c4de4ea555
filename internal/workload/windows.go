package workload

import "time"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(r.Start) && !day.After(r.End)
}

// WeekRange returns the Monday to Sunday span containing day.
func WeekRange(day time.Time) DateRange {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthRange returns the calendar month containing day.
func MonthRange(day time.Time) DateRange {
	day = Day(day)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// TrailingRange returns the n-day window ending at day inclusive.
func TrailingRange(day time.Time, n int) DateRange {
	day = Day(day)
	if n < 1 {
		n = 1
	}
	return DateRange{Start: day.AddDate(0, 0, -(n - 1)), End: day}
}
