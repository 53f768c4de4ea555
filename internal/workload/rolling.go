package workload

import (
	"sort"
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

// Rolling windows over individual sessions rather than calendar days. With
// several sessions per day this can disagree with LoadMetrics.ACWR.
const (
	rollingAcuteSamples   = 7
	rollingAcuteMin       = 3
	rollingChronicSamples = 28
	rollingChronicMin     = 7
)

// ACWRZone labels a rolling ACWR value.
type ACWRZone string

const (
	ZoneUndercharge ACWRZone = "undercharge"
	ZoneSweetSpot   ACWRZone = "sweet_spot"
	ZoneElevated    ACWRZone = "elevated"
	ZoneDanger      ACWRZone = "danger"
)

// ZoneFor maps an ACWR value onto its zone.
func ZoneFor(acwr float64) ACWRZone {
	switch {
	case acwr < 0.8:
		return ZoneUndercharge
	case acwr < 1.3:
		return ZoneSweetSpot
	case acwr < 1.5:
		return ZoneElevated
	default:
		return ZoneDanger
	}
}

// SessionPoint is one load-bearing session in the record-indexed series.
type SessionPoint struct {
	RecordID    string    `json:"record_id"`
	SessionDate time.Time `json:"session_date"`
	Load        float64   `json:"load"`
	Acute       *float64  `json:"acute"`
	Chronic     *float64  `json:"chronic"`
	ACWR        *float64  `json:"acwr"`
	Zone        ACWRZone  `json:"zone,omitempty"`
	Fatigue     *float64  `json:"fatigue"`
	Risk        RiskLevel `json:"risk"`
	recordedAt  time.Time
}

// RollingACWR builds the per-session ACWR series: the mean of the last 7
// session loads (at least 3) over the mean of the last 28 (at least 7).
// Each point also carries the session's energy score as subjective fatigue
// and the combined risk classification.
func RollingACWR(records []models.WellnessRecord) []SessionPoint {
	points := make([]SessionPoint, 0, len(records))
	for _, r := range records {
		if !r.HasLoad() {
			continue
		}
		p := SessionPoint{
			RecordID:    r.ID,
			SessionDate: Day(r.SessionDate),
			Load:        float64(*r.TrainingLoad),
			recordedAt:  r.RecordedAt,
		}
		if r.Energy > 0 {
			p.Fatigue = ptr(float64(r.Energy))
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool {
		if !points[i].SessionDate.Equal(points[j].SessionDate) {
			return points[i].SessionDate.Before(points[j].SessionDate)
		}
		return points[i].recordedAt.Before(points[j].recordedAt)
	})

	loads := make([]float64, len(points))
	for i := range points {
		loads[i] = points[i].Load
	}
	for i := range points {
		points[i].Acute = rollingMean(loads, i, rollingAcuteSamples, rollingAcuteMin)
		points[i].Chronic = rollingMean(loads, i, rollingChronicSamples, rollingChronicMin)
		if points[i].Acute != nil && points[i].Chronic != nil && *points[i].Chronic != 0 {
			acwr := *points[i].Acute / *points[i].Chronic
			points[i].ACWR = &acwr
			points[i].Zone = ZoneFor(acwr)
		}
		points[i].Risk = ClassifyRisk(points[i].ACWR, points[i].Fatigue)
	}
	return points
}

func rollingMean(values []float64, end, window, minObs int) *float64 {
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	span := values[start : end+1]
	if len(span) < minObs {
		return nil
	}
	return ptr(mean(span))
}

// LatestACWR returns the most recent defined ACWR in the series.
func LatestACWR(points []SessionPoint) *float64 {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].ACWR != nil {
			return points[i].ACWR
		}
	}
	return nil
}
