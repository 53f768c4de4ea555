package workload

import (
	"time"

	"github.com/noah-isme/athlete-load-api/internal/models"
)

func date(raw string) time.Time {
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

// session builds a checked-out record whose load is minutes*rpe. Its
// wellness total is 16, outside the group risk band.
func session(athleteID, day string, minutes, rpe int) models.WellnessRecord {
	load := minutes * rpe
	d := date(day)
	return models.WellnessRecord{
		ID:             athleteID + "-" + day,
		AthleteID:      athleteID,
		SessionDate:    d,
		Phase:          models.PhaseCheckOut,
		Recovery:       5,
		Energy:         2,
		Sleep:          4,
		Stress:         4,
		Pain:           1,
		SessionMinutes: intPtr(minutes),
		RPE:            intPtr(rpe),
		TrainingLoad:   intPtr(load),
		RecordedAt:     d.Add(18 * time.Hour),
	}
}

func checkIn(athleteID, day string, scores [5]int) models.WellnessRecord {
	d := date(day)
	return models.WellnessRecord{
		ID:          athleteID + "-" + day,
		AthleteID:   athleteID,
		SessionDate: d,
		Phase:       models.PhaseCheckIn,
		Recovery:    scores[0],
		Energy:      scores[1],
		Sleep:       scores[2],
		Stress:      scores[3],
		Pain:        scores[4],
		RecordedAt:  d.Add(8 * time.Hour),
	}
}
