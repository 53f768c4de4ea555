package workload

// RiskLevel is the individual injury-risk semaphore combining ACWR with
// subjective fatigue.
type RiskLevel string

const (
	RiskHigh        RiskLevel = "high"
	RiskModerate    RiskLevel = "moderate"
	RiskLow         RiskLevel = "low"
	RiskUndercharge RiskLevel = "undercharge"
	RiskNoData      RiskLevel = "no_data"
)

// ClassifyRisk applies the semaphore thresholds. Either input may be nil;
// only when both are nil is the result no_data.
func ClassifyRisk(acwr, fatigue *float64) RiskLevel {
	if acwr == nil && fatigue == nil {
		return RiskNoData
	}

	switch {
	case acwr != nil && *acwr > 1.5, fatigue != nil && *fatigue >= 4:
		return RiskHigh
	case acwr != nil && *acwr >= 1.3 && *acwr <= 1.5, fatigue != nil && *fatigue >= 3 && *fatigue < 4:
		return RiskModerate
	case acwr != nil && *acwr >= 0.8 && *acwr < 1.3 && (fatigue == nil || *fatigue < 3):
		return RiskLow
	default:
		return RiskUndercharge
	}
}
