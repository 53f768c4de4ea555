package workload

// Label is an enumerated interpretation of a metric, mapped to colours and
// copy by the presentation layer.
type Label string

const (
	LabelNoData         Label = "no_data"
	LabelLow            Label = "low"
	LabelModerate       Label = "moderate"
	LabelHigh           Label = "high"
	LabelOptimal        Label = "optimal"
	LabelOverload       Label = "overload"
	LabelUndercharge    Label = "undercharge"
	LabelGood           Label = "good"
	LabelLowVariability Label = "low_variability"
	LabelNegative       Label = "negative"
	LabelNeutral        Label = "neutral"
	LabelPositive       Label = "positive"
	LabelFatigued       Label = "fatigued"
)

// LoadInterpretation labels the individual load metrics.
type LoadInterpretation struct {
	WeekLoad   Label `json:"week_load"`
	AcuteLoad  Label `json:"acute_load"`
	ACWR       Label `json:"acwr"`
	Monotony   Label `json:"monotony"`
	Adaptation Label `json:"adaptation"`
}

// Interpret labels m.
func Interpret(m LoadMetrics) LoadInterpretation {
	out := LoadInterpretation{
		WeekLoad:  bandAbove(m.WeekLoad, 2500, 1500),
		AcuteLoad: bandAbove(m.AcuteLoad, 2000, 1000),
	}

	switch {
	case m.ACWR == nil:
		out.ACWR = LabelNoData
	case *m.ACWR > 1.5:
		out.ACWR = LabelOverload
	case *m.ACWR < 0.8:
		out.ACWR = LabelUndercharge
	default:
		out.ACWR = LabelOptimal
	}

	switch {
	case m.Monotony == nil:
		out.Monotony = LabelNoData
	case *m.Monotony > 1.8:
		out.Monotony = LabelLowVariability
	case *m.Monotony >= 1.5:
		out.Monotony = LabelModerate
	default:
		out.Monotony = LabelGood
	}

	switch {
	case m.Adaptation < 0:
		out.Adaptation = LabelNegative
	case m.Adaptation == 0:
		out.Adaptation = LabelNeutral
	default:
		out.Adaptation = LabelPositive
	}
	return out
}

func bandAbove(v, high, moderate float64) Label {
	switch {
	case v > high:
		return LabelHigh
	case v >= moderate:
		return LabelModerate
	default:
		return LabelLow
	}
}

// GroupInterpretation labels the group dashboard cards.
type GroupInterpretation struct {
	Wellness Label `json:"wellness"`
	RPE      Label `json:"rpe"`
}

// InterpretGroup labels the wellness score (25 scale) and mean RPE.
func InterpretGroup(c GroupCards) GroupInterpretation {
	out := GroupInterpretation{}
	switch w := c.Wellness.Value; {
	case w > 20:
		out.Wellness = LabelOptimal
	case w >= 15:
		out.Wellness = LabelModerate
	default:
		out.Wellness = LabelFatigued
	}
	switch r := c.RPE.Value; {
	case r == 0:
		out.RPE = LabelNoData
	case r < 5:
		out.RPE = LabelLow
	case r <= 7:
		out.RPE = LabelModerate
	default:
		out.RPE = LabelHigh
	}
	return out
}
