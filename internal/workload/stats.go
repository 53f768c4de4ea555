package workload

import "math"

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// mean returns 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// stddev computes the standard deviation with ddof degrees of freedom removed.
// ok is false when fewer than ddof+1 values are present.
func stddev(values []float64, ddof int) (float64, bool) {
	n := len(values) - ddof
	if len(values) == 0 || n <= 0 {
		return 0, false
	}
	m := mean(values)
	acc := 0.0
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(n)), true
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func ptr(v float64) *float64 {
	return &v
}
