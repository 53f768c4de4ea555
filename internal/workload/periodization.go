package workload

import (
	"fmt"
	"strconv"
	"strings"
)

// Match-day offsets accepted for tactical periodization.
const MaxMatchDayOffset = 14

// MatchDay is an offset relative to a match day, e.g. "MD+2" or "MD-3".
type MatchDay string

// ParseMatchDay validates an offset label. sign must be '+' or '-'; "MD0"
// is accepted on both sides.
func ParseMatchDay(raw string, sign byte) (int, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "MD0" {
		return 0, nil
	}
	prefix := "MD" + string(sign)
	if !strings.HasPrefix(raw, prefix) {
		return 0, fmt.Errorf("match day %q must start with %s", raw, prefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(raw, prefix))
	if err != nil || n < 1 || n > MaxMatchDayOffset {
		return 0, fmt.Errorf("match day %q must be between MD0 and %s%d", raw, prefix, MaxMatchDayOffset)
	}
	return n, nil
}

// PeriodizationLabel combines the post-match and pre-match offsets into the
// stored "MD+x / MD-y" label.
func PeriodizationLabel(plus, minus string) (string, error) {
	p, err := ParseMatchDay(plus, '+')
	if err != nil {
		return "", err
	}
	m, err := ParseMatchDay(minus, '-')
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s / %s", formatMatchDay(p, '+'), formatMatchDay(m, '-')), nil
}

func formatMatchDay(n int, sign byte) string {
	if n == 0 {
		return "MD0"
	}
	return fmt.Sprintf("MD%c%d", sign, n)
}
