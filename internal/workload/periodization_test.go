package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodizationLabel(t *testing.T) {
	label, err := PeriodizationLabel("MD+1", "md-6")
	require.NoError(t, err)
	assert.Equal(t, "MD+1 / MD-6", label)

	label, err = PeriodizationLabel("MD0", "MD0")
	require.NoError(t, err)
	assert.Equal(t, "MD0 / MD0", label)
}

func TestPeriodizationLabelRejectsOutOfRange(t *testing.T) {
	for _, tc := range [][2]string{{"MD+15", "MD-1"}, {"MD-1", "MD-1"}, {"MD+1", "MD+1"}, {"MD+x", "MD-1"}, {"MD+0", "MD-1"}} {
		_, err := PeriodizationLabel(tc[0], tc[1])
		assert.Error(t, err, tc)
	}
}
