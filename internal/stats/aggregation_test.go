package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatesOnEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 0.0, Mode(nil))
}

func TestAggregates(t *testing.T) {
	values := []float64{1990, 1985, 2001, 1990, 1985, 1969}

	assert.Equal(t, 11920.0, Sum(values))
	assert.InDelta(t, 1986.67, Mean(values), 0.01)
	assert.Equal(t, 1969.0, Min(values))
	assert.Equal(t, 2001.0, Max(values))
	// 1985 and 1990 both occur twice: the smaller wins
	assert.Equal(t, 1985.0, Mode(values))
	assert.Equal(t, 1990.0, Mode([]float64{1990, 1990, 1985}))
}

func TestRound(t *testing.T) {
	assert.Equal(t, int64(2), Round(2.5))
	assert.Equal(t, int64(4), Round(3.5))
	assert.Equal(t, int64(3), Round(2.51))
	assert.Equal(t, int64(120), Round(Mean([]float64{60, 120, 180})))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00:00"},
		{120, "0:00:02:00"},
		{360, "0:00:06:00"},
		{3661, "0:01:01:01"},
		{86400 + 7200 + 5, "1:02:00:05"},
		{-61, "-0:00:01:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}
