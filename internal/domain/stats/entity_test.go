package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthStart(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), MonthStart(now))
}

func TestFillChart(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	chart := FillChart(now, map[string]int{"2026-03-02": 4, "2026-02-27": 1})

	require.Len(t, chart, ChartDays)
	assert.Equal(t, "2026-02-24", chart[0].Date)
	assert.Equal(t, "2026-03-02", chart[6].Date)
	assert.Equal(t, 4, chart[6].Questions)
	assert.Equal(t, 1, chart[3].Questions)
	assert.Equal(t, 0, chart[0].Questions)
}
