package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/reporting"
)

func TestSeasonMonths(t *testing.T) {
	m, ok := reporting.SeasonMonths("Otoño")
	assert.True(t, ok)
	assert.Equal(t, []int{3, 4, 5}, m)

	m, ok = reporting.SeasonMonths("otono")
	assert.True(t, ok)
	assert.Equal(t, []int{3, 4, 5}, m)

	m, _ = reporting.SeasonMonths("verano")
	assert.Equal(t, []int{12, 1, 2}, m)

	_, ok = reporting.SeasonMonths("monzón")
	assert.False(t, ok)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Lunes", reporting.WeekdayName(time.Monday))
	assert.Equal(t, "Domingo", reporting.WeekdayName(time.Sunday))
	assert.Equal(t, "Miércoles", reporting.WeekdayName(time.Wednesday))
}

func TestEstimateUnits(t *testing.T) {
	assert.Equal(t, 3, reporting.EstimateUnits(3.0))
	assert.Equal(t, 3, reporting.EstimateUnits(3.3))
	assert.Equal(t, 4, reporting.EstimateUnits(3.31))
	assert.Equal(t, 0, reporting.EstimateUnits(0.2))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 75, reporting.Confidence(3, 4))
	assert.Equal(t, 33, reporting.Confidence(1, 3))
	assert.Equal(t, 100, reporting.Confidence(5, 4))
	assert.Equal(t, 0, reporting.Confidence(1, 0))
}
