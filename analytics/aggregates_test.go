package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cafeteria-analytics/models"
)

func TestZeroFillDaily(t *testing.T) {
	series := []models.DailySales{
		{Date: "2026-08-20", Total: 10},
		{Date: "2026-08-23", Total: 30},
	}

	filled := ZeroFillDaily(series)
	assert.Len(t, filled, 4)
	assert.Equal(t, models.DailySales{Date: "2026-08-21", Total: 0}, filled[1])
	assert.Equal(t, models.DailySales{Date: "2026-08-22", Total: 0}, filled[2])
	assert.Equal(t, 30.0, filled[3].Total)
}

func TestZeroFillDailyShortOrBadInput(t *testing.T) {
	single := []models.DailySales{{Date: "2026-08-20", Total: 10}}
	assert.Equal(t, single, ZeroFillDaily(single))

	bad := []models.DailySales{
		{Date: "not a date", Total: 1},
		{Date: "2026-08-23", Total: 2},
	}
	assert.Equal(t, bad, ZeroFillDaily(bad))
}

func TestAggregatesDerivedAverages(t *testing.T) {
	agg := EmptyAggregates(7, 30)
	assert.Equal(t, 0.0, agg.AvgOrderValue())
	assert.Equal(t, 0.0, agg.AvgDailySales())

	agg.ShortSeries = []models.DailySales{
		{Date: "2026-08-25", Total: 60},
		{Date: "2026-08-26", Total: 40},
	}
	agg.ShortTotal = SumSeries(agg.ShortSeries)
	agg.OrderCount = 4

	assert.Equal(t, 100.0, agg.ShortTotal)
	assert.Equal(t, 25.0, agg.AvgOrderValue())
	assert.Equal(t, 50.0, agg.AvgDailySales())
}
