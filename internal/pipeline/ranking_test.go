package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func TestRankingOverTime_PerPeriodFrames(t *testing.T) {
	frames := RankingOverTime(testRecords(), DimensionProduct, MetricRevenue, GranularityMonth, 10)
	require.Len(t, frames, 2)

	jan := frames[0]
	assert.Equal(t, day(2024, 1, 1), jan.Period)
	require.Len(t, jan.Entries, 2)
	assert.Equal(t, models.RankEntry{Name: "Mouse", Value: 20}, jan.Entries[0])
	assert.Equal(t, models.RankEntry{Name: "Laptop", Value: 10}, jan.Entries[1])

	// February ranks independently of January.
	feb := frames[1]
	require.Len(t, feb.Entries, 1)
	assert.Equal(t, models.RankEntry{Name: "Laptop", Value: 15}, feb.Entries[0])
}

func TestRankingOverTime_TopN(t *testing.T) {
	records := []models.Record{
		{Date: day(2024, 1, 1), Product: "A", Revenue: 3},
		{Date: day(2024, 1, 1), Product: "B", Revenue: 2},
		{Date: day(2024, 1, 1), Product: "C", Revenue: 1},
	}
	frames := RankingOverTime(records, DimensionProduct, MetricRevenue, GranularityMonth, 2)
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Entries, 2)
	assert.Equal(t, "A", frames[0].Entries[0].Name)
	assert.Equal(t, "B", frames[0].Entries[1].Name)
}

func TestRankingOverTime_TieBreakByName(t *testing.T) {
	records := []models.Record{
		{Date: day(2024, 1, 1), Product: "Zebra", Revenue: 5},
		{Date: day(2024, 1, 1), Product: "Apple", Revenue: 5},
	}
	frames := RankingOverTime(records, DimensionProduct, MetricRevenue, GranularityMonth, 10)
	require.Len(t, frames, 1)
	assert.Equal(t, "Apple", frames[0].Entries[0].Name)
	assert.Equal(t, "Zebra", frames[0].Entries[1].Name)
}

func TestRankingOverTime_QuantityMetricByRegion(t *testing.T) {
	frames := RankingOverTime(testRecords(), DimensionRegion, MetricQuantity, GranularityMonth, 10)
	require.Len(t, frames, 2)
	assert.Equal(t, models.RankEntry{Name: "South", Value: 2}, frames[0].Entries[0])
	assert.Equal(t, models.RankEntry{Name: "North", Value: 1}, frames[0].Entries[1])
}

func TestRankingOverTime_Empty(t *testing.T) {
	assert.Empty(t, RankingOverTime(nil, DimensionProduct, MetricRevenue, GranularityMonth, 10))
}
