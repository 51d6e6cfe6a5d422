package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func TestRevenueByPeriod_Monthly(t *testing.T) {
	got := RevenueByPeriod(testRecords(), GranularityMonth)
	require.Len(t, got, 2)
	assert.Equal(t, models.PeriodBucket{Period: day(2024, 1, 1), Revenue: 30}, got[0])
	assert.Equal(t, models.PeriodBucket{Period: day(2024, 2, 1), Revenue: 15}, got[1])
}

func TestRevenueByPeriod_Daily(t *testing.T) {
	records := []models.Record{
		{Date: time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC), Revenue: 5},
		{Date: time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), Revenue: 7},
		{Date: day(2024, 1, 11), Revenue: 1},
	}
	got := RevenueByPeriod(records, GranularityDay)
	require.Len(t, got, 2)
	assert.Equal(t, 12.0, got[0].Revenue)
	assert.Equal(t, day(2024, 1, 10), got[0].Period)
}

func TestRevenueByPeriod_OrderIndependent(t *testing.T) {
	records := testRecords()
	shuffled := make([]models.Record, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	assert.Equal(t, RevenueByPeriod(records, GranularityMonth), RevenueByPeriod(shuffled, GranularityMonth))
}

func TestRevenueByPeriod_SumMatchesTotal(t *testing.T) {
	records := testRecords()
	var total float64
	for _, rec := range records {
		total += rec.Revenue
	}
	var bucketed float64
	for _, b := range RevenueByPeriod(records, GranularityDay) {
		bucketed += b.Revenue
	}
	assert.InDelta(t, total, bucketed, 1e-9)
}

func TestRollingMean(t *testing.T) {
	buckets := []models.PeriodBucket{
		{Period: day(2024, 1, 1), Revenue: 10},
		{Period: day(2024, 1, 2), Revenue: 20},
		{Period: day(2024, 1, 3), Revenue: 30},
		{Period: day(2024, 1, 4), Revenue: 40},
	}
	got := RollingMean(buckets, 3)
	require.Len(t, got, 4)
	// Partial windows average over what exists so far.
	assert.InDelta(t, 10, got[0].Revenue, 1e-9)
	assert.InDelta(t, 15, got[1].Revenue, 1e-9)
	assert.InDelta(t, 20, got[2].Revenue, 1e-9)
	assert.InDelta(t, 30, got[3].Revenue, 1e-9)
}

func TestRollingMean_WindowOne(t *testing.T) {
	buckets := RevenueByPeriod(testRecords(), GranularityDay)
	assert.Equal(t, buckets, RollingMean(buckets, 1))
}

func TestRollingMean_Empty(t *testing.T) {
	assert.Empty(t, RollingMean(nil, 7))
}

func TestCumulativeFrames(t *testing.T) {
	buckets := []models.PeriodBucket{
		{Period: day(2024, 1, 10), Revenue: 10},
		{Period: day(2024, 1, 20), Revenue: 20},
		{Period: day(2024, 2, 5), Revenue: 15},
		{Period: day(2024, 3, 1), Revenue: 7},
	}
	frames := CumulativeFrames(buckets)
	require.Len(t, frames, 3)

	assert.Equal(t, day(2024, 1, 1), frames[0].Month)
	assert.Len(t, frames[0].Buckets, 2)

	assert.Equal(t, day(2024, 2, 1), frames[1].Month)
	assert.Len(t, frames[1].Buckets, 3)

	// The last frame always covers the full series.
	assert.Equal(t, day(2024, 3, 1), frames[2].Month)
	assert.Equal(t, buckets, frames[2].Buckets)
}

func TestCumulativeFrames_Empty(t *testing.T) {
	assert.Empty(t, CumulativeFrames(nil))
}
