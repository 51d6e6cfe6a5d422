package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleData_Deterministic(t *testing.T) {
	a := SampleData(30)
	b := SampleData(30)
	assert.Equal(t, a, b)
}

func TestSampleData_Shape(t *testing.T) {
	records := SampleData(10)
	require.Len(t, records, 10*len(sampleProducts))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start, records[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 9), records[len(records)-1].Date)

	for _, rec := range records {
		assert.NotEmpty(t, rec.OrderID)
		assert.NotEmpty(t, rec.Product)
		assert.NotEmpty(t, rec.Region)
		assert.NotEmpty(t, rec.City)
		assert.True(t, rec.HasCoords)
		assert.GreaterOrEqual(t, rec.UnitPrice, 0.0)
		assert.GreaterOrEqual(t, rec.Quantity, 0)
		assert.InDelta(t, round2(rec.UnitPrice*float64(rec.Quantity)), rec.Revenue, 1e-9)
	}
}

func TestSampleData_UniqueOrderIDs(t *testing.T) {
	records := SampleData(20)
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		_, dup := seen[rec.OrderID]
		require.False(t, dup, "duplicate order id %s", rec.OrderID)
		seen[rec.OrderID] = struct{}{}
	}
}

func TestSampleData_DefaultDays(t *testing.T) {
	records := SampleData(0)
	assert.Len(t, records, DefaultSampleDays*len(sampleProducts))
}
