package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{"order_id", "order_date", "product", "region", "city", "latitude", "longitude", "unit_price", "quantity"}

func TestNormalize_ValidRow(t *testing.T) {
	rows := [][]string{
		{"A1", "2024-03-05", "Laptop", "North", "Hamburg", "53.55", "9.99", "900.50", "2"},
	}
	records, report, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, report.DroppedCount)

	rec := records[0]
	assert.Equal(t, "A1", rec.OrderID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "Laptop", rec.Product)
	assert.True(t, rec.HasCoords)
	assert.Equal(t, 53.55, rec.Lat)
	assert.InDelta(t, 1801.0, rec.Revenue, 1e-9)
}

func TestNormalize_DropReasons(t *testing.T) {
	rows := [][]string{
		{"A1", "not-a-date", "Laptop", "North", "", "", "", "10", "1"},
		{"A2", "2024-01-01", "", "North", "", "", "", "10", "1"},
		{"A3", "2024-01-01", "Laptop", "", "", "", "", "10", "1"},
		{"A4", "2024-01-01", "Laptop", "North", "", "", "", "ten", "1"},
		{"A5", "2024-01-01", "Laptop", "North", "", "", "", "10", "-3"},
		{"A6", "2024-01-01", "Laptop", "North", "", "", "", "10", "1"},
	}
	records, report, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "A6", records[0].OrderID)
	assert.Equal(t, 5, report.DroppedCount)
	assert.Equal(t, 1, report.Reasons[ReasonBadDate])
	assert.Equal(t, 1, report.Reasons[ReasonMissingProduct])
	assert.Equal(t, 1, report.Reasons[ReasonMissingRegion])
	assert.Equal(t, 2, report.Reasons[ReasonBadNumeric])
}

func TestNormalize_DateLayouts(t *testing.T) {
	for _, date := range []string{"2024-03-05", "2024-03-05 10:30:00", "2024/03/05", "05.03.2024"} {
		rows := [][]string{{"", date, "Laptop", "North", "", "", "", "10", "1"}}
		records, report, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
		require.NoError(t, err)
		require.Len(t, records, 1, "layout %s", date)
		assert.Zero(t, report.DroppedCount)
		assert.Equal(t, 2024, records[0].Date.Year())
		assert.Equal(t, time.March, records[0].Date.Month())
	}
}

func TestNormalize_SynthesizesOrderID(t *testing.T) {
	rows := [][]string{
		{"", "2024-01-01", "Laptop", "North", "", "", "", "10", "1"},
		{"", "2024-01-01", "Mouse", "South", "", "", "", "10", "1"},
	}
	records, _, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEmpty(t, records[0].OrderID)
	assert.NotEqual(t, records[0].OrderID, records[1].OrderID)
}

func TestNormalize_CoordinatesMustCoOccur(t *testing.T) {
	rows := [][]string{
		{"A1", "2024-01-01", "Laptop", "North", "", "53.55", "", "10", "1"},
		{"A2", "2024-01-01", "Laptop", "North", "", "bad", "9.99", "10", "1"},
		{"A3", "2024-01-01", "Laptop", "North", "", "53.55", "9.99", "10", "1"},
	}
	records, report, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
	require.NoError(t, err)

	// Bad coordinates are not a row failure.
	require.Len(t, records, 3)
	assert.Zero(t, report.DroppedCount)
	assert.False(t, records[0].HasCoords)
	assert.False(t, records[1].HasCoords)
	assert.True(t, records[2].HasCoords)
}

func TestNormalize_MissingRequiredColumn(t *testing.T) {
	header := []string{"order_date", "product", "unit_price", "quantity"}
	_, _, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), header, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestNormalize_PreservesRowOrder(t *testing.T) {
	rows := make([][]string, 0, 2500)
	for i := 0; i < 2500; i++ {
		rows = append(rows, []string{"", "2024-01-01", "Laptop", "North", "", "", "", "10", "1"})
	}
	records, _, err := NewNormalizer(DefaultMapping()).Normalize(context.Background(), testHeader, rows)
	require.NoError(t, err)
	assert.Len(t, records, 2500)
}
