package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []models.Record {
	return []models.Record{
		{OrderID: "A1", Date: day(2024, 1, 10), Product: "Laptop", Region: "North", Quantity: 1, Revenue: 10},
		{OrderID: "A2", Date: day(2024, 1, 20), Product: "Mouse", Region: "South", Quantity: 2, Revenue: 20},
		{OrderID: "A3", Date: day(2024, 2, 5), Product: "Laptop", Region: "North", Quantity: 3, Revenue: 15},
	}
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec(models.FilterSpec{}))
	assert.NoError(t, ValidateSpec(models.FilterSpec{From: day(2024, 1, 1), To: day(2024, 1, 1)}))
	assert.NoError(t, ValidateSpec(models.FilterSpec{To: day(2024, 1, 1)}))

	err := ValidateSpec(models.FilterSpec{From: day(2024, 6, 1), To: day(2024, 1, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is after")
}

func TestFilter_AllInclusiveSpec(t *testing.T) {
	records := testRecords()
	got := Filter(records, models.FilterSpec{})
	assert.Equal(t, records, got)
}

func TestFilter_DateRange(t *testing.T) {
	got := Filter(testRecords(), models.FilterSpec{From: day(2024, 1, 15), To: day(2024, 2, 1)})
	require.Len(t, got, 1)
	assert.Equal(t, "A2", got[0].OrderID)
}

func TestFilter_OpenEndedRange(t *testing.T) {
	got := Filter(testRecords(), models.FilterSpec{From: day(2024, 1, 15)})
	assert.Len(t, got, 2)

	got = Filter(testRecords(), models.FilterSpec{To: day(2024, 1, 15)})
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].OrderID)
}

func TestFilter_Conjunction(t *testing.T) {
	spec := models.FilterSpec{
		From:     day(2024, 1, 1),
		Products: []string{"Laptop"},
		Regions:  []string{"North"},
	}
	got := Filter(testRecords(), spec)
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, "Laptop", rec.Product)
		assert.Equal(t, "North", rec.Region)
	}
}

func TestFilter_UnknownValueMatchesNothing(t *testing.T) {
	got := Filter(testRecords(), models.FilterSpec{Products: []string{"Monitor"}})
	assert.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	_ = Filter(records, models.FilterSpec{Products: []string{"Mouse"}})
	assert.Equal(t, testRecords(), records)
}
