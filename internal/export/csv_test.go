package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func exportRecords() []models.Record {
	return []models.Record{
		{
			OrderID:   "A2",
			Date:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Product:   "Mouse",
			Region:    "South",
			City:      "Munich",
			Lat:       48.1375,
			Lon:       11.5755,
			HasCoords: true,
			UnitPrice: 29.99,
			Quantity:  2,
			Revenue:   59.98,
		},
		{
			OrderID:   "A1",
			Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Product:   "Laptop",
			Region:    "North",
			UnitPrice: 900,
			Quantity:  1,
			Revenue:   900,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])

	// Row order is preserved, not re-sorted.
	assert.Equal(t, []string{"A2", "2024-02-10", "Mouse", "South", "Munich", "48.1375", "11.5755", "29.99", "2", "59.98"}, rows[1])
	// Records without coordinates leave lat/lon empty.
	assert.Equal(t, []string{"A1", "2024-01-10", "Laptop", "North", "", "", "", "900", "1", "900"}, rows[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}

func TestFormatFloat_RoundTrips(t *testing.T) {
	assert.Equal(t, "0.1", formatFloat(0.1))
	assert.Equal(t, "900", formatFloat(900))
	assert.Equal(t, "59.98", formatFloat(59.98))
}
