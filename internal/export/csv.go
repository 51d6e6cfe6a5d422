// Package export serializes filtered tables for download. Serialization is
// lossless for every record field and never reorders rows.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"salesdash/internal/models"
)

// Header is the canonical column order of exported tables.
var Header = []string{
	"order_id", "order_date", "product", "region", "city",
	"latitude", "longitude", "unit_price", "quantity", "revenue",
}

// WriteCSV writes records in their current order.
func WriteCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(recordRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordRow(rec models.Record) []string {
	row := []string{
		rec.OrderID,
		rec.Date.Format("2006-01-02"),
		rec.Product,
		rec.Region,
		rec.City,
		"",
		"",
		formatFloat(rec.UnitPrice),
		strconv.Itoa(rec.Quantity),
		formatFloat(rec.Revenue),
	}
	if rec.HasCoords {
		row[5] = formatFloat(rec.Lat)
		row[6] = formatFloat(rec.Lon)
	}
	return row
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
