package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// ColumnMapping names the source column for each canonical field. Matching is
// forgiving: headers are transliterated to ASCII, lowercased and squashed to
// underscores before comparison, so "Order Date", "order_date" and
// "Order-Date" all resolve the same way.
type ColumnMapping struct {
	Date      string
	Product   string
	Region    string
	City      string
	Lat       string
	Lon       string
	UnitPrice string
	Quantity  string
	OrderID   string
}

func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		Date:      "order_date",
		Product:   "product",
		Region:    "region",
		City:      "city",
		Lat:       "latitude",
		Lon:       "longitude",
		UnitPrice: "unit_price",
		Quantity:  "quantity",
		OrderID:   "order_id",
	}
}

var headerCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader reduces a raw header cell to the canonical matching form.
func NormalizeHeader(s string) string {
	s = strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
	return strings.Trim(headerCleaner.ReplaceAllString(s, "_"), "_")
}

// columnIndexes holds the resolved position of each field, -1 when the
// column is absent.
type columnIndexes struct {
	date, product, region int
	city, lat, lon        int
	unitPrice, quantity   int
	orderID               int
}

// resolve maps the header row to field positions. A required field whose
// mapped column is missing is a structural configuration error; optional
// fields resolve to -1.
func (m ColumnMapping) resolve(header []string) (columnIndexes, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	find := func(name string) int {
		if idx, ok := byName[NormalizeHeader(name)]; ok {
			return idx
		}
		return -1
	}

	idx := columnIndexes{
		date:      find(m.Date),
		product:   find(m.Product),
		region:    find(m.Region),
		city:      find(m.City),
		lat:       find(m.Lat),
		lon:       find(m.Lon),
		unitPrice: find(m.UnitPrice),
		quantity:  find(m.Quantity),
		orderID:   find(m.OrderID),
	}

	var missing []string
	for _, req := range []struct {
		name string
		pos  int
	}{
		{m.Date, idx.date},
		{m.Product, idx.product},
		{m.Region, idx.region},
		{m.UnitPrice, idx.unitPrice},
		{m.Quantity, idx.quantity},
	} {
		if req.pos < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("required column(s) not found in input: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
