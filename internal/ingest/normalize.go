package ingest

import (
	"context"
	"strconv"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/sync/errgroup"

	"salesdash/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 8
)

// Drop reasons surfaced in the report.
const (
	ReasonBadDate        = "unparseable date"
	ReasonBadNumeric     = "invalid numeric field"
	ReasonMissingProduct = "missing product"
	ReasonMissingRegion  = "missing region"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02.01.2006",
}

// Normalizer coerces raw string rows into canonical records.
type Normalizer struct {
	mapping ColumnMapping
}

func NewNormalizer(mapping ColumnMapping) *Normalizer {
	return &Normalizer{mapping: mapping}
}

// Normalize validates every row against the canonical schema. Rows that fail
// are dropped and counted per reason; only a missing required column is an
// error. Input order is preserved in the output.
func (n *Normalizer) Normalize(ctx context.Context, header []string, rows [][]string) ([]models.Record, models.DropReport, error) {
	idx, err := n.mapping.resolve(header)
	if err != nil {
		return nil, models.DropReport{}, err
	}

	numBatches := (len(rows) + batchSize - 1) / batchSize
	batchRecords := make([][]models.Record, numBatches)
	batchReports := make([]models.DropReport, numBatches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for b := 0; b < numBatches; b++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := min((b+1)*batchSize, len(rows))
			records, report := normalizeBatch(rows[b*batchSize:end], idx)
			batchRecords[b] = records
			batchReports[b] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, models.DropReport{}, err
	}

	var out []models.Record
	report := models.DropReport{Reasons: make(map[string]int)}
	for b := 0; b < numBatches; b++ {
		out = append(out, batchRecords[b]...)
		report.DroppedCount += batchReports[b].DroppedCount
		for reason, count := range batchReports[b].Reasons {
			report.Reasons[reason] += count
		}
	}
	return out, report, nil
}

func normalizeBatch(rows [][]string, idx columnIndexes) ([]models.Record, models.DropReport) {
	records := make([]models.Record, 0, len(rows))
	report := models.DropReport{Reasons: make(map[string]int)}
	drop := func(reason string) {
		report.DroppedCount++
		report.Reasons[reason]++
	}

	for _, row := range rows {
		date, ok := parseDate(field(row, idx.date))
		if !ok {
			drop(ReasonBadDate)
			continue
		}
		product := field(row, idx.product)
		if product == "" {
			drop(ReasonMissingProduct)
			continue
		}
		region := field(row, idx.region)
		if region == "" {
			drop(ReasonMissingRegion)
			continue
		}
		price, err := strconv.ParseFloat(field(row, idx.unitPrice), 64)
		if err != nil || price < 0 {
			drop(ReasonBadNumeric)
			continue
		}
		quantity, err := strconv.Atoi(field(row, idx.quantity))
		if err != nil || quantity < 0 {
			drop(ReasonBadNumeric)
			continue
		}

		rec := models.Record{
			OrderID:   field(row, idx.orderID),
			Date:      date,
			Product:   product,
			Region:    region,
			City:      field(row, idx.city),
			UnitPrice: price,
			Quantity:  quantity,
			Revenue:   price * float64(quantity),
		}
		if rec.OrderID == "" {
			rec.OrderID = uuid.NewV4().String()
		}
		// Coordinates must co-occur; a lone or malformed value just means
		// the record has no location, it is not a row failure.
		if lat, latErr := strconv.ParseFloat(field(row, idx.lat), 64); latErr == nil {
			if lon, lonErr := strconv.ParseFloat(field(row, idx.lon), 64); lonErr == nil {
				rec.Lat, rec.Lon, rec.HasCoords = lat, lon, true
			}
		}
		records = append(records, rec)
	}
	return records, report
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
