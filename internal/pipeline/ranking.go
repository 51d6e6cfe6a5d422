package pipeline

import (
	"slices"
	"strings"
	"time"

	"salesdash/internal/models"
)

type Dimension string

const (
	DimensionProduct Dimension = "product"
	DimensionRegion  Dimension = "region"
)

func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimensionProduct, DimensionRegion:
		return Dimension(s), true
	}
	return "", false
}

func (d Dimension) key(rec models.Record) string {
	if d == DimensionRegion {
		return rec.Region
	}
	return rec.Product
}

type Metric string

const (
	MetricRevenue  Metric = "revenue"
	MetricQuantity Metric = "quantity"
)

func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricRevenue, MetricQuantity:
		return Metric(s), true
	}
	return "", false
}

func (m Metric) value(rec models.Record) float64 {
	if m == MetricQuantity {
		return float64(rec.Quantity)
	}
	return rec.Revenue
}

// RankingOverTime produces one frame per period present in the data. Each
// frame independently groups by dim, sums metric, sorts descending by value
// with ascending name as tie-break and keeps the top n entries. No rank state
// carries over between frames.
func RankingOverTime(records []models.Record, dim Dimension, metric Metric, g Granularity, n int) []models.RankingFrame {
	periods := make(map[time.Time]map[string]float64)
	for _, rec := range records {
		period := g.Truncate(rec.Date)
		group := periods[period]
		if group == nil {
			group = make(map[string]float64)
			periods[period] = group
		}
		group[dim.key(rec)] += metric.value(rec)
	}

	frames := make([]models.RankingFrame, 0, len(periods))
	for period, group := range periods {
		entries := make([]models.RankEntry, 0, len(group))
		for name, value := range group {
			entries = append(entries, models.RankEntry{Name: name, Value: value})
		}
		slices.SortFunc(entries, compareRankEntries)
		if n > 0 && len(entries) > n {
			entries = entries[:n]
		}
		frames = append(frames, models.RankingFrame{Period: period, Entries: entries})
	}
	slices.SortFunc(frames, func(a, b models.RankingFrame) int {
		return a.Period.Compare(b.Period)
	})
	return frames
}

func compareRankEntries(a, b models.RankEntry) int {
	if a.Value > b.Value {
		return -1
	}
	if a.Value < b.Value {
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}
