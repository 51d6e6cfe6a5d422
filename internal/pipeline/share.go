package pipeline

import (
	"slices"
	"strings"

	"salesdash/internal/models"
)

// ShareBy groups records by dim, sums metric per group and computes each
// group's fraction of the total. When the total is zero every share is zero;
// the groups are still returned. Sorted descending by value, name ascending
// on ties.
func ShareBy(records []models.Record, dim Dimension, metric Metric) []models.ShareEntry {
	groups := make(map[string]float64)
	var total float64
	for _, rec := range records {
		v := metric.value(rec)
		groups[dim.key(rec)] += v
		total += v
	}

	entries := make([]models.ShareEntry, 0, len(groups))
	for key, value := range groups {
		entry := models.ShareEntry{Key: key, Value: value}
		if total != 0 {
			entry.Share = value / total
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b models.ShareEntry) int {
		if a.Value > b.Value {
			return -1
		}
		if a.Value < b.Value {
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}
