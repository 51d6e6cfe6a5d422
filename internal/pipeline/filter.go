package pipeline

import (
	"fmt"

	"salesdash/internal/models"
)

// ValidateSpec rejects malformed filter specs before any filtering runs.
func ValidateSpec(spec models.FilterSpec) error {
	if !spec.From.IsZero() && !spec.To.IsZero() && spec.From.After(spec.To) {
		return fmt.Errorf("date_from %s is after date_to %s",
			spec.From.Format("2006-01-02"), spec.To.Format("2006-01-02"))
	}
	return nil
}

// Filter applies spec to records in a single pass and returns a new slice.
// The input is never mutated; re-filtering the same canonical table with a
// different spec needs no reload.
func Filter(records []models.Record, spec models.FilterSpec) []models.Record {
	products := toSet(spec.Products)
	regions := toSet(spec.Regions)

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !spec.From.IsZero() && rec.Date.Before(spec.From) {
			continue
		}
		if !spec.To.IsZero() && rec.Date.After(spec.To) {
			continue
		}
		if len(products) > 0 {
			if _, ok := products[rec.Product]; !ok {
				continue
			}
		}
		if len(regions) > 0 {
			if _, ok := regions[rec.Region]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
