package pipeline

import (
	"slices"
	"time"

	"salesdash/internal/models"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityDay, GranularityMonth:
		return Granularity(s), true
	}
	return "", false
}

// Truncate maps a date to the start of its period in UTC.
func (g Granularity) Truncate(t time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// RevenueByPeriod buckets records by truncated date and sums revenue per
// bucket. The result is sorted ascending by period and independent of input
// row order. Periods absent from the data are absent from the result.
func RevenueByPeriod(records []models.Record, g Granularity) []models.PeriodBucket {
	groups := make(map[time.Time]float64)
	for _, rec := range records {
		groups[g.Truncate(rec.Date)] += rec.Revenue
	}

	buckets := make([]models.PeriodBucket, 0, len(groups))
	for period, revenue := range groups {
		buckets = append(buckets, models.PeriodBucket{Period: period, Revenue: revenue})
	}
	slices.SortFunc(buckets, func(a, b models.PeriodBucket) int {
		return a.Period.Compare(b.Period)
	})
	return buckets
}

// RollingMean smooths a sorted bucket sequence with a trailing window. Early
// entries average over however many buckets exist so far, so the output has
// the same length as the input.
func RollingMean(buckets []models.PeriodBucket, window int) []models.PeriodBucket {
	if window < 1 {
		window = 1
	}
	out := make([]models.PeriodBucket, len(buckets))
	var sum float64
	for i, b := range buckets {
		sum += b.Revenue
		if i >= window {
			sum -= buckets[i-window].Revenue
		}
		n := min(i+1, window)
		out[i] = models.PeriodBucket{Period: b.Period, Revenue: sum / float64(n)}
	}
	return out
}

// CumulativeFrames turns a sorted bucket sequence into the precomputed
// animation frames the presentation layer plays: one frame per month present,
// each holding every bucket up to and including that month. Frames share the
// underlying bucket storage; callers must treat them as read-only.
func CumulativeFrames(buckets []models.PeriodBucket) []models.SeriesFrame {
	var frames []models.SeriesFrame
	for i, b := range buckets {
		month := GranularityMonth.Truncate(b.Period)
		if i+1 < len(buckets) && GranularityMonth.Truncate(buckets[i+1].Period).Equal(month) {
			continue
		}
		frames = append(frames, models.SeriesFrame{Month: month, Buckets: buckets[:i+1]})
	}
	return frames
}
