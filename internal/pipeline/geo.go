package pipeline

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"salesdash/internal/models"
)

// DefaultGeoPrecision is the number of decimal places coordinate keys are
// rounded to before grouping. Two places is roughly a 1.1 km grid, coarse
// enough to absorb floating-point jitter in uploaded coordinates.
const DefaultGeoPrecision = 2

type geoAccum struct {
	latSum, lonSum float64
	coordCount     int
	value          float64
}

// GeoPoints groups records by location and sums revenue per location. The key
// is the city name when present, otherwise the lat/lon pair rounded to
// precision decimal places; records with neither city nor coordinates are
// excluded here only. Points whose rounded coordinates coincide are merged,
// and a merged point carries the mean coordinates of its contributors.
// Sorted descending by value, key ascending on ties.
func GeoPoints(records []models.Record, precision int) []models.GeoPoint {
	if precision < 0 {
		precision = DefaultGeoPrecision
	}
	groups := make(map[string]*geoAccum)
	for _, rec := range records {
		key := geoKey(rec, precision)
		if key == "" {
			continue
		}
		acc := groups[key]
		if acc == nil {
			acc = &geoAccum{}
			groups[key] = acc
		}
		acc.value += rec.Revenue
		if rec.HasCoords {
			acc.latSum += rec.Lat
			acc.lonSum += rec.Lon
			acc.coordCount++
		}
	}

	points := make([]models.GeoPoint, 0, len(groups))
	for key, acc := range groups {
		p := models.GeoPoint{Key: key, Value: acc.value}
		if acc.coordCount > 0 {
			p.Lat = acc.latSum / float64(acc.coordCount)
			p.Lon = acc.lonSum / float64(acc.coordCount)
		}
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b models.GeoPoint) int {
		if a.Value > b.Value {
			return -1
		}
		if a.Value < b.Value {
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	return points
}

func geoKey(rec models.Record, precision int) string {
	if rec.City != "" {
		return rec.City
	}
	if !rec.HasCoords {
		return ""
	}
	return formatCoord(rec.Lat, precision) + "," + formatCoord(rec.Lon, precision)
}

func formatCoord(v float64, precision int) string {
	scale := math.Pow10(precision)
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', precision, 64)
}
