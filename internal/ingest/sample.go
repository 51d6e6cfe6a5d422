package ingest

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"salesdash/internal/models"
)

const DefaultSampleDays = 240

var samplePrices = map[string]float64{
	"Laptop":   900,
	"Phone":    600,
	"Headset":  80,
	"Keyboard": 70,
	"Monitor":  220,
	"Tablet":   350,
}

var sampleProducts = []string{"Laptop", "Phone", "Headset", "Keyboard", "Monitor", "Tablet"}

var sampleRegions = []struct {
	name   string
	weight float64
}{
	{"North", 0.30},
	{"South", 0.25},
	{"East", 0.25},
	{"West", 0.20},
}

var sampleCities = []struct {
	name     string
	lat, lon float64
}{
	{"New Delhi", 28.6139, 77.2090},
	{"Mumbai", 19.0760, 72.8777},
	{"Bengaluru", 12.9716, 77.5946},
	{"Chennai", 13.0827, 80.2707},
	{"Kolkata", 22.5726, 88.3639},
	{"Hyderabad", 17.3850, 78.4867},
	{"London", 51.5074, -0.1278},
	{"New York", 40.7128, -74.0060},
	{"San Francisco", 37.7749, -122.4194},
}

// SampleData generates a deterministic synthetic dataset obeying the
// canonical schema, for use when no real input is supplied. One row per
// product per day starting 2024-01-01.
func SampleData(days int) []models.Record {
	if days <= 0 {
		days = DefaultSampleDays
	}
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	records := make([]models.Record, 0, days*len(sampleProducts))
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		for _, product := range sampleProducts {
			quantity := poisson(rng, 2)
			price := round2(samplePrices[product] * (1 + rng.NormFloat64()*0.06))
			if price < 0 {
				price = 0
			}
			city := sampleCities[rng.Intn(len(sampleCities))]
			rec := models.Record{
				OrderID:   fmt.Sprintf("S-%06d", len(records)+1),
				Date:      date,
				Product:   product,
				Region:    pickRegion(rng),
				City:      city.name,
				Lat:       city.lat + rng.NormFloat64()*0.02,
				Lon:       city.lon + rng.NormFloat64()*0.02,
				HasCoords: true,
				UnitPrice: price,
				Quantity:  quantity,
				Revenue:   round2(price * float64(quantity)),
			}
			records = append(records, rec)
		}
	}
	return records
}

func pickRegion(rng *rand.Rand) string {
	roll := rng.Float64()
	var cum float64
	for _, r := range sampleRegions {
		cum += r.weight
		if roll < cum {
			return r.name
		}
	}
	return sampleRegions[len(sampleRegions)-1].name
}

// poisson draws from Poisson(lambda) with Knuth's method; lambda is small
// here so the loop is short.
func poisson(rng *rand.Rand, lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
