package models

import "time"

// Record is one validated sales transaction. Revenue is derived at
// normalization time (unit price * quantity) and never recomputed downstream.
type Record struct {
	OrderID   string
	Date      time.Time
	Product   string
	Region    string
	City      string
	Lat       float64
	Lon       float64
	HasCoords bool
	UnitPrice float64
	Quantity  int
	Revenue   float64
}

// FilterSpec describes the active restriction. A zero From or To leaves that
// side of the date range unbounded. Empty Products/Regions allow everything
// on that dimension.
type FilterSpec struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Products []string  `json:"products"`
	Regions  []string  `json:"regions"`
}

// DropReport accounts for rows rejected during normalization.
type DropReport struct {
	DroppedCount int            `json:"dropped_count"`
	Reasons      map[string]int `json:"reasons,omitempty"`
}

type KPISnapshot struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalQuantity  int     `json:"total_quantity"`
	UniqueProducts int     `json:"unique_products"`
}

type PeriodBucket struct {
	Period  time.Time `json:"period"`
	Revenue float64   `json:"revenue"`
}

// SeriesFrame is one animation step of the revenue time series: all buckets
// up to and including Month.
type SeriesFrame struct {
	Month   time.Time      `json:"month"`
	Buckets []PeriodBucket `json:"buckets"`
}

type RankEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type RankingFrame struct {
	Period  time.Time   `json:"period"`
	Entries []RankEntry `json:"entries"`
}

type ShareEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

type GeoPoint struct {
	Key   string  `json:"key"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}
