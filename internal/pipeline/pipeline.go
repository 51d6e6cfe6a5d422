package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"salesdash/internal/models"
)

const DefaultRollingWindow = 7

// Options select the shapes each chart consumes. Zero values fall back to
// the documented defaults.
type Options struct {
	Granularity   Granularity
	Dimension     Dimension
	Metric        Metric
	TopN          int
	GeoPrecision  int
	RollingWindow int
}

func (o Options) withDefaults() Options {
	if o.Granularity == "" {
		o.Granularity = GranularityDay
	}
	if o.Dimension == "" {
		o.Dimension = DimensionProduct
	}
	if o.Metric == "" {
		o.Metric = MetricRevenue
	}
	if o.TopN <= 0 {
		o.TopN = 10
	}
	if o.GeoPrecision <= 0 {
		o.GeoPrecision = DefaultGeoPrecision
	}
	if o.RollingWindow <= 0 {
		o.RollingWindow = DefaultRollingWindow
	}
	return o
}

// Result holds every aggregate computed from one filtered snapshot.
type Result struct {
	Spec         models.FilterSpec     `json:"spec"`
	RecordCount  int                   `json:"record_count"`
	KPI          models.KPISnapshot    `json:"kpi"`
	Revenue      []models.PeriodBucket `json:"revenue"`
	Smoothed     []models.PeriodBucket `json:"smoothed"`
	Frames       []models.SeriesFrame  `json:"frames"`
	Ranking      []models.RankingFrame `json:"ranking"`
	ProductShare []models.ShareEntry   `json:"product_share"`
	RegionShare  []models.ShareEntry   `json:"region_share"`
	Geo          []models.GeoPoint     `json:"geo"`
}

// Run computes all aggregates against the same immutable filtered snapshot.
// The aggregators share no state, so they run concurrently; each writes its
// own field of the result.
func Run(ctx context.Context, filtered []models.Record, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	res := &Result{RecordCount: len(filtered)}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.KPI = KPI(filtered)
		return nil
	})
	g.Go(func() error {
		res.Revenue = RevenueByPeriod(filtered, opts.Granularity)
		res.Smoothed = RollingMean(res.Revenue, opts.RollingWindow)
		res.Frames = CumulativeFrames(res.Revenue)
		return nil
	})
	g.Go(func() error {
		res.Ranking = RankingOverTime(filtered, opts.Dimension, opts.Metric, GranularityMonth, opts.TopN)
		return nil
	})
	g.Go(func() error {
		res.ProductShare = ShareBy(filtered, DimensionProduct, opts.Metric)
		res.RegionShare = ShareBy(filtered, DimensionRegion, opts.Metric)
		return nil
	})
	g.Go(func() error {
		res.Geo = GeoPoints(filtered, opts.GeoPrecision)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
