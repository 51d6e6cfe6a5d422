package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"salesdash/internal/ingest"
	"salesdash/internal/models"
	"salesdash/internal/pipeline"
)

// Dataset owns the canonical table and serves pipeline runs against it.
// The table is an immutable snapshot: filtering and aggregation always
// produce fresh values, and a rejected filter spec leaves the previously
// computed result in place.
type Dataset struct {
	mu         sync.RWMutex
	records    []models.Record
	report     models.DropReport
	lastResult *pipeline.Result
	source     string
	loadedAt   time.Time

	defaults pipeline.Options
	logger   *slog.Logger
}

func NewDataset(defaults pipeline.Options, logger *slog.Logger) *Dataset {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dataset{defaults: defaults, logger: logger}
}

// LoadFile replaces the canonical table with the contents of a CSV file.
func (d *Dataset) LoadFile(ctx context.Context, path string, mapping ingest.ColumnMapping) error {
	start := time.Now()
	records, report, err := ingest.LoadFile(ctx, path, mapping)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	d.setTable(records, report, path)
	d.logger.Info("dataset loaded",
		"source", path,
		"records", len(records),
		"dropped", report.DroppedCount,
		"duration", time.Since(start),
	)
	return nil
}

// UseSample replaces the canonical table with generated sample data.
func (d *Dataset) UseSample(days int) {
	records := ingest.SampleData(days)
	d.setTable(records, models.DropReport{}, "sample")
	d.logger.Info("dataset loaded", "source", "sample", "records", len(records))
}

// SetTable installs an already-normalized table. Used by upload handlers and
// tests.
func (d *Dataset) SetTable(records []models.Record, report models.DropReport) {
	d.setTable(records, report, "upload")
}

func (d *Dataset) setTable(records []models.Record, report models.DropReport, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = records
	d.report = report
	d.lastResult = nil
	d.source = source
	d.loadedAt = time.Now()
}

// Canonical returns the current table snapshot. Callers must not mutate it.
func (d *Dataset) Canonical() []models.Record {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records
}

func (d *Dataset) DropReport() models.DropReport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.report
}

// Filtered validates spec and returns the filtered view.
func (d *Dataset) Filtered(spec models.FilterSpec) ([]models.Record, error) {
	if err := pipeline.ValidateSpec(spec); err != nil {
		return nil, err
	}
	return pipeline.Filter(d.Canonical(), spec), nil
}

// Query runs the full pipeline for spec. On a spec error the previous valid
// result is retained and returned alongside the error.
func (d *Dataset) Query(ctx context.Context, spec models.FilterSpec, opts pipeline.Options) (*pipeline.Result, error) {
	if err := pipeline.ValidateSpec(spec); err != nil {
		return d.LastResult(), err
	}

	filtered := pipeline.Filter(d.Canonical(), spec)
	result, err := pipeline.Run(ctx, filtered, opts)
	if err != nil {
		return d.LastResult(), err
	}
	result.Spec = spec

	d.mu.Lock()
	d.lastResult = result
	d.mu.Unlock()
	return result, nil
}

// QueryDefaults runs the pipeline with the dataset's configured options.
func (d *Dataset) QueryDefaults(ctx context.Context, spec models.FilterSpec) (*pipeline.Result, error) {
	return d.Query(ctx, spec, d.defaults)
}

func (d *Dataset) Defaults() pipeline.Options {
	return d.defaults
}

func (d *Dataset) LastResult() *pipeline.Result {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastResult
}

// Stats reports dataset shape for the admin endpoint.
func (d *Dataset) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return map[string]any{
		"source":       d.source,
		"record_count": len(d.records),
		"dropped_rows": d.report.DroppedCount,
		"drop_reasons": d.report.Reasons,
		"loaded_at":    d.loadedAt,
		"has_result":   d.lastResult != nil,
	}
}
