package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"salesdash/internal/models"
	"salesdash/internal/pipeline"
)

func newTestDataset(t *testing.T) *Dataset {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	d := NewDataset(pipeline.Options{Granularity: pipeline.GranularityMonth}, logger)
	d.SetTable([]models.Record{
		{OrderID: "A1", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Product: "Laptop", Region: "North", Quantity: 1, Revenue: 10},
		{OrderID: "A2", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Product: "Mouse", Region: "South", Quantity: 2, Revenue: 20},
		{OrderID: "A3", Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Product: "Laptop", Region: "North", Quantity: 3, Revenue: 15},
	}, models.DropReport{DroppedCount: 1, Reasons: map[string]int{"unparseable date": 1}})
	return d
}

func TestDataset_Query(t *testing.T) {
	d := newTestDataset(t)

	result, err := d.QueryDefaults(context.Background(), models.FilterSpec{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if result.RecordCount != 3 {
		t.Errorf("record count = %d, want 3", result.RecordCount)
	}
	if result.KPI.TotalRevenue != 45 {
		t.Errorf("total revenue = %v, want 45", result.KPI.TotalRevenue)
	}
	if len(result.Revenue) != 2 {
		t.Errorf("revenue buckets = %d, want 2", len(result.Revenue))
	}
}

func TestDataset_QueryKeepsPreviousResultOnBadSpec(t *testing.T) {
	d := newTestDataset(t)

	good, err := d.QueryDefaults(context.Background(), models.FilterSpec{Products: []string{"Laptop"}})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	bad := models.FilterSpec{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := d.QueryDefaults(context.Background(), bad)
	if err == nil {
		t.Fatal("expected error for inverted date range")
	}
	if got != good {
		t.Error("previous valid result should be returned alongside the error")
	}
	if d.LastResult() != good {
		t.Error("previous valid result should remain installed")
	}
}

func TestDataset_SetTableResetsResult(t *testing.T) {
	d := newTestDataset(t)

	if _, err := d.QueryDefaults(context.Background(), models.FilterSpec{}); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if d.LastResult() == nil {
		t.Fatal("expected a cached result")
	}

	d.SetTable(nil, models.DropReport{})
	if d.LastResult() != nil {
		t.Error("replacing the table should clear the cached result")
	}
}

func TestDataset_FilteredRejectsBadSpec(t *testing.T) {
	d := newTestDataset(t)

	spec := models.FilterSpec{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := d.Filtered(spec); err == nil {
		t.Error("expected validation error")
	}

	records, err := d.Filtered(models.FilterSpec{Regions: []string{"North"}})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("filtered rows = %d, want 2", len(records))
	}
}

func TestDataset_Stats(t *testing.T) {
	d := newTestDataset(t)

	stats := d.Stats()
	if stats["record_count"] != 3 {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
	if stats["dropped_rows"] != 1 {
		t.Errorf("dropped_rows = %v, want 1", stats["dropped_rows"])
	}
	if stats["source"] != "upload" {
		t.Errorf("source = %v, want upload", stats["source"])
	}
	if stats["has_result"] != false {
		t.Error("has_result should be false before any query")
	}
}

func TestDataset_UseSample(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	d := NewDataset(pipeline.Options{}, logger)
	d.UseSample(5)

	if len(d.Canonical()) == 0 {
		t.Fatal("sample load should populate the table")
	}
	if d.DropReport().DroppedCount != 0 {
		t.Error("sample data should have no dropped rows")
	}
}
