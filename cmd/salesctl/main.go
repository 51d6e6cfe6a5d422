package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"salesdash/internal/export"
	"salesdash/internal/ingest"
	"salesdash/internal/models"
	"salesdash/internal/pipeline"
)

// salesctl runs the aggregation pipeline once from the command line: load a
// CSV (or sample data), apply a filter, print the KPIs and shares, and
// optionally write exports and an HTML chart report.

const runTimeout = 2 * time.Minute

type cliFlags struct {
	csvFile     string
	sample      bool
	sampleDays  int
	from        string
	to          string
	products    string
	regions     string
	granularity string
	dimension   string
	metric      string
	topN        int
	outCSV      string
	outXLSX     string
	charts      string
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.csvFile, "csv", "", "input CSV file (.csv, .gz, .lz4 or .zip)")
	flag.BoolVar(&f.sample, "sample", false, "use generated sample data instead of a file")
	flag.IntVar(&f.sampleDays, "days", ingest.DefaultSampleDays, "days of sample data to generate")
	flag.StringVar(&f.from, "from", "", "start date filter (YYYY-MM-DD)")
	flag.StringVar(&f.to, "to", "", "end date filter (YYYY-MM-DD)")
	flag.StringVar(&f.products, "products", "", "comma separated product filter")
	flag.StringVar(&f.regions, "regions", "", "comma separated region filter")
	flag.StringVar(&f.granularity, "granularity", "month", "time bucket: day or month")
	flag.StringVar(&f.dimension, "dim", "product", "ranking dimension: product or region")
	flag.StringVar(&f.metric, "metric", "revenue", "ranking metric: revenue or quantity")
	flag.IntVar(&f.topN, "top", 10, "entries per ranking frame")
	flag.StringVar(&f.outCSV, "out-csv", "", "write the filtered rows to a CSV file")
	flag.StringVar(&f.outXLSX, "out-xlsx", "", "write the filtered rows to an Excel file")
	flag.StringVar(&f.charts, "charts", "", "write an HTML chart report to this file")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(f, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(f cliFlags, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	records, report, err := loadRecords(ctx, f)
	if err != nil {
		return err
	}
	if report.DroppedCount > 0 {
		logger.Warn("rows dropped during import", "count", report.DroppedCount, "reasons", report.Reasons)
	}

	spec, err := buildSpec(f)
	if err != nil {
		return err
	}
	opts, err := buildOptions(f)
	if err != nil {
		return err
	}

	filtered := pipeline.Filter(records, spec)
	result, err := pipeline.Run(ctx, filtered, opts)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	printKPI(result.KPI, len(records), len(filtered))
	printShares("Product share", result.ProductShare)
	printShares("Region share", result.RegionShare)

	if f.outCSV != "" {
		if err := writeFile(f.outCSV, func(w *os.File) error {
			return export.WriteCSV(w, filtered)
		}); err != nil {
			return err
		}
		logger.Info("csv written", "path", f.outCSV, "rows", len(filtered))
	}
	if f.outXLSX != "" {
		if err := writeFile(f.outXLSX, func(w *os.File) error {
			return export.WriteXLSX(w, filtered, result.KPI)
		}); err != nil {
			return err
		}
		logger.Info("xlsx written", "path", f.outXLSX, "rows", len(filtered))
	}
	if f.charts != "" {
		if err := writeFile(f.charts, func(w *os.File) error {
			return renderCharts(w, result)
		}); err != nil {
			return err
		}
		logger.Info("chart report written", "path", f.charts)
	}
	return nil
}

func loadRecords(ctx context.Context, f cliFlags) ([]models.Record, models.DropReport, error) {
	if f.sample || f.csvFile == "" {
		return ingest.SampleData(f.sampleDays), models.DropReport{}, nil
	}
	records, report, err := ingest.LoadFile(ctx, f.csvFile, ingest.DefaultMapping())
	if err != nil {
		return nil, models.DropReport{}, fmt.Errorf("load %s: %w", f.csvFile, err)
	}
	return records, report, nil
}

func buildSpec(f cliFlags) (models.FilterSpec, error) {
	var spec models.FilterSpec
	if f.from != "" {
		t, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return spec, fmt.Errorf("invalid -from date %q", f.from)
		}
		spec.From = t
	}
	if f.to != "" {
		t, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return spec, fmt.Errorf("invalid -to date %q", f.to)
		}
		spec.To = t
	}
	spec.Products = splitList(f.products)
	spec.Regions = splitList(f.regions)
	return spec, pipeline.ValidateSpec(spec)
}

func buildOptions(f cliFlags) (pipeline.Options, error) {
	var opts pipeline.Options
	g, ok := pipeline.ParseGranularity(f.granularity)
	if !ok {
		return opts, fmt.Errorf("invalid -granularity %q, want day or month", f.granularity)
	}
	d, ok := pipeline.ParseDimension(f.dimension)
	if !ok {
		return opts, fmt.Errorf("invalid -dim %q, want product or region", f.dimension)
	}
	m, ok := pipeline.ParseMetric(f.metric)
	if !ok {
		return opts, fmt.Errorf("invalid -metric %q, want revenue or quantity", f.metric)
	}
	if f.topN < 1 {
		return opts, fmt.Errorf("-top must be at least 1, got %d", f.topN)
	}
	opts.Granularity = g
	opts.Dimension = d
	opts.Metric = m
	opts.TopN = f.topN
	return opts, nil
}

func printKPI(kpi models.KPISnapshot, total, filtered int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle("KPIs (%d of %d rows after filter)", filtered, total)
	t.AppendRows([]table.Row{
		{"Total revenue", fmt.Sprintf("%.2f", kpi.TotalRevenue)},
		{"Total orders", kpi.TotalOrders},
		{"Total quantity", kpi.TotalQuantity},
		{"Unique products", kpi.UniqueProducts},
	})
	t.Render()
}

func printShares(title string, entries []models.ShareEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Name", "Value", "Share"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Key, fmt.Sprintf("%.2f", e.Value), fmt.Sprintf("%.1f%%", e.Share*100)})
	}
	t.Render()
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
