package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/errors"
	"salesdash/internal/export"
	"salesdash/internal/ingest"
	"salesdash/internal/models"
	"salesdash/internal/observability"
	"salesdash/internal/pipeline"
	"salesdash/internal/services"
)

const (
	maxTopN       = 100
	maxUploadSize = 256 << 20 // 256 MB
	cacheMaxAge   = "public, max-age=60"
)

type APIHandlers struct {
	dataset *services.Dataset
	mapping ingest.ColumnMapping
	logger  *slog.Logger
}

func NewAPIHandlers(dataset *services.Dataset, mapping ingest.ColumnMapping, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dataset: dataset,
		mapping: mapping,
		logger:  logger,
	}
}

// parseFilterSpec builds a FilterSpec from query parameters. Absent
// parameters mean "no restriction", which is the designed default, not an
// error.
func parseFilterSpec(r *http.Request) (models.FilterSpec, error) {
	var spec models.FilterSpec
	q := r.URL.Query()

	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return spec, errors.Validation(fmt.Sprintf("invalid 'from' date %q, want YYYY-MM-DD", from))
		}
		spec.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return spec, errors.Validation(fmt.Sprintf("invalid 'to' date %q, want YYYY-MM-DD", to))
		}
		spec.To = t
	}
	spec.Products = splitParam(q.Get("products"))
	spec.Regions = splitParam(q.Get("regions"))

	if err := pipeline.ValidateSpec(spec); err != nil {
		return spec, errors.ValidationWrap(err, "invalid filter spec")
	}
	return spec, nil
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *APIHandlers) parseOptions(r *http.Request) (pipeline.Options, error) {
	opts := h.dataset.Defaults()
	q := r.URL.Query()

	if v := q.Get("granularity"); v != "" {
		g, ok := pipeline.ParseGranularity(v)
		if !ok {
			return opts, errors.Validation(fmt.Sprintf("invalid granularity %q, want day or month", v))
		}
		opts.Granularity = g
	}
	if v := q.Get("dimension"); v != "" {
		d, ok := pipeline.ParseDimension(v)
		if !ok {
			return opts, errors.Validation(fmt.Sprintf("invalid dimension %q, want product or region", v))
		}
		opts.Dimension = d
	}
	if v := q.Get("metric"); v != "" {
		m, ok := pipeline.ParseMetric(v)
		if !ok {
			return opts, errors.Validation(fmt.Sprintf("invalid metric %q, want revenue or quantity", v))
		}
		opts.Metric = m
	}
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTopN {
			return opts, errors.Validation(fmt.Sprintf("invalid n %q, want 1..%d", v, maxTopN))
		}
		opts.TopN = n
	}
	return opts, nil
}

// filtered resolves the request's filter spec against the canonical table.
func (h *APIHandlers) filtered(r *http.Request) ([]models.Record, error) {
	spec, err := parseFilterSpec(r)
	if err != nil {
		return nil, err
	}
	return h.dataset.Filtered(spec)
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleKPI(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, pipeline.KPI(records), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleRevenueSeries(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	opts, err := h.parseOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	buckets := pipeline.RevenueByPeriod(records, opts.Granularity)
	payload := map[string]any{
		"buckets":  buckets,
		"smoothed": pipeline.RollingMean(buckets, opts.RollingWindow),
		"frames":   pipeline.CumulativeFrames(buckets),
	}
	errors.WriteSuccessWithHeaders(w, payload, map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleRanking(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	opts, err := h.parseOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	frames := pipeline.RankingOverTime(records, opts.Dimension, opts.Metric, pipeline.GranularityMonth, opts.TopN)
	errors.WriteSuccessWithHeaders(w, frames, map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleProductShare(w http.ResponseWriter, r *http.Request) {
	h.handleShare(w, r, pipeline.DimensionProduct)
}

func (h *APIHandlers) HandleRegionShare(w http.ResponseWriter, r *http.Request) {
	h.handleShare(w, r, pipeline.DimensionRegion)
}

func (h *APIHandlers) handleShare(w http.ResponseWriter, r *http.Request, dim pipeline.Dimension) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	opts, err := h.parseOptions(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, pipeline.ShareBy(records, dim, opts.Metric), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleGeo(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	points := pipeline.GeoPoints(records, h.dataset.Defaults().GeoPrecision)
	errors.WriteSuccessWithHeaders(w, points, map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleDropReport(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dataset.DropReport())
}

// HandleUpload replaces the dataset with an uploaded CSV file. Structural
// problems (unreadable input, unmapped required columns) fail the request;
// row-level problems only show up in the returned drop report.
func (h *APIHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, errors.BadRequest("missing 'file' form field"))
		return
	}
	defer file.Close()

	records, report, err := ingest.ReadCSV(r.Context(), file, h.mapping)
	if err != nil {
		h.fail(w, r, errors.StructuralWrap(err, "could not ingest uploaded file"))
		return
	}
	h.dataset.SetTable(records, report)
	h.logger.Info("dataset replaced by upload", "records", len(records), "dropped", report.DroppedCount)

	errors.WriteSuccess(w, map[string]any{
		"records":     len(records),
		"drop_report": report,
	})
}

func (h *APIHandlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

func (h *APIHandlers) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, err := h.filtered(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.xlsx"`)
	if err := export.WriteXLSX(w, records, pipeline.KPI(records)); err != nil {
		h.logger.Error("xlsx export failed", "error", err)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dataset.Stats())
}
