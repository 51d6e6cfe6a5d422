package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"salesdash/internal/models"
	"salesdash/internal/pipeline"
	"salesdash/internal/services"
)

const maxTableRows = 50

var kpiTemplate = template.Must(template.New("kpiRow").Parse(`
<div id="kpi-row" class="kpi-row">
<div class="kpi card"><div class="val">{{printf "%.0f" .TotalRevenue}}</div><div class="lbl">Total Sales (USD)</div></div>
<div class="kpi card"><div class="val">{{.TotalOrders}}</div><div class="lbl">Transactions</div></div>
<div class="kpi card"><div class="val">{{.TotalQuantity}}</div><div class="lbl">Total Quantity</div></div>
<div class="kpi card"><div class="val">{{.UniqueProducts}}</div><div class="lbl">Products</div></div>
</div>`))

var rankingTemplate = template.Must(template.New("rankingTable").Funcs(template.FuncMap{
	"addOne": func(i int) int { return i + 1 },
}).Parse(`
<div id="ranking-content">
<table class="modern-table">
<thead><tr><th>Period</th><th>#</th><th>Name</th><th>Value</th></tr></thead>
<tbody>
{{range .Frames}}{{$period := .Period}}{{range $i, $e := .Entries}}<tr>
<td>{{$period.Format "2006-01"}}</td>
<td>{{addOne $i}}</td>
<td>{{$e.Name}}</td>
<td><strong>{{printf "%.2f" $e.Value}}</strong></td>
</tr>{{end}}{{end}}
</tbody>
</table>
</div>`))

var geoTemplate = template.Must(template.New("geoTable").Parse(`
<div id="geo-content">
<table class="modern-table">
<thead><tr><th>Location</th><th>Lat</th><th>Lon</th><th>Revenue</th></tr></thead>
<tbody>
{{range .Points}}<tr>
<td>{{.Key}}</td>
<td>{{printf "%.4f" .Lat}}</td>
<td>{{printf "%.4f" .Lon}}</td>
<td><strong>{{printf "%.2f" .Value}}</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	dataset *services.Dataset
	logger  *slog.Logger
}

func NewSSEHandlers(dataset *services.Dataset, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{dataset: dataset, logger: logger}
}

// dashboardSignals mirrors the filter controls on the dashboard page.
type dashboardSignals struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Products    string `json:"products"`
	Regions     string `json:"regions"`
	Granularity string `json:"granularity"`
	Dimension   string `json:"dimension"`
	TopN        int    `json:"topN"`
}

func (s dashboardSignals) spec() (models.FilterSpec, error) {
	var spec models.FilterSpec
	if s.From != "" {
		t, err := time.Parse("2006-01-02", s.From)
		if err != nil {
			return spec, fmt.Errorf("invalid 'from' date %q", s.From)
		}
		spec.From = t
	}
	if s.To != "" {
		t, err := time.Parse("2006-01-02", s.To)
		if err != nil {
			return spec, fmt.Errorf("invalid 'to' date %q", s.To)
		}
		spec.To = t
	}
	spec.Products = splitParam(s.Products)
	spec.Regions = splitParam(s.Regions)
	return spec, nil
}

func (s dashboardSignals) options(defaults pipeline.Options) pipeline.Options {
	opts := defaults
	if g, ok := pipeline.ParseGranularity(s.Granularity); ok {
		opts.Granularity = g
	}
	if d, ok := pipeline.ParseDimension(s.Dimension); ok {
		opts.Dimension = d
	}
	if s.TopN >= 1 && s.TopN <= maxTopN {
		opts.TopN = s.TopN
	}
	return opts
}

// HandleDashboard re-runs the whole pipeline for the current filter signals
// and patches every dashboard region. A rejected filter spec patches only the
// error banner; everything else keeps showing the previous valid result.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	var signals dashboardSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Warn("unreadable dashboard signals", "error", err)
	}

	spec, err := signals.spec()
	if err == nil {
		err = pipeline.ValidateSpec(spec)
	}
	if err != nil {
		h.patchError(sse, err)
		return
	}

	result, err := h.dataset.Query(r.Context(), spec, signals.options(h.dataset.Defaults()))
	if err != nil {
		h.patchError(sse, err)
		return
	}

	sse.PatchElements(`<div id="filter-error" class="hidden"></div>`)
	h.patchDropNotice(sse)
	h.patchFragment(sse, kpiTemplate, result.KPI)

	ranking := result.Ranking
	if len(ranking) > maxTableRows/10 {
		ranking = ranking[len(ranking)-maxTableRows/10:]
	}
	h.patchFragment(sse, rankingTemplate, map[string]any{"Frames": ranking})

	points := result.Geo
	if len(points) > maxTableRows {
		points = points[:maxTableRows]
	}
	h.patchFragment(sse, geoTemplate, map[string]any{"Points": points})

	chartSignals, err := json.Marshal(map[string]any{
		"revenueSeries": result.Revenue,
		"smoothed":      result.Smoothed,
		"frames":        result.Frames,
		"ranking":       result.Ranking,
		"productShare":  result.ProductShare,
		"regionShare":   result.RegionShare,
		"geo":           result.Geo,
		"recordCount":   result.RecordCount,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(chartSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patchError(sse *datastar.ServerSentEventGenerator, err error) {
	h.logger.Warn("filter spec rejected", "error", err)
	var buf strings.Builder
	buf.WriteString(`<div id="filter-error" class="error-banner">`)
	template.HTMLEscape(&buf, []byte(err.Error()))
	buf.WriteString(`</div>`)
	sse.PatchElements(buf.String())
}

func (h *SSEHandlers) patchDropNotice(sse *datastar.ServerSentEventGenerator) {
	report := h.dataset.DropReport()
	if report.DroppedCount == 0 {
		sse.PatchElements(`<div id="drop-notice" class="hidden"></div>`)
		return
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, `<div id="drop-notice" class="notice">%d row(s) were dropped during import`, report.DroppedCount)
	for reason, count := range report.Reasons {
		fmt.Fprintf(&buf, ` &middot; %s: %d`, template.HTMLEscapeString(reason), count)
	}
	buf.WriteString(`</div>`)
	sse.PatchElements(buf.String())
}

func (h *SSEHandlers) patchFragment(sse *datastar.ServerSentEventGenerator, tmpl *template.Template, data any) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("render fragment", "template", tmpl.Name(), "error", err)
		return
	}
	sse.PatchElements(buf.String())
}
