package main

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"salesdash/internal/models"
	"salesdash/internal/pipeline"
)

const maxChartBars = 15

// renderCharts writes a standalone HTML report with the same views the web
// dashboard shows: revenue line, share donuts, the latest ranking frame and
// the top locations.
func renderCharts(w io.Writer, result *pipeline.Result) error {
	page := components.NewPage()
	page.PageTitle = "Sales Report"

	page.AddCharts(
		revenueLine(result.Revenue, result.Smoothed),
		sharePie("Product share", result.ProductShare),
		sharePie("Region share", result.RegionShare),
		rankingBar(result.Ranking),
		geoBar(result.Geo),
	)
	return page.Render(w)
}

func revenueLine(buckets, smoothed []models.PeriodBucket) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Revenue over time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	x := make([]string, len(buckets))
	raw := make([]opts.LineData, len(buckets))
	for i, b := range buckets {
		x[i] = b.Period.Format("2006-01-02")
		raw[i] = opts.LineData{Value: b.Revenue}
	}
	smooth := make([]opts.LineData, len(smoothed))
	for i, b := range smoothed {
		smooth[i] = opts.LineData{Value: b.Revenue}
	}

	line.SetXAxis(x).
		AddSeries("Revenue", raw).
		AddSeries("Rolling mean", smooth)
	return line
}

func sharePie(title string, entries []models.ShareEntry) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	data := make([]opts.PieData, len(entries))
	for i, e := range entries {
		data[i] = opts.PieData{Name: e.Key, Value: e.Value}
	}
	pie.AddSeries(title, data).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "65%"}}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		)
	return pie
}

func rankingBar(frames []models.RankingFrame) *charts.Bar {
	bar := charts.NewBar()
	title := "Top performers"
	var entries []models.RankEntry
	if len(frames) > 0 {
		latest := frames[len(frames)-1]
		title = "Top performers " + latest.Period.Format("2006-01")
		entries = latest.Entries
	}
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	names := make([]string, len(entries))
	data := make([]opts.BarData, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		data[i] = opts.BarData{Value: e.Value}
	}
	bar.SetXAxis(names).AddSeries("Value", data)
	return bar
}

func geoBar(points []models.GeoPoint) *charts.Bar {
	if len(points) > maxChartBars {
		points = points[:maxChartBars]
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Revenue by location"}))

	names := make([]string, len(points))
	data := make([]opts.BarData, len(points))
	for i, p := range points {
		names[i] = p.Key
		data[i] = opts.BarData{Value: p.Value}
	}
	bar.SetXAxis(names).AddSeries("Revenue", data)
	return bar
}
