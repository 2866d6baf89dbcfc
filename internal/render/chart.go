package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"rapv/site/internal/models"
)

const chartHeight = "360px"

// naValue is how echarts encodes a missing point; the line breaks there.
const naValue = "-"

// ResultsChart renders the pass percentage trend for Class 10 and 12.
type ResultsChart struct {
	cache *ChartCache
}

func NewResultsChart(cache *ChartCache) *ResultsChart {
	return &ResultsChart{cache: cache}
}

// HTML returns a standalone echarts page for results in lang.
func (c *ResultsChart) HTML(results []models.YearResult, lang models.Language) (string, error) {
	if len(results) == 0 {
		return "", nil
	}
	return c.cache.Page(resultsKey("pass-trend", lang, results), func() (string, error) {
		return renderResultsChart(results, lang)
	})
}

func renderResultsChart(results []models.YearResult, lang models.Language) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: Label("passTrend", lang)}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  chartHeight,
			ChartID: "results-trend-" + string(lang),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)

	axis := make([]string, len(results))
	for i, item := range results {
		axis[i] = ShortYear(item.Year)
	}
	line.SetXAxis(axis).
		AddSeries(Label("class10", lang), passSeries(results, func(r models.YearResult) models.ClassResult { return r.Class10 })).
		AddSeries(Label("class12", lang), passSeries(results, func(r models.YearResult) models.ClassResult { return r.Class12 }))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ConnectNulls: opts.Bool(false)}))
	return renderChart(line)
}

// passSeries maps NA percentages to gaps rather than zero.
func passSeries(results []models.YearResult, class func(models.YearResult) models.ClassResult) []opts.LineData {
	data := make([]opts.LineData, len(results))
	for i, item := range results {
		pct := class(item).PassPercentage
		if pct.NA {
			data[i] = opts.LineData{Name: item.Year, Value: naValue}
			continue
		}
		data[i] = opts.LineData{Name: item.Year, Value: pct.Value}
	}
	return data
}

// ShortYear abbreviates an academic year label, e.g. 2012-13 becomes '12-13.
func ShortYear(year string) string {
	return strings.Replace(year, "20", "'", 1)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
