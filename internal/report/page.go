package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// Report layout defaults.
const (
	defaultTopCountries = 15
	defaultTrendKeys    = 8
	outputFilePerm      = 0o644
)

// ErrReportWrite indicates the output artifact could not be written. The
// run's data work is already done at that point; callers report the error
// without retrying.
var ErrReportWrite = errors.New("write report")

// Options configures the rendered report.
type Options struct {
	Title        string
	TopCountries int
	TrendKeys    int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Download Statistics"
	}

	if o.TopCountries <= 0 {
		o.TopCountries = defaultTopCountries
	}

	if o.TrendKeys <= 0 {
		o.TrendKeys = defaultTrendKeys
	}

	return o
}

// BuildPage projects the master table into the report's chart page:
// yearly totals, version and OS share trends, and the latest year's
// country ranking.
func BuildPage(master stats.MasterTable, opt Options) *components.Page {
	opt = opt.withDefaults()
	points := YearlySeries(master)

	years := make([]string, len(points))
	totals := make([]int64, len(points))

	for i, p := range points {
		years[i] = p.Year
		totals[i] = p.Stats.Downloads
	}

	page := components.NewPage()
	page.PageTitle = opt.Title

	page.AddCharts(
		buildBarChart(opt.Title, "Total downloads per year", "Downloads", years,
			[]BarSeries{{Name: "Downloads", Data: totals}}),
		buildTrendChart("Version mix", points, years, VersionMix, opt.TrendKeys),
		buildTrendChart("OS mix", points, years, OSMix, opt.TrendKeys),
	)

	if chart, ok := buildMonthlyChart(master, points); ok {
		page.AddCharts(chart)
	}

	if chart, ok := buildCountryChart(points, opt.TopCountries); ok {
		page.AddCharts(chart)
	}

	return page
}

func buildMonthlyChart(master stats.MasterTable, points []YearPoint) (components.Charter, bool) {
	if len(points) == 0 {
		return nil, false
	}

	latest := points[len(points)-1]
	monthly := MonthlySeries(master[latest.Year])

	labels := make([]string, len(monthly))
	counts := make([]int64, len(monthly))

	for i, p := range monthly {
		labels[i] = p.Month
		counts[i] = p.Stats.Downloads
	}

	subtitle := fmt.Sprintf("Downloads per month, %s", latest.Year)
	chart := buildBarChart("Monthly downloads", subtitle, "Downloads", labels,
		[]BarSeries{{Name: "Downloads", Data: counts}})

	return chart, true
}

func buildTrendChart(title string, points []YearPoint, years []string, pick CountPicker, trendKeys int) components.Charter {
	keys := TopKeys(points, pick, trendKeys)
	trend := ShareTrend(points, pick, keys)

	series := make([]LineSeries, 0, len(keys))
	for _, key := range keys {
		series = append(series, LineSeries{Name: key, Data: trend[key]})
	}

	return buildLineChart(title, "Share of yearly downloads", "Percent", years, series)
}

func buildCountryChart(points []YearPoint, topN int) (components.Charter, bool) {
	if len(points) == 0 {
		return nil, false
	}

	latest := points[len(points)-1]
	ranked := TopCountries(latest.Stats, topN)

	if len(ranked) == 0 {
		return nil, false
	}

	labels := make([]string, len(ranked))
	counts := make([]int64, len(ranked))

	for i, c := range ranked {
		labels[i] = c.Name
		counts[i] = c.Downloads
	}

	subtitle := fmt.Sprintf("Top countries, %s", latest.Year)
	chart := buildBarChart("Country ranking", subtitle, "Downloads", labels,
		[]BarSeries{{Name: "Downloads", Data: counts}})

	return chart, true
}

// WritePage renders the page to the file at path.
func WritePage(page *components.Page, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePerm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}

	renderErr := renderPage(page, f)

	closeErr := f.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, closeErr)
	}

	return nil
}

func renderPage(page *components.Page, w io.Writer) error {
	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}

	return nil
}
