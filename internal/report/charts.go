package report

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart theming, shared by every chart on the page.
const (
	chartWidth      = "1100px"
	chartHeight     = "500px"
	chartBackground = "#0f1117"
	chartText       = "#e6e6e6"
	chartTextMuted  = "#9aa0a6"
	chartAxis       = "#3c4043"
	chartGrid       = "#26282e"

	dataZoomEndPercent = 100
)

// BarSeries is one named series of a bar chart.
type BarSeries struct {
	Name string
	Data []int64
}

// LineSeries is one named series of a line chart.
type LineSeries struct {
	Name string
	Data []float64
}

func globalOptions(title, subtitle, yAxisLabel string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: chartBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: chartText},
			SubtitleStyle: &opts.TextStyle{Color: chartTextMuted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Type:      "scroll",
			Top:       "8%",
			Left:      "center",
			TextStyle: &opts.TextStyle{Color: chartTextMuted},
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEndPercent},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: chartTextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: chartAxis}},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      yAxisLabel,
			AxisLabel: &opts.AxisLabel{Color: chartTextMuted},
			AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: chartAxis}},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: chartGrid},
			},
		}),
	}
}

// buildBarChart constructs a themed bar chart from labeled series.
func buildBarChart(title, subtitle, yAxisLabel string, labels []string, series []BarSeries) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(title, subtitle, yAxisLabel)...)
	bar.SetXAxis(labels)

	for _, s := range series {
		data := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			data[i] = opts.BarData{Value: v}
		}

		bar.AddSeries(s.Name, data)
	}

	return bar
}

// buildLineChart constructs a themed line chart from labeled series.
func buildLineChart(title, subtitle, yAxisLabel string, labels []string, series []LineSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(title, subtitle, yAxisLabel)...)
	line.SetXAxis(labels)

	for _, s := range series {
		data := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			data[i] = opts.LineData{Value: v}
		}

		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}

	return line
}
