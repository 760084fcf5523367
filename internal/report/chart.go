package report

import (
	"errors"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Skufu/CareNote/internal/risk"
)

var ErrNothingDetected = errors.New("no high-risk conditions detected in this note")

type chartLabels struct {
	Title, YAxis, Series string
}

var chartText = map[Language]chartLabels{
	English: {"Detected Conditions & Risk Levels", "Risk Score", "risk score"},
	Korean:  {"감지된 상태 & 위험 수준", "위험 점수", "위험 점수"},
}

// RenderChart writes a standalone HTML bar chart of the report, one bar per
// condition in report order.
func RenderChart(w io.Writer, report risk.Report, lang Language) error {
	if report.Empty() {
		return ErrNothingDetected
	}
	labels, ok := chartText[lang]
	if !ok {
		labels = chartText[English]
	}

	names := make([]string, 0, len(report))
	data := make([]opts.BarData, 0, len(report))
	for _, e := range report {
		names = append(names, e.Condition)
		data = append(data, opts.BarData{
			Name:      e.Condition,
			Value:     e.Score,
			ItemStyle: &opts.ItemStyle{Color: e.Color()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: labels.Title}),
		charts.WithTitleOpts(opts.Title{Title: labels.Title}),
		charts.WithYAxisOpts(opts.YAxis{Name: labels.YAxis, Min: 0}),
	)
	bar.SetXAxis(names).AddSeries(labels.Series, data)

	return bar.Render(w)
}
