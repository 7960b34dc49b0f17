package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/FranksOps/leadscout/internal/analyzer"
	"github.com/FranksOps/leadscout/internal/metrics"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 1000
	chartHeight = 600
	skyBlue     = "87CEEB"
	xAxisName   = "Skills"
	yAxisName   = "Number of Jobs Found"
)

// ChartResult describes a rendered keyword chart.
type ChartResult struct {
	Path     string
	HTMLPath string
	Counts   []analyzer.KeywordCount
	// Skipped is set when the collection was empty and nothing was written.
	Skipped bool
}

func chartTitle(name string) string {
	return "Job Market Analysis for " + name
}

// Chart counts how many lead titles mention each configured keyword and
// renders the counts as a bar chart to <name>_chart.png, plus
// <name>_chart.html when ChartHTML is set. The full collection is counted,
// duplicates included. An empty collection is a no-op.
func (r *Reporter) Chart() (ChartResult, error) {
	leads := r.src.Records()
	if len(leads) == 0 {
		r.logger.Info("no leads to chart")
		return ChartResult{Skipped: true}, nil
	}

	titles := make([]string, len(leads))
	for i, l := range leads {
		titles[i] = l.Title
	}
	counts := analyzer.CountKeywords(titles, r.cfg.Keywords)

	if err := r.ensureDir(); err != nil {
		return ChartResult{}, err
	}
	res := ChartResult{Path: r.path("_chart.png"), Counts: counts}
	if err := r.renderPNG(res.Path, counts); err != nil {
		return ChartResult{}, err
	}
	metrics.ReportFiles.WithLabelValues("chart").Inc()

	if r.cfg.ChartHTML {
		res.HTMLPath = r.path("_chart.html")
		if err := r.renderHTML(res.HTMLPath, counts); err != nil {
			return ChartResult{}, err
		}
		metrics.ReportFiles.WithLabelValues("chart_html").Inc()
	}

	r.logger.Info("chart generated", "path", res.Path, "html", res.HTMLPath)
	return res, nil
}

func (r *Reporter) renderPNG(path string, counts []analyzer.KeywordCount) error {
	barStyle := chart.Style{
		FillColor:   drawing.ColorFromHex(skyBlue),
		StrokeColor: drawing.ColorFromHex(skyBlue),
	}

	maxCount := 1
	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Keyword, Value: float64(c.Count), Style: barStyle})
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	// Integer ticks; they also pin the range so an all-zero chart still renders.
	step := (maxCount + 9) / 10
	var ticks []chart.Tick
	for i := 0; ; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
		if i >= maxCount {
			break
		}
	}

	graph := chart.BarChart{
		Title:    chartTitle(r.src.Name()),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		YAxis: chart.YAxis{
			Name:  yAxisName,
			Ticks: ticks,
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}

func (r *Reporter) renderHTML(path string, counts []analyzer.KeywordCount) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chartTitle(r.src.Name()),
			Width:     fmt.Sprintf("%dpx", chartWidth),
			Height:    fmt.Sprintf("%dpx", chartHeight),
		}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle(r.src.Name())}),
		charts.WithXAxisOpts(opts.XAxis{Name: xAxisName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisName}),
	)

	labels := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Keyword)
		data = append(data, opts.BarData{Value: c.Count, ItemStyle: &opts.ItemStyle{Color: "#" + skyBlue}})
	}
	bar.SetXAxis(labels).AddSeries("Jobs", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart html: %w", err)
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render chart html: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart html: %w", err)
	}
	return nil
}
