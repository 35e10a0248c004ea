// Package charts renders PNG charts of the analysis table with gonum/plot.
package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/report"
)

// Chart file names written by Render.
const (
	MedalsOverTime     = "medals_over_time.png"
	CorrelationHeatmap = "correlation_heatmap.png"
	MedalsVsGDP        = "medals_vs_gdp.png"
	MedalsHostVsNon    = "medals_host_vs_nonhost.png"
)

var (
	wide   = 16 * vg.Inch
	tall   = 9 * vg.Inch
	square = 10 * vg.Inch
)

// Render writes every chart into dir, creating it if needed, and returns the
// written paths.
func Render(dir string, rows model.AnalysisTable) ([]string, error) {
	if len(rows) == 0 {
		return nil, errors.NewInvalidInputError("RenderCharts", "no rows to chart")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError("RenderCharts", dir, err)
	}

	charts := []struct {
		name  string
		build func(model.AnalysisTable) (*plot.Plot, error)
		w, h  vg.Length
	}{
		{MedalsOverTime, medalsOverTime, wide, tall},
		{CorrelationHeatmap, correlationHeatmap, square, square},
		{MedalsVsGDP, medalsVsGDP, wide, tall},
		{MedalsHostVsNon, hostVsNonHost, square, square},
	}

	written := make([]string, 0, len(charts))
	for _, c := range charts {
		p, err := c.build(rows)
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", c.name, err)
		}
		path := filepath.Join(dir, c.name)
		if err := p.Save(c.w, c.h, path); err != nil {
			return written, errors.NewIOError("RenderCharts", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

// medalsOverTime draws one line per top country.
func medalsOverTime(rows model.AnalysisTable) (*plot.Plot, error) {
	p := newPlot("Medals over time, top countries", "Year", "Total medals")
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	top := report.TopCountries(rows, report.DefaultTop)
	countries := make([]string, len(top))
	for i, c := range top {
		countries[i] = c.Country
	}

	for i, tr := range report.Trajectories(rows, countries) {
		if len(tr.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(tr.Points))
		for j, pt := range tr.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = float64(pt.Medals)
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(tr.Country, line)
	}
	return p, nil
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ. NaN
// correlations are drawn as zero.
type correlationGrid struct {
	m *report.Matrix
}

func (g correlationGrid) Dims() (c, r int) {
	return len(g.m.Columns), len(g.m.Columns)
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

func (g correlationGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func correlationHeatmap(rows model.AnalysisTable) (*plot.Plot, error) {
	m, err := report.Correlation(rows, report.CorrelationColumns)
	if err != nil {
		return nil, err
	}

	p := newPlot("Correlation of indicators and medals", "", "")
	h := plotter.NewHeatMap(correlationGrid{m: m}, palette.Heat(21, 1))
	h.Min, h.Max = -1, 1
	p.Add(h)
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)

	labels := plotter.XYLabels{}
	for r := range m.Columns {
		for c := range m.Columns {
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", m.At(r, c)))
		}
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}

// medalsVsGDP scatters medals against GDP per capita on a log x axis. Rows
// with non-positive GDP cannot be placed on the axis and are skipped.
func medalsVsGDP(rows model.AnalysisTable) (*plot.Plot, error) {
	p := newPlot("Medals vs GDP per capita", "GDP per capita (log scale)", "Total medals")
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, 0, len(rows))
	for _, r := range rows {
		if r.GDPPerCapita <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: r.GDPPerCapita, Y: float64(r.TotalMedalCount)})
	}
	if len(xys) == 0 {
		return p, nil
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Color = plotutil.Color(0)
	p.Add(s)
	if p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = p.X.Min/2, p.X.Max*2
	}

	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	return p, nil
}

func hostVsNonHost(rows model.AnalysisTable) (*plot.Plot, error) {
	p := newPlot("Medals of host and non-host nations", "", "Total medals")

	groups := []struct {
		name    string
		hosting bool
	}{
		{"Non-host", false},
		{"Host", true},
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
		values := report.Values(rows, g.hosting)
		if len(values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(values))
		if err != nil {
			return nil, err
		}
		b.FillColor = plotutil.Color(i)
		p.Add(b)
	}
	p.NominalX(names...)
	return p, nil
}
