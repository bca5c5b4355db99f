package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/wwt_capability_go/internal/analysis"
)

var (
	resultColor = color.RGBA{R: 31, G: 119, B: 180, A: 255} // matplotlib tab:blue
	uslColor    = color.RGBA{R: 128, B: 128, A: 255}        // purple
	uclColor    = color.RGBA{R: 255, A: 255}                // red
	meanColor   = color.RGBA{G: 160, A: 255}                // green
)

// CreateControlChart renders the control chart for one parameter as a PNG:
// the measurement series with markers, plus the specification limit (USL),
// upper control limit (UCL) and mean reference lines.
func CreateControlChart(series analysis.ChartSeries) ([]byte, error) {
	if len(series.Values) == 0 {
		return nil, fmt.Errorf("no samples to plot for %s", series.Parameter)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Control Chart: %s", series.Parameter)
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Concentration (mg/L)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(series.Values))
	for i, v := range series.Values {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("creating result line for %s: %w", series.Parameter, err)
	}
	line.Color = resultColor
	line.LineStyle.Width = vg.Points(1.5)
	points.Color = resultColor
	p.Add(line, points)
	p.Legend.Add("Result", line, points)

	xMax := float64(len(series.Values) + 1)

	usl := refLine(series.USL, xMax, uslColor, nil, vg.Points(2))
	p.Add(usl)
	p.Legend.Add(fmt.Sprintf("DOE Limit (%g)", series.USL), usl)

	ucl := refLine(series.UCL, xMax, uclColor, []vg.Length{vg.Points(5), vg.Points(5)}, vg.Points(1))
	p.Add(ucl)
	p.Legend.Add(fmt.Sprintf("UCL (%.2f)", series.UCL), ucl)

	mean := refLine(series.Mean, xMax, meanColor, nil, vg.Points(1))
	p.Add(mean)
	p.Legend.Add(fmt.Sprintf("Avg (%.2f)", series.Mean), mean)

	p.Legend.Top = true
	p.Legend.XOffs = -vg.Points(10)
	p.X.Min = 0
	p.X.Max = xMax

	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("creating plot writer for %s: %w", series.Parameter, err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("rendering plot for %s: %w", series.Parameter, err)
	}
	return buf.Bytes(), nil
}

// refLine builds a horizontal reference line spanning the chart.
func refLine(y, xMax float64, c color.Color, dashes []vg.Length, width vg.Length) *plotter.Line {
	line, _ := plotter.NewLine(plotter.XYs{{X: 0, Y: y}, {X: xMax, Y: y}})
	line.Color = c
	line.LineStyle.Width = width
	if dashes != nil {
		line.LineStyle.Dashes = dashes
	}
	return line
}

// CreateAllCharts renders a control chart for every series in the summary,
// keyed by parameter name. A failed chart is reported but does not stop the
// remaining charts.
func CreateAllCharts(summary *analysis.Summary) (map[string][]byte, []error) {
	charts := make(map[string][]byte, len(summary.Series))
	var errs []error
	for _, s := range summary.Series {
		img, err := CreateControlChart(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		charts[s.Parameter] = img
	}
	return charts, errs
}
