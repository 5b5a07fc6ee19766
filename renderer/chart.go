package renderer

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// CoverageChart records coverage and mean intensity over ticks and renders
// them as a PNG line chart.
type CoverageChart struct {
	ticks    []float64
	coverage []float64
	mean     []float64
}

// NewCoverageChart creates an empty chart.
func NewCoverageChart() *CoverageChart {
	return &CoverageChart{}
}

// Record adds a sample. coverage and mean are fractions in [0,1].
func (c *CoverageChart) Record(tick int, coverage, mean float64) {
	c.ticks = append(c.ticks, float64(tick))
	c.coverage = append(c.coverage, coverage*100)
	c.mean = append(c.mean, mean*100)
}

// Len returns the number of samples.
func (c *CoverageChart) Len() int { return len(c.ticks) }

// WritePNG renders the chart to path.
func (c *CoverageChart) WritePNG(path string) error {
	if len(c.ticks) < 2 {
		return errors.New("chart needs at least two samples")
	}

	graph := chart.Chart{
		Width:  800,
		Height: 320,
		XAxis: chart.XAxis{
			Name: "tick",
			Style: chart.Style{
				FontSize: 10.0,
			},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name: "%",
			Style: chart.Style{
				FontSize: 10.0,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "coverage",
				XValues: c.ticks,
				YValues: c.coverage,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 183, G: 65, B: 14, A: 255},
					StrokeWidth: 3.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "mean intensity",
				XValues: c.ticks,
				YValues: c.mean,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 90, G: 90, B: 96, A: 255},
					StrokeWidth: 2.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}
