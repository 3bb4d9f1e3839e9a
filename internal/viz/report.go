package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/experiment"
	"github.com/san-kum/catasim/internal/optim"
)

type row struct {
	label, value string
}

func renderRows(title string, rows []row) string {
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	var b strings.Builder
	b.WriteString(Title.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-*s", width, r.label)))
		b.WriteString("  ")
		b.WriteString(MetricValue.Render(r.value))
	}
	return Panel.Render(b.String())
}

// RenderReport formats a single launch.
func RenderReport(r catapult.Report) string {
	return renderRows("single launch", []row{
		{"projectile", r.Projectile},
		{"mass", fmt.Sprintf("%.4f kg", r.MassKg)},
		{"pull", fmt.Sprintf("%.4f m", r.PullM)},
		{"k_total", fmt.Sprintf("%.4f N/m", r.KTotal)},
		{"stored energy", fmt.Sprintf("%.4f J", r.StoredJ)},
		{"useful energy", fmt.Sprintf("%.4f J", r.UsefulJ)},
		{"velocity", fmt.Sprintf("%.4f m/s", r.VelocityMS)},
		{"angle", fmt.Sprintf("%.4f°", r.AngleDeg)},
		{"range", fmt.Sprintf("%.4f m", r.RangeM)},
		{"flight time", fmt.Sprintf("%.4f s", r.FlightTimeS)},
		{"apex height", fmt.Sprintf("%.4f m", r.ApexHeightM)},
	})
}

// RenderSummary formats repeated trials.
func RenderSummary(s *experiment.Summary) string {
	dists := make([]string, len(s.Ranges))
	for i, d := range s.Ranges {
		dists[i] = fmt.Sprintf("%.3f", d)
	}
	return renderRows(fmt.Sprintf("trial summary (%d repetitions)", s.N), []row{
		{"angle", fmt.Sprintf("%g°", s.AngleDeg)},
		{"distances (m)", "[" + strings.Join(dists, ", ") + "]"},
		{"mean distance (m)", fmt.Sprintf("%.3f", s.Mean)},
	})
}

// RangeCurve plots range against angle for a sweep.
func RangeCurve(points []optim.SweepPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = p.RangeM
	}
	caption := fmt.Sprintf("range (m) vs angle %g°..%g°", points[0].AngleDeg, points[len(points)-1].AngleDeg)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// TrajectoryPlot plots height against sample index of a flight path.
func TrajectoryPlot(points []catapult.Point, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = p.Y
	}
	last := points[len(points)-1]
	caption := fmt.Sprintf("height (m) over %.3f m, %.3f s", last.X, last.T)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
