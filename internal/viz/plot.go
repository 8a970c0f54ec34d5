package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/ising"
)

// PlotSeries renders data as an ASCII line chart. Series longer than width
// are downsampled by striding so the chart keeps its shape.
func PlotSeries(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return ""
	}
	if width > 0 && len(data) > width {
		stride := (len(data) + width - 1) / width
		sampled := make([]float64, 0, width)
		for i := 0; i < len(data); i += stride {
			sampled = append(sampled, data[i])
		}
		data = sampled
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotHistory renders the energy and magnetisation traces of a history.
func PlotHistory(history []ising.Snapshot, width, height int) (energy, magnetisation string) {
	hs := make([]float64, len(history))
	ms := make([]float64, len(history))
	for i, s := range history {
		hs[i] = s.H
		ms[i] = s.M
	}
	return PlotSeries(hs, width, height, "H (hamiltonian)"),
		PlotSeries(ms, width, height, "M (magnetisation)")
}
