package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/chagge/hysnet/internal/analysis"
	"github.com/chagge/hysnet/internal/hysteresis"
)

const maxPlots = 6

// PlotDynamic renders each oscillator's state trajectory as a terminal
// graph. Networks larger than maxPlots are truncated.
func PlotDynamic(w io.Writer, dyn *hysteresis.Dynamic) {
	if dyn.Len() == 0 || len(dyn.States[0]) == 0 {
		fmt.Fprintln(w, "no data to plot")
		return
	}

	size := len(dyn.States[0])
	plots := size
	if plots > maxPlots {
		plots = maxPlots
	}

	for index := 0; index < plots; index++ {
		series := analysis.Column(dyn.States, index)
		flips := analysis.SignChanges(analysis.Column(dyn.Outputs, index))

		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("oscillator %d state (%d output flips)", index, flips)),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}

	if size > plots {
		fmt.Fprintf(w, "(%d more oscillators not shown)\n", size-plots)
	}
}
