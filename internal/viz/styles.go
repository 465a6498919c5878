package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	groupStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).PaddingLeft(1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// RenderEnsembles formats the allocated groups, one line per ensemble with
// its member indices and their final states.
func RenderEnsembles(ensembles [][]int, states []float64) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d ensembles", len(ensembles))))
	b.WriteString("\n")

	for g, group := range ensembles {
		var line strings.Builder
		line.WriteString(labelStyle.Render(fmt.Sprintf("ensemble %d", g)))
		for _, idx := range group {
			cell := fmt.Sprintf(" %d(%.3f)", idx, states[idx])
			if states[idx] >= 0 {
				line.WriteString(positiveStyle.Render(cell))
			} else {
				line.WriteString(negativeStyle.Render(cell))
			}
		}
		b.WriteString(groupStyle.Render(line.String()))
		b.WriteString("\n")
	}

	return b.String()
}

// renderOutputs draws the latched output vector as a row of cells.
func renderOutputs(outputs []float64) string {
	var b strings.Builder
	for _, o := range outputs {
		if o > 0 {
			b.WriteString(positiveStyle.Render("█"))
		} else {
			b.WriteString(negativeStyle.Render("█"))
		}
	}
	return b.String()
}
