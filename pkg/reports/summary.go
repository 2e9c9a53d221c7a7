package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Summary limits
const (
	SummaryConnectors  = 10
	SummaryCommunities = 5
)

type summaryStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	target  lipgloss.Style
	box     lipgloss.Style
}

func newSummaryStyles(r *lipgloss.Renderer) summaryStyles {
	return summaryStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")),
		heading: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1),
		label: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		target: r.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true),
		box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1),
	}
}

// RenderSummary prints the run summary: headline metrics, the top
// connectors, the largest communities and, when matching ran, the number
// of target nodes. Colors are only emitted when w is a terminal.
func RenderSummary(w io.Writer, r *Report, limit int) error {
	if limit <= 0 {
		limit = SummaryConnectors
	}
	st := newSummaryStyles(lipgloss.NewRenderer(w))

	var stats strings.Builder
	stat := func(label, value string) {
		fmt.Fprintf(&stats, "%s %s\n", st.label.Render(label+":"), value)
	}
	stat("Nodes", fmt.Sprint(r.Metrics.NumNodes))
	stat("Edges", fmt.Sprint(r.Metrics.NumEdges))
	stat("Average degree", fmt.Sprintf("%.2f", r.Metrics.AvgDegree))
	stat("Density", fmt.Sprintf("%.4f", r.Metrics.Density))
	stat("Average clustering", fmt.Sprintf("%.4f", r.AvgClustering))
	if r.Communities != nil {
		stat("Communities", fmt.Sprint(len(r.Communities.Communities)))
		stat("Modularity", fmt.Sprintf("%.4f", r.Communities.Modularity))
	}
	if r.HasTargets() || r.TargetNodes > 0 {
		stat("Target nodes", fmt.Sprint(r.TargetNodes))
	}

	var out strings.Builder
	out.WriteString(st.title.Render("Network summary"))
	out.WriteString("\n")
	out.WriteString(st.box.Render(strings.TrimRight(stats.String(), "\n")))
	out.WriteString("\n")

	out.WriteString(st.heading.Render(fmt.Sprintf("Top %d connectors", limit)))
	out.WriteString("\n")
	targetOf := make(map[string]bool, len(r.TargetConnectors))
	for _, tc := range r.TargetConnectors {
		targetOf[tc.Name] = tc.MatchesTarget
	}
	for i, c := range r.TopConnectors {
		if i >= limit {
			break
		}
		line := fmt.Sprintf("%2d. %s (%d)", i+1, c.Name, c.Degree)
		if targetOf[c.Name] {
			line += " " + st.target.Render("[target]")
		}
		out.WriteString(line + "\n")
	}

	if r.Communities != nil && len(r.Communities.Communities) > 0 {
		out.WriteString(st.heading.Render("Largest communities"))
		out.WriteString("\n")
		for i, c := range r.Communities.Communities {
			if i >= SummaryCommunities {
				break
			}
			fmt.Fprintf(&out, "Community %d: %d members, density %.2f\n", c.ID, c.Size, c.Density)
		}
	}

	_, err := io.WriteString(w, out.String())
	return err
}
