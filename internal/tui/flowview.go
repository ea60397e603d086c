package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/testspark/testspark/internal/flow"
	"github.com/testspark/testspark/internal/output"
)

// renderFlow draws the graph as boxed nodes stacked top to bottom, following
// the edge order rather than the node slice.
func renderFlow(g flow.Graph) string {
	if len(g.Nodes) == 0 {
		return ""
	}

	start := g.Nodes[0]
	for _, n := range g.Nodes {
		if n.Entry {
			start = n
			break
		}
	}

	var blocks []string
	seen := map[string]bool{}
	for n, ok := start, true; ok && !seen[n.ID]; n, ok = g.Successor(n.ID) {
		seen[n.ID] = true
		if len(blocks) > 0 {
			blocks = append(blocks, FlowEdgeStyle.Render("  │\n  ▼"))
		}
		blocks = append(blocks, renderNode(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderNode(n flow.Node) string {
	style := FlowNodeStyle
	if n.Entry {
		style = FlowEntryNodeStyle
	}
	icon := lipgloss.NewStyle().Foreground(glyphColor(n.StepType)).Render(output.Symbol(n.Glyph))

	var b strings.Builder
	b.WriteString(icon + " " + n.Label + "\n")
	b.WriteString(MutedStyle.Render(string(n.StepType)))
	if n.Target != "" {
		b.WriteString(" " + TargetStyle.Render(n.Target))
	}
	return style.Render(b.String())
}
