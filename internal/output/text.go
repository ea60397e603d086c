package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/flow"
)

// glyphSymbols renders glyph keys in a terminal
var glyphSymbols = map[string]string{
	domain.GlyphArrowUpRight: "↗",
	domain.GlyphMousePointer: "➚",
	domain.GlyphKeyboard:     "⌨",
	domain.GlyphEye:          "◉",
}

// Symbol returns the terminal symbol for a glyph key, or a blank for unknown keys
func Symbol(glyph string) string {
	if s, ok := glyphSymbols[glyph]; ok {
		return s
	}
	return " "
}

// TextWriter writes human-readable output
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a text writer over w
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteNotice prints a notice with its severity
func (t *TextWriter) WriteNotice(n domain.Notice) error {
	_, err := fmt.Fprintf(t.w, "[%s] %s\n", n.Severity, n.Message)
	return err
}

// Notify lets the writer act as a notification sink
func (t *TextWriter) Notify(n domain.Notice) {
	_ = t.WriteNotice(n)
}

// WriteStep prints a single step as one line
func (t *TextWriter) WriteStep(step domain.Step) error {
	_, err := fmt.Fprintf(t.w, "%2d %s %-34s %s\n", step.ID, Symbol(step.Type.Glyph()), step.Description, stepDetail(step))
	return err
}

// WriteSteps prints the steps as a table
func (t *TextWriter) WriteSteps(steps []domain.Step) error {
	table := tablewriter.NewWriter(t.w)
	table.Header("#", "Type", "Description", "Target", "Value")
	for _, s := range steps {
		value := s.Value
		if value != "" {
			value = strconv.Quote(value)
		}
		if s.Expected != "" {
			value = "expect " + strconv.Quote(s.Expected)
		}
		if err := table.Append([]string{
			strconv.Itoa(s.ID),
			Symbol(s.Type.Glyph()) + " " + string(s.Type),
			s.Description,
			s.Target,
			value,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteProjects prints the dashboard projects as a table
func (t *TextWriter) WriteProjects(projects []domain.Project) error {
	table := tablewriter.NewWriter(t.w)
	table.Header("ID", "Project", "Tests", "Pass rate", "Last run", "Status")
	for _, p := range projects {
		if err := table.Append([]string{
			strconv.Itoa(p.ID),
			p.Name,
			strconv.Itoa(p.TestCount),
			fmt.Sprintf("%d%%", p.PassRate),
			p.LastRun,
			string(p.Status),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteFlow prints the graph as a vertical chain
func (t *TextWriter) WriteFlow(g flow.Graph) error {
	if len(g.Nodes) == 0 {
		_, err := fmt.Fprintln(t.w, "(no steps)")
		return err
	}
	var b strings.Builder
	for i, n := range g.Nodes {
		if i > 0 {
			b.WriteString("    │\n    ▼\n")
		}
		fmt.Fprintf(&b, "[%s] %s %s", n.ID, Symbol(n.Glyph), n.Label)
		if n.Target != "" {
			fmt.Fprintf(&b, "  (%s %s)", n.StepType, n.Target)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

func stepDetail(s domain.Step) string {
	parts := []string{string(s.Type)}
	if s.Target != "" {
		parts = append(parts, s.Target)
	}
	if s.Value != "" {
		parts = append(parts, strconv.Quote(s.Value))
	}
	if s.Expected != "" {
		parts = append(parts, "expect "+strconv.Quote(s.Expected))
	}
	return strings.Join(parts, " ")
}
