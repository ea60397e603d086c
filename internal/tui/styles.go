package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/testspark/testspark/internal/domain"
)

// TestSpark palette
var (
	ColorBgPrimary   = lipgloss.Color("#0F1225")
	ColorBgSecondary = lipgloss.Color("#161B3A")

	ColorFgPrimary   = lipgloss.Color("#E2E8F0")
	ColorFgSecondary = lipgloss.Color("#94A3B8")

	ColorPrimary   = lipgloss.Color("#8B5CF6")
	ColorSecondary = lipgloss.Color("#EC4899")
	ColorAccent    = lipgloss.Color("#22A29F")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorError     = lipgloss.Color("#EF4444")

	ColorBorder = lipgloss.Color("#374151")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitleAltStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Background(ColorBorder).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	StartButtonStyle = lipgloss.NewStyle().
				Foreground(ColorBgPrimary).
				Background(ColorPrimary).
				Bold(true).
				Padding(0, 2)

	StopButtonStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Background(ColorError).
			Bold(true).
			Padding(0, 2)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TargetStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	FlowNodeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FlowEntryNodeStyle = FlowNodeStyle.
				BorderForeground(ColorAccent)

	FlowEdgeStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

// glyphColor picks the accent for a step type icon
func glyphColor(t domain.StepType) lipgloss.Color {
	switch t {
	case domain.StepClick:
		return ColorPrimary
	case domain.StepInput:
		return ColorSecondary
	case domain.StepAssertion:
		return ColorWarning
	case domain.StepNavigation:
		return ColorAccent
	default:
		return ColorFgSecondary
	}
}

// severityColor picks the toast accent for a notice
func severityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeveritySuccess:
		return ColorSuccess
	case domain.SeverityError:
		return ColorError
	default:
		return ColorAccent
	}
}
