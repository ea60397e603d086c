// Package tui is the interactive terminal front-end of the recorder.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/flow"
	"github.com/testspark/testspark/internal/output"
	"github.com/testspark/testspark/internal/recorder"
)

type field int

const (
	fieldName field = iota
	fieldURL
)

// changedMsg is sent whenever the recorder reports a mutation
type changedMsg struct{}

func waitForChange(rec *recorder.Recorder) tea.Cmd {
	return func() tea.Msg {
		<-rec.Changes()
		return changedMsg{}
	}
}

// Model is the root Bubble Tea model
type Model struct {
	rec    *recorder.Recorder
	toasts *Toasts

	keys KeyMap
	help help.Model

	nameInput textinput.Model
	urlInput  textinput.Model
	focus     field

	session  domain.Session // Last snapshot
	cursor   int            // Selected step in the steps pane
	flowMode bool           // Steps pane shows the diagram instead of the list

	active    []toast
	nextToast int

	width  int
	height int
}

// New creates the root model. toasts must be the recorder's notification
// sink (or part of it) for notices to appear on screen.
func New(rec *recorder.Recorder, toasts *Toasts) Model {
	name := textinput.New()
	name.Placeholder = "e.g., Login Flow Test"
	name.CharLimit = 256
	name.Prompt = ""

	url := textinput.New()
	url.Placeholder = "https://your-application.com"
	url.CharLimit = 2048
	url.Prompt = ""

	m := Model{
		rec:       rec,
		toasts:    toasts,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		nameInput: name,
		urlInput:  url,
	}
	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForChange(m.rec)}
	if m.toasts != nil {
		cmds = append(cmds, waitForNotice(m.toasts))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.rec)

	case noticeMsg:
		cmd := m.pushToast(msg.notice)
		return m, tea.Batch(cmd, waitForNotice(m.toasts))

	case toastExpiredMsg:
		for i, t := range m.active {
			if t.id == msg.id {
				m.active = append(m.active[:i:i], m.active[i+1:]...)
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.SwitchTab) {
		next := domain.ViewSteps
		if m.session.ActiveView == domain.ViewSteps {
			next = domain.ViewRecorder
		}
		var cmd tea.Cmd
		if err := m.rec.SetView(next); err != nil {
			cmd = m.pushToast(domain.Info("No steps recorded yet"))
		}
		m.refresh()
		return m, cmd
	}

	// Starting over from the steps pane would discard the recording
	if key.Matches(msg, m.keys.Toggle) && (m.session.ActiveView == domain.ViewRecorder || m.session.IsRecording()) {
		cmd := m.toggleRecording()
		m.refresh()
		return m, cmd
	}

	if m.session.ActiveView == domain.ViewSteps {
		return m.handleStepsKey(msg)
	}
	return m.handleRecorderKey(msg)
}

func (m *Model) toggleRecording() tea.Cmd {
	var err error
	if m.session.IsRecording() {
		err = m.rec.Stop()
	} else {
		err = m.rec.Start()
	}
	// Validation failures already produced a notice
	if err != nil && !recorder.IsValidation(err) {
		return m.pushToast(domain.Error(describe(err)))
	}
	return nil
}

func (m Model) handleRecorderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.IsRecording() {
		return m, nil
	}

	if key.Matches(msg, m.keys.NextField) {
		if m.focus == fieldName {
			m.focus = fieldURL
		} else {
			m.focus = fieldName
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	var err error
	switch m.focus {
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		err = m.rec.SetName(m.nameInput.Value())
	case fieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
		err = m.rec.SetURL(m.urlInput.Value())
	}
	if err != nil {
		return m, tea.Batch(cmd, m.pushToast(domain.Error(describe(err))))
	}
	m.refresh()
	return m, cmd
}

func (m Model) handleStepsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.session.Steps)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Flow):
		m.flowMode = !m.flowMode
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Delete):
		if m.cursor >= len(m.session.Steps) {
			return m, nil
		}
		if _, err := m.rec.DeleteStep(m.session.Steps[m.cursor].ID); err != nil {
			return m, m.pushToast(domain.Error("Stop recording before editing steps"))
		}
	case key.Matches(msg, m.keys.Generate):
		// The recorder reports both outcomes as notices
		_ = m.rec.GenerateDerivedTest(context.Background())
	case key.Matches(msg, m.keys.Save):
		if err := m.rec.Save(); err != nil && !recorder.IsValidation(err) {
			return m, m.pushToast(domain.Error("Stop recording before saving"))
		}
		m.focus = fieldName
		m.flowMode = false
	}
	m.refresh()
	return m, nil
}

// refresh re-reads the recorder and keeps inputs and cursor consistent with it
func (m *Model) refresh() {
	m.session = m.rec.Snapshot()

	if m.nameInput.Value() != m.session.Name {
		m.nameInput.SetValue(m.session.Name)
	}
	if m.urlInput.Value() != m.session.URL {
		m.urlInput.SetValue(m.session.URL)
	}

	if m.session.IsRecording() || m.session.ActiveView != domain.ViewRecorder {
		m.nameInput.Blur()
		m.urlInput.Blur()
	} else if m.focus == fieldName {
		m.urlInput.Blur()
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
		m.urlInput.Focus()
	}

	if m.cursor >= len(m.session.Steps) {
		m.cursor = max(len(m.session.Steps)-1, 0)
	}
}

func (m *Model) pushToast(n domain.Notice) tea.Cmd {
	m.nextToast++
	m.active = append(m.active, toast{id: m.nextToast, notice: n})
	if len(m.active) > maxToasts {
		m.active = m.active[len(m.active)-maxToasts:]
	}
	return expireToast(m.nextToast)
}

func describe(err error) string {
	switch {
	case errors.Is(err, recorder.ErrSessionLocked):
		return "Recording in progress"
	case errors.Is(err, recorder.ErrInvalidTransition):
		return "That action is not available right now"
	default:
		return err.Error()
	}
}

// View implements tea.Model
func (m Model) View() string {
	sections := []string{m.headerView()}
	if m.session.ActiveView == domain.ViewSteps {
		sections = append(sections, m.stepsView())
	} else {
		sections = append(sections, m.recorderView())
	}
	if toasts := m.toastView(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := "Test Recorder"
	if m.session.ActiveView == domain.ViewSteps {
		title = "Recorded Steps"
	}
	brand := TitleStyle.Render("Test") + TitleAltStyle.Render("Spark")

	recorderTab, stepsTab := ActiveTabStyle, TabStyle
	if m.session.ActiveView == domain.ViewSteps {
		recorderTab, stepsTab = TabStyle, ActiveTabStyle
	}
	steps := "Steps"
	if n := len(m.session.Steps); n > 0 {
		steps = fmt.Sprintf("Steps (%d)", n)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		brand, "  ", TitleAltStyle.Render(title), "   ",
		recorderTab.Render("Recorder"), stepsTab.Render(steps))
}

func (m Model) recorderView() string {
	var form strings.Builder
	form.WriteString(LabelStyle.Render("Recording Name") + "\n")
	form.WriteString(m.nameInput.View() + "\n\n")
	form.WriteString(LabelStyle.Render("URL to Record") + "\n")
	form.WriteString(m.urlInput.View() + "\n\n")
	if m.session.IsRecording() {
		form.WriteString(StopButtonStyle.Render("■ Stop Recording"))
	} else {
		form.WriteString(StartButtonStyle.Render("▶ Start Recording"))
	}

	var status strings.Builder
	if m.session.IsRecording() {
		status.WriteString(RecordingDotStyle.Render("●") + MutedStyle.Render(" Recording in progress") + "\n\n")
		if n := len(m.session.Steps); n > 0 {
			status.WriteString(lipgloss.NewStyle().Foreground(ColorSuccess).Render(fmt.Sprintf("✓ %d steps recorded", n)) + "\n")
			last, _ := m.session.LastStep()
			status.WriteString(MutedStyle.Render("Latest: ") + ValueStyle.Render(last.Description) + "\n")
		} else {
			status.WriteString(MutedStyle.Render("Waiting for browser interactions...") + "\n")
		}
		status.WriteString("\n" + ValueStyle.Render("Recording "+m.session.URL))
	} else {
		status.WriteString(MutedStyle.Render(`Enter a URL and press enter to begin capturing test steps`))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(form.String()),
		PanelStyle.Width(44).Render(status.String()))
}

func (m Model) stepsView() string {
	header := TitleAltStyle.Render(m.session.Name) + "\n" + MutedStyle.Render(m.session.URL)
	if m.session.IsRecording() {
		header += "\n" + RecordingDotStyle.Render("●") + MutedStyle.Render(" still recording")
	}

	var body string
	switch {
	case len(m.session.Steps) == 0:
		body = MutedStyle.Render("No steps recorded")
	case m.flowMode:
		body = renderFlow(flow.Project(m.session.Steps))
	default:
		body = m.stepList()
	}

	return lipgloss.JoinVertical(lipgloss.Left, PanelStyle.Render(header), body)
}

func (m Model) stepList() string {
	lines := make([]string, 0, len(m.session.Steps))
	for i, s := range m.session.Steps {
		cursor := "  "
		if i == m.cursor {
			cursor = CursorStyle.Render("▸ ")
		}
		icon := lipgloss.NewStyle().Foreground(glyphColor(s.Type)).Render(output.Symbol(s.Type.Glyph()))
		detail := MutedStyle.Render(string(s.Type))
		if s.Target != "" {
			detail += " " + TargetStyle.Render(s.Target)
		}
		if s.Value != "" {
			detail += " " + ValueStyle.Render(fmt.Sprintf("%q", s.Value))
		}
		lines = append(lines, fmt.Sprintf("%s%s %s\n    %s", cursor, icon, s.Description, detail))
	}
	return strings.Join(lines, "\n")
}

func (m Model) toastView() string {
	if len(m.active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.active))
	for _, t := range m.active {
		lines = append(lines, ToastStyle.BorderForeground(severityColor(t.notice.Severity)).Render(t.notice.Message))
	}
	return strings.Join(lines, "\n")
}
