package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/testspark/testspark/internal/notify"
	"github.com/testspark/testspark/internal/recorder"
	"github.com/testspark/testspark/internal/tui"
)

// UICmd launches the interactive recorder
type UICmd struct {
	Name     string `short:"n" default:"${config_name}" help:"Prefill the recording name"`
	URL      string `short:"u" default:"${config_url}" help:"Prefill the URL to record"`
	Interval string `short:"i" default:"${config_interval}" help:"Pause between scripted steps"`
}

// Run executes the UI command
func (c *UICmd) Run(globals *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return outputErrorCommon(globals, "NOT_TTY", "ui needs an interactive terminal", "use 'testspark record' for scripted output")
	}

	interval, err := parseInterval(c.Interval)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_INTERVAL", err.Error(), "use a positive duration such as 1500ms")
	}

	ctx, cancel := signalContext()
	defer cancel()

	toasts := tui.NewToasts()
	rec := recorder.New(recorder.Options{
		Interval: interval,
		AutoStop: globals.Config.Recorder.AutoStop,
		Notifier: notify.Multi(toasts, notify.Logger(globals.Logger())),
		Logger:   globals.Logger(),
	})
	defer rec.Close()

	// Prefill never fails on an idle recorder
	_ = rec.SetName(c.Name)
	_ = rec.SetURL(c.URL)

	globals.Debug("starting TUI")
	p := tea.NewProgram(tui.New(rec, toasts), tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return outputErrorCommon(globals, "TUI_FAILED", fmt.Sprintf("TUI error: %s", err))
	}

	return nil
}
