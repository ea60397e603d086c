package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/filter"
	"github.com/testspark/testspark/internal/notify"
	"github.com/testspark/testspark/internal/output"
	"github.com/testspark/testspark/internal/recorder"
	"github.com/testspark/testspark/internal/testgen"
)

// RecordCmd runs the simulated recorder without the interactive UI
type RecordCmd struct {
	Name      string   `short:"n" default:"${config_name}" help:"Recording name"`
	URL       string   `short:"u" default:"${config_url}" help:"URL to record"`
	Interval  string   `short:"i" default:"${config_interval}" help:"Pause between scripted steps (e.g., 1500ms, 2s)"`
	StopAfter int      `help:"Stop after N steps (0 records the whole script)"`
	Instant   bool     `help:"Emit the script without waiting between steps"`
	Where     []string `short:"w" help:"Only output steps matching field<op>value (repeatable; fields: id,type,target,value,expected,description)"`
	Delete    []int    `help:"Delete step IDs once recording stops (repeatable)"`
	Generate  bool     `short:"g" help:"Derive a Playwright test from the recording"`
	Save      bool     `help:"Save the recording when done"`
}

// Run executes the record command
func (c *RecordCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, c.StopAfter, len(recorder.LoginScript(c.URL))); err != nil {
		return err
	}

	interval, err := parseInterval(c.Interval)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_INTERVAL", err.Error(), "use a positive duration such as 1500ms")
	}

	where, err := filter.NewWhereFilter(c.Where)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WHERE", err.Error(), "example: --where type=input")
	}

	ctx, cancel := signalContext()
	defer cancel()

	var ndjson *output.NDJSONWriter
	var text *output.TextWriter
	var sink notify.Sink = notify.Discard
	if globals.Format == "ndjson" {
		ndjson = output.NewNDJSONWriter(globals.Stdout)
		if !globals.Quiet {
			sink = ndjson
		}
	} else {
		text = output.NewTextWriter(globals.Stdout)
		sink = output.NewTextWriter(globals.Stderr)
	}

	generated := &bytes.Buffer{}
	clk, mock := recordingClock(c.Instant)
	log := globals.logger()
	rec := recorder.New(recorder.Options{
		Interval:  interval,
		AutoStop:  globals.Config.Recorder.AutoStop,
		Clock:     clk,
		Notifier:  notify.Multi(sink, notify.Logger(log.Zap())),
		Logger:    log.Zap(),
		Generator: &testgen.Playwright{W: generated},
	})
	defer rec.Close()
	log = log.withSession(func() string { return rec.Snapshot().ID })

	if err := rec.SetName(c.Name); err != nil {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}
	if err := rec.SetURL(c.URL); err != nil {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}
	if err := rec.Start(); err != nil {
		var ve *recorder.ValidationError
		if errors.As(err, &ve) {
			return outputErrorCommon(globals, "VALIDATION", ve.Message, "pass --name and --url")
		}
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}
	log.Debug("recording %q at %s every %s", c.Name, c.URL, interval)

	sessionID := rec.Snapshot().ID
	if ndjson != nil {
		if err := ndjson.WriteSession(rec.Snapshot()); err != nil {
			return err
		}
	}
	_, err = drive(ctx, rec, mock, interval, c.StopAfter, func(step domain.Step) error {
		log.Debug("step %d: %s", step.ID, step.Description)
		if ndjson == nil || !where.Match(step) {
			return nil
		}
		return ndjson.WriteStep(sessionID, step)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}

	if rec.Snapshot().IsRecording() {
		if err := rec.Stop(); err != nil {
			return outputErrorCommon(globals, "RECORDER", err.Error())
		}
	}

	// Overshoot past --stop-after is trimmed like a manual delete
	if c.StopAfter > 0 {
		for _, s := range rec.Snapshot().Steps[min(c.StopAfter, len(rec.Snapshot().Steps)):] {
			_, _ = rec.DeleteStep(s.ID)
		}
	}
	for _, id := range c.Delete {
		removed, err := rec.DeleteStep(id)
		if err != nil {
			return outputErrorCommon(globals, "RECORDER", err.Error())
		}
		if !removed {
			log.Debug("no step with id %d", id)
		}
	}

	final := rec.Snapshot()
	if ndjson != nil {
		if err := ndjson.WriteSession(final); err != nil {
			return err
		}
	} else if err := text.WriteSteps(where.Apply(final.Steps)); err != nil {
		return err
	}

	if c.Generate {
		if err := rec.GenerateDerivedTest(ctx); err != nil {
			return outputErrorCommon(globals, "GENERATE_FAILED", err.Error())
		}
		if ndjson != nil {
			if err := ndjson.WriteGeneratedTest(sessionID, "playwright", generated.String()); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(globals.Stdout)
			fmt.Fprint(globals.Stdout, generated.String())
		}
	}

	if c.Save {
		if err := rec.Save(); err != nil {
			var ve *recorder.ValidationError
			if errors.As(err, &ve) {
				return outputErrorCommon(globals, "VALIDATION", ve.Message)
			}
			return outputErrorCommon(globals, "RECORDER", err.Error())
		}
	}

	return nil
}
