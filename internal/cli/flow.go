package cli

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/filter"
	"github.com/testspark/testspark/internal/flow"
	"github.com/testspark/testspark/internal/output"
	"github.com/testspark/testspark/internal/recorder"
)

// FlowCmd prints the flow projection of a complete scripted recording
type FlowCmd struct {
	URL   string   `short:"u" default:"${config_url}" help:"URL to record"`
	Name  string   `short:"n" default:"${config_name}" help:"Recording name"`
	Where []string `short:"w" help:"Project only steps matching field<op>value (repeatable)"`
}

// Run executes the flow command
func (c *FlowCmd) Run(globals *Globals) error {
	where, err := filter.NewWhereFilter(c.Where)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WHERE", err.Error(), "example: --where type=click")
	}

	name := c.Name
	if name == "" {
		name = "Flow preview"
	}

	ctx, cancel := signalContext()
	defer cancel()

	// The whole script is replayed on a mock clock
	mock := clock.NewMock()
	rec := recorder.New(recorder.Options{
		Interval: time.Second,
		Clock:    mock,
		Logger:   globals.Logger(),
	})
	defer rec.Close()

	if err := rec.SetName(name); err != nil {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}
	if err := rec.SetURL(c.URL); err != nil {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}
	if err := rec.Start(); err != nil {
		return outputErrorCommon(globals, "VALIDATION", fmt.Sprintf("cannot project flow: %s", err), "pass --url")
	}

	var steps []domain.Step
	if _, err := drive(ctx, rec, mock, time.Second, 0, func(s domain.Step) error {
		if where.Match(s) {
			steps = append(steps, s)
		}
		return nil
	}); err != nil {
		return outputErrorCommon(globals, "RECORDER", err.Error())
	}

	graph := flow.Project(steps)
	globals.Debug("projected %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteFlow(rec.Snapshot().ID, graph)
	}
	return output.NewTextWriter(globals.Stdout).WriteFlow(graph)
}
