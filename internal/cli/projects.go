package cli

import (
	"encoding/json"
	"fmt"

	"github.com/testspark/testspark/internal/dashboard"
	"github.com/testspark/testspark/internal/notify"
	"github.com/testspark/testspark/internal/output"
)

// ProjectsCmd lists the sample dashboard projects
type ProjectsCmd struct {
	Delete []int `short:"d" help:"Remove project IDs before listing (repeatable)"`
}

// ProjectsSummaryOutput is the NDJSON line that closes a project listing
type ProjectsSummaryOutput struct {
	Type          string `json:"type"` // "projects_summary"
	SchemaVersion int    `json:"schemaVersion"`
	dashboard.Stats
}

// Run executes the projects command
func (c *ProjectsCmd) Run(globals *Globals) error {
	var sink notify.Sink = notify.Discard
	var ndjson *output.NDJSONWriter
	if globals.Format == "ndjson" {
		ndjson = output.NewNDJSONWriter(globals.Stdout)
		if !globals.Quiet {
			sink = ndjson
		}
	} else {
		sink = output.NewTextWriter(globals.Stderr)
	}

	store := dashboard.NewStore(sink)
	for _, id := range c.Delete {
		if !store.Delete(id) {
			globals.Debug("no project with id %d", id)
		}
	}

	stats := store.Summary()
	if ndjson != nil {
		for _, p := range store.List() {
			if err := ndjson.WriteProject(p); err != nil {
				return err
			}
		}
		return json.NewEncoder(globals.Stdout).Encode(&ProjectsSummaryOutput{
			Type:          "projects_summary",
			SchemaVersion: output.SchemaVersion,
			Stats:         stats,
		})
	}

	if err := output.NewTextWriter(globals.Stdout).WriteProjects(store.List()); err != nil {
		return err
	}
	fmt.Fprintf(globals.Stdout, "\n%d projects, %d tests, %d%% average pass rate, %d with issues\n",
		stats.Projects, stats.Tests, stats.AvgPassRate, stats.WithIssues)
	return nil
}
