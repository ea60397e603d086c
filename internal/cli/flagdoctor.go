package cli

import "fmt"

// validateFlags centralizes common flag combinations to keep behavior consistent.
func validateFlags(globals *Globals, stopAfter, scripted int) error {
	// quiet + text would print nothing useful
	if globals != nil && globals.Format == "text" && globals.Quiet {
		return outputErrorCommon(globals, "INVALID_FLAGS", "--quiet is only supported with ndjson output", "switch to --format ndjson or drop --quiet")
	}
	if stopAfter < 0 || stopAfter > scripted {
		return outputErrorCommon(globals, "INVALID_FLAGS",
			fmt.Sprintf("--stop-after must be between 0 and %d", scripted),
			"use 0 to record the whole script")
	}
	return nil
}
