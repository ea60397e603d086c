package cli

import (
	"encoding/json"
	"fmt"

	"github.com/testspark/testspark/internal/config"
)

// ConfigCmd groups configuration subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"1" help:"Show the effective configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show which config file is loaded"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample config file"`
}

// ConfigShowCmd prints the effective configuration
type ConfigShowCmd struct{}

// ConfigOutput is the NDJSON form of the effective configuration
type ConfigOutput struct {
	Type          string                `json:"type"` // "config"
	SchemaVersion int                   `json:"schemaVersion"`
	Format        string                `json:"format"`
	Quiet         bool                  `json:"quiet"`
	Verbose       bool                  `json:"verbose"`
	Recorder      config.RecorderConfig `json:"recorder"`
	Defaults      config.DefaultsConfig `json:"defaults"`
	File          string                `json:"file,omitempty"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	file := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(&ConfigOutput{
			Type:          "config",
			SchemaVersion: 1,
			Format:        cfg.Format,
			Quiet:         cfg.Quiet,
			Verbose:       cfg.Verbose,
			Recorder:      cfg.Recorder,
			Defaults:      cfg.Defaults,
			File:          file,
		})
	}

	w := globals.Stdout
	fmt.Fprintln(w, "Current Configuration:")
	if file != "" {
		fmt.Fprintf(w, "  file:    %s\n", file)
	}
	fmt.Fprintf(w, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(w, "  quiet:   %t\n", cfg.Quiet)
	fmt.Fprintf(w, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recorder:")
	fmt.Fprintf(w, "  interval:  %s\n", cfg.Recorder.Interval)
	fmt.Fprintf(w, "  auto_stop: %t\n", cfg.Recorder.AutoStop)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Defaults:")
	fmt.Fprintf(w, "  name: %s\n", cfg.Defaults.Name)
	fmt.Fprintf(w, "  url:  %s\n", cfg.Defaults.URL)
	return nil
}

// ConfigPathCmd prints the config file in use
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	file := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": 1,
			"path":          file,
		})
	}

	if file == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "Run 'testspark config generate > .testspark.yaml' to create one")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", file)
	return nil
}

// ConfigGenerateCmd prints a sample configuration
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sample, err := config.Sample()
	if err != nil {
		return outputErrorCommon(globals, "CONFIG", err.Error())
	}
	_, err = globals.Stdout.Write(sample)
	return err
}
