// Package cli implements the testspark command tree.
package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/testspark/testspark/internal/config"
	"go.uber.org/zap"
)

// Set at build time via -ldflags
var (
	Version = "dev"
	Commit  = "none"
)

// CLI is the root command
type CLI struct {
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format (ndjson or text)"`
	Quiet   bool   `short:"q" help:"Suppress notices; emit results only (ndjson)"`
	Verbose bool   `short:"v" help:"Debug logging to stderr as JSON"`

	Record   RecordCmd   `cmd:"" help:"Record a scripted session without the interactive UI"`
	UI       UICmd       `cmd:"" name:"ui" help:"Interactive recorder"`
	Flow     FlowCmd     `cmd:"" help:"Print the flow diagram of a scripted recording"`
	Projects ProjectsCmd `cmd:"" help:"List sample projects"`
	Config   ConfigCmd   `cmd:"" help:"Show or generate configuration"`
	Schema   SchemaCmd   `cmd:"" help:"Print JSON Schema for NDJSON output types"`
	Version  VersionCmd  `cmd:"" help:"Show version and install instructions"`
}

// Vars exposes config values as flag defaults. Flags given on the command
// line still win.
func Vars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":    cfg.Format,
		"config_interval":  cfg.Recorder.Interval,
		"config_auto_stop": strconv.FormatBool(cfg.Recorder.AutoStop),
		"config_name":      cfg.Defaults.Name,
		"config_url":       cfg.Defaults.URL,
	}
}

// Globals carries flags and configuration shared by every command
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	log *agentLogger
}

// NewGlobalsWithConfig merges parsed flags with file/env configuration.
// Flags win; boolean switches are enabled by either source.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	if g.Format == "" {
		g.Format = cfg.Format
	}
	return g
}

// Debug logs a formatted message when --verbose is set
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger().Debug(format, args...)
}

// Logger returns the zap logger backing Debug; a no-op unless verbose
func (g *Globals) Logger() *zap.Logger {
	return g.logger().Zap()
}

func (g *Globals) logger() *agentLogger {
	if g.log == nil {
		g.log = newAgentLogger(g, nil)
	}
	return g.log
}
