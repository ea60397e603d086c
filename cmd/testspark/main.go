package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/testspark/testspark/internal/cli"
	"github.com/testspark/testspark/internal/config"
)

const quickStart = `testspark - simulated browser test recorder

Quick start:
  testspark ui                                      Interactive recorder
  testspark record -n "Login" -u https://app.test   Record headlessly (NDJSON)
  testspark flow -u https://app.test -f text        Flow diagram of a recording
  testspark projects -f text                        Sample projects

For help:
  testspark --help                                  All commands and flags
  testspark schema                                  NDJSON output schemas
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags override them
	ctx := kong.Parse(&c,
		kong.Name("testspark"),
		kong.Description("TestSpark: record simulated browser test steps and view them as a list or flow"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.Vars(cfg),
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
