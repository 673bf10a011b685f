// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldash/main.go
// Summary: texeldash command: inspect animation definitions, read the journal, run the demo.
// Usage: texeldash [-verbose] <dump|journal|demo> [flags]

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/framegrace/texeldash/animation"
	"github.com/framegrace/texeldash/config"
	"github.com/framegrace/texeldash/defaults"
	"github.com/framegrace/texeldash/scene"
	"github.com/framegrace/texeldash/theme"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("texeldash", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Enable verbose animation logging")
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: texeldash [-verbose] <command> [flags]\n\n")
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  dump [file]   print and summarise an animation definitions file\n")
		fmt.Fprintf(out, "  journal       print recent animation lifecycle events\n")
		fmt.Fprintf(out, "  demo          run the interactive terminal demo (default)\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}
	settings := cfg.Animations()
	setVerboseLogging(*verbose || settings.Verbose)

	rest := fs.Args()
	command := "demo"
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}
	switch command {
	case "dump":
		return runDump(rest, settings)
	case "journal":
		return runJournal(rest, settings)
	case "demo":
		return runDemo(rest, cfg, settings)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func setVerboseLogging(enable bool) {
	animation.SetVerboseLogging(enable)
	scene.SetVerboseLogging(enable)
	theme.SetVerboseLogging(enable)
}

// loadDefinitions reads the definitions at path, or the embedded defaults when
// path is empty. It also returns the raw file content.
func loadDefinitions(path string) (*theme.Definitions, []byte, theme.Format, error) {
	if path == "" {
		raw, err := defaults.Animations()
		if err != nil {
			return nil, nil, 0, err
		}
		defs, err := theme.LoadDefault()
		return defs, raw, theme.FormatYAML, err
	}
	format, err := theme.FormatFromPath(path)
	if err != nil {
		return nil, nil, 0, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	defs, err := theme.Load(path)
	return defs, raw, format, err
}
