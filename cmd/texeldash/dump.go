// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldash/dump.go
// Summary: dump subcommand: highlighted definitions source plus a summary.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"

	"github.com/framegrace/texeldash/config"
)

const defaultStyleName = "catppuccin-mocha"

func runDump(args []string, settings config.AnimationSettings) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	styleName := fs.String("style", defaultStyleName, "Chroma style used for highlighting")
	plain := fs.Bool("plain", false, "Never highlight the source")
	summaryOnly := fs.Bool("summary", false, "Only print the summary")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	path := settings.Theme
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	defs, raw, format, err := loadDefinitions(path)
	if err != nil {
		return err
	}

	out := os.Stdout
	if !*summaryOnly {
		color := !*plain && term.IsTerminal(int(out.Fd()))
		if err := writeSource(out, raw, format.String(), *styleName, color); err != nil {
			return err
		}
		fmt.Fprintln(out, "---")
	}
	source := defs.Source()
	fmt.Fprintf(out, "%d animations from %s\n", len(defs.Animations), source)
	defs.WriteSummary(out)
	return nil
}

// writeSource prints src, highlighted with chroma when color is set.
func writeSource(w io.Writer, src []byte, lexerName, styleName string, color bool) error {
	if !color {
		_, err := w.Write(src)
		return err
	}

	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Analyse(string(src))
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	return formatter.Format(w, style, iterator)
}
