// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldash/journal.go
// Summary: journal subcommand: prints recorded animation lifecycle events.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/framegrace/texeldash/config"
	"github.com/framegrace/texeldash/internal/journal"
)

func runJournal(args []string, settings config.AnimationSettings) error {
	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	limit := fs.Int("limit", 50, "Number of most recent events to print")
	id := fs.String("id", "", "Only print events of this animation id")
	dbPath := fs.String("db", settings.Journal, "Journal database path")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *dbPath == "" {
		return fmt.Errorf("journal is disabled (set animations.journal in the config or pass -db)")
	}
	if _, err := os.Stat(*dbPath); err != nil {
		return fmt.Errorf("journal %s: %w", *dbPath, err)
	}

	j, err := journal.Open(*dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	var events []journal.Event
	if *id != "" {
		events, err = j.ForAnimation(*id)
	} else {
		events, err = j.Recent(*limit)
	}
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("no events recorded")
		return nil
	}
	for _, ev := range events {
		fmt.Println(ev)
	}
	return nil
}
