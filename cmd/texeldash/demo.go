// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldash/demo.go
// Summary: Interactive tcell demo: a dock of tiles animated by theme definitions.
// Usage: s/h show and hide the dock, 1-9 activate a tile, u toggles urgent,
// c completes, d dumps running animations to the log, q quits.
// Notes: The scene is only touched from the main loop goroutine.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeldash/animation"
	"github.com/framegrace/texeldash/config"
	"github.com/framegrace/texeldash/internal/journal"
	"github.com/framegrace/texeldash/scene"
	"github.com/framegrace/texeldash/theme"
)

const (
	tileHeight = 3
	dockLeft   = 14
)

var (
	tileBase   = animation.Color(colorful.Color{R: 0.23, G: 0.26, B: 0.32})
	screenBase = colorful.Color{R: 0.08, G: 0.09, B: 0.11}
)

type demo struct {
	screen  tcell.Screen
	stage   *scene.Stage
	dock    *scene.Actor
	tiles   []*scene.Actor
	manager *theme.Manager

	tileWidth int
	selected  int
	finals    animation.Defaults
	status    string
}

func runDemo(args []string, cfg config.Config, settings config.AnimationSettings) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	themePath := fs.String("theme", settings.Theme, "Animation definitions file (default: embedded)")
	logPath := fs.String("log", filepath.Join(os.TempDir(), "texeldash-demo.log"), "Log file")
	tiles := fs.Int("tiles", cfg.GetInt("demo", "tiles", 4), "Number of tiles")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *tiles < 1 || *tiles > 9 {
		return fmt.Errorf("tiles must be between 1 and 9, got %d", *tiles)
	}

	defs, _, _, err := loadDefinitions(*themePath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	d := newDemo(*tiles, cfg.GetInt("demo", "tile_width", 18))
	d.manager = theme.NewManager(d.stage, theme.NewFactory(defs))
	d.manager.SetEnabled(settings.Enabled)

	if settings.Journal != "" {
		j, err := journal.Open(settings.Journal)
		if err != nil {
			log.Printf("Demo: journal disabled: %v", err)
		} else {
			defer j.Close()
			d.manager.SetJournal(j)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()
	d.screen = screen

	log.Printf("Demo: started with %d tiles, %d definitions from %s", *tiles, len(defs.Animations), defs.Source())
	return d.loop(settings.Frame)
}

func newDemo(count, tileWidth int) *demo {
	if tileWidth < 8 {
		tileWidth = 8
	}
	d := &demo{
		stage:     scene.NewStage(),
		dock:      scene.NewActor("dock", "dock"),
		tileWidth: tileWidth,
		finals: animation.NewDefaults().
			With("opacity", animation.Int(255)).
			With("x", animation.Int(0)),
	}
	d.stage.Add(d.dock)
	for i := 0; i < count; i++ {
		tile := scene.NewActor("tile", fmt.Sprintf("tile%d", i+1), "tile")
		_ = tile.SetProperty("opacity", animation.Int(255))
		_ = tile.SetProperty("x", animation.Int(0))
		_ = tile.SetProperty("bg", tileBase)
		d.dock.AddChild(tile)
		d.tiles = append(d.tiles, tile)
	}
	return d
}

func (d *demo) loop(frame time.Duration) error {
	quit := make(chan struct{})
	defer close(quit)
	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	d.trigger(d.dock, "show")
	d.draw()
	for {
		select {
		case ev := <-eventChan:
			if !d.handleEvent(ev) {
				d.manager.StopAll()
				return nil
			}
			d.draw()
		case now := <-ticker.C:
			d.stage.TickAt(now)
			d.draw()
		}
	}
}

// handleEvent reacts to input; it returns false when the demo should exit.
func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return d.handleRune(ev.Rune())
		}
	}
	return true
}

func (d *demo) handleRune(r rune) bool {
	switch {
	case r == 'q':
		return false
	case r == 's':
		d.trigger(d.dock, "show")
	case r == 'h':
		d.trigger(d.dock, "hide")
	case r == 'c':
		d.manager.CompleteAll()
		d.status = "completed running animations"
	case r == 'd':
		log.Printf("Demo: dump requested, %d running", d.manager.Len())
		d.manager.DumpAll(log.Writer())
		d.status = "dumped to log"
	case r == 'u':
		tile := d.tiles[d.selected]
		if tile.HasClass("urgent") {
			tile.RemoveClass("urgent")
		} else {
			tile.AddClass("urgent")
		}
		d.status = fmt.Sprintf("%s urgent=%v", tile.Name(), tile.HasClass("urgent"))
	case r >= '1' && r <= '9':
		idx := int(r - '1')
		if idx < len(d.tiles) {
			d.selected = idx
			d.trigger(d.tiles[idx], "activate")
		}
	}
	return true
}

func (d *demo) trigger(sender *scene.Actor, signal string) {
	anim, err := d.manager.Trigger(sender, signal, nil, d.finals)
	if err != nil {
		d.status = err.Error()
		log.Printf("Demo: %v", err)
		return
	}
	d.status = fmt.Sprintf("%s: %s (%d entries)", sender.Name(), anim.ID(), anim.Len())
}

func (d *demo) draw() {
	s := d.screen
	w, h := s.Size()
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	s.Clear()

	drawText(s, 1, 0, w-2, base.Bold(true), "texeldash demo")
	for i, tile := range d.tiles {
		d.drawTile(i, tile, w)
	}

	help := "s show  h hide  1-9 activate  u urgent  c complete  d dump  q quit"
	drawText(s, 1, h-2, w-2, base.Dim(true), help)
	drawText(s, 1, h-1, w-2, base, d.status)
	s.Show()
}

func (d *demo) drawTile(i int, tile *scene.Actor, screenW int) {
	opacity, _ := tile.Property("opacity")
	x, _ := tile.Property("x")
	bg, _ := tile.Property("bg")

	alpha := float64(opacity.Int()) / 255
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	fill := screenBase.BlendLab(bg.Color(), alpha).Clamped()
	r, g, b := fill.RGB255()
	style := tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(r), int32(g), int32(b))).
		Foreground(tcell.ColorWhite)
	if i == d.selected {
		style = style.Bold(true)
	}

	left := dockLeft + x.Int()
	top := 2 + i*(tileHeight+1)
	for row := 0; row < tileHeight; row++ {
		for col := 0; col < d.tileWidth; col++ {
			if px := left + col; px >= 0 && px < screenW {
				d.screen.SetContent(px, top+row, ' ', nil, style)
			}
		}
	}
	label := tile.Name()
	if tile.HasClass("urgent") {
		label += " !"
	}
	drawText(d.screen, left+1, top+1, d.tileWidth-2, style, label)
}

// drawText writes s clipped to width cells.
func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, s string) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	for _, r := range s {
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
}
