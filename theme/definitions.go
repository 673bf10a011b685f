// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/definitions.go
// Summary: Declarative animation definitions loaded from JSON or YAML.
// Usage: Load or Parse a file, then hand the Definitions to a Factory.
// Notes: Parsing validates everything up front; selectors, easings and values
// are compiled once so the factory never fails on malformed input.

package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldash/animation"
	"github.com/framegrace/texeldash/defaults"
	"github.com/framegrace/texeldash/scene"
)

// Format is the encoding of a definitions file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("theme: unknown definitions format for %q", path)
	}
}

// Origin says where a target's selector starts searching.
type Origin string

const (
	OriginSender Origin = "sender"
	OriginStage  Origin = "stage"
)

// Scalar is a property value as written in the file. Numbers, booleans and
// strings are accepted; the text is interpreted by animation.ParseValue.
type Scalar struct {
	raw string
	set bool
}

// NewScalar returns a set scalar holding raw.
func NewScalar(raw string) Scalar { return Scalar{raw: raw, set: true} }

// IsSet reports whether the file provided a value.
func (s Scalar) IsSet() bool { return s.set }

func (s Scalar) String() string {
	if !s.set {
		return "<unset>"
	}
	return s.raw
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch {
	case text == "null":
		*s = Scalar{}
	case strings.HasPrefix(text, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = NewScalar(str)
	case strings.HasPrefix(text, "{"), strings.HasPrefix(text, "["):
		return fmt.Errorf("expected a scalar value, got %s", text)
	default:
		*s = NewScalar(text)
	}
	return nil
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*s = Scalar{}
		return nil
	}
	*s = NewScalar(node.Value)
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(s.raw)
}

// Definitions is the parsed content of a definitions file.
type Definitions struct {
	Animations []*Definition `json:"animations" yaml:"animations"`

	source string
}

// Definition describes one animation: the triggers that start it and the
// timelines it plays.
type Definition struct {
	ID        string         `json:"id" yaml:"id"`
	Triggers  []Trigger      `json:"triggers" yaml:"triggers"`
	Timelines []TimelineSpec `json:"timelines" yaml:"timelines"`
}

// Trigger names a signal emitted by actors matching Sender. An empty Sender
// matches any actor.
type Trigger struct {
	Sender string `json:"sender,omitempty" yaml:"sender,omitempty"`
	Signal string `json:"signal" yaml:"signal"`

	sender *scene.Selector
}

// TimelineSpec is one timeline shared by the properties of its targets.
type TimelineSpec struct {
	DurationMS int      `json:"duration_ms" yaml:"duration_ms"`
	DelayMS    int      `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty"`
	Repeat     int      `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Mode       string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Targets    []Target `json:"targets" yaml:"targets"`

	easing scene.Easing
}

// Options returns the scene timeline options for the spec.
func (t *TimelineSpec) Options() scene.TimelineOptions {
	return scene.TimelineOptions{
		Duration: time.Duration(t.DurationMS) * time.Millisecond,
		Delay:    time.Duration(t.DelayMS) * time.Millisecond,
		Repeat:   t.Repeat,
		Easing:   t.easing,
	}
}

// Target selects the actors a timeline animates. An empty Apply targets the
// origin itself.
type Target struct {
	Apply      string         `json:"apply,omitempty" yaml:"apply,omitempty"`
	Origin     Origin         `json:"origin,omitempty" yaml:"origin,omitempty"`
	Properties []PropertySpec `json:"properties" yaml:"properties"`

	apply *scene.Selector
}

// PropertySpec is one animated property. From and To are optional.
type PropertySpec struct {
	Name string `json:"name" yaml:"name"`
	From Scalar `json:"from" yaml:"from"`
	To   Scalar `json:"to" yaml:"to"`

	from animation.Value
	to   animation.Value
}

// Load reads and validates the definitions file at path.
func Load(path string) (*Definitions, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: failed to read %s: %w", path, err)
	}
	defs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defs.source = path
	return defs, nil
}

// LoadDefault parses the built-in definitions.
func LoadDefault() (*Definitions, error) {
	data, err := defaults.Animations()
	if err != nil {
		return nil, fmt.Errorf("theme: failed to read embedded definitions: %w", err)
	}
	defs, err := Parse(data, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded definitions: %w", err)
	}
	defs.source = "<embedded>"
	return defs, nil
}

// Parse decodes and validates definitions.
func Parse(data []byte, format Format) (*Definitions, error) {
	var defs Definitions
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("theme: failed to parse JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&defs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("theme: failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("theme: unsupported format %s", format)
	}
	if err := defs.validate(); err != nil {
		return nil, err
	}
	return &defs, nil
}

// Source returns the file the definitions were loaded from, if any.
func (d *Definitions) Source() string { return d.source }

func (d *Definitions) validate() error {
	seen := make(map[string]int, len(d.Animations))
	for i, def := range d.Animations {
		if def == nil {
			return fmt.Errorf("theme: animation %d: empty entry", i)
		}
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return fmt.Errorf("theme: animation %d: missing id", i)
		}
		if prev, dup := seen[def.ID]; dup {
			return fmt.Errorf("theme: animation %d: id %q already used by animation %d", i, def.ID, prev)
		}
		seen[def.ID] = i
		if err := def.compile(); err != nil {
			return fmt.Errorf("theme: animation %q: %w", def.ID, err)
		}
	}
	return nil
}

func (def *Definition) compile() error {
	if len(def.Triggers) == 0 {
		return fmt.Errorf("no triggers")
	}
	for i := range def.Triggers {
		tr := &def.Triggers[i]
		tr.Signal = strings.TrimSpace(tr.Signal)
		if tr.Signal == "" {
			return fmt.Errorf("trigger %d: missing signal", i)
		}
		sender := strings.TrimSpace(tr.Sender)
		if sender == "" {
			sender = "*"
		}
		sel, err := scene.ParseSelector(sender)
		if err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
		tr.sender = sel
	}

	if len(def.Timelines) == 0 {
		return fmt.Errorf("no timelines")
	}
	for i := range def.Timelines {
		if err := def.Timelines[i].compile(); err != nil {
			return fmt.Errorf("timeline %d: %w", i, err)
		}
	}
	return nil
}

func (t *TimelineSpec) compile() error {
	if t.DurationMS < 0 || t.DelayMS < 0 {
		return fmt.Errorf("negative duration or delay")
	}
	if t.Repeat < scene.RepeatForever {
		return fmt.Errorf("repeat %d out of range", t.Repeat)
	}
	easing, ok := scene.EasingByName(t.Mode)
	if !ok {
		return fmt.Errorf("unknown mode %q", t.Mode)
	}
	t.easing = easing

	if len(t.Targets) == 0 {
		return fmt.Errorf("no targets")
	}
	for i := range t.Targets {
		if err := t.Targets[i].compile(); err != nil {
			return fmt.Errorf("target %d: %w", i, err)
		}
	}
	return nil
}

func (tg *Target) compile() error {
	switch tg.Origin {
	case "":
		tg.Origin = OriginSender
	case OriginSender, OriginStage:
	default:
		return fmt.Errorf("unknown origin %q", tg.Origin)
	}
	if apply := strings.TrimSpace(tg.Apply); apply != "" {
		sel, err := scene.ParseSelector(apply)
		if err != nil {
			return err
		}
		tg.apply = sel
	}

	if len(tg.Properties) == 0 {
		return fmt.Errorf("no properties")
	}
	for i := range tg.Properties {
		p := &tg.Properties[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return fmt.Errorf("property %d: missing name", i)
		}
		var err error
		if p.from, err = p.From.value(); err != nil {
			return fmt.Errorf("property %q: from: %w", p.Name, err)
		}
		if p.to, err = p.To.value(); err != nil {
			return fmt.Errorf("property %q: to: %w", p.Name, err)
		}
		if p.from.IsValid() && p.to.IsValid() && !p.from.Compatible(p.to) {
			return fmt.Errorf("property %q: cannot interpolate %s to %s", p.Name, p.from.Kind(), p.to.Kind())
		}
	}
	return nil
}

func (s Scalar) value() (animation.Value, error) {
	if !s.set {
		return animation.Value{}, nil
	}
	return animation.ParseValue(s.raw)
}

// Get returns the definition with the given id.
func (d *Definitions) Get(id string) (*Definition, bool) {
	for _, def := range d.Animations {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}

// IDs lists the definition ids in file order.
func (d *Definitions) IDs() []string {
	ids := make([]string, len(d.Animations))
	for i, def := range d.Animations {
		ids[i] = def.ID
	}
	return ids
}

// Lookup returns the definition triggered by signal on sender. When several
// match, the most specific sender selector wins; ties go to the earliest.
func (d *Definitions) Lookup(sender *scene.Actor, signal string) (*Definition, bool) {
	var (
		best      *Definition
		bestScore = -1
	)
	for _, def := range d.Animations {
		for _, tr := range def.Triggers {
			if tr.Signal != signal || !tr.sender.Match(sender) {
				continue
			}
			if score := tr.sender.Specificity(); score > bestScore {
				best, bestScore = def, score
			}
		}
	}
	return best, best != nil
}

// WriteSummary prints one block per definition: its triggers and, per
// timeline, the targets and property ranges.
func (d *Definitions) WriteSummary(w io.Writer) {
	for _, def := range d.Animations {
		fmt.Fprintf(w, "%s\n", def.ID)
		for _, tr := range def.Triggers {
			fmt.Fprintf(w, "  on %s from %s\n", tr.Signal, tr.sender)
		}
		for i, tl := range def.Timelines {
			mode := tl.Mode
			if mode == "" {
				mode = "smoothstep"
			}
			fmt.Fprintf(w, "  timeline %d: %dms delay=%dms repeat=%d mode=%s\n", i, tl.DurationMS, tl.DelayMS, tl.Repeat, mode)
			for _, tg := range tl.Targets {
				apply := "<origin>"
				if tg.apply != nil {
					apply = tg.apply.String()
				}
				fmt.Fprintf(w, "    %s (origin %s)\n", apply, tg.Origin)
				for _, p := range tg.Properties {
					fmt.Fprintf(w, "      %s: %s -> %s\n", p.Name, p.From, p.To)
				}
			}
		}
	}
}
