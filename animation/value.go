// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animation/value.go
// Summary: Typed property values that transitions interpolate between.
// Usage: Interval endpoints, defaults lists and actor properties all carry Value.
// Notes: Colors are stored as go-colorful colors and blended in Lab space.

package animation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ValueKind identifies the type carried by a Value.
type ValueKind int

const (
	// KindInvalid marks an unset value.
	KindInvalid ValueKind = iota
	// KindFloat is a floating point value.
	KindFloat
	// KindInt is an integer value.
	KindInt
	// KindBool is a boolean value.
	KindBool
	// KindColor is an RGB color.
	KindColor
)

func (k ValueKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	default:
		return "invalid"
	}
}

// Value is a typed property value. The zero Value is invalid (unset).
type Value struct {
	kind  ValueKind
	num   float64
	flag  bool
	color colorful.Color
}

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, num: f} }

// Int returns an integer value.
func Int(i int) Value { return Value{kind: KindInt, num: float64(i)} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Color returns a color value.
func Color(c colorful.Color) Value { return Value{kind: KindColor, color: c.Clamped()} }

// TcellColor converts a tcell color into a color value. Colors without an
// RGB representation (ColorDefault, ColorReset) yield an invalid value.
func TcellColor(c tcell.Color) Value {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return Value{}
	}
	return Color(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255})
}

// ParseColor parses a color name or "#rrggbb" string.
func ParseColor(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("empty color")
	}
	v := TcellColor(tcell.GetColor(strings.ToLower(s)))
	if !v.IsValid() {
		return Value{}, fmt.Errorf("unknown color %q", s)
	}
	return v, nil
}

// ParseValue parses the textual form of a value: booleans, integers,
// floats and colors, tried in that order.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), nil
	}
	return ParseColor(s)
}

// Kind reports the kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether the value is set.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNumeric reports whether the value is a float or an int.
func (v Value) IsNumeric() bool { return v.kind == KindFloat || v.kind == KindInt }

// Float returns the numeric value as float64. Booleans map to 0/1.
func (v Value) Float() float64 {
	if v.kind == KindBool {
		if v.flag {
			return 1
		}
		return 0
	}
	return v.num
}

// Int returns the numeric value rounded to the nearest integer.
func (v Value) Int() int { return int(math.Round(v.Float())) }

// Bool returns the boolean value; numbers are true when non-zero.
func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.flag
	}
	return v.num != 0
}

// Color returns the color value.
func (v Value) Color() colorful.Color { return v.color }

// Tcell returns the color value as a tcell color.
func (v Value) Tcell() tcell.Color {
	if v.kind != KindColor {
		return tcell.ColorDefault
	}
	r, g, b := v.color.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Compatible reports whether v can be interpolated towards other.
func (v Value) Compatible(other Value) bool {
	if !v.IsValid() || !other.IsValid() {
		return false
	}
	if v.IsNumeric() && other.IsNumeric() {
		return true
	}
	return v.kind == other.kind
}

// Lerp interpolates from v to other at progress t. The result keeps the kind
// of v. Booleans switch at the end of the interval. Incompatible values
// return v unchanged.
func (v Value) Lerp(other Value, t float64) Value {
	if !v.Compatible(other) {
		return v
	}
	switch v.kind {
	case KindFloat:
		return Float(v.num + (other.num-v.num)*t)
	case KindInt:
		return Int(int(math.Round(v.num + (other.num-v.num)*t)))
	case KindBool:
		if t >= 1 {
			return other
		}
		return v
	case KindColor:
		return Color(v.color.BlendLab(other.color, t))
	}
	return v
}

// Equal reports whether both values carry the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.flag == other.flag
	case KindColor:
		return v.color.Hex() == other.color.Hex()
	default:
		return v.num == other.num
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindInt:
		return strconv.Itoa(int(v.num))
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindColor:
		return v.color.Hex()
	default:
		return "<unset>"
	}
}
