// package overlay manages the horizontal reference guides drawn over the
// video, used to judge take-off and landing against a fixed visual anchor.
package overlay

import (
	"github.com/jumptools/airtime/internal/shared"
)

// Color enumerates the supported reference line colors.
type Color string

const (
	White  Color = "white"
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// Colors lists every supported color in cycling order.
var Colors = []Color{White, Red, Blue, Green, Yellow}

// Valid reports whether c is one of the supported colors.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// Normalize maps unknown colors to White, the defined default case.
func (c Color) Normalize() Color {
	if c.Valid() {
		return c
	}
	return White
}

// Line is one horizontal reference guide. TopPercent is its vertical
// position as a percentage of the video container height, always held
// within [0, 100].
type Line struct {
	ID         string
	TopPercent float64
	Color      Color
}

// LineSet owns the collection of reference lines. At least one line always
// exists; removing the last remaining line is a no-op.
type LineSet struct {
	lines []*Line
}

// NewLineSet creates a set containing the single initial guide, a white
// line halfway down the container.
func NewLineSet() *LineSet {
	s := &LineSet{}
	s.add(50, White)
	return s
}

func (s *LineSet) add(topPercent float64, color Color) *Line {
	line := &Line{
		ID:         shared.GenerateID(),
		TopPercent: clampPercent(topPercent),
		Color:      color.Normalize(),
	}
	s.lines = append(s.lines, line)
	return line
}

// Add appends a new line at the vertical midpoint, cycling through the
// color list so consecutive lines are distinguishable.
func (s *LineSet) Add() *Line {
	color := Colors[len(s.lines)%len(Colors)]
	return s.add(50, color)
}

// Remove deletes the line with the given ID. Removing the last remaining
// line is a no-op: one reference line must always be present.
func (s *LineSet) Remove(id string) {
	if len(s.lines) <= 1 {
		return
	}
	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// CanRemove reports whether deletion is currently allowed. The UI hides the
// delete affordance when it returns false.
func (s *LineSet) CanRemove() bool {
	return len(s.lines) > 1
}

// Get returns the line with the given ID.
func (s *LineSet) Get(id string) (*Line, bool) {
	for _, line := range s.lines {
		if line.ID == id {
			return line, true
		}
	}
	return nil, false
}

// Lines returns the lines in insertion order. Callers must not grow or
// shrink the returned slice.
func (s *LineSet) Lines() []*Line {
	return s.lines
}

// Len returns the number of lines.
func (s *LineSet) Len() int {
	return len(s.lines)
}

// SetColor changes a line's color, mapping unknown values to the default.
func (s *LineSet) SetColor(id string, color Color) {
	if line, ok := s.Get(id); ok {
		line.Color = color.Normalize()
	}
}

// Nudge moves a line by delta percentage points, clamped to [0, 100].
// Used for keyboard adjustment outside of a drag session.
func (s *LineSet) Nudge(id string, delta float64) {
	if line, ok := s.Get(id); ok {
		line.TopPercent = clampPercent(line.TopPercent + delta)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
