package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jumptools/airtime/internal/overlay"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// lineStyles maps every reference line color to a render style. Unknown
// colors fall back to the white style.
var lineStyles = map[overlay.Color]lipgloss.Style{
	overlay.White:  NewStyle("#FFFFFF"),
	overlay.Red:    NewStyle("#FF4D4D"),
	overlay.Blue:   NewStyle("#4D9DFF"),
	overlay.Green:  NewStyle("#2ECC71"),
	overlay.Yellow: NewStyle("#F1C40F"),
}

// LineStyle returns the style for a reference line color, defaulting to
// the white style for anything off the enum.
func LineStyle(c overlay.Color) lipgloss.Style {
	if s, ok := lineStyles[c]; ok {
		return s
	}
	return lineStyles[overlay.White]
}
