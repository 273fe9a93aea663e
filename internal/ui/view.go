package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jumptools/airtime/internal/physics"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.view {
	case HistoryView:
		return m.historyList.View() + "\n" + m.statusLine()
	case UserListView:
		return m.userList.View() + "\n" + styles.help.Render("enter: switch · n: new user · esc: back") + "\n" + m.statusLine()
	case NewUserView:
		return styles.title.Render("New user") + "\n\n" + m.nameInput.View() + "\n\n" + styles.help.Render("enter: create · esc: cancel")
	default:
		return m.viewMark()
	}
}

func (m *Model) viewMark() string {
	var b strings.Builder

	source := m.deps.Controller.Source()
	title := "airtime"
	if source != "" {
		title = fmt.Sprintf("airtime · %s", filepath.Base(source))
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderPane())
	b.WriteString("\n")
	b.WriteString(m.renderTimeline())
	b.WriteString("\n")
	b.WriteString(m.renderReadouts())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderPane draws the video area: a dotted field with each reference line
// as a full-width rule at its vertical position. The selected line carries
// a marker at its left edge.
func (m *Model) renderPane() string {
	paneH := m.paneHeight()
	paneW := m.width - 2
	if paneW < 20 {
		paneW = 20
	}

	rows := make([]string, paneH)
	for i := range rows {
		rows[i] = strings.Repeat(" ", paneW)
	}

	selected := m.currentLine()
	for _, line := range m.deps.Lines.Lines() {
		row := lineRow(line, paneH)
		rule := strings.Repeat("─", paneW)
		if selected != nil && line.ID == selected.ID {
			rule = "▶" + strings.Repeat("─", paneW-1)
		}
		rows[row] = LineStyle(line.Color).Render(rule)
	}

	return strings.Join(rows, "\n")
}

// renderTimeline draws the scrubber: markers, take-off/landing instants,
// and the playhead, scaled by the video duration.
func (m *Model) renderTimeline() string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}

	c := m.deps.Controller
	duration := c.VideoDuration()
	if duration <= 0 {
		return styles.help.Render(strings.Repeat("·", width))
	}

	cells := make([]rune, width)
	for i := range cells {
		cells[i] = '·'
	}

	col := func(t float64) int {
		pos := int(t / duration * float64(width-1))
		if pos < 0 {
			pos = 0
		}
		if pos > width-1 {
			pos = width - 1
		}
		return pos
	}

	for _, marker := range m.deps.Markers.All() {
		cells[col(marker.Time)] = '▼'
	}
	if t, ok := m.deps.Session.TakeOff(); ok {
		cells[col(t)] = 'T'
	}
	if t, ok := m.deps.Session.Landing(); ok {
		cells[col(t)] = 'L'
	}
	cells[col(c.CurrentTime())] = '┃'

	return string(cells)
}

func (m *Model) renderReadouts() string {
	c := m.deps.Controller
	s := m.deps.Session

	state := "▮▮ paused"
	if c.Playing() {
		state = "▶ playing"
	}

	height := "—"
	if h, ok := s.Height(); ok {
		height = fmt.Sprintf("%.1f cm", h)
	}

	userName := "(none)"
	if user, ok := m.deps.Users.Current(); ok {
		userName = user.Name
	}

	parts := []string{
		fmt.Sprintf("%s / %s", physics.FormatDuration(c.CurrentTime()), physics.FormatDuration(c.VideoDuration())),
		state,
		fmt.Sprintf("session: %s", s.State()),
		fmt.Sprintf("flight: %s", physics.FormatDuration(s.FlightTime())),
		fmt.Sprintf("height: %s", styles.ok.Render(height)),
		fmt.Sprintf("%.2gx · %d fps", c.Rate(), c.FPS()),
		fmt.Sprintf("user: %s", userName),
	}

	return strings.Join(parts, "   ")
}

func (m *Model) statusLine() string {
	if m.err != nil {
		line := styles.err.Render(fmt.Sprintf("error: %v", m.err))
		m.err = nil
		return line
	}
	if m.status != "" {
		return styles.warn.Render(m.status)
	}
	return ""
}
