package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jumptools/airtime/internal/formatter"
	"github.com/jumptools/airtime/internal/overlay"
	"github.com/jumptools/airtime/internal/physics"
	"github.com/jumptools/airtime/internal/playback"
	"github.com/jumptools/airtime/internal/session"
	"github.com/jumptools/airtime/internal/share"
	"github.com/jumptools/airtime/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MarkView ViewState = iota
	HistoryView
	UserListView
	NewUserView
)

// paneTop is the row the video pane starts at: title plus one blank line.
const paneTop = 2

// tickMsg drives the playback poll loop.
type tickMsg time.Time

// Deps carries everything the TUI composes.
type Deps struct {
	Controller   *playback.Controller
	Session      *session.Session
	Markers      *session.Markers
	Lines        *overlay.LineSet
	Users        *store.UserStore
	History      *store.HistoryStore
	Logger       *log.Logger
	PollInterval time.Duration
	CopyOnSave   bool
}

// Model represents the TUI application state.
type Model struct {
	deps Deps

	view   ViewState
	width  int
	height int

	selectedLine int
	drag         *overlay.Drag

	historyList list.Model
	userList    list.Model
	nameInput   textinput.Model

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(deps Deps) *Model {
	if deps.PollInterval <= 0 {
		deps.PollInterval = 100 * time.Millisecond
	}

	return &Model{
		deps: deps,
		view: MarkView,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init starts the playback poll loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.deps.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.historyList.Width() > 0 {
			m.historyList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.userList.Width() > 0 {
			m.userList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tickMsg:
		if err := m.deps.Controller.Sync(); err != nil {
			m.deps.Logger.Warn("playback sync failed", "err", err)
		}
		return m, m.tick()

	case tea.MouseMsg:
		if m.view == MarkView {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MarkView:
			return m.handleMarkKeys(msg)
		case HistoryView:
			return m.handleHistoryKeys(msg)
		case UserListView:
			return m.handleUserKeys(msg)
		case NewUserView:
			return m.handleNewUserKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleMarkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.deps.Controller
	keys := m.keys

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.playPause):
		m.reportErr(c.TogglePlay())

	case key.Matches(msg, keys.stepBack):
		m.reportErr(c.StepFrames(-1))
	case key.Matches(msg, keys.stepForward):
		m.reportErr(c.StepFrames(1))
	case key.Matches(msg, keys.jumpBack):
		m.reportErr(c.StepFrames(-10))
	case key.Matches(msg, keys.jumpForward):
		m.reportErr(c.StepFrames(10))

	case key.Matches(msg, keys.takeOff):
		m.deps.Session.MarkTakeOff(c.CurrentTime())
		m.status = fmt.Sprintf("take-off at %s", formatTime(c.CurrentTime()))
	case key.Matches(msg, keys.landing):
		m.deps.Session.MarkLanding(c.CurrentTime())
		m.status = fmt.Sprintf("landing at %s", formatTime(c.CurrentTime()))

	case key.Matches(msg, keys.save):
		m.saveResult()
	case key.Matches(msg, keys.copy):
		m.copyResult()

	case key.Matches(msg, keys.marker):
		marker := m.deps.Markers.Add(c.CurrentTime(), fmt.Sprintf("marker %d", m.deps.Markers.Len()+1))
		m.status = fmt.Sprintf("marker added at %s", formatTime(marker.Time))
	case key.Matches(msg, keys.nextMarker):
		if marker, ok := m.deps.Markers.Next(c.CurrentTime()); ok {
			m.reportErr(c.Seek(marker.Time))
		}
	case key.Matches(msg, keys.prevMarker):
		if marker, ok := m.deps.Markers.Prev(c.CurrentTime()); ok {
			m.reportErr(c.Seek(marker.Time))
		}

	case key.Matches(msg, keys.addLine):
		m.deps.Lines.Add()
		m.selectedLine = m.deps.Lines.Len() - 1
	case key.Matches(msg, keys.removeLine):
		if line := m.currentLine(); line != nil && m.deps.Lines.CanRemove() {
			m.deps.Lines.Remove(line.ID)
			if m.selectedLine >= m.deps.Lines.Len() {
				m.selectedLine = m.deps.Lines.Len() - 1
			}
		}
	case key.Matches(msg, keys.cycleLine):
		if n := m.deps.Lines.Len(); n > 0 {
			m.selectedLine = (m.selectedLine + 1) % n
		}
	case key.Matches(msg, keys.lineUp):
		if line := m.currentLine(); line != nil {
			m.deps.Lines.Nudge(line.ID, -m.nudgeStep())
		}
	case key.Matches(msg, keys.lineDown):
		if line := m.currentLine(); line != nil {
			m.deps.Lines.Nudge(line.ID, m.nudgeStep())
		}
	case key.Matches(msg, keys.lineColor):
		if line := m.currentLine(); line != nil {
			m.deps.Lines.SetColor(line.ID, nextColor(line.Color))
		}

	case key.Matches(msg, keys.cycleRate):
		if err := c.CycleRate(); err != nil {
			m.reportErr(err)
		} else {
			m.status = fmt.Sprintf("speed %.2gx", c.Rate())
		}
	case key.Matches(msg, keys.cycleFPS):
		c.SetFPS(nextFPSPreset(c.FPS()))
		m.status = fmt.Sprintf("stepping at %d fps", c.FPS())

	case key.Matches(msg, keys.history):
		m.enterHistory()
	case key.Matches(msg, keys.users):
		m.enterUsers()
	}

	return m, nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = MarkView
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.historyList.SelectedItem().(recordItem); ok {
			if err := m.deps.History.Delete(item.record.ID); err != nil {
				m.reportErr(err)
			}
			m.enterHistory()
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.historyList.SelectedItem().(recordItem); ok {
			text := formatter.ShareText(item.record.HeightCm, item.record.FlightTime)
			if err := share.Copy(text); err != nil {
				m.deps.Logger.Warn("clipboard unavailable", "err", err)
				m.status = text
			} else {
				m.status = "copied to clipboard"
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m *Model) handleUserKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = MarkView
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.newUser):
		m.nameInput = textinput.New()
		m.nameInput.Placeholder = "name"
		m.nameInput.Focus()
		m.view = NewUserView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.userList.SelectedItem().(userItem); ok {
			if err := m.deps.Users.Switch(item.user); err != nil {
				m.reportErr(err)
			} else {
				m.status = fmt.Sprintf("current user: %s", item.user.Name)
			}
			m.view = MarkView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func (m *Model) handleNewUserKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.enterUsers()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		// Empty names are silently ignored; no profile is created.
		if user, ok := m.deps.Users.Create(m.nameInput.Value()); ok {
			m.status = fmt.Sprintf("current user: %s", user.Name)
		}
		m.view = MarkView
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleMouse runs the reference line drag interaction: press on a line
// starts a drag session, motion repositions it, release ends the session.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	paneH := m.paneHeight()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		row := msg.Y - paneTop
		if row < 0 || row >= paneH {
			return
		}
		if line, idx := m.lineAtRow(row, paneH); line != nil {
			m.selectedLine = idx
			m.drag = m.deps.Lines.BeginDrag(line.ID)
		}

	case tea.MouseActionMotion:
		if m.drag != nil && m.drag.Active() {
			m.drag.MoveTo(float64(msg.Y), float64(paneTop), float64(paneH-1))
		}

	case tea.MouseActionRelease:
		if m.drag != nil {
			m.drag.End()
			m.drag = nil
		}
	}
}

func (m *Model) saveResult() {
	result, ok := m.deps.Session.Result()
	if !ok {
		m.status = "nothing to save: no measurable flight time"
		return
	}

	record, saved, err := store.SaveJump(m.deps.Users, m.deps.History, result.FlightTime, result.HeightCm, "")
	if err != nil {
		m.reportErr(err)
		return
	}
	if !saved {
		m.status = "nothing to save"
		return
	}

	m.status = fmt.Sprintf("saved %.1f cm", record.HeightCm)
	if m.deps.CopyOnSave {
		m.copyResult()
	}
}

func (m *Model) copyResult() {
	result, ok := m.deps.Session.Result()
	if !ok {
		m.status = "nothing to copy: no measurable flight time"
		return
	}

	text := formatter.ShareText(result.HeightCm, result.FlightTime)
	if err := share.Copy(text); err != nil {
		m.deps.Logger.Warn("clipboard unavailable", "err", err)
		m.status = text
		return
	}
	m.status = "copied to clipboard"
}

func (m *Model) enterHistory() {
	user, ok := m.deps.Users.Current()
	if !ok {
		m.status = "no current user"
		return
	}

	records := m.deps.History.ForUser(user.ID)
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = recordItem{record: record}
	}

	m.historyList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.historyList.Title = fmt.Sprintf("Jump history: %s", user.Name)
	m.view = HistoryView
}

func (m *Model) enterUsers() {
	current, _ := m.deps.Users.Current()
	users := m.deps.Users.All()
	items := make([]list.Item, len(users))
	for i, user := range users {
		items[i] = userItem{user: user, current: user.ID == current.ID}
	}

	m.userList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.userList.Title = "Users"
	m.view = UserListView
}

func (m *Model) currentLine() *overlay.Line {
	lines := m.deps.Lines.Lines()
	if m.selectedLine < 0 || m.selectedLine >= len(lines) {
		return nil
	}
	return lines[m.selectedLine]
}

// nudgeStep converts one keypress into percentage points so keyboard
// adjustment has roughly one-row granularity at the current pane size.
func (m *Model) nudgeStep() float64 {
	paneH := m.paneHeight()
	if paneH <= 1 {
		return 1
	}
	return 100 / float64(paneH-1)
}

func (m *Model) lineAtRow(row, paneH int) (*overlay.Line, int) {
	for i, line := range m.deps.Lines.Lines() {
		if lineRow(line, paneH) == row {
			return line, i
		}
	}
	return nil, -1
}

func (m *Model) paneHeight() int {
	h := m.height - 12
	if h < 8 {
		h = 8
	}
	return h
}

func (m *Model) reportErr(err error) {
	if err == nil {
		return
	}
	m.err = err
	m.deps.Logger.Error("action failed", "err", err)
}

func lineRow(line *overlay.Line, paneH int) int {
	if paneH <= 1 {
		return 0
	}
	return int(math.Round(line.TopPercent / 100 * float64(paneH-1)))
}

func nextColor(c overlay.Color) overlay.Color {
	for i, known := range overlay.Colors {
		if known == c {
			return overlay.Colors[(i+1)%len(overlay.Colors)]
		}
	}
	return overlay.White
}

func nextFPSPreset(fps int) int {
	for i, preset := range playback.FPSPresets {
		if preset == fps {
			return playback.FPSPresets[(i+1)%len(playback.FPSPresets)]
		}
	}
	return playback.FPSPresets[0]
}

func formatTime(t float64) string {
	return physics.FormatDuration(t)
}
