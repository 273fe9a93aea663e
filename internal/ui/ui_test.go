package ui

import (
	"io"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jumptools/airtime/internal/overlay"
	"github.com/jumptools/airtime/internal/playback"
	"github.com/jumptools/airtime/internal/session"
	"github.com/jumptools/airtime/internal/shared"
	"github.com/jumptools/airtime/internal/store"
	apptest "github.com/jumptools/airtime/internal/testing"
)

type fixture struct {
	model   *Model
	player  *apptest.FakePlayer
	users   *store.UserStore
	history *store.HistoryStore
}

func setupModel(t *testing.T) *fixture {
	t.Helper()

	player := apptest.NewFakePlayer(10)
	controller := playback.NewController(player)
	if err := controller.Load("jump.mp4"); err != nil {
		t.Fatalf("failed to load video: %v", err)
	}
	if err := controller.Sync(); err != nil {
		t.Fatalf("failed to sync: %v", err)
	}

	users, err := store.NewUserStore(store.NewMemoryKV())
	if err != nil {
		t.Fatalf("failed to create user store: %v", err)
	}
	history, err := store.NewHistoryStore(store.NewMemoryKV())
	if err != nil {
		t.Fatalf("failed to create history store: %v", err)
	}

	sess := session.New()
	sess.Load()

	model := NewModel(Deps{
		Controller: controller,
		Session:    sess,
		Markers:    session.NewMarkers(),
		Lines:      overlay.NewLineSet(),
		Users:      users,
		History:    history,
		Logger:     shared.NewLogger(io.Discard),
	})
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	return &fixture{model: model, player: player, users: users, history: history}
}

func press(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestMarkAndSaveFlow(t *testing.T) {
	f := setupModel(t)
	c := f.model.deps.Controller

	if err := c.Seek(1.0); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	press(f.model, 't')

	if err := c.Seek(1.5); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	press(f.model, 'l')

	sess := f.model.deps.Session
	if sess.State() != session.Complete {
		t.Fatalf("expected Complete, got %v", sess.State())
	}
	if math.Abs(sess.FlightTime()-0.5) > 1e-9 {
		t.Errorf("flight time = %v, want 0.5", sess.FlightTime())
	}
	height, ok := sess.Height()
	if !ok || math.Abs(height-30.65) > 0.01 {
		t.Errorf("height = %v, want ≈30.65", height)
	}

	press(f.model, 's')

	current, _ := f.users.Current()
	records := f.history.ForUser(current.ID)
	if len(records) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(records))
	}
	if records[0].FlightTime != 0.5 {
		t.Errorf("saved flight time = %v, want 0.5", records[0].FlightTime)
	}
}

func TestSaveWithoutResultIsNoOp(t *testing.T) {
	f := setupModel(t)

	press(f.model, 's')
	if f.history.Len() != 0 {
		t.Errorf("save without result created a record")
	}

	// Landing before take-off clamps flight time to zero: still no record.
	c := f.model.deps.Controller
	c.Seek(2.0)
	press(f.model, 't')
	c.Seek(1.0)
	press(f.model, 'l')
	press(f.model, 's')

	if f.history.Len() != 0 {
		t.Errorf("zero flight time save created a record")
	}
}

func TestMarkerKeysSeek(t *testing.T) {
	f := setupModel(t)
	c := f.model.deps.Controller

	c.Seek(1.0)
	press(f.model, 'm')
	c.Seek(3.0)
	press(f.model, 'm')

	if f.model.deps.Markers.Len() != 2 {
		t.Fatalf("expected 2 markers, got %d", f.model.deps.Markers.Len())
	}

	c.Seek(0)
	press(f.model, 'n')
	if c.CurrentTime() != 1.0 {
		t.Errorf("next marker seek landed at %v, want 1.0", c.CurrentTime())
	}

	press(f.model, 'n')
	if c.CurrentTime() != 3.0 {
		t.Errorf("second next marker seek landed at %v, want 3.0", c.CurrentTime())
	}

	press(f.model, 'p')
	if c.CurrentTime() != 1.0 {
		t.Errorf("prev marker seek landed at %v, want 1.0", c.CurrentTime())
	}
}

func TestMouseDragMovesLine(t *testing.T) {
	f := setupModel(t)
	lines := f.model.deps.Lines
	line := lines.Lines()[0]

	paneH := f.model.paneHeight()
	startRow := paneTop + lineRow(line, paneH)

	f.model.Update(tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		Y:      startRow,
	})
	if f.model.drag == nil || !f.model.drag.Active() {
		t.Fatal("expected an active drag after press on the line")
	}

	// Drag to the top of the pane.
	f.model.Update(tea.MouseMsg{Action: tea.MouseActionMotion, Y: paneTop})
	if line.TopPercent != 0 {
		t.Errorf("expected 0%% at pane top, got %v", line.TopPercent)
	}

	f.model.Update(tea.MouseMsg{Action: tea.MouseActionRelease})
	if f.model.drag != nil {
		t.Error("expected drag cleared after release")
	}

	// Motion after release must not move the line.
	f.model.Update(tea.MouseMsg{Action: tea.MouseActionMotion, Y: paneTop + paneH - 1})
	if line.TopPercent != 0 {
		t.Errorf("line moved after drag ended: %v", line.TopPercent)
	}
}

func TestRemoveLastLineKeyIsNoOp(t *testing.T) {
	f := setupModel(t)

	press(f.model, 'x')
	if f.model.deps.Lines.Len() != 1 {
		t.Errorf("removing the last line must keep one line, got %d", f.model.deps.Lines.Len())
	}

	press(f.model, 'a')
	press(f.model, 'x')
	if f.model.deps.Lines.Len() != 1 {
		t.Errorf("expected 1 line after add+remove, got %d", f.model.deps.Lines.Len())
	}
}

func TestViewRendersReadouts(t *testing.T) {
	f := setupModel(t)
	c := f.model.deps.Controller

	c.Seek(1.0)
	press(f.model, 't')
	c.Seek(1.5)
	press(f.model, 'l')

	out := f.model.View()
	if !strings.Contains(out, "00:00.500") {
		t.Errorf("view missing flight time readout:\n%s", out)
	}
	if !strings.Contains(out, "30.6") {
		t.Errorf("view missing height readout:\n%s", out)
	}
}
