package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	playPause   key.Binding
	stepBack    key.Binding
	stepForward key.Binding
	jumpBack    key.Binding
	jumpForward key.Binding
	takeOff     key.Binding
	landing     key.Binding
	save        key.Binding
	copy        key.Binding
	marker      key.Binding
	nextMarker  key.Binding
	prevMarker  key.Binding
	addLine     key.Binding
	removeLine  key.Binding
	cycleLine   key.Binding
	lineUp      key.Binding
	lineDown    key.Binding
	lineColor   key.Binding
	cycleRate   key.Binding
	cycleFPS    key.Binding
	history     key.Binding
	users       key.Binding
	newUser     key.Binding
	enter       key.Binding
	delete      key.Binding
	back        key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		playPause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		stepBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "step -1 frame")),
		stepForward: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "step +1 frame")),
		jumpBack:    key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "step -10")),
		jumpForward: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "step +10")),
		takeOff:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "mark take-off")),
		landing:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "mark landing")),
		save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save jump")),
		copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy result")),
		marker:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "add marker")),
		nextMarker:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next marker")),
		prevMarker:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev marker")),
		addLine:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add line")),
		removeLine:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove line")),
		cycleLine:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select line")),
		lineUp:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "line up")),
		lineDown:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "line down")),
		lineColor:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "line color")),
		cycleRate:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "speed")),
		cycleFPS:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fps preset")),
		history:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		users:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "users")),
		newUser:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new user")),
		enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.takeOff, k.landing, k.save, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.stepBack, k.stepForward, k.jumpBack, k.jumpForward},
		{k.takeOff, k.landing, k.save, k.copy},
		{k.marker, k.nextMarker, k.prevMarker},
		{k.addLine, k.removeLine, k.cycleLine, k.lineUp, k.lineDown, k.lineColor},
		{k.cycleRate, k.cycleFPS, k.history, k.users, k.quit},
	}
}
