package overlay

// Drag is a two-state interaction session scoped to one line: entered on
// press, exited on release. Move events are processed only while active.
// Single-pointer input serializes drags; the model does not enforce it.
type Drag struct {
	line   *Line
	active bool
}

// BeginDrag starts a drag session for the line with the given ID. Returns
// an inactive session when the line does not exist, so stray presses are
// harmless.
func (s *LineSet) BeginDrag(id string) *Drag {
	line, ok := s.Get(id)
	if !ok {
		return &Drag{}
	}
	return &Drag{line: line, active: true}
}

// Active reports whether the session is still accepting move events.
func (d *Drag) Active() bool {
	return d.active
}

// MoveTo recomputes the line position from a pointer move event.
// pointerY is in the same coordinate space as containerTop; the position
// becomes the pointer's offset into the container, clamped to its bounds,
// expressed as a percentage.
func (d *Drag) MoveTo(pointerY, containerTop, containerHeight float64) {
	if !d.active || containerHeight <= 0 {
		return
	}

	offset := pointerY - containerTop
	if offset < 0 {
		offset = 0
	}
	if offset > containerHeight {
		offset = containerHeight
	}

	d.line.TopPercent = offset / containerHeight * 100
}

// End exits the drag session. Further moves are ignored.
func (d *Drag) End() {
	d.active = false
}
