// package session tracks take-off and landing instants for a single jump
// and derives the measurement from them.
package session

import (
	"github.com/jumptools/airtime/internal/physics"
)

// State describes how far a measurement has progressed.
type State int

const (
	Idle     State = iota // no video loaded
	Ready                 // video loaded, nothing marked
	TookOff               // take-off marked, landing not yet
	Complete              // both instants marked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case TookOff:
		return "took off"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session holds the two sampled instants of one jump measurement.
//
// Both marks may be overwritten at any time; re-marking is always allowed.
// Landing may be marked before take-off, in which case the flight time
// clamps to zero and no height is reported.
type Session struct {
	loaded     bool
	takeOff    float64
	hasTakeOff bool
	landing    float64
	hasLanding bool
}

// New returns a Session in the Idle state.
func New() *Session {
	return &Session{}
}

// Load transitions the session to Ready for a freshly loaded video,
// clearing any previous marks.
func (s *Session) Load() {
	s.loaded = true
	s.hasTakeOff = false
	s.hasLanding = false
	s.takeOff = 0
	s.landing = 0
}

// Reset clears both marks but keeps the loaded video.
func (s *Session) Reset() {
	if !s.loaded {
		return
	}
	s.Load()
}

// State derives the current state from the recorded marks.
func (s *Session) State() State {
	switch {
	case !s.loaded:
		return Idle
	case s.hasTakeOff && s.hasLanding:
		return Complete
	case s.hasTakeOff:
		return TookOff
	default:
		return Ready
	}
}

// MarkTakeOff records the take-off instant, overwriting any prior value.
// Ignored while no video is loaded.
func (s *Session) MarkTakeOff(t float64) {
	if !s.loaded {
		return
	}
	s.takeOff = t
	s.hasTakeOff = true
	// Marking take-off after a completed measurement starts a new one.
	s.hasLanding = false
}

// MarkLanding records the landing instant, overwriting any prior value.
// There is no ordering enforcement against take-off.
func (s *Session) MarkLanding(t float64) {
	if !s.loaded {
		return
	}
	s.landing = t
	s.hasLanding = true
}

// TakeOff returns the take-off instant and whether one is set.
func (s *Session) TakeOff() (float64, bool) {
	return s.takeOff, s.hasTakeOff
}

// Landing returns the landing instant and whether one is set.
func (s *Session) Landing() (float64, bool) {
	return s.landing, s.hasLanding
}

// FlightTime returns max(0, landing−takeOff) when both instants are set,
// and 0 otherwise. It is never negative.
func (s *Session) FlightTime() float64 {
	if !s.hasTakeOff || !s.hasLanding {
		return 0
	}
	ft := s.landing - s.takeOff
	if ft < 0 {
		return 0
	}
	return ft
}

// Height returns the derived jump height in centimeters. The second return
// value is false when there is no measurable flight time, which renders as
// a "no result" placeholder rather than zero centimeters.
func (s *Session) Height() (float64, bool) {
	ft := s.FlightTime()
	if ft <= 0 {
		return 0, false
	}
	return physics.HeightFromFlightTime(ft), true
}

// Result is a completed measurement ready to be saved or shared.
type Result struct {
	FlightTime float64
	HeightCm   float64
}

// Result returns the current measurement. It reports false while there is
// no strictly positive flight time; saving and sharing are disabled then.
func (s *Session) Result() (Result, bool) {
	height, ok := s.Height()
	if !ok {
		return Result{}, false
	}
	return Result{FlightTime: s.FlightTime(), HeightCm: height}, true
}
