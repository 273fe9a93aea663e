// package playback wraps the host media player behind a small controller
// that owns current time, duration, play state, stepping rate, and the
// enumerated playback speeds.
package playback

import (
	"fmt"
	"strconv"

	"github.com/jumptools/airtime/internal/shared"
)

// Player is the host media capability: something that can load a file,
// pause, seek, and report its clock. The mpv IPC client implements it; tests
// use an in-memory fake.
type Player interface {
	Load(path string) error
	SetPaused(paused bool) error
	Seek(seconds float64) error
	SetRate(rate float64) error
	Position() (float64, error)
	Duration() (float64, error)
}

// Rates is the fixed set of playback speeds the controller accepts.
var Rates = []float64{0.1, 0.25, 0.5, 1.0, 1.5, 2.0}

// DefaultFPS is the stepping rate used before the user picks one.
const DefaultFPS = 30

// FPSPresets are the stepping rates offered in the UI. Arbitrary positive
// integers are also accepted.
var FPSPresets = []int{30, 60, 120, 240}

// Controller tracks playback state on top of a Player.
//
// Stepping granularity derives entirely from the configured fps value, not
// from the video's native frame rate. That approximation is deliberate:
// the host player is treated as a clock, never probed for stream metadata.
type Controller struct {
	player Player

	source   string
	current  float64
	duration float64
	playing  bool
	rate     float64
	fps      int
}

// NewController wraps the given player. The zero position, paused state,
// 1.0x rate, and default fps apply until a video is loaded.
func NewController(player Player) *Controller {
	return &Controller{
		player: player,
		rate:   1.0,
		fps:    DefaultFPS,
	}
}

// Load points the player at a new source, resets time to zero, and pauses.
func (c *Controller) Load(source string) error {
	if err := c.player.Load(source); err != nil {
		return fmt.Errorf("failed to load %s: %w", source, err)
	}
	if err := c.player.SetPaused(true); err != nil {
		return fmt.Errorf("failed to pause after load: %w", err)
	}

	c.source = source
	c.current = 0
	c.duration = 0
	c.playing = false
	return nil
}

// Source returns the currently loaded path, empty when nothing is loaded.
func (c *Controller) Source() string {
	return c.source
}

// Loaded reports whether a video has been loaded.
func (c *Controller) Loaded() bool {
	return c.source != ""
}

// TogglePlay flips play/pause on the host player.
func (c *Controller) TogglePlay() error {
	if !c.Loaded() {
		return shared.ErrNoVideo
	}
	next := !c.playing
	if err := c.player.SetPaused(!next); err != nil {
		return fmt.Errorf("failed to toggle playback: %w", err)
	}
	c.playing = next
	return nil
}

// Playing reports the last observed play state.
func (c *Controller) Playing() bool {
	return c.playing
}

// Seek pauses playback and moves the clock to t, clamped to [0, duration].
func (c *Controller) Seek(t float64) error {
	if !c.Loaded() {
		return shared.ErrNoVideo
	}

	t = c.clamp(t)
	if err := c.player.SetPaused(true); err != nil {
		return fmt.Errorf("failed to pause for seek: %w", err)
	}
	c.playing = false

	if err := c.player.Seek(t); err != nil {
		return fmt.Errorf("failed to seek to %.3f: %w", t, err)
	}
	c.current = t
	return nil
}

// StepFrames pauses and moves the clock by n frames, where one frame is
// 1/fps seconds. Negative n steps backward. The result clamps to the
// video bounds.
func (c *Controller) StepFrames(n int) error {
	frame := 1.0 / float64(c.fps)
	return c.Seek(c.current + float64(n)*frame)
}

// SetRate applies one of the enumerated playback speeds directly to the
// host player. Off-list values are rejected.
func (c *Controller) SetRate(rate float64) error {
	if !validRate(rate) {
		return fmt.Errorf("%w: %.2f", shared.ErrInvalidRate, rate)
	}
	if err := c.player.SetRate(rate); err != nil {
		return fmt.Errorf("failed to set playback rate: %w", err)
	}
	c.rate = rate
	return nil
}

// Rate returns the current playback speed.
func (c *Controller) Rate() float64 {
	return c.rate
}

// CycleRate switches to the next enumerated speed, wrapping around.
func (c *Controller) CycleRate() error {
	for i, r := range Rates {
		if r == c.rate {
			return c.SetRate(Rates[(i+1)%len(Rates)])
		}
	}
	return c.SetRate(1.0)
}

// SetFPS sets the stepping rate. Values below 1 coerce to 1 rather than
// erroring; the original tool silently floors invalid input the same way.
func (c *Controller) SetFPS(fps int) {
	if fps < 1 {
		fps = 1
	}
	c.fps = fps
}

// FPS returns the configured stepping rate.
func (c *Controller) FPS() int {
	return c.fps
}

// CurrentTime returns the last observed playback position. This is the
// signal the jump session samples when marking take-off and landing.
func (c *Controller) CurrentTime() float64 {
	return c.current
}

// VideoDuration returns the last observed duration, 0 when unknown.
func (c *Controller) VideoDuration() float64 {
	return c.duration
}

// Sync refreshes position, duration, and play state from the host player.
// The TUI calls this on its poll tick.
func (c *Controller) Sync() error {
	if !c.Loaded() {
		return nil
	}

	pos, err := c.player.Position()
	if err != nil {
		return fmt.Errorf("failed to read position: %w", err)
	}
	dur, err := c.player.Duration()
	if err != nil {
		return fmt.Errorf("failed to read duration: %w", err)
	}

	c.current = pos
	if dur > 0 {
		c.duration = dur
	}
	return nil
}

func (c *Controller) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if c.duration > 0 && t > c.duration {
		return c.duration
	}
	return t
}

func validRate(rate float64) bool {
	for _, r := range Rates {
		if r == rate {
			return true
		}
	}
	return false
}

// ParseFPS converts user input into a usable stepping rate. Non-numeric or
// sub-1 values coerce to the minimum of 1 instead of producing an error.
func ParseFPS(input string) int {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
