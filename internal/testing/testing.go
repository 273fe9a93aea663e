// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"testing"
)

// FakePlayer is an in-memory test double for playback.Player. It models a
// host media element with a fixed duration.
type FakePlayer struct {
	Source   string
	Paused   bool
	Pos      float64
	Dur      float64
	Rate     float64
	FailNext bool
}

// NewFakePlayer returns a paused fake player reporting the given duration.
func NewFakePlayer(duration float64) *FakePlayer {
	return &FakePlayer{Paused: true, Dur: duration, Rate: 1.0}
}

func (p *FakePlayer) fail() error {
	if p.FailNext {
		p.FailNext = false
		return errors.New("player failure injected")
	}
	return nil
}

func (p *FakePlayer) Load(path string) error {
	if err := p.fail(); err != nil {
		return err
	}
	p.Source = path
	p.Pos = 0
	p.Paused = true
	return nil
}

func (p *FakePlayer) SetPaused(paused bool) error {
	if err := p.fail(); err != nil {
		return err
	}
	p.Paused = paused
	return nil
}

func (p *FakePlayer) Seek(seconds float64) error {
	if err := p.fail(); err != nil {
		return err
	}
	p.Pos = seconds
	return nil
}

func (p *FakePlayer) SetRate(rate float64) error {
	if err := p.fail(); err != nil {
		return err
	}
	p.Rate = rate
	return nil
}

func (p *FakePlayer) Position() (float64, error) {
	if err := p.fail(); err != nil {
		return 0, err
	}
	return p.Pos, nil
}

func (p *FakePlayer) Duration() (float64, error) {
	if err := p.fail(); err != nil {
		return 0, err
	}
	return p.Dur, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// AssertFloatNear fails the test when got is not within tolerance of want.
func AssertFloatNear(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("got %v, want %v (±%v)", got, want, tolerance)
	}
}
