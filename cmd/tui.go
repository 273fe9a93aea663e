package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/jumptools/airtime/internal/mpv"
	"github.com/jumptools/airtime/internal/overlay"
	"github.com/jumptools/airtime/internal/playback"
	"github.com/jumptools/airtime/internal/session"
	"github.com/jumptools/airtime/internal/shared"
	"github.com/jumptools/airtime/internal/ui"
)

// Mark launches mpv on the given video and opens the interactive marking TUI.
func (r *Runner) Mark(ctx context.Context, cmd *cli.Command) error {
	videoPath := cmd.StringArg("video")
	if videoPath == "" {
		return fmt.Errorf("%w: video path", shared.ErrMissingArgument)
	}

	socketPath := cmd.String("socket")
	if socketPath == "" {
		socketPath = r.config.Playback.SocketPath
	}
	if socketPath == "" {
		socketPath = mpv.SocketPath()
	}

	proc, err := mpv.Launch(r.config.Playback.MPVBinary, socketPath, videoPath)
	if err != nil {
		return err
	}
	defer proc.Process.Kill()

	player, err := mpv.Dial(socketPath)
	if err != nil {
		return err
	}
	defer player.Close()

	controller := playback.NewController(player)
	if err := controller.Load(videoPath); err != nil {
		return err
	}

	fps := r.config.Playback.FPS
	if flagFPS := int(cmd.Int("fps")); flagFPS != 0 {
		fps = flagFPS
	}
	controller.SetFPS(fps)

	rate := r.config.Playback.Rate
	if cmd.Float("rate") != 0 {
		rate = cmd.Float("rate")
	}
	if rate != 0 {
		if err := controller.SetRate(rate); err != nil {
			r.logger.Warn("ignoring playback rate", "rate", rate, "err", err)
		}
	}

	users, history, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	sess := session.New()
	sess.Load()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/airtime-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ui.Deps{
		Controller:   controller,
		Session:      sess,
		Markers:      session.NewMarkers(),
		Lines:        overlay.NewLineSet(),
		Users:        users,
		History:      history,
		Logger:       fileLogger,
		PollInterval: time.Duration(r.config.Playback.PollIntervalMS) * time.Millisecond,
		CopyOnSave:   r.config.Share.CopyOnSave,
	})

	p := tea.NewProgram(model, tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// SetLogger swaps the Runner's logger, used when the TUI takes the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}
