// Package cli is a tcell-based frontend for the vexterm core: it runs a
// child process in a Session, draws the screen buffer into the hosting
// terminal, and feeds key, paste, and resize events back to the PTY.
package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/vexterm/vexterm"
)

// Options configures the frontend. Zero values take defaults.
type Options struct {
	Command string   // program to run; default $SHELL
	Args    []string // arguments to the program

	MaxScrollback int // scrollback rows kept by the core

	Logger *zap.Logger // default no-op
}

// Terminal owns the tcell screen and the session it displays
type Terminal struct {
	screen  tcell.Screen
	session *vexterm.Session
	drawer  *drawer
	log     *zap.Logger

	updates chan struct{}
}

// Run creates a terminal, runs the child until it exits or the user
// closes the frontend, and restores the hosting terminal on return.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnablePaste()

	cols, rows := screen.Size()

	t := &Terminal{
		screen:  screen,
		drawer:  newDrawer(screen),
		log:     opts.Logger,
		updates: make(chan struct{}, 1),
	}

	session, err := vexterm.NewSession(vexterm.SessionOptions{
		Command:       opts.Command,
		Args:          opts.Args,
		Cols:          cols,
		Rows:          rows,
		MaxScrollback: opts.MaxScrollback,
		OnUpdate:      t.notify,
		Logger:        opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	t.session = session
	defer session.Close()

	return t.eventLoop()
}

// notify coalesces redraw requests from the session's read loop
func (t *Terminal) notify() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}

func (t *Terminal) eventLoop() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.draw()
	for {
		select {
		case <-t.session.Done():
			return t.session.Wait()

		case <-t.updates:
			t.draw()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows := ev.Size()
				if err := t.session.Resize(cols, rows); err != nil {
					t.log.Warn("resize failed", zap.Error(err))
				}
				t.screen.Sync()
				t.draw()
			case *tcell.EventKey:
				t.handleKey(ev)
			case *tcell.EventPaste:
				t.handlePaste(ev)
			}
		}
	}
}

// draw renders the dirty regions of the screen buffer and places the
// cursor, then acknowledges the dirty list.
func (t *Terminal) draw() {
	t.session.View(func(r *vexterm.Renderer) {
		t.drawer.drawDirty(r)
		state := r.State()
		if state.CursorVisible {
			x, y := r.CursorPos()
			t.screen.ShowCursor(x, y)
		} else {
			t.screen.HideCursor()
		}
		r.ClearDirtyRegions()
	})
	t.screen.Show()
}
