package vexterm

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"go.uber.org/zap"
)

const readBufferSize = 4096

// SessionOptions configures a terminal session. Zero values take
// defaults.
type SessionOptions struct {
	Command string   // program to run; default $SHELL, then /bin/sh
	Args    []string // arguments to the program
	Env     []string // extra environment entries, appended to os.Environ
	Dir     string   // working directory; default inherited

	Cols          int // default 80
	Rows          int // default 24
	MaxScrollback int // default 1000

	// OnUpdate is called after each chunk of child output has been
	// applied to the screen, with the session lock released. Frontends
	// use it to schedule a redraw.
	OnUpdate func()

	Logger *zap.Logger // default no-op
}

func (o *SessionOptions) setDefaults() {
	if o.Command == "" {
		o.Command = os.Getenv("SHELL")
	}
	if o.Command == "" {
		o.Command = "/bin/sh"
	}
	if o.Cols <= 0 {
		o.Cols = 80
	}
	if o.Rows <= 0 {
		o.Rows = 24
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Session ties the parser and renderer to a PTY-backed child process:
// child output flows through the parser into the renderer, user input is
// written to the PTY, and terminal queries (DA, DSR) are answered on the
// child's behalf.
//
// The parser/renderer pair is single-threaded by design; the session
// serializes the read loop and frontend access behind one mutex.
type Session struct {
	opts SessionOptions
	log  *zap.Logger

	mu       sync.Mutex
	parser   *Parser
	renderer *Renderer

	ptmx *os.File

	done     chan struct{}
	waitErr  error
	waitOnce sync.Once
	proc     *exec.Cmd
}

// NewSession creates a session and starts the child process on a PTY of
// the configured size.
func NewSession(opts SessionOptions) (*Session, error) {
	opts.setDefaults()

	parser := NewParser()
	parser.SetLogger(opts.Logger)

	s := &Session{
		opts:   opts,
		log:    opts.Logger,
		parser: parser,
		renderer: NewRenderer(RendererOptions{
			Cols:          opts.Cols,
			Rows:          opts.Rows,
			MaxScrollback: opts.MaxScrollback,
		}),
		done: make(chan struct{}),
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Rows),
		Cols: uint16(opts.Cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s on pty: %w", opts.Command, err)
	}

	s.ptmx = ptmx
	s.proc = cmd
	s.log.Info("session started",
		zap.String("command", opts.Command),
		zap.Int("cols", opts.Cols),
		zap.Int("rows", opts.Rows))

	go s.readLoop()
	return s, nil
}

// readLoop pumps child output through the parser into the renderer until
// the PTY closes.
func (s *Session) readLoop() {
	defer close(s.done)
	buf := make([]byte, readBufferSize)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.apply(buf[:n])
			if s.opts.OnUpdate != nil {
				s.opts.OnUpdate()
			}
		}
		if err != nil {
			if err != io.EOF {
				s.log.Debug("pty read ended", zap.Error(err))
			}
			return
		}
	}
}

// apply parses a chunk, applies the commands, and answers any queries
func (s *Session) apply(data []byte) {
	s.mu.Lock()
	cmds := s.parser.ProcessInput(data)
	s.renderer.HandleCommands(cmds)
	replies := s.collectReplies(cmds)
	s.mu.Unlock()

	for _, reply := range replies {
		if _, err := s.ptmx.Write([]byte(reply)); err != nil {
			s.log.Debug("query reply failed", zap.Error(err))
			return
		}
	}
}

// collectReplies builds responses for DA and DSR queries. Caller holds
// the lock; the writes happen after it is released.
func (s *Session) collectReplies(cmds []Command) []string {
	var replies []string
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case DeviceAttributes:
			// VT100 with advanced video option
			replies = append(replies, "\x1b[?1;2c")
		case DeviceStatusReport:
			switch c.Mode {
			case 5: // Operating status: OK
				replies = append(replies, "\x1b[0n")
			case 6: // Cursor position report, 1-based
				state := s.renderer.State()
				row := state.CursorY + 1
				if state.OriginMode {
					row = state.CursorY - state.ScrollTop + 1
				}
				col := state.CursorX + 1
				replies = append(replies, "\x1b["+itoa(row)+";"+itoa(col)+"R")
			}
		}
	}
	return replies
}

// Write sends user input to the child process
func (s *Session) Write(data []byte) (int, error) {
	n, err := s.ptmx.Write(data)
	if err != nil {
		return n, fmt.Errorf("write to pty: %w", err)
	}
	return n, nil
}

// Resize propagates a new size to the renderer and the OS-level PTY
func (s *Session) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("resize to %dx%d: size must be positive", cols, rows)
	}
	s.mu.Lock()
	s.renderer.Resize(cols, rows)
	s.mu.Unlock()

	if err := pty.Setsize(s.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	}); err != nil {
		return fmt.Errorf("set pty size: %w", err)
	}
	return nil
}

// View runs fn with exclusive access to the renderer. Frontends use it
// to read screen content and dirty regions for a frame.
func (s *Session) View(fn func(*Renderer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.renderer)
}

// State returns a snapshot of the terminal state
func (s *Session) State() TerminalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.State()
}

// ParserStats returns the parser diagnostics counters
func (s *Session) ParserStats() ParserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parser.Stats()
}

// Done is closed when the child's output stream ends
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the child exits and returns its exit error, if any
func (s *Session) Wait() error {
	<-s.done
	s.waitOnce.Do(func() {
		s.waitErr = s.proc.Wait()
	})
	return s.waitErr
}

// Close terminates the session: closes the PTY and reaps the child
func (s *Session) Close() error {
	err := s.ptmx.Close()
	if s.proc.Process != nil {
		_ = s.proc.Process.Kill()
	}
	s.waitOnce.Do(func() {
		s.waitErr = s.proc.Wait()
	})
	if err != nil {
		return fmt.Errorf("close pty: %w", err)
	}
	return nil
}
