package vexterm

// MouseReportingMode selects which mouse events the child process asked for
type MouseReportingMode int

const (
	MouseReportNone           MouseReportingMode = iota
	MouseReportX10                               // mode 9: button press only
	MouseReportVT200                             // mode 1000: press and release
	MouseReportVT200Highlight                    // mode 1001: highlight tracking
	MouseReportButtonEvent                       // mode 1002: press, release, drag
	MouseReportAnyEvent                          // mode 1003: all motion
)

// CursorShape is the visual style requested via DECSCUSR
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

// MouseState tracks mouse reporting configuration
type MouseState struct {
	Mode    MouseReportingMode
	Enabled bool
}

// CursorPositionState is a saved or live cursor location, 0-based
type CursorPositionState struct {
	X, Y int
}

// TerminalState holds everything about the terminal besides cell content:
// cursor, modes, current attributes and colors, and the scroll region.
// Margins are 0-based and inclusive.
type TerminalState struct {
	CursorX int
	CursorY int

	SavedCursor    CursorPositionState
	HasSavedCursor bool

	CursorVisible bool
	CursorBlink   bool
	CursorShape   CursorShape

	AutoWrap          bool
	OriginMode        bool
	InsertMode        bool
	ApplicationCursor bool
	BracketedPaste    bool
	ReverseVideo      bool

	Foreground Color
	Background Color
	Attrs      TextAttributes

	ScrollTop    int
	ScrollBottom int

	Mouse MouseState
}

// NewTerminalState returns the power-on state for a grid of the given
// height: cursor at the origin, auto-wrap on, default colors, scroll
// region covering the full screen.
func NewTerminalState(rows int) TerminalState {
	if rows < 1 {
		rows = 1
	}
	return TerminalState{
		CursorVisible: true,
		CursorBlink:   true,
		AutoWrap:      true,
		Foreground:    DefaultForeground,
		Background:    DefaultBackground,
		ScrollTop:     0,
		ScrollBottom:  rows - 1,
	}
}
