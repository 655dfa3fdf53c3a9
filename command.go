package vexterm

// Command is the closed set of terminal operations produced by the Parser
// and consumed by the Renderer. It is a tagged union: every implementation
// lives in this file, and the Renderer dispatches with a type switch.
type Command interface {
	isCommand()
}

// Print writes one character at the cursor. The parser emits exactly one
// Print per non-escape input byte; control characters (CR, LF, BS, HT)
// receive their cursor semantics in the renderer.
type Print struct{ Char rune }

// Cursor movement (counts are 1 when the parameter was omitted).
type (
	// CursorUp moves the cursor up N rows (CUU)
	CursorUp struct{ N int }
	// CursorDown moves the cursor down N rows (CUD)
	CursorDown struct{ N int }
	// CursorForward moves the cursor right N columns (CUF)
	CursorForward struct{ N int }
	// CursorBackward moves the cursor left N columns (CUB)
	CursorBackward struct{ N int }
	// CursorNextLine moves down N rows and to column 0 (CNL)
	CursorNextLine struct{ N int }
	// CursorPreviousLine moves up N rows and to column 0 (CPL)
	CursorPreviousLine struct{ N int }
	// CursorColumn moves to an absolute 1-based column (CHA)
	CursorColumn struct{ Col int }
	// CursorRow moves to an absolute 1-based row (VPA)
	CursorRow struct{ Row int }
	// CursorPosition moves to an absolute 1-based row/column (CUP/HVP).
	// Honors origin mode when a scroll region is active.
	CursorPosition struct{ Row, Col int }
	// SaveCursor stores the cursor position in the single save slot (DECSC/SCP)
	SaveCursor struct{}
	// RestoreCursor restores the saved position; no-op if nothing saved (DECRC/RCP)
	RestoreCursor struct{}
	// Index moves down one row, scrolling if at the bottom margin (ESC D)
	Index struct{}
	// ReverseIndex moves up one row, scrolling down if at the top margin (ESC M)
	ReverseIndex struct{}
)

// Erase and edit operations.
type (
	// EraseInDisplay erases screen content (ED): 0=cursor→end,
	// 1=start→cursor inclusive, 2=all
	EraseInDisplay struct{ Mode int }
	// EraseInLine erases line content (EL) with the same mode values
	EraseInLine struct{ Mode int }
	// EraseCharacters blanks N cells at the cursor without moving it (ECH)
	EraseCharacters struct{ N int }
	// InsertCharacters shifts the rest of the row right by N blanks (ICH)
	InsertCharacters struct{ N int }
	// DeleteCharacters removes N cells, pulling the rest of the row left (DCH)
	DeleteCharacters struct{ N int }
	// InsertLines inserts N blank rows at the cursor within the scroll region (IL)
	InsertLines struct{ N int }
	// DeleteLines deletes N rows at the cursor within the scroll region (DL)
	DeleteLines struct{ N int }
	// ScrollUp scrolls the scroll region up N rows (SU)
	ScrollUp struct{ N int }
	// ScrollDown scrolls the scroll region down N rows (SD)
	ScrollDown struct{ N int }
)

// SGR attribute commands.
type (
	// ResetAttributes resets all attributes and both colors to default (SGR 0)
	ResetAttributes struct{}

	SetBold          struct{}
	SetDim           struct{}
	SetItalic        struct{}
	SetUnderline     struct{}
	SetBlink         struct{}
	SetReverse       struct{}
	SetHidden        struct{}
	SetStrikethrough struct{}

	// ResetIntensity clears bold and dim (SGR 22)
	ResetIntensity     struct{}
	ResetItalic        struct{}
	ResetUnderline     struct{}
	ResetBlink         struct{}
	ResetReverse       struct{}
	ResetHidden        struct{}
	ResetStrikethrough struct{}

	// SetForegroundColor changes the current foreground color
	SetForegroundColor struct{ Color Color }
	// SetBackgroundColor changes the current background color
	SetBackgroundColor struct{ Color Color }
	// ResetForegroundColor restores the default foreground (SGR 39)
	ResetForegroundColor struct{}
	// ResetBackgroundColor restores the default background (SGR 49)
	ResetBackgroundColor struct{}
)

// Mode commands. Each carries the set/reset direction from CSI h / CSI l.
type (
	SetApplicationCursorKeys struct{ On bool }
	SetInsertMode            struct{ On bool }
	SetReverseVideo          struct{ On bool }
	SetOriginMode            struct{ On bool }
	SetAutoWrap              struct{ On bool }
	SetCursorBlink           struct{ On bool }
	SetCursorVisible         struct{ On bool }
	SetBracketedPaste        struct{ On bool }

	// SetMouseTracking selects a mouse reporting mode (modes 1000-1003)
	SetMouseTracking struct{ Mode MouseReportingMode }
	// MouseTracking toggles tracking without changing the reporting mode
	MouseTracking struct{ Enabled bool }

	// SetAlternateScreen switches between the primary and alternate
	// buffers (modes 47/1047/1049). SaveCursor is true for 1049, which
	// also saves/restores the cursor around the switch.
	SetAlternateScreen struct {
		On         bool
		SaveCursor bool
	}
)

// Queries and remaining controls.
type (
	// SetScrollRegion sets 1-based top/bottom margins (DECSTBM). Bottom 0
	// means the last row. Invalid regions are silently ignored by the
	// renderer.
	SetScrollRegion struct{ Top, Bottom int }
	// SetCursorStyle selects the cursor shape and blink (DECSCUSR)
	SetCursorStyle struct {
		Shape CursorShape
		Blink bool
	}
	// DeviceAttributes asks who we are (DA); answered by the session
	DeviceAttributes struct{}
	// DeviceStatusReport asks for status (DSR 5) or cursor position (DSR 6)
	DeviceStatusReport struct{ Mode int }
	// FullReset restores the initial terminal state (RIS)
	FullReset struct{}
)

func (Print) isCommand()              {}
func (CursorUp) isCommand()           {}
func (CursorDown) isCommand()         {}
func (CursorForward) isCommand()      {}
func (CursorBackward) isCommand()     {}
func (CursorNextLine) isCommand()     {}
func (CursorPreviousLine) isCommand() {}
func (CursorColumn) isCommand()       {}
func (CursorRow) isCommand()          {}
func (CursorPosition) isCommand()     {}
func (SaveCursor) isCommand()         {}
func (RestoreCursor) isCommand()      {}
func (Index) isCommand()              {}
func (ReverseIndex) isCommand()       {}

func (EraseInDisplay) isCommand()   {}
func (EraseInLine) isCommand()      {}
func (EraseCharacters) isCommand()  {}
func (InsertCharacters) isCommand() {}
func (DeleteCharacters) isCommand() {}
func (InsertLines) isCommand()      {}
func (DeleteLines) isCommand()      {}
func (ScrollUp) isCommand()         {}
func (ScrollDown) isCommand()       {}

func (ResetAttributes) isCommand()      {}
func (SetBold) isCommand()              {}
func (SetDim) isCommand()               {}
func (SetItalic) isCommand()            {}
func (SetUnderline) isCommand()         {}
func (SetBlink) isCommand()             {}
func (SetReverse) isCommand()           {}
func (SetHidden) isCommand()            {}
func (SetStrikethrough) isCommand()     {}
func (ResetIntensity) isCommand()       {}
func (ResetItalic) isCommand()          {}
func (ResetUnderline) isCommand()       {}
func (ResetBlink) isCommand()           {}
func (ResetReverse) isCommand()         {}
func (ResetHidden) isCommand()          {}
func (ResetStrikethrough) isCommand()   {}
func (SetForegroundColor) isCommand()   {}
func (SetBackgroundColor) isCommand()   {}
func (ResetForegroundColor) isCommand() {}
func (ResetBackgroundColor) isCommand() {}

func (SetApplicationCursorKeys) isCommand() {}
func (SetInsertMode) isCommand()            {}
func (SetReverseVideo) isCommand()          {}
func (SetOriginMode) isCommand()            {}
func (SetAutoWrap) isCommand()              {}
func (SetCursorBlink) isCommand()           {}
func (SetCursorVisible) isCommand()         {}
func (SetBracketedPaste) isCommand()        {}
func (SetMouseTracking) isCommand()         {}
func (MouseTracking) isCommand()            {}
func (SetAlternateScreen) isCommand()       {}

func (SetScrollRegion) isCommand()    {}
func (SetCursorStyle) isCommand()     {}
func (DeviceAttributes) isCommand()   {}
func (DeviceStatusReport) isCommand() {}
func (FullReset) isCommand()          {}
