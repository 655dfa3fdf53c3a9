package cli

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// handleKey translates a tcell key event into the byte sequence the
// child expects and writes it to the PTY.
func (t *Terminal) handleKey(ev *tcell.EventKey) {
	state := t.session.State()

	var seq string
	switch ev.Key() {
	case tcell.KeyRune:
		seq = string(ev.Rune())
	case tcell.KeyEnter:
		seq = "\r"
	case tcell.KeyTab:
		seq = "\t"
	case tcell.KeyBacktab:
		seq = "\x1b[Z"
	case tcell.KeyEscape:
		seq = "\x1b"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		seq = "\x7f"
	case tcell.KeyUp:
		seq = cursorKey('A', state.ApplicationCursor)
	case tcell.KeyDown:
		seq = cursorKey('B', state.ApplicationCursor)
	case tcell.KeyRight:
		seq = cursorKey('C', state.ApplicationCursor)
	case tcell.KeyLeft:
		seq = cursorKey('D', state.ApplicationCursor)
	case tcell.KeyHome:
		seq = cursorKey('H', state.ApplicationCursor)
	case tcell.KeyEnd:
		seq = cursorKey('F', state.ApplicationCursor)
	case tcell.KeyInsert:
		seq = "\x1b[2~"
	case tcell.KeyDelete:
		seq = "\x1b[3~"
	case tcell.KeyPgUp:
		seq = "\x1b[5~"
	case tcell.KeyPgDn:
		seq = "\x1b[6~"
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4:
		seq = "\x1bO" + string(rune('P'+int(ev.Key()-tcell.KeyF1)))
	default:
		// Ctrl-A through Ctrl-Z and friends arrive as raw control codes
		if ev.Key() < 0x20 {
			seq = string(rune(ev.Key()))
		}
	}

	if seq == "" {
		return
	}
	if _, err := t.session.Write([]byte(seq)); err != nil {
		t.log.Warn("key write failed", zap.Error(err))
	}
}

// cursorKey picks the application (SS3) or normal (CSI) form
func cursorKey(final byte, application bool) string {
	if application {
		return "\x1bO" + string(rune(final))
	}
	return "\x1b[" + string(rune(final))
}

// handlePaste brackets pasted text when the child asked for it
func (t *Terminal) handlePaste(ev *tcell.EventPaste) {
	if !t.session.State().BracketedPaste {
		return
	}
	var seq string
	if ev.Start() {
		seq = "\x1b[200~"
	} else {
		seq = "\x1b[201~"
	}
	if _, err := t.session.Write([]byte(seq)); err != nil {
		t.log.Warn("paste write failed", zap.Error(err))
	}
}
