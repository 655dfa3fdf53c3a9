package vexterm

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parser states
type parserState int

const (
	stateGround       parserState = iota
	stateEscape                   // After ESC
	stateCSI                      // After ESC [
	stateCSIParam                 // Reading CSI parameters
	stateCSIIgnore                // Malformed CSI, discarded through its final byte
	stateOSC                      // After ESC ] (payload discarded)
	stateDCS                      // After ESC P (payload discarded)
	stateStringEscape             // After ESC inside OSC/DCS, expecting ST
	stateCharset                  // After ESC ( or ESC )
)

// ParserStats are diagnostics counters. They never affect the command
// stream; they exist so a session can surface malformed-sequence rates.
type ParserStats struct {
	BytesProcessed   uint64
	CommandsEmitted  uint64
	UnknownSequences uint64
}

// Parser is the escape-sequence state machine. It consumes raw PTY bytes
// in arbitrary chunks and emits ordered Commands; sequences split across
// chunk boundaries resume where they left off. It never fails: malformed
// input yields no command and returns the parser to ground.
//
// Bytes are treated as single-byte glyphs. Values >= 0x80 pass through
// as-is with no UTF-8 decoding.
type Parser struct {
	state parserState

	// CSI accumulator
	params     []int
	curParam   strings.Builder
	csiPrivate byte // '?', '>' or '!' prefix, accepted but not distinguished
	csiInter   byte // intermediate byte, e.g. SP in DECSCUSR

	stats ParserStats
	log   *zap.Logger
}

// NewParser creates a parser in the ground state
func NewParser() *Parser {
	return &Parser{
		params: make([]int, 0, 16),
		log:    zap.NewNop(),
	}
}

// SetLogger installs a logger for malformed-sequence diagnostics.
// A nil logger restores the no-op default.
func (p *Parser) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	p.log = log
}

// Stats returns a snapshot of the diagnostics counters
func (p *Parser) Stats() ParserStats {
	return p.stats
}

// ProcessInput consumes a chunk of input and returns the commands it
// completes, in input order. Partial sequences at the end of the chunk
// are carried over to the next call.
func (p *Parser) ProcessInput(data []byte) []Command {
	var cmds []Command
	for _, b := range data {
		cmds = p.processByte(cmds, b)
	}
	p.stats.BytesProcessed += uint64(len(data))
	p.stats.CommandsEmitted += uint64(len(cmds))
	return cmds
}

func (p *Parser) processByte(cmds []Command, b byte) []Command {
	switch p.state {
	case stateGround:
		if b == 0x1B {
			p.state = stateEscape
			return cmds
		}
		// One Print per non-escape byte. Control characters get their
		// cursor semantics in the renderer.
		return append(cmds, Print{Char: rune(b)})

	case stateEscape:
		return p.handleEscape(cmds, b)

	case stateCSI, stateCSIParam:
		return p.handleCSI(cmds, b)

	case stateCSIIgnore:
		// Discard up to and including the final byte
		if b >= 0x40 && b <= 0x7E {
			p.state = stateGround
		} else if b == 0x1B {
			p.state = stateEscape
		}
		return cmds

	case stateOSC, stateDCS:
		// Payload is consumed, never interpreted
		switch b {
		case 0x07:
			p.state = stateGround
		case 0x1B:
			p.state = stateStringEscape
		}
		return cmds

	case stateStringEscape:
		// ESC \ is the string terminator; any other byte aborts the
		// string and starts a fresh escape sequence.
		if b == '\\' {
			p.state = stateGround
			return cmds
		}
		return p.handleEscape(cmds, b)

	case stateCharset:
		// Consume the designation character
		p.state = stateGround
		return cmds
	}
	p.state = stateGround
	return cmds
}

func (p *Parser) handleEscape(cmds []Command, b byte) []Command {
	switch b {
	case '[': // CSI
		p.state = stateCSI
		p.params = p.params[:0]
		p.curParam.Reset()
		p.csiPrivate = 0
		p.csiInter = 0
		return cmds
	case ']': // OSC
		p.state = stateOSC
		return cmds
	case 'P': // DCS
		p.state = stateDCS
		return cmds
	case '(', ')': // Character set designation
		p.state = stateCharset
		return cmds
	case '7': // DECSC
		p.state = stateGround
		return append(cmds, SaveCursor{})
	case '8': // DECRC
		p.state = stateGround
		return append(cmds, RestoreCursor{})
	case 'D': // IND
		p.state = stateGround
		return append(cmds, Index{})
	case 'M': // RI
		p.state = stateGround
		return append(cmds, ReverseIndex{})
	case 'E': // NEL
		p.state = stateGround
		return append(cmds, CursorNextLine{N: 1})
	case 'c': // RIS
		p.state = stateGround
		return append(cmds, FullReset{})
	case '=', '>': // Keypad modes, accepted and ignored
		p.state = stateGround
		return cmds
	default:
		p.stats.UnknownSequences++
		p.log.Debug("unknown escape sequence", zap.Uint8("byte", b))
		p.state = stateGround
		return cmds
	}
}

func (p *Parser) handleCSI(cmds []Command, b byte) []Command {
	if p.state == stateCSI {
		// First byte after ESC [
		if b == '?' || b == '>' || b == '!' {
			p.csiPrivate = b
			p.state = stateCSIParam
			return cmds
		}
		if b == '<' {
			p.state = stateGround
			return append(cmds, MouseTracking{Enabled: true})
		}
		p.state = stateCSIParam
	}

	if b >= '0' && b <= '9' {
		p.curParam.WriteByte(b)
		return cmds
	}

	if b == ';' {
		// Separator finalizes the current parameter, empty means 0
		p.pushParam()
		return cmds
	}

	if b == ':' {
		// Colon sub-parameters (ISO 8613-6 SGR forms) are not supported.
		// The whole sequence is discarded through its final byte so no
		// partial or mangled command ever applies.
		p.stats.UnknownSequences++
		p.log.Debug("sub-parameter sequence dropped", zap.Ints("params", p.params))
		p.params = p.params[:0]
		p.curParam.Reset()
		p.state = stateCSIIgnore
		return cmds
	}

	// Intermediate bytes, e.g. the SP in DECSCUSR
	if b >= 0x20 && b <= 0x2F {
		p.flushParam()
		p.csiInter = b
		return cmds
	}

	// Final byte: a pending parameter is finalized only if non-empty,
	// so omitted trailing parameters stay omitted.
	p.flushParam()
	cmds = p.dispatchCSI(cmds, b)
	p.state = stateGround
	return cmds
}

// pushParam finalizes the current parameter unconditionally (empty -> 0)
func (p *Parser) pushParam() {
	s := p.curParam.String()
	n, _ := strconv.Atoi(s)
	p.params = append(p.params, n)
	p.curParam.Reset()
}

// flushParam finalizes the current parameter only if non-empty
func (p *Parser) flushParam() {
	if p.curParam.Len() > 0 {
		p.pushParam()
	}
}

// param returns the parameter at idx, or def when it was omitted.
// Explicit zeros are kept; the renderer clamps.
func (p *Parser) param(idx, def int) int {
	if idx < len(p.params) {
		return p.params[idx]
	}
	return def
}

func (p *Parser) dispatchCSI(cmds []Command, final byte) []Command {
	switch final {
	case 'A': // CUU
		return append(cmds, CursorUp{N: p.param(0, 1)})
	case 'B': // CUD
		return append(cmds, CursorDown{N: p.param(0, 1)})
	case 'C': // CUF
		return append(cmds, CursorForward{N: p.param(0, 1)})
	case 'D': // CUB
		return append(cmds, CursorBackward{N: p.param(0, 1)})
	case 'E': // CNL
		return append(cmds, CursorNextLine{N: p.param(0, 1)})
	case 'F': // CPL
		return append(cmds, CursorPreviousLine{N: p.param(0, 1)})
	case 'G': // CHA
		return append(cmds, CursorColumn{Col: p.param(0, 1)})
	case 'd': // VPA
		return append(cmds, CursorRow{Row: p.param(0, 1)})
	case 'H', 'f': // CUP / HVP
		return append(cmds, CursorPosition{Row: p.param(0, 1), Col: p.param(1, 1)})
	case 'J': // ED
		return append(cmds, EraseInDisplay{Mode: p.param(0, 0)})
	case 'K': // EL
		return append(cmds, EraseInLine{Mode: p.param(0, 0)})
	case 'L': // IL
		return append(cmds, InsertLines{N: p.param(0, 1)})
	case 'M': // DL
		return append(cmds, DeleteLines{N: p.param(0, 1)})
	case '@': // ICH
		return append(cmds, InsertCharacters{N: p.param(0, 1)})
	case 'P': // DCH
		return append(cmds, DeleteCharacters{N: p.param(0, 1)})
	case 'X': // ECH
		return append(cmds, EraseCharacters{N: p.param(0, 1)})
	case 'S': // SU
		return append(cmds, ScrollUp{N: p.param(0, 1)})
	case 'T': // SD
		return append(cmds, ScrollDown{N: p.param(0, 1)})
	case 'm': // SGR
		return p.dispatchSGR(cmds)
	case 'h': // SM / DECSET
		return p.dispatchModes(cmds, true)
	case 'l': // RM / DECRST
		return p.dispatchModes(cmds, false)
	case 's': // SCP
		return append(cmds, SaveCursor{})
	case 'u': // RCP
		return append(cmds, RestoreCursor{})
	case 'r': // DECSTBM; omitted bottom means the last row
		return append(cmds, SetScrollRegion{Top: p.param(0, 1), Bottom: p.param(1, 0)})
	case 'c': // DA
		return append(cmds, DeviceAttributes{})
	case 'n': // DSR
		return append(cmds, DeviceStatusReport{Mode: p.param(0, 0)})
	case 'q': // DECSCUSR
		if p.csiInter == ' ' {
			return append(cmds, cursorStyleCommand(p.param(0, 1)))
		}
		p.stats.UnknownSequences++
		return cmds
	default:
		p.stats.UnknownSequences++
		p.log.Debug("unknown control sequence",
			zap.Uint8("final", final),
			zap.Ints("params", p.params))
		return cmds
	}
}

func cursorStyleCommand(style int) Command {
	switch style {
	case 2:
		return SetCursorStyle{Shape: CursorShapeBlock, Blink: false}
	case 3:
		return SetCursorStyle{Shape: CursorShapeUnderline, Blink: true}
	case 4:
		return SetCursorStyle{Shape: CursorShapeUnderline, Blink: false}
	case 5:
		return SetCursorStyle{Shape: CursorShapeBar, Blink: true}
	case 6:
		return SetCursorStyle{Shape: CursorShapeBar, Blink: false}
	default: // 0 and 1 are the blinking block
		return SetCursorStyle{Shape: CursorShapeBlock, Blink: true}
	}
}

// dispatchModes expands CSI h/l. The '?' private prefix is accepted but
// not distinguished from public modes; the numbers do not collide in
// practice.
func (p *Parser) dispatchModes(cmds []Command, set bool) []Command {
	for _, mode := range p.params {
		switch mode {
		case 1: // DECCKM
			cmds = append(cmds, SetApplicationCursorKeys{On: set})
		case 4: // IRM
			cmds = append(cmds, SetInsertMode{On: set})
		case 5: // DECSCNM
			cmds = append(cmds, SetReverseVideo{On: set})
		case 6: // DECOM
			cmds = append(cmds, SetOriginMode{On: set})
		case 7: // DECAWM
			cmds = append(cmds, SetAutoWrap{On: set})
		case 12: // Cursor blink
			cmds = append(cmds, SetCursorBlink{On: set})
		case 25: // DECTCEM
			cmds = append(cmds, SetCursorVisible{On: set})
		case 47, 1047: // Alternate screen
			cmds = append(cmds, SetAlternateScreen{On: set})
		case 1049: // Alternate screen with cursor save
			cmds = append(cmds, SetAlternateScreen{On: set, SaveCursor: true})
		case 1000:
			cmds = append(cmds, mouseModeCommand(set, MouseReportX10))
		case 1001:
			cmds = append(cmds, mouseModeCommand(set, MouseReportVT200Highlight))
		case 1002:
			cmds = append(cmds, mouseModeCommand(set, MouseReportVT200))
		case 1003:
			cmds = append(cmds, mouseModeCommand(set, MouseReportAnyEvent))
		case 2004:
			cmds = append(cmds, SetBracketedPaste{On: set})
		default:
			p.stats.UnknownSequences++
			p.log.Debug("unknown mode", zap.Int("mode", mode), zap.Bool("set", set))
		}
	}
	return cmds
}

func mouseModeCommand(set bool, mode MouseReportingMode) Command {
	if !set {
		mode = MouseReportNone
	}
	return SetMouseTracking{Mode: mode}
}

// dispatchSGR expands an SGR sequence. Each parameter maps independently;
// 38 and 48 consume extra parameters for extended colors.
func (p *Parser) dispatchSGR(cmds []Command) []Command {
	if len(p.params) == 0 {
		return append(cmds, ResetAttributes{})
	}

	for i := 0; i < len(p.params); i++ {
		switch param := p.params[i]; {
		case param == 0:
			cmds = append(cmds, ResetAttributes{})
		case param == 1:
			cmds = append(cmds, SetBold{})
		case param == 2:
			cmds = append(cmds, SetDim{})
		case param == 3:
			cmds = append(cmds, SetItalic{})
		case param == 4:
			cmds = append(cmds, SetUnderline{})
		case param == 5 || param == 6:
			cmds = append(cmds, SetBlink{})
		case param == 7:
			cmds = append(cmds, SetReverse{})
		case param == 8:
			cmds = append(cmds, SetHidden{})
		case param == 9:
			cmds = append(cmds, SetStrikethrough{})
		case param == 21 || param == 22:
			cmds = append(cmds, ResetIntensity{})
		case param == 23:
			cmds = append(cmds, ResetItalic{})
		case param == 24:
			cmds = append(cmds, ResetUnderline{})
		case param == 25:
			cmds = append(cmds, ResetBlink{})
		case param == 27:
			cmds = append(cmds, ResetReverse{})
		case param == 28:
			cmds = append(cmds, ResetHidden{})
		case param == 29:
			cmds = append(cmds, ResetStrikethrough{})
		case param >= 30 && param <= 37:
			cmds = append(cmds, SetForegroundColor{Color: NamedColor(param - 30)})
		case param == 38:
			color, consumed := p.extendedColor(i)
			cmds = append(cmds, SetForegroundColor{Color: color})
			i += consumed
		case param == 39:
			cmds = append(cmds, ResetForegroundColor{})
		case param >= 40 && param <= 47:
			cmds = append(cmds, SetBackgroundColor{Color: NamedColor(param - 40)})
		case param == 48:
			color, consumed := p.extendedColor(i)
			cmds = append(cmds, SetBackgroundColor{Color: color})
			i += consumed
		case param == 49:
			cmds = append(cmds, ResetBackgroundColor{})
		case param >= 90 && param <= 97:
			cmds = append(cmds, SetForegroundColor{Color: NamedColor(param - 90 + 8)})
		case param >= 100 && param <= 107:
			cmds = append(cmds, SetBackgroundColor{Color: NamedColor(param - 100 + 8)})
		default:
			// Unknown SGR parameters are dropped
		}
	}
	return cmds
}

// extendedColor parses the parameters after an SGR 38/48 at index i:
// sub-selector 5 takes one palette index, 2 takes an RGB triple. A
// malformed or incomplete list falls back to the default color and
// consumes the remaining parameters.
func (p *Parser) extendedColor(i int) (Color, int) {
	rest := p.params[i+1:]
	if len(rest) >= 2 && rest[0] == 5 {
		return IndexColor(rest[1]), 2
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return TrueColor(clampByte(rest[1]), clampByte(rest[2]), clampByte(rest[3])), 4
	}
	p.stats.UnknownSequences++
	return Color{Type: ColorTypeDefault}, len(rest)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
