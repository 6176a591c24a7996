package vtengine

import (
	"strconv"
	"unicode/utf8"
)

// CommandKind tags the variant held by a Command.
type CommandKind int

const (
	CmdPrint CommandKind = iota
	CmdControl
	CmdCSI
	CmdOSC
)

// Command is the tagged sum emitted by the Parser. Only the fields
// relevant to Kind are meaningful; the rest are zero value.
//
//   - CmdPrint:   Ch
//   - CmdControl: Control
//   - CmdCSI:     FinalByte, Params, Intermediates
//   - CmdOSC:     OSCCommand, OSCData
//
// Command values are consumed by the Controller immediately. A Command does
// not share storage with the Parser: Params is copied out of the Parser's
// accumulators when the command is emitted.
type Command struct {
	Kind CommandKind

	Ch rune // CmdPrint

	Control byte // CmdControl

	FinalByte     byte   // CmdCSI
	Params        []int  // CmdCSI
	Intermediates string // CmdCSI

	OSCCommand int    // CmdOSC
	OSCData    string // CmdOSC
}

// parserState is the VT500-family state machine's current mode.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsPassthrough
)

// Parser is a DEC VT500-family escape-sequence state machine. It consumes
// a byte stream (fragments of UTF-8 are buffered across Feed calls) and
// emits a stream of Commands. State persists across Feed calls so a
// sequence split mid-stream — even mid-codepoint — is handled correctly.
//
// The parser never errors. Unknown or invalid sequences silently return to
// Ground; a mid-sequence cut is preserved until the next Feed or an
// explicit Reset.
type Parser struct {
	state parserState

	paramBuf      []byte
	params        []int
	intermediates []byte

	oscCommandBuf    []byte
	oscData          []byte
	oscSeenSemicolon bool

	pending []byte // undecoded trailing bytes from a split UTF-8 sequence
}

// NewParser returns a parser in the Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Reset returns the parser to the Ground state and clears all accumulators.
func (p *Parser) Reset() {
	p.state = stateGround
	p.paramBuf = p.paramBuf[:0]
	p.params = p.params[:0]
	p.intermediates = p.intermediates[:0]
	p.oscCommandBuf = p.oscCommandBuf[:0]
	p.oscData = p.oscData[:0]
	p.oscSeenSemicolon = false
	p.pending = p.pending[:0]
}

// Feed consumes input left to right and returns the commands it produced,
// in emission order. It never loses bytes and never blocks. A UTF-8
// sequence split across two Feed calls is reassembled correctly: the
// trailing partial bytes are buffered and completed by the next call, so
// Feed("ab") and Feed("a");Feed("b") always leave the parser in the same
// state.
func (p *Parser) Feed(input []byte) []Command {
	data := input
	if len(p.pending) > 0 {
		data = append(append([]byte(nil), p.pending...), input...)
		p.pending = p.pending[:0]
	}

	var cmds []Command
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) {
				// Incomplete multi-byte sequence at the end of this chunk;
				// carry it over to the next Feed call.
				p.pending = append(p.pending[:0], data...)
				break
			}
			// Genuinely malformed byte: consume it as a single replacement
			// character rather than lose sync with the stream.
			size = 1
		}
		if cmd, ok := p.step(r); ok {
			cmds = append(cmds, cmd)
		}
		data = data[size:]
	}
	return cmds
}

func (p *Parser) resetCSI() {
	p.paramBuf = p.paramBuf[:0]
	p.params = p.params[:0]
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) resetOSC() {
	p.oscCommandBuf = p.oscCommandBuf[:0]
	p.oscData = p.oscData[:0]
	p.oscSeenSemicolon = false
}

func isIntermediateByte(r rune) bool { return r >= 0x20 && r <= 0x2F }
func isFinalByte(r rune) bool        { return r >= 0x40 && r <= 0x7E }
func isPrivateMarker(r rune) bool    { return r >= 0x3C && r <= 0x3F }

func parseParamOrZero(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(buf))
	if err != nil {
		return 0
	}
	return n
}

// step advances the state machine by exactly one rune, returning at most
// one Command.
func (p *Parser) step(r rune) (Command, bool) {
	switch p.state {
	case stateGround:
		return p.stepGround(r)
	case stateEscape:
		return p.stepEscape(r)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(r)
		return Command{}, false
	case stateCsiEntry:
		return p.stepCsiEntry(r)
	case stateCsiParam:
		return p.stepCsiParam(r)
	case stateCsiIntermediate:
		return p.stepCsiIntermediate(r)
	case stateOscString:
		return p.stepOscString(r)
	case stateDcsEntry, stateDcsParam, stateDcsPassthrough:
		return p.stepDcs(r)
	default:
		p.state = stateGround
		return Command{}, false
	}
}

func (p *Parser) stepGround(r rune) (Command, bool) {
	switch {
	case r == 0x1B:
		p.state = stateEscape
		return Command{}, false
	case r < 0x20:
		return Command{Kind: CmdControl, Control: byte(r)}, true
	case r == 0x7F:
		return Command{}, false
	default:
		return Command{Kind: CmdPrint, Ch: r}, true
	}
}

func (p *Parser) stepEscape(r rune) (Command, bool) {
	switch r {
	case '[':
		p.resetCSI()
		p.state = stateCsiEntry
	case ']':
		p.resetOSC()
		p.state = stateOscString
	case 'P':
		p.state = stateDcsEntry
	case '\\':
		p.state = stateGround
	case 'D', 'M', 'E':
		// IND, RI, NEL: recognized but no-op in this baseline dispatch.
		p.state = stateGround
	default:
		if isIntermediateByte(r) {
			p.state = stateEscapeIntermediate
		} else {
			p.state = stateGround
		}
	}
	return Command{}, false
}

func (p *Parser) stepEscapeIntermediate(r rune) {
	if isIntermediateByte(r) {
		return
	}
	p.state = stateGround
}

func (p *Parser) stepCsiEntry(r rune) (Command, bool) {
	switch {
	case r >= '0' && r <= '9':
		p.paramBuf = append(p.paramBuf, byte(r))
		p.state = stateCsiParam
	case r == ';':
		p.params = append(p.params, 0)
		p.state = stateCsiParam
	case isPrivateMarker(r):
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiParam
	case isIntermediateByte(r):
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiIntermediate
	case isFinalByte(r):
		if len(p.paramBuf) > 0 {
			p.params = append(p.params, parseParamOrZero(p.paramBuf))
		}
		cmd := p.emitCSI(byte(r))
		p.state = stateGround
		return cmd, true
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) stepCsiParam(r rune) (Command, bool) {
	switch {
	case r >= '0' && r <= '9':
		p.paramBuf = append(p.paramBuf, byte(r))
	case r == ';':
		p.params = append(p.params, parseParamOrZero(p.paramBuf))
		p.paramBuf = p.paramBuf[:0]
	case isPrivateMarker(r):
		p.intermediates = append(p.intermediates, byte(r))
	case isIntermediateByte(r):
		p.params = append(p.params, parseParamOrZero(p.paramBuf))
		p.paramBuf = p.paramBuf[:0]
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiIntermediate
	case isFinalByte(r):
		p.params = append(p.params, parseParamOrZero(p.paramBuf))
		p.paramBuf = p.paramBuf[:0]
		cmd := p.emitCSI(byte(r))
		p.state = stateGround
		return cmd, true
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) stepCsiIntermediate(r rune) (Command, bool) {
	switch {
	case isIntermediateByte(r):
		p.intermediates = append(p.intermediates, byte(r))
	case isFinalByte(r):
		cmd := p.emitCSI(byte(r))
		p.state = stateGround
		return cmd, true
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) emitCSI(final byte) Command {
	params := append([]int(nil), p.params...)
	cmd := Command{
		Kind:          CmdCSI,
		FinalByte:     final,
		Params:        params,
		Intermediates: string(p.intermediates),
	}
	p.resetCSI()
	return cmd
}

func (p *Parser) stepOscString(r rune) (Command, bool) {
	switch r {
	case 0x07: // BEL
		cmd := p.emitOSC()
		p.state = stateGround
		return cmd, true
	case 0x1B: // ESC: OSC terminated, new sequence begins (xterm practice)
		cmd := p.emitOSC()
		p.state = stateEscape
		return cmd, true
	case ';':
		if !p.oscSeenSemicolon {
			p.oscSeenSemicolon = true
			return Command{}, false
		}
		p.appendOSCRune(r)
	default:
		p.appendOSCRune(r)
	}
	return Command{}, false
}

func (p *Parser) appendOSCRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	if p.oscSeenSemicolon {
		p.oscData = append(p.oscData, buf[:n]...)
	} else {
		p.oscCommandBuf = append(p.oscCommandBuf, buf[:n]...)
	}
}

func (p *Parser) emitOSC() Command {
	var cmd Command
	cmd.Kind = CmdOSC
	if p.oscSeenSemicolon {
		n, err := strconv.Atoi(string(p.oscCommandBuf))
		if err != nil {
			n = 0
		}
		cmd.OSCCommand = n
		cmd.OSCData = string(p.oscData)
	} else {
		cmd.OSCCommand = 0
		cmd.OSCData = string(p.oscCommandBuf)
	}
	p.resetOSC()
	return cmd
}

func (p *Parser) stepDcs(r rune) (Command, bool) {
	switch r {
	case 0x07:
		p.state = stateGround
	case 0x1B:
		p.state = stateEscape
	default:
		// DCS payloads are parsed and discarded; nothing to accumulate.
	}
	return Command{}, false
}
