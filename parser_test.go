package vtengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserPrintAndControl(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("A\n"))

	require.Len(t, cmds, 2)
	assert.Equal(t, CmdPrint, cmds[0].Kind)
	assert.Equal(t, 'A', cmds[0].Ch)
	assert.Equal(t, CmdControl, cmds[1].Kind)
	assert.Equal(t, byte('\n'), cmds[1].Control)
}

func TestParserCSIWithParams(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b[1;2H"))

	require.Len(t, cmds, 1)
	assert.Equal(t, CmdCSI, cmds[0].Kind)
	assert.Equal(t, byte('H'), cmds[0].FinalByte)
	assert.Equal(t, []int{1, 2}, cmds[0].Params)
}

func TestParserCSIPrivateMarker(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b[?1049h"))

	require.Len(t, cmds, 1)
	assert.Equal(t, "?", cmds[0].Intermediates)
	assert.Equal(t, []int{1049}, cmds[0].Params)
	assert.Equal(t, byte('h'), cmds[0].FinalByte)
}

func TestParserCSIDefaultParamIsEmpty(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b[H"))

	require.Len(t, cmds, 1)
	assert.Empty(t, cmds[0].Params)
}

func TestParserOSCWithSemicolon(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b]0;my title\x07"))

	require.Len(t, cmds, 1)
	assert.Equal(t, CmdOSC, cmds[0].Kind)
	assert.Equal(t, 0, cmds[0].OSCCommand)
	assert.Equal(t, "my title", cmds[0].OSCData)
}

func TestParserOSCTerminatedByEscape(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b]2;title\x1b\\"))

	require.Len(t, cmds, 1)
	assert.Equal(t, 2, cmds[0].OSCCommand)
	assert.Equal(t, "title", cmds[0].OSCData)
}

func TestParserOSCWithoutSemicolon(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b]bogus\x07"))

	require.Len(t, cmds, 1)
	assert.Equal(t, 0, cmds[0].OSCCommand)
	assert.Equal(t, "bogus", cmds[0].OSCData)
}

func TestParserSplitFeedEquivalence(t *testing.T) {
	whole := NewParser()
	wholeCmds := whole.Feed([]byte("\x1b[31mAB\x1b[0m"))

	split := NewParser()
	var splitCmds []Command
	splitCmds = append(splitCmds, split.Feed([]byte("\x1b[3"))...)
	splitCmds = append(splitCmds, split.Feed([]byte("1mA"))...)
	splitCmds = append(splitCmds, split.Feed([]byte("B\x1b[0"))...)
	splitCmds = append(splitCmds, split.Feed([]byte("m"))...)

	assert.Equal(t, wholeCmds, splitCmds)
}

func TestParserSplitMultiByteUTF8(t *testing.T) {
	// "é" is 0xC3 0xA9 in UTF-8.
	whole := NewParser()
	wholeCmds := whole.Feed([]byte("é"))

	split := NewParser()
	var splitCmds []Command
	splitCmds = append(splitCmds, split.Feed([]byte{0xC3})...)
	splitCmds = append(splitCmds, split.Feed([]byte{0xA9})...)

	assert.Equal(t, wholeCmds, splitCmds)
	require.Len(t, splitCmds, 1)
	assert.Equal(t, 'é', splitCmds[0].Ch)
}

func TestParserResetClearsState(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("\x1b[1;2"))
	p.Reset()

	cmds := p.Feed([]byte("A"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CmdPrint, cmds[0].Kind)
}

func TestParserUnknownFinalByteStillEmitsAndResumes(t *testing.T) {
	p := NewParser()
	cmds := p.Feed([]byte("\x1b[1;2zA"))

	require.Len(t, cmds, 2)
	assert.Equal(t, CmdCSI, cmds[0].Kind)
	assert.Equal(t, CmdPrint, cmds[1].Kind)
	assert.Equal(t, 'A', cmds[1].Ch)
}
