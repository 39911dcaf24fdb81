package pmtconfig

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lines lifted from a DumpPMTconfiguration log, with the variable parts
// filled in by the helpers below.
func boardLine(board int, name string, fragment int, nChannels int) string {
	return fmt.Sprintf("[B%d]: board name: '%s' (ID: %d; fragment ID: %d), %d configured channels",
		board, name, board, fragment, nChannels)
}

func channelLine(boardChannel int, offlineID int, baseline int, threshold int) string {
	return fmt.Sprintf("board channel #%d (ChannelID: %d), offline ID: %d, baseline: %d, threshold: %d (delta=49)",
		boardChannel, offlineID, offlineID, baseline, threshold)
}

func extract(t *testing.T, lines ...string) ([]ChannelRecord, []ChannelCountWarning, error) {
	t.Helper()
	return ExtractReadoutSettings(strings.NewReader(strings.Join(lines, "\n")))
}

func TestExtractTwoChannels(t *testing.T) {
	settings, warnings, err := extract(t,
		"some unrelated preamble",
		boardLine(3, "icaruspmtew03", 2067, 2),
		channelLine(0, 350, 14999, 14950),
		channelLine(1, 342, 15012, 14963),
		"trailing noise line",
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, settings, 2)

	// Sorted by offline channel ID, both owned by board 3
	assert.Equal(t, ChannelRecord{Channel: 342, BoardNumber: 3, BoardChannel: 1, Baseline: 15012, Threshold: 14963}, settings[0])
	assert.Equal(t, ChannelRecord{Channel: 350, BoardNumber: 3, BoardChannel: 0, Baseline: 14999, Threshold: 14950}, settings[1])
}

func TestExtractSortsAcrossBoards(t *testing.T) {
	settings, warnings, err := extract(t,
		boardLine(7, "icaruspmtww07", 2071, 2),
		channelLine(0, 210, 14980, 14930),
		channelLine(1, 45, 15003, 14955),
		boardLine(2, "icaruspmtew02", 2062, 1),
		channelLine(0, 101, 14970, 14921),
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, settings, 3)
	for i := 1; i < len(settings); i++ {
		assert.Less(t, settings[i-1].Channel, settings[i].Channel)
	}
	assert.Equal(t, []int{45, 101, 210}, []int{settings[0].Channel, settings[1].Channel, settings[2].Channel})
}

func TestChannelBeforeBoardFails(t *testing.T) {
	_, _, err := extract(t,
		"preamble",
		channelLine(0, 350, 14999, 14950),
	)
	var missingBoard *ErrMissingBoard
	require.ErrorAs(t, err, &missingBoard)
	assert.Equal(t, 2, missingBoard.Line)
}

func TestDuplicateChannelFails(t *testing.T) {
	_, _, err := extract(t,
		boardLine(3, "icaruspmtew03", 2067, 2),
		channelLine(0, 350, 14999, 14950),
		channelLine(0, 342, 15012, 14963),
	)
	var duplicate *ErrDuplicateChannel
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, 3, duplicate.Line)
	assert.Equal(t, 3, duplicate.Board)
	assert.Equal(t, 0, duplicate.BoardChannel)
}

func TestBoardChannelReusedAfterNewBoard(t *testing.T) {
	settings, warnings, err := extract(t,
		boardLine(3, "icaruspmtew03", 2067, 1),
		channelLine(0, 350, 14999, 14950),
		boardLine(4, "icaruspmtew04", 2068, 1),
		channelLine(0, 351, 15001, 14952),
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, settings, 2)
	assert.Equal(t, 3, settings[0].BoardNumber)
	assert.Equal(t, 4, settings[1].BoardNumber)
}

func TestChannelCountMismatchWarnsAtNextBoard(t *testing.T) {
	settings, warnings, err := extract(t,
		boardLine(3, "icaruspmtew03", 2067, 3),
		channelLine(0, 350, 14999, 14950),
		channelLine(1, 342, 15012, 14963),
		boardLine(4, "icaruspmtew04", 2068, 1),
		channelLine(0, 351, 15001, 14952),
	)
	require.NoError(t, err)
	require.Len(t, settings, 3)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Board)
	assert.Equal(t, 3, warnings[0].Expected)
	assert.Equal(t, []int{0, 1}, warnings[0].Channels)
	assert.Equal(t, "Board 3 has only 2 channels (3 were expected): 0, 1", warnings[0].Message())
}

func TestLastBoardCountNeverChecked(t *testing.T) {
	// The declared count is only validated when the next board header
	// arrives, end of input does not trigger the check.
	settings, warnings, err := extract(t,
		boardLine(3, "icaruspmtew03", 2067, 3),
		channelLine(0, 350, 14999, 14950),
		channelLine(1, 342, 15012, 14963),
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, settings, 2)
}

func TestUnmatchedLinesSkipped(t *testing.T) {
	settings, warnings, err := extract(t,
		"%MSG-i DumpPMTconfiguration:  PMTconfigurationExtraction 03-Feb-2023",
		"PMT readout configuration dump",
		"",
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, settings)
}

func TestScannerStateIsLocal(t *testing.T) {
	// Two scanners must not share board context.
	first := NewSettingsScanner()
	require.NoError(t, first.ProcessLine(boardLine(3, "icaruspmtew03", 2067, 1), 1))

	second := NewSettingsScanner()
	err := second.ProcessLine(channelLine(0, 350, 14999, 14950), 1)
	var missingBoard *ErrMissingBoard
	require.ErrorAs(t, err, &missingBoard)
}
