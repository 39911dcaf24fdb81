package pmtconfig

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ChannelRecord holds the readout settings of one PMT channel as reported
// by the DumpPMTconfiguration log.
type ChannelRecord struct {
	Channel      int
	BoardNumber  int
	BoardChannel int
	Baseline     int
	Threshold    int
}

// The two line patterns are the whole grammar of the log. The trailing
// delta value of the channel line is reported by the hardware but not used.
var channelPattern = regexp.MustCompile(`board channel #(\d+) \(.*\), offline ID: (\d+), baseline: (\d+), threshold: (\d+) \(delta=\d+\)`)
var boardPattern = regexp.MustCompile(`\[B\d+\]: board name: '(.*)' \(ID: (\d+); fragment ID: (\d+)\), (\d+) configured channels`)

// Capture group indices of channelPattern
const (
	chPatternBoardChannel = 1
	chPatternChannelID    = 2
	chPatternBaseline     = 3
	chPatternThreshold    = 4
)

// Capture group indices of boardPattern. Name and fragment ID are matched
// but not used in the output.
const (
	boardPatternName      = 1
	boardPatternNumber    = 2
	boardPatternFragment  = 3
	boardPatternNChannels = 4
)

// ChannelCountWarning reports a board whose observed channel count differs
// from the count declared in its header line. Under-reporting is common in
// these logs, so this is not treated as an error.
type ChannelCountWarning struct {
	Board    int
	Expected int
	Channels []int
}

func (w ChannelCountWarning) Message() string {
	channels := make([]string, len(w.Channels))
	for i, ch := range w.Channels {
		channels[i] = strconv.Itoa(ch)
	}
	return fmt.Sprintf("Board %d has only %d channels (%d were expected): %s",
		w.Board, len(w.Channels), w.Expected, strings.Join(channels, ", "))
}

// SettingsScanner accumulates channel records from a PMT configuration log,
// one line at a time. The running board context is kept in the scanner
// itself, there is no package-level state.
type SettingsScanner struct {
	settings         []ChannelRecord
	currentBoard     int
	boardDefined     bool
	expectedChannels int
	expectedDefined  bool
	channelsInBoard  map[int]bool
	warnings         []ChannelCountWarning
}

func NewSettingsScanner() *SettingsScanner {
	return &SettingsScanner{
		channelsInBoard: make(map[int]bool),
	}
}

// ProcessLine matches one log line against the channel and board patterns,
// in that order. Lines matching neither are skipped. lineNumber is only
// used to build error messages and is expected to start at 1.
func (s *SettingsScanner) ProcessLine(line string, lineNumber int) error {
	line = strings.TrimSpace(line)

	if match := channelPattern.FindStringSubmatch(line); match != nil {
		if !s.boardDefined {
			return &ErrMissingBoard{Line: lineNumber, Content: line}
		}
		boardChannel, _ := strconv.Atoi(match[chPatternBoardChannel])
		if s.channelsInBoard[boardChannel] {
			return &ErrDuplicateChannel{Line: lineNumber, Board: s.currentBoard, BoardChannel: boardChannel}
		}
		channel, _ := strconv.Atoi(match[chPatternChannelID])
		baseline, _ := strconv.Atoi(match[chPatternBaseline])
		threshold, _ := strconv.Atoi(match[chPatternThreshold])
		s.settings = append(s.settings, ChannelRecord{
			Channel:      channel,
			BoardNumber:  s.currentBoard,
			BoardChannel: boardChannel,
			Baseline:     baseline,
			Threshold:    threshold,
		})
		s.channelsInBoard[boardChannel] = true
		return nil
	}

	if match := boardPattern.FindStringSubmatch(line); match != nil {
		s.closeBoard()
		s.channelsInBoard = make(map[int]bool)
		s.currentBoard, _ = strconv.Atoi(match[boardPatternNumber])
		s.expectedChannels, _ = strconv.Atoi(match[boardPatternNChannels])
		s.boardDefined = true
		s.expectedDefined = true
		return nil
	}

	return nil
}

// closeBoard checks the channel count of the board read so far against its
// declared total. The check only runs when the next board header shows up,
// so the last board of the log is never validated.
func (s *SettingsScanner) closeBoard() {
	if !s.expectedDefined || len(s.channelsInBoard) == s.expectedChannels {
		return
	}
	channels := make([]int, 0, len(s.channelsInBoard))
	for ch := range s.channelsInBoard {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	s.warnings = append(s.warnings, ChannelCountWarning{
		Board:    s.currentBoard,
		Expected: s.expectedChannels,
		Channels: channels,
	})
}

func (s *SettingsScanner) Warnings() []ChannelCountWarning {
	return s.warnings
}

// Settings returns the accumulated records sorted by offline channel ID.
// The sort is stable, records sharing an offline ID keep insertion order.
func (s *SettingsScanner) Settings() []ChannelRecord {
	sorted := make([]ChannelRecord, len(s.settings))
	copy(sorted, s.settings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Channel < sorted[j].Channel
	})
	return sorted
}

// ExtractReadoutSettings scans a PMT configuration dump in a single pass
// and returns the channel settings sorted by offline channel ID, together
// with any channel count warnings collected along the way.
func ExtractReadoutSettings(r io.Reader) ([]ChannelRecord, []ChannelCountWarning, error) {
	scanner := NewSettingsScanner()
	lines := bufio.NewScanner(r)
	lineNumber := 0
	for lines.Scan() {
		lineNumber++
		if err := scanner.ProcessLine(lines.Text(), lineNumber); err != nil {
			return nil, scanner.Warnings(), err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, scanner.Warnings(), err
	}
	return scanner.Settings(), scanner.Warnings(), nil
}
