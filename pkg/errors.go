package pmtconfig

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrMissingBoard represents a channel line found before any board header.
type ErrMissingBoard struct {
	Line    int
	Content string
}

func (e *ErrMissingBoard) Error() string {
	return fmt.Sprintf("at line %d: missed the board number in the input log (%q)", e.Line, e.Content)
}

// ErrDuplicateChannel represents a board channel repeated within the span
// of one board, the sign of a missing board header in the log.
type ErrDuplicateChannel struct {
	Line         int
	Board        int
	BoardChannel int
}

func (e *ErrDuplicateChannel) Error() string {
	return fmt.Sprintf("at line %d: board channel %d was already found in board %d, a board header is probably missing",
		e.Line, e.BoardChannel, e.Board)
}

// ErrUnknownFormat represents a request for an output syntax that is not
// implemented.
type ErrUnknownFormat struct {
	Format string
}

func (e *ErrUnknownFormat) Error() string {
	return fmt.Sprintf("output format %q not implemented", e.Format)
}
