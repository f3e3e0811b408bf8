package lightmap

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrMismatchedChannelArrays reports an event whose per-channel arrays do not
// all have the same length. The whole batch aborts, no partial results.
type ErrMismatchedChannelArrays struct {
	EventID int32
	Field   string
	Got     int
	Want    int
}

func (e *ErrMismatchedChannelArrays) Error() string {
	return fmt.Sprintf("event %d: channel array %q has %d entries, expected %d",
		e.EventID, e.Field, e.Got, e.Want)
}

// ErrUnknownFitType represents an unrecognized lightmap fit type.
type ErrUnknownFitType struct {
	FitType string
}

func (e *ErrUnknownFitType) Error() string {
	return fmt.Sprintf("fit type %q not recognized", e.FitType)
}
