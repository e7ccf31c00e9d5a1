package feedback

import (
	"errors"
	"fmt"
)

// ErrMalformedFeedback is returned (wrapped) when a row or tile cannot be
// turned into constraints.
var ErrMalformedFeedback = errors.New("malformed feedback")

// MalformedError pinpoints the offending row and column.
// Col is -1 when the whole row is at fault (e.g. wrong length).
type MalformedError struct {
	Row    int
	Col    int
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("malformed feedback: row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed feedback: row %d col %d: %s", e.Row, e.Col, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedFeedback }

func malformedRow(row int, format string, args ...any) error {
	return &MalformedError{Row: row, Col: -1, Reason: fmt.Sprintf(format, args...)}
}

func malformedTile(row, col int, format string, args ...any) error {
	return &MalformedError{Row: row, Col: col, Reason: fmt.Sprintf(format, args...)}
}
