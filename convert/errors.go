package convert

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the input path is neither a file nor a directory.
var ErrNotFound = errors.New("input not found")

// ErrUnreadableWorkbook matches every UnreadableWorkbookError via errors.Is.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// UnreadableWorkbookError reports a file the workbook readers could not open
// or parse.
type UnreadableWorkbookError struct {
	Path string
	Err  error
}

func (e *UnreadableWorkbookError) Error() string {
	return fmt.Sprintf("unreadable workbook %s: %v", e.Path, e.Err)
}

func (e *UnreadableWorkbookError) Unwrap() error {
	return e.Err
}

func (e *UnreadableWorkbookError) Is(target error) bool {
	return target == ErrUnreadableWorkbook
}
