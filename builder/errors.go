package builder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInitialized   = errors.New("builder: session not initialized")
	ErrSessionClosed    = errors.New("builder: session closed")
	ErrPageNotFound     = errors.New("builder: page has no saved builder state")
	ErrInstanceNotFound = errors.New("builder: block instance not found")
	ErrIndexOutOfRange  = errors.New("builder: index out of range")
	ErrFieldNotRepeater = errors.New("builder: field is not a repeater")
	ErrSaveFailed       = errors.New("builder: save failed")
)

// InitializationError aggregates the catalog fetches that failed during
// Initialize. It is retryable: re-running Initialize repeats every fetch.
type InitializationError struct {
	Blocks    error
	Themes    error
	Templates error
}

func (e *InitializationError) Error() string {
	if e == nil {
		return "builder: initialization failed"
	}
	parts := make([]string, 0, 3)
	if e.Blocks != nil {
		parts = append(parts, fmt.Sprintf("blocks: %v", e.Blocks))
	}
	if e.Themes != nil {
		parts = append(parts, fmt.Sprintf("themes: %v", e.Themes))
	}
	if e.Templates != nil {
		parts = append(parts, fmt.Sprintf("templates: %v", e.Templates))
	}
	if len(parts) == 0 {
		return "builder: initialization failed"
	}
	return "builder: initialization failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual fetch failures to errors.Is/As.
func (e *InitializationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 3)
	for _, err := range []error{e.Blocks, e.Themes, e.Templates} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
