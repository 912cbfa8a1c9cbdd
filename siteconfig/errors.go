package siteconfig

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoaded       = errors.New("siteconfig: configuration not loaded")
	ErrSessionClosed   = errors.New("siteconfig: session closed")
	ErrConfigNotFound  = errors.New("siteconfig: no stored configuration")
	ErrUnknownSection  = errors.New("siteconfig: unknown section")
	ErrUnknownField    = errors.New("siteconfig: unknown field")
	ErrIndexOutOfRange = errors.New("siteconfig: index out of range")
	ErrImageTooLarge   = errors.New("siteconfig: image exceeds configured limit")
	ErrImageEmpty      = errors.New("siteconfig: image payload is empty")
	ErrUnknownTarget   = errors.New("siteconfig: unknown image target")
	ErrSaveFailed      = errors.New("siteconfig: save failed")
)

// FieldError reports an UpdateField call naming a field the target section
// does not expose.
type FieldError struct {
	Section Section
	Field   string
}

func (e *FieldError) Error() string {
	if e == nil {
		return ErrUnknownField.Error()
	}
	return fmt.Sprintf("%s: section=%s field=%s", ErrUnknownField.Error(), e.Section, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrUnknownField
}
