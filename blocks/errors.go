package blocks

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCatalogUnavailable = errors.New("blocks: catalog unavailable")
	ErrDefinitionNotFound = errors.New("blocks: definition not found")
	ErrConfigInvalid      = errors.New("blocks: configuration invalid")
)

// UnknownTypeError reports an instance referencing a type absent from the
// loaded catalog. Renderers treat this as a placeholder, never a failure.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	if e == nil || strings.TrimSpace(e.Type) == "" {
		return ErrDefinitionNotFound.Error()
	}
	return fmt.Sprintf("%s: type=%s", ErrDefinitionNotFound.Error(), e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrDefinitionNotFound
}

// ConfigValidationError surfaces boundary validation failures with the
// offending field locations.
type ConfigValidationError struct {
	Type   string
	Issues []string
}

func (e *ConfigValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrConfigInvalid.Error()
	}
	return fmt.Sprintf("%s: type=%s: %s", ErrConfigInvalid.Error(), e.Type, strings.Join(e.Issues, "; "))
}

func (e *ConfigValidationError) Unwrap() error {
	return ErrConfigInvalid
}
