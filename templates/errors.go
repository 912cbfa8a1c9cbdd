package templates

import "errors"

var (
	ErrCatalogUnavailable = errors.New("templates: catalog unavailable")
	ErrTemplateNotFound   = errors.New("templates: template not found")
)
