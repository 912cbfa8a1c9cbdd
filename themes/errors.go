package themes

import "errors"

var (
	ErrCatalogUnavailable = errors.New("themes: catalog unavailable")
	ErrThemeNotFound      = errors.New("themes: theme not found")
)
