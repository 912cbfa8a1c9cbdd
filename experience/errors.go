package experience

import "errors"

var (
	ErrDescriptorUnavailable = errors.New("experience: descriptor unavailable")
	ErrNoTenantContext       = errors.New("experience: identity has no tenant reference")
)
