package sitebuilder

import "github.com/goliatone/go-sitebuilder/internal/runtimeconfig"

var (
	ErrAPIBaseURLRequired      = runtimeconfig.ErrAPIBaseURLRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrImageLimitInvalid       = runtimeconfig.ErrImageLimitInvalid
	ErrHTTPTimeoutInvalid      = runtimeconfig.ErrHTTPTimeoutInvalid
)

type (
	Config           = runtimeconfig.Config
	APIConfig        = runtimeconfig.APIConfig
	BuilderConfig    = runtimeconfig.BuilderConfig
	SiteConfigConfig = runtimeconfig.SiteConfigConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the canonical configuration with every feature
// enabled.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
