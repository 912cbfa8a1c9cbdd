package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrAPIBaseURLRequired indicates the REST endpoint base was never configured.
var ErrAPIBaseURLRequired = errors.New("sitebuilder config: api base url is required")

// ErrLoggingProviderRequired indicates logging was enabled without a provider.
var ErrLoggingProviderRequired = errors.New("sitebuilder config: logging provider is required when logging feature is enabled")

// ErrLoggingProviderUnknown indicates an unsupported logging provider id.
var ErrLoggingProviderUnknown = errors.New("sitebuilder config: logging provider is invalid")

// ErrLoggingLevelInvalid indicates an unsupported logging level.
var ErrLoggingLevelInvalid = errors.New("sitebuilder config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format.
var ErrLoggingFormatInvalid = errors.New("sitebuilder config: logging format is invalid")

// ErrImageLimitInvalid indicates a negative branding upload limit.
var ErrImageLimitInvalid = errors.New("sitebuilder config: site config image limit must be zero or positive")

// ErrHTTPTimeoutInvalid indicates a negative transport timeout.
var ErrHTTPTimeoutInvalid = errors.New("sitebuilder config: http timeout must be zero or positive")

// Config aggregates feature flags and adapter bindings for the sitebuilder module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	API        APIConfig
	Builder    BuilderConfig
	SiteConfig SiteConfigConfig
	Features   Features
	Logging    LoggingConfig
}

// APIConfig captures transport settings for the backing REST API.
type APIConfig struct {
	// BaseURL is the absolute origin of the platform API, e.g. "https://api.example.com".
	BaseURL string
	// Timeout bounds each request. Zero falls back to the transport default.
	Timeout time.Duration
	// Routes overrides the default endpoint layout. Leave nil to use the
	// canonical /cms and /platform route groups.
	Routes *urlkit.Config
}

// BuilderConfig captures page builder session behaviour.
type BuilderConfig struct {
	// ValidateOnSave rejects block configurations that carry keys unknown to
	// the fetched definition before the payload is transmitted.
	ValidateOnSave bool
}

// SiteConfigConfig captures site configuration session behaviour.
type SiteConfigConfig struct {
	// MaxImageBytes caps branding uploads embedded as data URIs. Zero means
	// unlimited; the persisted payload grows with every embedded image.
	MaxImageBytes int64
}

// Features toggles module functionality.
type Features struct {
	Builder    bool
	SiteConfig bool
	Experience bool
	Preview    bool
}

// LoggingConfig mirrors the configuration surface of go-logger.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the canonical configuration with every feature enabled.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Builder: BuilderConfig{
			ValidateOnSave: true,
		},
		SiteConfig: SiteConfigConfig{
			MaxImageBytes: 2 << 20,
		},
		Features: Features{
			Builder:    true,
			SiteConfig: true,
			Experience: true,
			Preview:    true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks cross-field consistency before the container boots.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" && c.API.Routes == nil {
		return ErrAPIBaseURLRequired
	}
	if c.API.Timeout < 0 {
		return ErrHTTPTimeoutInvalid
	}
	if c.SiteConfig.MaxImageBytes < 0 {
		return ErrImageLimitInvalid
	}
	if c.Logging.Enabled {
		provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		switch provider {
		case "gologger", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
		if !validLoggingLevel(c.Logging.Level) {
			return ErrLoggingLevelInvalid
		}
		if !validLoggingFormat(c.Logging.Format) {
			return ErrLoggingFormatInvalid
		}
	}
	return nil
}

func validLoggingLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLoggingFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return true
	default:
		return false
	}
}
