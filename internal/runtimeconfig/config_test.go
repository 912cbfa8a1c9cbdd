package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.API.BaseURL = "https://api.example.com"
	return cfg
}

func TestConfigValidate_AcceptsDefaultsWithBaseURL(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresBaseURLOrRoutes(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.API.BaseURL = "  "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAPIBaseURLRequired) {
		t.Fatalf("expected ErrAPIBaseURLRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeImageLimit(t *testing.T) {
	cfg := validConfig()
	cfg.SiteConfig.MaxImageBytes = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrImageLimitInvalid) {
		t.Fatalf("expected ErrImageLimitInvalid, got %v", err)
	}
}
