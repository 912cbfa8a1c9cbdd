package experience

import (
	"context"
	"sync"

	"github.com/goliatone/go-sitebuilder/experience"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/themes"
)

// Adapter caches one tenant's experience descriptor and answers terminology,
// feature, navigation, and styling questions from it. Accessors always return
// usable values: before a load, and after a failed one, they answer from the
// fallback descriptor.
type Adapter struct {
	mu sync.RWMutex

	fetcher experience.Fetcher
	logger  interfaces.Logger

	descriptor experience.Descriptor
	loaded     bool
	tenantID   string
	lastErr    error
}

var _ experience.Adapter = (*Adapter)(nil)

// NewAdapter constructs an adapter answering from the fallback descriptor
// until Load succeeds.
func NewAdapter(fetcher experience.Fetcher, logger interfaces.Logger) *Adapter {
	return &Adapter{
		fetcher:    fetcher,
		logger:     logger,
		descriptor: experience.FallbackDescriptor(),
	}
}

// Load resolves the descriptor for the given identity and replaces the
// cached one atomically. An identity without a tenant reference clears the
// adapter back to the fallback without issuing a request. A failed fetch also
// falls back, records the failure in LastError, and returns nil: a missing
// descriptor degrades the experience, it never blocks the application.
func (a *Adapter) Load(ctx context.Context, identity interfaces.Identity) error {
	if identity.TenantID == "" {
		a.mu.Lock()
		a.descriptor = experience.FallbackDescriptor()
		a.loaded = false
		a.tenantID = ""
		a.lastErr = experience.ErrNoTenantContext
		a.mu.Unlock()
		return nil
	}

	descriptor, err := a.fetcher.FetchDescriptor(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantID = identity.TenantID
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("experience.load.fallback", "tenant_id", identity.TenantID, "error", err)
		}
		a.descriptor = experience.FallbackDescriptor()
		a.loaded = false
		a.lastErr = err
		return nil
	}

	a.descriptor = normalizeDescriptor(descriptor)
	a.loaded = true
	a.lastErr = nil
	if a.logger != nil {
		a.logger.Info("experience.loaded",
			"tenant_id", identity.TenantID,
			"module", a.descriptor.ModuleInfo.Name,
			"features", len(a.descriptor.Features),
		)
	}
	return nil
}

// Loaded reports whether a real descriptor (not the fallback) is cached.
func (a *Adapter) Loaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// LastError returns the most recent load failure, or nil.
func (a *Adapter) LastError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

// TranslateTerm maps a generic platform term to the module's vocabulary.
// Unknown terms pass through unchanged.
func (a *Adapter) TranslateTerm(term string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if translated, ok := a.descriptor.Terminology[term]; ok {
		return translated
	}
	return term
}

// TranslateAll maps a list of terms, preserving order.
func (a *Adapter) TranslateAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = a.TranslateTerm(term)
	}
	return out
}

// TranslateObject walks an arbitrary decoded JSON value and translates every
// string leaf. Maps and slices are rebuilt; other values pass through.
func (a *Adapter) TranslateObject(value any) any {
	switch typed := value.(type) {
	case string:
		return a.TranslateTerm(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = a.TranslateObject(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = a.TranslateObject(entry)
		}
		return out
	case []string:
		return a.TranslateAll(typed)
	default:
		return typed
	}
}

// IsFeatureEnabled reports whether the module enables a named feature.
// Without a loaded descriptor every feature is disabled.
func (a *Adapter) IsFeatureEnabled(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, feature := range a.descriptor.Features {
		if feature == name {
			return true
		}
	}
	return false
}

// ModuleInfo returns the module identity, or the generic platform identity.
func (a *Adapter) ModuleInfo() experience.ModuleInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.descriptor.ModuleInfo
}

// Navigation returns the module navigation entries.
func (a *Adapter) Navigation() []experience.NavigationEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]experience.NavigationEntry, len(a.descriptor.Navigation))
	copy(out, a.descriptor.Navigation)
	return out
}

// ColorScheme returns the module palette, or the default palette.
func (a *Adapter) ColorScheme() themes.ColorScheme {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.descriptor.ColorScheme
}

// DashboardConfig returns the module dashboard layout.
func (a *Adapter) DashboardConfig() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.descriptor.Dashboard))
	for key, value := range a.descriptor.Dashboard {
		out[key] = value
	}
	return out
}

// Roles returns the module role hierarchy.
func (a *Adapter) Roles() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.descriptor.Roles))
	for key, value := range a.descriptor.Roles {
		out[key] = value
	}
	return out
}

// Workflows returns the module's active workflow definitions.
func (a *Adapter) Workflows() []map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]map[string]any, len(a.descriptor.Workflows))
	copy(out, a.descriptor.Workflows)
	return out
}

// BookingRules returns the module booking constraints.
func (a *Adapter) BookingRules() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.descriptor.BookingRules))
	for key, value := range a.descriptor.BookingRules {
		out[key] = value
	}
	return out
}

// ResourceTypes returns the module's bookable resource type definitions.
func (a *Adapter) ResourceTypes() []map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]map[string]any, len(a.descriptor.ResourceTypes))
	copy(out, a.descriptor.ResourceTypes)
	return out
}

// normalizeDescriptor guarantees a loaded descriptor is as complete as the
// fallback: empty collections instead of nils, a named module, and a fully
// populated color scheme.
func normalizeDescriptor(descriptor experience.Descriptor) experience.Descriptor {
	if descriptor.ModuleInfo.Name == "" {
		descriptor.ModuleInfo.Name = experience.FallbackModuleName
	}
	if descriptor.Terminology == nil {
		descriptor.Terminology = map[string]string{}
	}
	if descriptor.Features == nil {
		descriptor.Features = []string{}
	}
	if descriptor.Navigation == nil {
		descriptor.Navigation = []experience.NavigationEntry{}
	}
	if descriptor.Dashboard == nil {
		descriptor.Dashboard = map[string]any{}
	}
	if descriptor.Roles == nil {
		descriptor.Roles = map[string]any{}
	}
	if descriptor.Workflows == nil {
		descriptor.Workflows = []map[string]any{}
	}
	if descriptor.BookingRules == nil {
		descriptor.BookingRules = map[string]any{}
	}
	if descriptor.ResourceTypes == nil {
		descriptor.ResourceTypes = []map[string]any{}
	}

	fallback := experience.DefaultColorScheme()
	scheme := &descriptor.ColorScheme
	if scheme.Primary == "" {
		scheme.Primary = fallback.Primary
	}
	if scheme.Secondary == "" {
		scheme.Secondary = fallback.Secondary
	}
	if scheme.Accent == "" {
		scheme.Accent = fallback.Accent
	}
	if scheme.Background == "" {
		scheme.Background = fallback.Background
	}
	if scheme.Text == "" {
		scheme.Text = fallback.Text
	}
	return descriptor
}
