package experience

import (
	"context"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/themes"
)

// ModuleInfo identifies the industry module driving a tenant's experience.
type ModuleInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// NavigationEntry is one item of the module-provided application navigation.
type NavigationEntry struct {
	Name  string   `json:"name"`
	Path  string   `json:"path,omitempty"`
	Href  string   `json:"href,omitempty"`
	Icon  string   `json:"icon,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Target returns the entry's destination, preferring Path over Href.
func (e NavigationEntry) Target() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Href
}

// Descriptor is the per-tenant experience configuration fetched once per
// authenticated tenant context. It drives terminology, feature gating,
// navigation, and color scheme across the whole application.
type Descriptor struct {
	ModuleInfo    ModuleInfo         `json:"module_info"`
	Terminology   map[string]string  `json:"terminology,omitempty"`
	Features      []string           `json:"features,omitempty"`
	Navigation    []NavigationEntry  `json:"navigation,omitempty"`
	ColorScheme   themes.ColorScheme `json:"color_scheme"`
	Dashboard     map[string]any     `json:"dashboard,omitempty"`
	Roles         map[string]any     `json:"roles,omitempty"`
	Workflows     []map[string]any   `json:"workflows,omitempty"`
	BookingRules  map[string]any     `json:"booking_rules,omitempty"`
	ResourceTypes []map[string]any   `json:"resource_types,omitempty"`
}

// Fetcher retrieves the experience descriptor for the current tenant.
type Fetcher interface {
	FetchDescriptor(ctx context.Context) (Descriptor, error)
}

// Adapter owns the loaded descriptor and exposes translation, feature-flag,
// navigation, color-scheme, and dashboard accessors to the rest of the
// application. Accessors never return nil or zero-value surprises: when no
// descriptor is loaded (or the load failed) they return the fallback
// descriptor's safe defaults. Load replaces the previous descriptor
// atomically whenever the identity or its tenant reference changes.
type Adapter interface {
	Load(ctx context.Context, identity interfaces.Identity) error
	Loaded() bool
	LastError() error

	TranslateTerm(term string) string
	TranslateAll(terms []string) []string
	TranslateObject(value any) any
	IsFeatureEnabled(name string) bool

	ModuleInfo() ModuleInfo
	Navigation() []NavigationEntry
	ColorScheme() themes.ColorScheme
	DashboardConfig() map[string]any
	Roles() map[string]any
	Workflows() []map[string]any
	BookingRules() map[string]any
	ResourceTypes() []map[string]any
}
