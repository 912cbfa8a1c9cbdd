package experience

import "github.com/goliatone/go-sitebuilder/themes"

// FallbackModuleName is the generic platform identity shown when no module
// descriptor is available.
const FallbackModuleName = "Platform"

// DefaultColorScheme is the fixed palette used until a descriptor loads, and
// after a failed load. All five keys are always present.
func DefaultColorScheme() themes.ColorScheme {
	return themes.ColorScheme{
		Primary:    "#3B82F6",
		Secondary:  "#1E40AF",
		Accent:     "#EF4444",
		Background: "#F9FAFB",
		Text:       "#111827",
	}
}

// FallbackDescriptor is the degraded-but-complete descriptor stored when the
// experience fetch fails, so dependent UI observes empty data rather than no
// data: generic module name, no terminology, no features, no navigation, and
// the default color scheme.
func FallbackDescriptor() Descriptor {
	return Descriptor{
		ModuleInfo:    ModuleInfo{Name: FallbackModuleName},
		Terminology:   map[string]string{},
		Features:      []string{},
		Navigation:    []NavigationEntry{},
		ColorScheme:   DefaultColorScheme(),
		Dashboard:     map[string]any{},
		Roles:         map[string]any{},
		Workflows:     []map[string]any{},
		BookingRules:  map[string]any{},
		ResourceTypes: []map[string]any{},
	}
}
