package experience_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitebuilder/experience"
	internal "github.com/goliatone/go-sitebuilder/internal/experience"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

type fakeFetcher struct {
	descriptor experience.Descriptor
	err        error
	calls      int
}

func (f *fakeFetcher) FetchDescriptor(context.Context) (experience.Descriptor, error) {
	f.calls++
	if f.err != nil {
		return experience.Descriptor{}, f.err
	}
	return f.descriptor, nil
}

func coworkingDescriptor() experience.Descriptor {
	return experience.Descriptor{
		ModuleInfo: experience.ModuleInfo{Name: "Coworking", Industry: "coworking"},
		Terminology: map[string]string{
			"resource": "space",
			"booking":  "reservation",
			"customer": "member",
		},
		Features: []string{"member_directory", "day_passes"},
		Navigation: []experience.NavigationEntry{
			{Name: "Spaces", Path: "/spaces", Icon: "grid"},
			{Name: "Members", Href: "/members"},
		},
		ColorScheme: experience.DefaultColorScheme(),
	}
}

func tenantIdentity() interfaces.Identity {
	return interfaces.Identity{UserID: "user-1", TenantID: "tenant-1"}
}

func TestAdapter_AnswersFromFallbackBeforeLoad(t *testing.T) {
	adapter := internal.NewAdapter(&fakeFetcher{}, nil)

	if adapter.Loaded() {
		t.Fatal("adapter should not report loaded before Load")
	}
	if got := adapter.TranslateTerm("booking"); got != "booking" {
		t.Fatalf("fallback translation should pass through, got %q", got)
	}
	if adapter.IsFeatureEnabled("day_passes") {
		t.Fatal("no feature is enabled before load")
	}
	if got := adapter.ModuleInfo().Name; got != experience.FallbackModuleName {
		t.Fatalf("expected fallback module name, got %q", got)
	}
	if scheme := adapter.ColorScheme(); scheme.Primary != "#3B82F6" {
		t.Fatalf("expected default palette, got %+v", scheme)
	}
	if adapter.Navigation() == nil || adapter.DashboardConfig() == nil {
		t.Fatal("accessors must never return nil")
	}
}

func TestAdapter_LoadCachesDescriptor(t *testing.T) {
	fetcher := &fakeFetcher{descriptor: coworkingDescriptor()}
	adapter := internal.NewAdapter(fetcher, nil)

	if err := adapter.Load(context.Background(), tenantIdentity()); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !adapter.Loaded() {
		t.Fatal("adapter should report loaded")
	}
	if err := adapter.LastError(); err != nil {
		t.Fatalf("expected no load error, got %v", err)
	}
	if got := adapter.TranslateTerm("booking"); got != "reservation" {
		t.Fatalf("expected module vocabulary, got %q", got)
	}
	if got := adapter.TranslateTerm("invoice"); got != "invoice" {
		t.Fatalf("unknown terms pass through, got %q", got)
	}
	if !adapter.IsFeatureEnabled("day_passes") {
		t.Fatal("expected enabled feature")
	}
	if adapter.IsFeatureEnabled("kitchen_display") {
		t.Fatal("absent features stay disabled")
	}
	if nav := adapter.Navigation(); len(nav) != 2 || nav[0].Target() != "/spaces" || nav[1].Target() != "/members" {
		t.Fatalf("unexpected navigation: %+v", nav)
	}
}

func TestAdapter_TenantSwitchReplacesDescriptor(t *testing.T) {
	fetcher := &fakeFetcher{descriptor: coworkingDescriptor()}
	adapter := internal.NewAdapter(fetcher, nil)

	if err := adapter.Load(context.Background(), tenantIdentity()); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	fetcher.descriptor = experience.Descriptor{
		ModuleInfo:  experience.ModuleInfo{Name: "Fitness", Industry: "fitness"},
		Terminology: map[string]string{"booking": "class"},
		Features:    []string{"class_schedule"},
	}
	if err := adapter.Load(context.Background(), interfaces.Identity{UserID: "user-2", TenantID: "tenant-2"}); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if got := adapter.TranslateTerm("booking"); got != "class" {
		t.Fatalf("expected replacement vocabulary, got %q", got)
	}
	if got := adapter.TranslateTerm("customer"); got != "customer" {
		t.Fatalf("previous tenant vocabulary must not survive the switch, got %q", got)
	}
	if adapter.IsFeatureEnabled("day_passes") {
		t.Fatal("previous tenant features must not survive the switch")
	}
	if !adapter.IsFeatureEnabled("class_schedule") {
		t.Fatal("expected new tenant feature")
	}
}

func TestAdapter_TranslateAllPreservesOrder(t *testing.T) {
	adapter := internal.NewAdapter(&fakeFetcher{descriptor: coworkingDescriptor()}, nil)
	adapter.Load(context.Background(), tenantIdentity())

	got := adapter.TranslateAll([]string{"customer", "invoice", "resource"})
	want := []string{"member", "invoice", "space"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAdapter_TranslateObjectRecurses(t *testing.T) {
	adapter := internal.NewAdapter(&fakeFetcher{descriptor: coworkingDescriptor()}, nil)
	adapter.Load(context.Background(), tenantIdentity())

	input := map[string]any{
		"title": "booking",
		"tabs":  []any{"resource", map[string]any{"label": "customer", "count": 3}},
		"flag":  true,
	}
	translated, ok := adapter.TranslateObject(input).(map[string]any)
	if !ok {
		t.Fatalf("expected a map back, got %T", adapter.TranslateObject(input))
	}
	if translated["title"] != "reservation" {
		t.Fatalf("expected translated title, got %v", translated["title"])
	}
	tabs := translated["tabs"].([]any)
	if tabs[0] != "space" {
		t.Fatalf("expected translated list entry, got %v", tabs[0])
	}
	nested := tabs[1].(map[string]any)
	if nested["label"] != "member" || nested["count"] != 3 {
		t.Fatalf("unexpected nested translation: %v", nested)
	}
	if translated["flag"] != true {
		t.Fatal("non-string values must pass through untouched")
	}
	if input["title"] != "booking" {
		t.Fatal("translation must not mutate the input")
	}
}

func TestAdapter_NoTenantClearsWithoutFetching(t *testing.T) {
	fetcher := &fakeFetcher{descriptor: coworkingDescriptor()}
	adapter := internal.NewAdapter(fetcher, nil)
	adapter.Load(context.Background(), tenantIdentity())

	if err := adapter.Load(context.Background(), interfaces.Identity{UserID: "user-1"}); err != nil {
		t.Fatalf("Load() without tenant returned unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("tenantless load must not fetch, got %d calls", fetcher.calls)
	}
	if adapter.Loaded() {
		t.Fatal("adapter should clear back to fallback")
	}
	if !errors.Is(adapter.LastError(), experience.ErrNoTenantContext) {
		t.Fatalf("expected ErrNoTenantContext, got %v", adapter.LastError())
	}
	if got := adapter.TranslateTerm("booking"); got != "booking" {
		t.Fatalf("fallback translation should pass through, got %q", got)
	}
}

func TestAdapter_FetchFailureFallsBack(t *testing.T) {
	fetchErr := errors.New("api down")
	adapter := internal.NewAdapter(&fakeFetcher{err: fetchErr}, nil)

	if err := adapter.Load(context.Background(), tenantIdentity()); err != nil {
		t.Fatalf("failed fetch must degrade, not error; got %v", err)
	}
	if adapter.Loaded() {
		t.Fatal("adapter should not report loaded after a failed fetch")
	}
	if !errors.Is(adapter.LastError(), fetchErr) {
		t.Fatalf("expected recorded fetch failure, got %v", adapter.LastError())
	}
	if got := adapter.ModuleInfo().Name; got != experience.FallbackModuleName {
		t.Fatalf("expected fallback module, got %q", got)
	}
	if scheme := adapter.ColorScheme(); scheme.Background != "#F9FAFB" {
		t.Fatalf("expected default palette, got %+v", scheme)
	}
}

func TestAdapter_LoadNormalizesSparseDescriptor(t *testing.T) {
	sparse := experience.Descriptor{
		Terminology: map[string]string{"booking": "reservation"},
	}
	adapter := internal.NewAdapter(&fakeFetcher{descriptor: sparse}, nil)
	adapter.Load(context.Background(), tenantIdentity())

	if got := adapter.ModuleInfo().Name; got != experience.FallbackModuleName {
		t.Fatalf("unnamed module should take the generic name, got %q", got)
	}
	if scheme := adapter.ColorScheme(); scheme.Primary == "" || scheme.Text == "" {
		t.Fatalf("color scheme must be fully populated, got %+v", scheme)
	}
	if adapter.Navigation() == nil || adapter.ResourceTypes() == nil || adapter.BookingRules() == nil {
		t.Fatal("collections must normalize to empty, never nil")
	}
	if adapter.Roles() == nil || adapter.Workflows() == nil {
		t.Fatal("roles and workflows must normalize to empty, never nil")
	}
}

func TestAdapter_ExposesRolesAndWorkflows(t *testing.T) {
	descriptor := coworkingDescriptor()
	descriptor.Roles = map[string]any{
		"admin":  []any{"manage_members", "manage_billing"},
		"member": []any{"book_space"},
	}
	descriptor.Workflows = []map[string]any{
		{"id": "member_onboarding", "steps": float64(4)},
	}
	adapter := internal.NewAdapter(&fakeFetcher{descriptor: descriptor}, nil)

	if adapter.Roles() == nil || adapter.Workflows() == nil {
		t.Fatal("accessors must never return nil before load")
	}

	if err := adapter.Load(context.Background(), tenantIdentity()); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	roles := adapter.Roles()
	if _, ok := roles["admin"]; !ok || len(roles) != 2 {
		t.Fatalf("expected module role hierarchy, got %+v", roles)
	}
	workflows := adapter.Workflows()
	if len(workflows) != 1 || workflows[0]["id"] != "member_onboarding" {
		t.Fatalf("expected module workflows, got %+v", workflows)
	}

	roles["intruder"] = true
	if _, ok := adapter.Roles()["intruder"]; ok {
		t.Fatal("returned roles must be a copy")
	}
}
