package siteconfig_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	internal "github.com/goliatone/go-sitebuilder/internal/siteconfig"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

type fakeStore struct {
	doc     siteconfig.Document
	loadErr error
	saveErr error
	saved   []siteconfig.Configuration
	block   chan struct{}
}

func (f *fakeStore) LoadConfiguration(context.Context) (siteconfig.Document, error) {
	if f.loadErr != nil {
		return siteconfig.Document{}, f.loadErr
	}
	return f.doc, nil
}

func (f *fakeStore) SaveConfiguration(_ context.Context, config siteconfig.Configuration) error {
	if f.block != nil {
		<-f.block
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, config)
	return nil
}

func loadedSession(t *testing.T, store *fakeStore) *internal.Session {
	t.Helper()
	if store == nil {
		store = &fakeStore{loadErr: siteconfig.ErrConfigNotFound}
	}
	session := internal.NewSession(internal.SessionOptions{Store: store, MaxImageBytes: 1 << 20})
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	return session
}

func TestSession_LoadFillsMissingSections(t *testing.T) {
	store := &fakeStore{doc: siteconfig.Document{
		Header: &siteconfig.Header{ShowHeader: true, CTAText: "Book a Tour"},
	}}
	session := loadedSession(t, store)

	config := session.Config()
	if config.Header.CTAText != "Book a Tour" {
		t.Fatalf("stored header should survive load, got %q", config.Header.CTAText)
	}
	if config.Footer.BottomText != siteconfig.DefaultFooter().BottomText {
		t.Fatal("missing footer section should fill with defaults")
	}
	if config.Navigation.MenuItems == nil {
		t.Fatal("menu items must never be nil after load")
	}
	if config.Branding.LogoURL != siteconfig.DefaultBranding().LogoURL {
		t.Fatal("missing branding section should fill with defaults")
	}
}

func TestSession_LoadNotFoundUsesDefaults(t *testing.T) {
	session := loadedSession(t, nil)
	config := session.Config()
	if config.Header.CTAText != "Join Today" {
		t.Fatalf("expected default CTA text, got %q", config.Header.CTAText)
	}
	if len(config.Navigation.MenuItems) != 0 {
		t.Fatal("never-saved config starts with an empty menu")
	}
}

func TestSession_LoadFailureFallsBack(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("api down")}
	session := loadedSession(t, store)

	if !session.Ready() {
		t.Fatal("session should be usable even when the endpoint is unreachable")
	}
	config := session.Config()
	if len(config.Navigation.MenuItems) == 0 {
		t.Fatal("fallback config should carry representative menu items")
	}
	if len(config.Footer.Sections) == 0 {
		t.Fatal("fallback config should carry a footer section")
	}
}

func TestSession_UpdateField(t *testing.T) {
	session := loadedSession(t, nil)

	if err := session.UpdateField(siteconfig.SectionHeader, "cta_text", "Visit Us"); err != nil {
		t.Fatalf("UpdateField() returned unexpected error: %v", err)
	}
	if err := session.UpdateField(siteconfig.SectionNavigation, "show_navigation", false); err != nil {
		t.Fatalf("UpdateField() returned unexpected error: %v", err)
	}
	config := session.Config()
	if config.Header.CTAText != "Visit Us" {
		t.Fatalf("expected updated CTA text, got %q", config.Header.CTAText)
	}
	if config.Navigation.ShowNavigation {
		t.Fatal("expected navigation hidden")
	}

	if err := session.UpdateField("sidebar", "width", 12); !errors.Is(err, siteconfig.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	err := session.UpdateField(siteconfig.SectionFooter, "column_count", 3)
	if !errors.Is(err, siteconfig.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	var fieldErr *siteconfig.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "column_count" {
		t.Fatalf("expected FieldError naming the field, got %v", err)
	}
	if err := session.UpdateField(siteconfig.SectionHeader, "cta_text", 42); !errors.Is(err, siteconfig.ErrUnknownField) {
		t.Fatalf("expected type mismatch rejection, got %v", err)
	}
}

func TestSession_MenuItemLifecycle(t *testing.T) {
	session := loadedSession(t, nil)

	item, err := session.AddMenuItem("Meeting Rooms")
	if err != nil {
		t.Fatalf("AddMenuItem() returned unexpected error: %v", err)
	}
	if item.URL != "/meeting-rooms" {
		t.Fatalf("expected slugged URL, got %q", item.URL)
	}
	if item.Type != "page" {
		t.Fatalf("expected page type, got %q", item.Type)
	}

	if err := session.UpdateMenuItem(0, "label", "Rooms"); err != nil {
		t.Fatalf("UpdateMenuItem() returned unexpected error: %v", err)
	}
	if err := session.UpdateMenuItem(0, "icon", "rooms"); !errors.Is(err, siteconfig.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for unsupported field, got %v", err)
	}
	if err := session.UpdateMenuItem(4, "label", "x"); !errors.Is(err, siteconfig.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	if err := session.RemoveMenuItem(0); err != nil {
		t.Fatalf("RemoveMenuItem() returned unexpected error: %v", err)
	}
	if items := session.Config().Navigation.MenuItems; len(items) != 0 {
		t.Fatalf("expected empty menu, got %d items", len(items))
	}
}

func TestSession_FooterLifecycle(t *testing.T) {
	session := loadedSession(t, nil)

	index, err := session.AddFooterSection("Resources")
	if err != nil {
		t.Fatalf("AddFooterSection() returned unexpected error: %v", err)
	}
	if index != 0 {
		t.Fatalf("expected first section index 0, got %d", index)
	}
	if err := session.AddFooterLink(index); err != nil {
		t.Fatalf("AddFooterLink() returned unexpected error: %v", err)
	}
	if err := session.UpdateFooterLink(index, 0, "label", "Guides"); err != nil {
		t.Fatalf("UpdateFooterLink() returned unexpected error: %v", err)
	}
	if err := session.UpdateFooterLink(index, 0, "url", "/guides"); err != nil {
		t.Fatalf("UpdateFooterLink() returned unexpected error: %v", err)
	}

	section := session.Config().Footer.Sections[0]
	if section.Links[0].Label != "Guides" || section.Links[0].URL != "/guides" {
		t.Fatalf("unexpected link state: %+v", section.Links[0])
	}

	if err := session.UpdateFooterLink(index, 3, "label", "x"); !errors.Is(err, siteconfig.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := session.RemoveFooterLink(index, 0); err != nil {
		t.Fatalf("RemoveFooterLink() returned unexpected error: %v", err)
	}
	if err := session.RemoveFooterSection(index); err != nil {
		t.Fatalf("RemoveFooterSection() returned unexpected error: %v", err)
	}
	if sections := session.Config().Footer.Sections; len(sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(sections))
	}
}

func TestSession_AddBeforeLoadReturnsError(t *testing.T) {
	session := internal.NewSession(internal.SessionOptions{Store: &fakeStore{}})

	if _, err := session.AddMenuItem("Events"); !errors.Is(err, siteconfig.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := session.AddFooterSection("Resources"); !errors.Is(err, siteconfig.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}

	loaded := loadedSession(t, nil)
	loaded.Close()
	if _, err := loaded.AddMenuItem("Events"); !errors.Is(err, siteconfig.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := loaded.AddFooterSection("Resources"); !errors.Is(err, siteconfig.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_UploadImage(t *testing.T) {
	session := loadedSession(t, nil)

	png := []byte("\x89PNG\r\n\x1a\nfakepixels")
	if err := session.UploadImage("logo.png", png, siteconfig.TargetLogo); err != nil {
		t.Fatalf("UploadImage() returned unexpected error: %v", err)
	}
	logo := session.Config().Branding.LogoURL
	if !strings.HasPrefix(logo, "data:image/png;base64,") {
		t.Fatalf("expected png data URI, got %q", logo)
	}

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	if err := session.UploadImage("favicon.svg", svg, siteconfig.TargetFavicon); err != nil {
		t.Fatalf("UploadImage() returned unexpected error: %v", err)
	}
	if favicon := session.Config().Branding.FaviconURL; !strings.HasPrefix(favicon, "data:image/svg+xml;base64,") {
		t.Fatalf("expected svg data URI, got %q", favicon)
	}

	if err := session.UploadImage("logo.png", nil, siteconfig.TargetLogo); !errors.Is(err, siteconfig.ErrImageEmpty) {
		t.Fatalf("expected ErrImageEmpty, got %v", err)
	}
	big := make([]byte, 2<<20)
	if err := session.UploadImage("logo.png", big, siteconfig.TargetLogo); !errors.Is(err, siteconfig.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if err := session.UploadImage("logo.png", png, "banner"); !errors.Is(err, siteconfig.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestSession_SaveTransmitsFullConfiguration(t *testing.T) {
	store := &fakeStore{loadErr: siteconfig.ErrConfigNotFound}
	session := loadedSession(t, store)
	if _, err := session.AddMenuItem("Events"); err != nil {
		t.Fatalf("AddMenuItem() returned unexpected error: %v", err)
	}

	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	saved := store.saved[0]
	if saved.Header.CTAText == "" || saved.Footer.BottomText == "" {
		t.Fatal("save must transmit every section, not just the edited one")
	}
	if len(saved.Navigation.MenuItems) != 1 {
		t.Fatalf("expected edited menu in payload, got %d items", len(saved.Navigation.MenuItems))
	}
}

func TestSession_SaveWhileSavingIsDropped(t *testing.T) {
	store := &fakeStore{loadErr: siteconfig.ErrConfigNotFound, block: make(chan struct{})}
	session := loadedSession(t, store)

	done := make(chan error, 1)
	go func() {
		done <- session.Save(context.Background())
	}()
	for i := 0; i < 100 && !session.Saving(); i++ {
		time.Sleep(time.Millisecond)
	}
	if !session.Saving() {
		t.Fatal("expected first save to be in flight")
	}
	if err := session.Save(context.Background()); err != nil {
		t.Fatalf("duplicate save should be a silent no-op, got %v", err)
	}

	close(store.block)
	if err := <-done; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected exactly one dispatched save, got %d", len(store.saved))
	}
}

func TestSession_SaveFailureKeepsEdits(t *testing.T) {
	store := &fakeStore{loadErr: siteconfig.ErrConfigNotFound, saveErr: errors.New("api down")}
	session := loadedSession(t, store)
	if _, err := session.AddMenuItem("Events"); err != nil {
		t.Fatalf("AddMenuItem() returned unexpected error: %v", err)
	}

	if err := session.Save(context.Background()); err == nil {
		t.Fatal("expected save failure to surface")
	}
	if items := session.Config().Navigation.MenuItems; len(items) != 1 {
		t.Fatal("failed save must not discard in-memory edits")
	}
	if session.Saving() {
		t.Fatal("saving flag should clear after failure")
	}
}

func TestSession_CloseRejectsFurtherUse(t *testing.T) {
	session := loadedSession(t, nil)
	session.Close()
	if err := session.UpdateField(siteconfig.SectionHeader, "cta_text", "x"); !errors.Is(err, siteconfig.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}
