package siteconfig

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// SessionOptions wires a session's collaborators.
type SessionOptions struct {
	Store         siteconfig.Store
	MaxImageBytes int64
	Logger        interfaces.Logger
}

// Session is the load/mutate/save state machine for the sitewide
// configuration. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	store         siteconfig.Store
	maxImageBytes int64
	logger        interfaces.Logger

	ready  bool
	closed bool
	saving bool

	config siteconfig.Configuration
}

var _ siteconfig.Session = (*Session)(nil)

// NewSession constructs an unloaded session. Call Load before any other
// operation.
func NewSession(opts SessionOptions) *Session {
	return &Session{
		store:         opts.Store,
		maxImageBytes: opts.MaxImageBytes,
		logger:        opts.Logger,
	}
}

// Load fetches the stored configuration. A missing document normalizes to
// section defaults; an unreachable endpoint falls back to an editable
// default configuration and still marks the session ready, because the
// editor must function offline.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return siteconfig.ErrSessionClosed
	}
	s.mu.Unlock()

	doc, err := s.store.LoadConfiguration(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return siteconfig.ErrSessionClosed
	}

	switch {
	case err == nil:
		s.config = siteconfig.Normalize(doc)
	case errors.Is(err, siteconfig.ErrConfigNotFound):
		s.config = siteconfig.Normalize(siteconfig.Document{})
	default:
		if s.logger != nil {
			s.logger.Warn("siteconfig.load.fallback", "error", err)
		}
		s.config = siteconfig.FallbackConfiguration()
	}
	s.ready = true
	return nil
}

// Ready reports whether Load has completed.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Config returns a deep copy of the current configuration.
func (s *Session) Config() siteconfig.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// UpdateField sets one scalar field of one section. Unknown sections and
// fields are rejected; list-valued state goes through the dedicated menu and
// footer operations instead.
func (s *Session) UpdateField(section siteconfig.Section, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}

	switch section {
	case siteconfig.SectionNavigation:
		return s.updateNavigationLocked(field, value)
	case siteconfig.SectionHeader:
		return s.updateHeaderLocked(field, value)
	case siteconfig.SectionFooter:
		return s.updateFooterLocked(field, value)
	case siteconfig.SectionBranding:
		return s.updateBrandingLocked(field, value)
	default:
		return fmt.Errorf("%w: %s", siteconfig.ErrUnknownSection, section)
	}
}

func (s *Session) updateNavigationLocked(field string, value any) error {
	nav := &s.config.Navigation
	switch field {
	case "show_navigation":
		return assignBool(&nav.ShowNavigation, field, value)
	case "style":
		return assignString(&nav.Style, field, value)
	case "position":
		return assignString(&nav.Position, field, value)
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionNavigation, Field: field}
	}
}

func (s *Session) updateHeaderLocked(field string, value any) error {
	header := &s.config.Header
	switch field {
	case "show_header":
		return assignBool(&header.ShowHeader, field, value)
	case "show_login_button":
		return assignBool(&header.ShowLoginButton, field, value)
	case "show_cta_button":
		return assignBool(&header.ShowCTAButton, field, value)
	case "cta_text":
		return assignString(&header.CTAText, field, value)
	case "cta_url":
		return assignString(&header.CTAURL, field, value)
	case "style":
		return assignString(&header.Style, field, value)
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionHeader, Field: field}
	}
}

func (s *Session) updateFooterLocked(field string, value any) error {
	footer := &s.config.Footer
	switch field {
	case "show_footer":
		return assignBool(&footer.ShowFooter, field, value)
	case "style":
		return assignString(&footer.Style, field, value)
	case "bottom_text":
		return assignString(&footer.BottomText, field, value)
	case "show_social_links":
		return assignBool(&footer.ShowSocialLinks, field, value)
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionFooter, Field: field}
	}
}

func (s *Session) updateBrandingLocked(field string, value any) error {
	branding := &s.config.Branding
	switch field {
	case "logo_url":
		return assignString(&branding.LogoURL, field, value)
	case "logo_alt":
		return assignString(&branding.LogoAlt, field, value)
	case "favicon_url":
		return assignString(&branding.FaviconURL, field, value)
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionBranding, Field: field}
	}
}

// AddMenuItem appends a page-typed menu item whose URL is derived from the
// label's slug, returning the appended item.
func (s *Session) AddMenuItem(label string) (siteconfig.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return siteconfig.MenuItem{}, err
	}

	item := siteconfig.MenuItem{
		Label: label,
		URL:   menuURL(label),
		Type:  "page",
	}
	s.config.Navigation.MenuItems = append(s.config.Navigation.MenuItems, item)
	return item, nil
}

// RemoveMenuItem deletes a menu item by position.
func (s *Session) RemoveMenuItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	items := s.config.Navigation.MenuItems
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: menu item %d of %d", siteconfig.ErrIndexOutOfRange, index, len(items))
	}
	s.config.Navigation.MenuItems = append(items[:index], items[index+1:]...)
	return nil
}

// UpdateMenuItem sets one field of a menu item by position.
func (s *Session) UpdateMenuItem(index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	items := s.config.Navigation.MenuItems
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: menu item %d of %d", siteconfig.ErrIndexOutOfRange, index, len(items))
	}
	switch field {
	case "label":
		items[index].Label = value
	case "url":
		items[index].URL = value
	case "type":
		items[index].Type = value
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionNavigation, Field: "menu_items." + field}
	}
	return nil
}

// AddFooterSection appends an empty titled section and returns its index.
func (s *Session) AddFooterSection(title string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return -1, err
	}
	s.config.Footer.Sections = append(s.config.Footer.Sections, siteconfig.FooterSection{
		Title: title,
		Links: []siteconfig.FooterLink{},
	})
	return len(s.config.Footer.Sections) - 1, nil
}

// RemoveFooterSection deletes a footer section by position.
func (s *Session) RemoveFooterSection(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	sections := s.config.Footer.Sections
	if index < 0 || index >= len(sections) {
		return fmt.Errorf("%w: footer section %d of %d", siteconfig.ErrIndexOutOfRange, index, len(sections))
	}
	s.config.Footer.Sections = append(sections[:index], sections[index+1:]...)
	return nil
}

// AddFooterLink appends an empty link to a footer section.
func (s *Session) AddFooterLink(sectionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	sections := s.config.Footer.Sections
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return fmt.Errorf("%w: footer section %d of %d", siteconfig.ErrIndexOutOfRange, sectionIndex, len(sections))
	}
	sections[sectionIndex].Links = append(sections[sectionIndex].Links, siteconfig.FooterLink{})
	return nil
}

// UpdateFooterLink sets one field of a footer link.
func (s *Session) UpdateFooterLink(sectionIndex, linkIndex int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	link, err := s.footerLinkLocked(sectionIndex, linkIndex)
	if err != nil {
		return err
	}
	switch field {
	case "label":
		link.Label = value
	case "url":
		link.URL = value
	default:
		return &siteconfig.FieldError{Section: siteconfig.SectionFooter, Field: "links." + field}
	}
	return nil
}

// RemoveFooterLink deletes one footer link by position.
func (s *Session) RemoveFooterLink(sectionIndex, linkIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if _, err := s.footerLinkLocked(sectionIndex, linkIndex); err != nil {
		return err
	}
	links := s.config.Footer.Sections[sectionIndex].Links
	s.config.Footer.Sections[sectionIndex].Links = append(links[:linkIndex], links[linkIndex+1:]...)
	return nil
}

// UploadImage embeds an uploaded image into the branding section as a data
// URI. The MIME type is sniffed from the payload, falling back to the
// filename extension for SVG, which content sniffing reports as plain text.
func (s *Session) UploadImage(filename string, data []byte, target siteconfig.ImageTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if len(data) == 0 {
		return siteconfig.ErrImageEmpty
	}
	if s.maxImageBytes > 0 && int64(len(data)) > s.maxImageBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", siteconfig.ErrImageTooLarge, len(data), s.maxImageBytes)
	}

	uri := dataURI(filename, data)
	switch target {
	case siteconfig.TargetLogo:
		s.config.Branding.LogoURL = uri
	case siteconfig.TargetFavicon:
		s.config.Branding.FaviconURL = uri
	default:
		return fmt.Errorf("%w: %s", siteconfig.ErrUnknownTarget, target)
	}
	if s.logger != nil {
		s.logger.Debug("siteconfig.image.embedded", "target", string(target), "bytes", len(data))
	}
	return nil
}

// Save persists the full four-section configuration. A save requested while
// another is in flight is dropped silently. The in-memory state is kept on
// failure so the user can retry without losing edits.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.saving {
		s.mu.Unlock()
		return nil
	}
	s.saving = true
	snapshot := s.config.Clone()
	s.mu.Unlock()

	err := s.store.SaveConfiguration(ctx, snapshot)

	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
	return err
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Close tears the session down.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.ready = false
	s.config = siteconfig.Configuration{}
}

func (s *Session) usableLocked() error {
	if s.closed {
		return siteconfig.ErrSessionClosed
	}
	if !s.ready {
		return siteconfig.ErrNotLoaded
	}
	return nil
}

func (s *Session) footerLinkLocked(sectionIndex, linkIndex int) (*siteconfig.FooterLink, error) {
	sections := s.config.Footer.Sections
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return nil, fmt.Errorf("%w: footer section %d of %d", siteconfig.ErrIndexOutOfRange, sectionIndex, len(sections))
	}
	links := sections[sectionIndex].Links
	if linkIndex < 0 || linkIndex >= len(links) {
		return nil, fmt.Errorf("%w: footer link %d of %d", siteconfig.ErrIndexOutOfRange, linkIndex, len(links))
	}
	return &sections[sectionIndex].Links[linkIndex], nil
}

func assignString(dst *string, field string, value any) error {
	typed, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string, got %T", siteconfig.ErrUnknownField, field, value)
	}
	*dst = typed
	return nil
}

func assignBool(dst *bool, field string, value any) error {
	typed, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a bool, got %T", siteconfig.ErrUnknownField, field, value)
	}
	*dst = typed
	return nil
}

func menuURL(label string) string {
	normalized, err := slug.Normalize(label)
	if err != nil || normalized == "" {
		return "/"
	}
	return "/" + normalized
}

func dataURI(filename string, data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") {
		mime = "image/svg+xml"
	}
	if idx := strings.Index(mime, ";"); idx > 0 && !strings.HasPrefix(mime, "image/svg") {
		mime = mime[:idx]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
