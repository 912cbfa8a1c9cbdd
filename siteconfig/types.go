package siteconfig

import "context"

// Section identifies one of the four independently edited configuration
// sections.
type Section string

const (
	SectionNavigation Section = "navigation"
	SectionHeader     Section = "header"
	SectionFooter     Section = "footer"
	SectionBranding   Section = "branding"
)

// Navigation styles and positions accepted by the editor.
const (
	NavStyleHorizontal = "horizontal"
	NavStyleVertical   = "vertical"
	NavStyleDropdown   = "dropdown"

	NavPositionTop    = "top"
	NavPositionBottom = "bottom"
	NavPositionLeft   = "left"
	NavPositionRight  = "right"
)

// MenuItem is one entry in the site navigation.
type MenuItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Navigation configures the public site's menu.
type Navigation struct {
	ShowNavigation bool       `json:"show_navigation"`
	Style          string     `json:"style"`
	Position       string     `json:"position"`
	MenuItems      []MenuItem `json:"menu_items"`
}

// Header configures the public site's header bar.
type Header struct {
	ShowHeader      bool   `json:"show_header"`
	ShowLoginButton bool   `json:"show_login_button"`
	ShowCTAButton   bool   `json:"show_cta_button"`
	CTAText         string `json:"cta_text"`
	CTAURL          string `json:"cta_url"`
	Style           string `json:"style"`
}

// FooterLink is one link within a footer section.
type FooterLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// FooterSection groups footer links under a title.
type FooterSection struct {
	Title string       `json:"title"`
	Links []FooterLink `json:"links"`
}

// Footer configures the public site's footer.
type Footer struct {
	ShowFooter      bool            `json:"show_footer"`
	Style           string          `json:"style"`
	Sections        []FooterSection `json:"sections"`
	BottomText      string          `json:"bottom_text"`
	ShowSocialLinks bool            `json:"show_social_links"`
}

// Branding configures logo and favicon. Uploaded images are embedded as data
// URIs, so large images grow the persisted configuration.
type Branding struct {
	LogoURL    string `json:"logo_url"`
	LogoAlt    string `json:"logo_alt"`
	FaviconURL string `json:"favicon_url"`
}

// Configuration is the complete sitewide settings object. Every section is
// always populated; loads fill missing sections with defaults so the editor
// never binds to an absent value.
type Configuration struct {
	Navigation Navigation `json:"navigation"`
	Header     Header     `json:"header"`
	Footer     Footer     `json:"footer"`
	Branding   Branding   `json:"branding"`
}

// Document is the wire shape of a stored configuration: sections may be
// absent entirely and are normalized into Configuration on load.
type Document struct {
	Navigation *Navigation `json:"navigation,omitempty"`
	Header     *Header     `json:"header,omitempty"`
	Footer     *Footer     `json:"footer,omitempty"`
	Branding   *Branding   `json:"branding,omitempty"`
}

// Store reads and writes the tenant's site configuration. Load returns
// ErrConfigNotFound when nothing was ever saved.
type Store interface {
	LoadConfiguration(ctx context.Context) (Document, error)
	SaveConfiguration(ctx context.Context, config Configuration) error
}

// ImageTarget selects which branding slot an upload lands in.
type ImageTarget string

const (
	TargetLogo    ImageTarget = "logo"
	TargetFavicon ImageTarget = "favicon"
)

// Session is the load/mutate/save state machine for sitewide settings.
// Structurally parallel to the page builder session but independently
// persisted. Save transmits the full four-section object and is never
// dispatched while a previous save is in flight.
type Session interface {
	Load(ctx context.Context) error
	Ready() bool
	Config() Configuration

	UpdateField(section Section, field string, value any) error

	AddMenuItem(label string) (MenuItem, error)
	RemoveMenuItem(index int) error
	UpdateMenuItem(index int, field, value string) error

	AddFooterSection(title string) (int, error)
	RemoveFooterSection(index int) error
	AddFooterLink(sectionIndex int) error
	UpdateFooterLink(sectionIndex, linkIndex int, field, value string) error
	RemoveFooterLink(sectionIndex, linkIndex int) error

	UploadImage(filename string, data []byte, target ImageTarget) error

	Save(ctx context.Context) error
	Saving() bool
	Close()
}
