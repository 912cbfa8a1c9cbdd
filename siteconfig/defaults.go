package siteconfig

// DefaultNavigation returns the navigation defaults used to fill a missing
// section on load.
func DefaultNavigation() Navigation {
	return Navigation{
		ShowNavigation: true,
		Style:          NavStyleHorizontal,
		Position:       NavPositionTop,
		MenuItems:      []MenuItem{},
	}
}

// DefaultHeader returns the header defaults used to fill a missing section.
func DefaultHeader() Header {
	return Header{
		ShowHeader:      true,
		ShowLoginButton: true,
		ShowCTAButton:   true,
		CTAText:         "Join Today",
		CTAURL:          "/membership",
		Style:           "modern",
	}
}

// DefaultFooter returns the footer defaults used to fill a missing section.
func DefaultFooter() Footer {
	return Footer{
		ShowFooter:      true,
		Style:           "detailed",
		Sections:        []FooterSection{},
		BottomText:      "© 2025 Coworking Community. All rights reserved.",
		ShowSocialLinks: true,
	}
}

// DefaultBranding returns the branding defaults used to fill a missing section.
func DefaultBranding() Branding {
	return Branding{
		LogoURL:    "/images/logos/coworking-logo.svg",
		LogoAlt:    "Coworking Community",
		FaviconURL: "/images/favicon.ico",
	}
}

// Normalize fills every missing section of a stored document so the editor
// always receives a complete, editable configuration. Nil item and link lists
// inside present sections are replaced with empty lists for the same reason.
func Normalize(doc Document) Configuration {
	config := Configuration{
		Navigation: DefaultNavigation(),
		Header:     DefaultHeader(),
		Footer:     DefaultFooter(),
		Branding:   DefaultBranding(),
	}
	if doc.Navigation != nil {
		config.Navigation = *doc.Navigation
	}
	if doc.Header != nil {
		config.Header = *doc.Header
	}
	if doc.Footer != nil {
		config.Footer = *doc.Footer
	}
	if doc.Branding != nil {
		config.Branding = *doc.Branding
	}
	if config.Navigation.MenuItems == nil {
		config.Navigation.MenuItems = []MenuItem{}
	}
	if config.Footer.Sections == nil {
		config.Footer.Sections = []FooterSection{}
	}
	for i := range config.Footer.Sections {
		if config.Footer.Sections[i].Links == nil {
			config.Footer.Sections[i].Links = []FooterLink{}
		}
	}
	return config
}

// FallbackConfiguration is the editable starting point when the configuration
// endpoint cannot be reached at all: the section defaults plus representative
// menu and footer content so the editor is not empty.
func FallbackConfiguration() Configuration {
	config := Normalize(Document{})
	config.Navigation.MenuItems = []MenuItem{
		{Label: "Home", URL: "/", Type: "page"},
		{Label: "Membership", URL: "/membership", Type: "page"},
		{Label: "Community", URL: "/community", Type: "page"},
		{Label: "Contact", URL: "/contact", Type: "page"},
	}
	config.Footer.Sections = []FooterSection{
		{
			Title: "Quick Links",
			Links: []FooterLink{
				{Label: "About", URL: "/about"},
				{Label: "Pricing", URL: "/pricing"},
				{Label: "Events", URL: "/events"},
			},
		},
	}
	return config
}

// Clone deep-copies a configuration so sessions can expose state without
// sharing slices with callers.
func (c Configuration) Clone() Configuration {
	out := c
	out.Navigation.MenuItems = append([]MenuItem(nil), c.Navigation.MenuItems...)
	out.Footer.Sections = make([]FooterSection, len(c.Footer.Sections))
	for i, section := range c.Footer.Sections {
		copied := section
		copied.Links = append([]FooterLink(nil), section.Links...)
		out.Footer.Sections[i] = copied
	}
	return out
}
