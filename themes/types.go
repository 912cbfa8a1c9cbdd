package themes

import "context"

// ColorScheme is one named palette within a theme. Every key is always
// populated; consumers never null-check individual colors.
type ColorScheme struct {
	Name       string `json:"name,omitempty"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Typography records the font stack a theme declares.
type Typography struct {
	HeadingFont string   `json:"heading_font,omitempty"`
	BodyFont    string   `json:"body_font,omitempty"`
	FontWeights []string `json:"font_weights,omitempty"`
}

// Theme captures a named visual design selectable per page. A page references
// a theme; the builder persists a snapshot of the chosen theme alongside the
// block list at save time.
type Theme struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	PreviewImage   string            `json:"preview_image,omitempty"`
	ColorSchemes   []ColorScheme     `json:"color_schemes"`
	Typography     *Typography       `json:"typography,omitempty"`
	LayoutSettings map[string]string `json:"layout_settings,omitempty"`
}

// PrimaryScheme returns the theme's first palette, or a zero scheme when the
// theme declares none.
func (t Theme) PrimaryScheme() ColorScheme {
	if len(t.ColorSchemes) == 0 {
		return ColorScheme{}
	}
	return t.ColorSchemes[0]
}

// Catalog lists the themes available to the current tenant.
type Catalog interface {
	ListThemes(ctx context.Context) ([]Theme, error)
}
