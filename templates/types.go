package templates

import "context"

// TemplateBlock declares one pre-configured block within a page template.
// Config, when absent, is derived from the matching block definition's field
// defaults at instantiation time.
type TemplateBlock struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
	Order  int            `json:"order,omitempty"`
}

// PageTemplate is a named bundle of pre-configured blocks a user can
// instantiate in one action. Applying a template replaces the current block
// list; it never merges.
type PageTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Blocks      []TemplateBlock `json:"blocks"`
}

// Catalog lists the page templates available to the current tenant.
type Catalog interface {
	ListTemplates(ctx context.Context) ([]PageTemplate, error)
}
