// Package templates provides the REST-backed page template catalog.
package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/templates"
)

// Catalog fetches page templates from the CMS page-templates endpoint.
type Catalog struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ templates.Catalog = (*Catalog)(nil)

// NewCatalog builds a catalog over the shared transport client.
func NewCatalog(client *httpapi.Client, logger interfaces.Logger) *Catalog {
	return &Catalog{client: client, logger: logger}
}

type listResponse struct {
	Templates []templates.PageTemplate
}

func (r *listResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Templates)
	}
	var wrapped struct {
		Templates []templates.PageTemplate `json:"templates"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	r.Templates = wrapped.Templates
	return nil
}

// ListTemplates implements templates.Catalog.
func (c *Catalog) ListTemplates(ctx context.Context) ([]templates.PageTemplate, error) {
	var res listResponse
	if err := c.client.GetJSON(ctx, httpapi.GroupCMS, httpapi.RouteTemplates, nil, &res); err != nil {
		if c.logger != nil {
			c.logger.Error("templates.catalog.fetch.failed", "error", err)
		}
		return nil, fmt.Errorf("%w: %v", templates.ErrCatalogUnavailable, err)
	}
	if c.logger != nil {
		c.logger.Debug("templates.catalog.fetched", "count", len(res.Templates))
	}
	return res.Templates, nil
}
