// Package themes provides the REST-backed theme catalog.
package themes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/themes"
)

// Catalog fetches themes from the CMS themes endpoint.
type Catalog struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ themes.Catalog = (*Catalog)(nil)

// NewCatalog builds a catalog over the shared transport client.
func NewCatalog(client *httpapi.Client, logger interfaces.Logger) *Catalog {
	return &Catalog{client: client, logger: logger}
}

type listResponse struct {
	Themes []themes.Theme
}

func (r *listResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Themes)
	}
	var wrapped struct {
		Themes []themes.Theme `json:"themes"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	r.Themes = wrapped.Themes
	return nil
}

// ListThemes implements themes.Catalog.
func (c *Catalog) ListThemes(ctx context.Context) ([]themes.Theme, error) {
	var res listResponse
	if err := c.client.GetJSON(ctx, httpapi.GroupCMS, httpapi.RouteThemes, nil, &res); err != nil {
		if c.logger != nil {
			c.logger.Error("themes.catalog.fetch.failed", "error", err)
		}
		return nil, fmt.Errorf("%w: %v", themes.ErrCatalogUnavailable, err)
	}
	if c.logger != nil {
		c.logger.Debug("themes.catalog.fetched", "count", len(res.Themes))
	}
	return res.Themes, nil
}
