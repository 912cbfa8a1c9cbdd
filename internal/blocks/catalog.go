// Package blocks provides the REST-backed block definition catalog.
package blocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Catalog fetches block definitions from the CMS blocks endpoint.
type Catalog struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ blocks.Catalog = (*Catalog)(nil)

// NewCatalog builds a catalog over the shared transport client.
func NewCatalog(client *httpapi.Client, logger interfaces.Logger) *Catalog {
	return &Catalog{client: client, logger: logger}
}

// listResponse tolerates both the wrapped object and the bare-array response
// shape some deployments return.
type listResponse struct {
	Blocks []blocks.Definition
}

func (r *listResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Blocks)
	}
	var wrapped struct {
		Blocks []blocks.Definition `json:"blocks"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	r.Blocks = wrapped.Blocks
	return nil
}

// ListDefinitions implements blocks.Catalog.
func (c *Catalog) ListDefinitions(ctx context.Context) ([]blocks.Definition, error) {
	var res listResponse
	if err := c.client.GetJSON(ctx, httpapi.GroupCMS, httpapi.RouteBlocks, nil, &res); err != nil {
		if c.logger != nil {
			c.logger.Error("blocks.catalog.fetch.failed", "error", err)
		}
		return nil, fmt.Errorf("%w: %v", blocks.ErrCatalogUnavailable, err)
	}
	if c.logger != nil {
		c.logger.Debug("blocks.catalog.fetched", "count", len(res.Blocks))
	}
	return res.Blocks, nil
}
