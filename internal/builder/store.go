package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sitebuilder/builder"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Store persists builder payloads through the page builder endpoint.
type Store struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ builder.Store = (*Store)(nil)

// NewStore builds a store over the shared transport client.
func NewStore(client *httpapi.Client, logger interfaces.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// LoadPage implements builder.Store. A 404 becomes ErrPageNotFound so
// sessions can start from an empty canvas.
func (s *Store) LoadPage(ctx context.Context, pageID string) (builder.Payload, error) {
	var payload builder.Payload
	err := s.client.GetJSON(ctx, httpapi.GroupCMS, httpapi.RoutePageBuilder,
		map[string]any{"pageId": pageID}, &payload)
	if errors.Is(err, httpapi.ErrNotFound) {
		return builder.Payload{}, builder.ErrPageNotFound
	}
	if err != nil {
		return builder.Payload{}, err
	}
	return payload, nil
}

// SavePage implements builder.Store. The full payload is transmitted; the
// endpoint has no partial-update variant.
func (s *Store) SavePage(ctx context.Context, pageID string, payload builder.Payload) error {
	err := s.client.PostJSON(ctx, httpapi.GroupCMS, httpapi.RoutePageBuilder,
		map[string]any{"pageId": pageID}, payload, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("builder.store.save.failed", "page_id", pageID, "error", err)
		}
		return fmt.Errorf("%w: %v", builder.ErrSaveFailed, err)
	}
	if s.logger != nil {
		s.logger.Info("builder.store.saved", "page_id", pageID, "blocks", len(payload.Blocks))
	}
	return nil
}
