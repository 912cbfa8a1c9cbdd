// Package siteconfig provides the REST-backed site configuration store and
// the editing session over it.
package siteconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// Store persists the sitewide configuration through the site-config endpoint.
// Loads arrive wrapped in a {"config": ...} envelope; saves post the bare
// configuration object.
type Store struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ siteconfig.Store = (*Store)(nil)

// NewStore builds a store over the shared transport client.
func NewStore(client *httpapi.Client, logger interfaces.Logger) *Store {
	return &Store{client: client, logger: logger}
}

type configEnvelope struct {
	Config siteconfig.Document `json:"config"`
}

// LoadConfiguration implements siteconfig.Store. A 404 becomes
// ErrConfigNotFound so sessions fall back to the default configuration.
func (s *Store) LoadConfiguration(ctx context.Context) (siteconfig.Document, error) {
	var envelope configEnvelope
	err := s.client.GetJSON(ctx, httpapi.GroupCMS, httpapi.RouteSiteConfig, nil, &envelope)
	if errors.Is(err, httpapi.ErrNotFound) {
		return siteconfig.Document{}, siteconfig.ErrConfigNotFound
	}
	if err != nil {
		return siteconfig.Document{}, err
	}
	return envelope.Config, nil
}

// SaveConfiguration implements siteconfig.Store. The body is the full
// four-section configuration, unwrapped.
func (s *Store) SaveConfiguration(ctx context.Context, config siteconfig.Configuration) error {
	err := s.client.PostJSON(ctx, httpapi.GroupCMS, httpapi.RouteSiteConfig, nil, config, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("siteconfig.store.save.failed", "error", err)
		}
		return fmt.Errorf("%w: %v", siteconfig.ErrSaveFailed, err)
	}
	if s.logger != nil {
		s.logger.Info("siteconfig.store.saved")
	}
	return nil
}
