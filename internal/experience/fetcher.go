// Package experience provides the REST-backed descriptor fetcher and the
// tenant experience adapter over it.
package experience

import (
	"context"
	"fmt"

	"github.com/goliatone/go-sitebuilder/experience"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Fetcher retrieves the tenant experience descriptor from the platform
// experience endpoint.
type Fetcher struct {
	client *httpapi.Client
	logger interfaces.Logger
}

var _ experience.Fetcher = (*Fetcher)(nil)

// NewFetcher builds a fetcher over the shared transport client.
func NewFetcher(client *httpapi.Client, logger interfaces.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logger}
}

// FetchDescriptor implements experience.Fetcher. The endpoint resolves the
// tenant from the request credential, so no parameters are sent.
func (f *Fetcher) FetchDescriptor(ctx context.Context) (experience.Descriptor, error) {
	var descriptor experience.Descriptor
	err := f.client.GetJSON(ctx, httpapi.GroupPlatform, httpapi.RouteExperience, nil, &descriptor)
	if err != nil {
		if f.logger != nil {
			f.logger.Error("experience.fetch.failed", "error", err)
		}
		return experience.Descriptor{}, fmt.Errorf("%w: %v", experience.ErrDescriptorUnavailable, err)
	}
	return descriptor, nil
}
