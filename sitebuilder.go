// Package sitebuilder is a client-side composition and configuration engine
// for block-based CMS pages: a page builder session, a sitewide configuration
// session, a tenant experience adapter, and a pure preview renderer, all
// backed by the platform's REST API.
package sitebuilder

import (
	"context"

	"github.com/goliatone/go-sitebuilder/builder"
	"github.com/goliatone/go-sitebuilder/experience"
	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/preview"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// BuilderSession exports the page builder session contract.
type BuilderSession = builder.Session

// SiteConfigSession exports the site configuration session contract.
type SiteConfigSession = siteconfig.Session

// ExperienceAdapter exports the tenant experience adapter contract.
type ExperienceAdapter = experience.Adapter

// PreviewRenderer exports the preview renderer.
type PreviewRenderer = preview.Renderer

// Identity exports the authenticated principal type.
type Identity = interfaces.Identity

// SavePageCommand exports the page save message dispatched through go-command.
type SavePageCommand = commands.SavePage

// SaveSiteConfigCommand exports the site config save message.
type SaveSiteConfigCommand = commands.SaveSiteConfig

// Dependencies exports the host-supplied collaborators.
type Dependencies = di.Dependencies

// Feature gate errors surfaced by the module facade.
var (
	ErrBuilderDisabled    = di.ErrBuilderDisabled
	ErrSiteConfigDisabled = di.ErrSiteConfigDisabled
	ErrExperienceDisabled = di.ErrExperienceDisabled
	ErrPreviewDisabled    = di.ErrPreviewDisabled
)

// Module is the top level sitebuilder runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a sitebuilder module from configuration plus the host's
// collaborators.
func New(cfg Config, deps Dependencies) (*Module, error) {
	container, err := di.New(cfg, deps)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Builder returns the page builder session for a page, creating it on first
// use. The session must be initialized before use.
func (m *Module) Builder(pageID string) (BuilderSession, error) {
	return m.container.BuilderSession(pageID)
}

// ReleaseBuilder closes and forgets the builder session for a page.
func (m *Module) ReleaseBuilder(pageID string) {
	m.container.ReleaseBuilderSession(pageID)
}

// SiteConfig returns the sitewide configuration session.
func (m *Module) SiteConfig() (SiteConfigSession, error) {
	return m.container.SiteConfigSession()
}

// Experience returns the tenant experience adapter.
func (m *Module) Experience() (ExperienceAdapter, error) {
	return m.container.Experience()
}

// LoadExperience resolves the current identity through the host's identity
// source and loads the matching experience descriptor. Without an identity
// source, or without an authenticated identity, the adapter clears to its
// fallback.
func (m *Module) LoadExperience(ctx context.Context) error {
	adapter, err := m.container.Experience()
	if err != nil {
		return err
	}
	identity := Identity{}
	if source := m.container.IdentitySource(); source != nil {
		if current, ok := source.CurrentIdentity(ctx); ok {
			identity = current
		}
	}
	return adapter.Load(ctx, identity)
}

// Preview returns the block preview renderer.
func (m *Module) Preview() (*PreviewRenderer, error) {
	return m.container.Renderer()
}

// SavePageHandler returns the command handler for SavePageCommand messages.
func (m *Module) SavePageHandler() *commands.Handler[commands.SavePage] {
	return m.container.SavePageHandler()
}

// SaveSiteConfigHandler returns the command handler for SaveSiteConfigCommand
// messages.
func (m *Module) SaveSiteConfigHandler() (*commands.Handler[commands.SaveSiteConfig], error) {
	return m.container.SaveSiteConfigHandler()
}

// Close releases every open session.
func (m *Module) Close() {
	m.container.Close()
}
