// Package di wires configuration, transport, catalogs, stores, and sessions
// into one container backing the public module facade.
package di

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/builder"
	"github.com/goliatone/go-sitebuilder/experience"
	internalblocks "github.com/goliatone/go-sitebuilder/internal/blocks"
	internalbuilder "github.com/goliatone/go-sitebuilder/internal/builder"
	"github.com/goliatone/go-sitebuilder/internal/commands"
	internalexperience "github.com/goliatone/go-sitebuilder/internal/experience"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	internalsiteconfig "github.com/goliatone/go-sitebuilder/internal/siteconfig"
	internaltemplates "github.com/goliatone/go-sitebuilder/internal/templates"
	internalthemes "github.com/goliatone/go-sitebuilder/internal/themes"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/preview"
	"github.com/goliatone/go-sitebuilder/siteconfig"
	"github.com/goliatone/go-sitebuilder/templates"
	"github.com/goliatone/go-sitebuilder/themes"
)

var (
	ErrBuilderDisabled    = errors.New("sitebuilder: builder feature disabled")
	ErrSiteConfigDisabled = errors.New("sitebuilder: site config feature disabled")
	ErrExperienceDisabled = errors.New("sitebuilder: experience feature disabled")
	ErrPreviewDisabled    = errors.New("sitebuilder: preview feature disabled")
)

// Dependencies carries the host-supplied collaborators the container cannot
// construct itself.
type Dependencies struct {
	// Credentials supplies the bearer token attached to API requests.
	Credentials interfaces.CredentialSource
	// Identity supplies the authenticated principal for experience loads.
	Identity interfaces.IdentitySource
	// HTTPClient overrides the transport's http.Client. Optional.
	HTTPClient *http.Client
	// LoggerProvider overrides the configured logging provider. Optional.
	LoggerProvider interfaces.LoggerProvider
}

// Container owns every wired collaborator plus the set of open sessions.
type Container struct {
	config   runtimeconfig.Config
	provider interfaces.LoggerProvider
	identity interfaces.IdentitySource

	client          *httpapi.Client
	blockCatalog    blocks.Catalog
	themeCatalog    themes.Catalog
	templateCatalog templates.Catalog
	pageStore       builder.Store
	configStore     siteconfig.Store
	fetcher         experience.Fetcher

	adapter  *internalexperience.Adapter
	renderer *preview.Renderer

	mu            sync.Mutex
	pageSessions  map[string]*internalbuilder.Session
	configSession *internalsiteconfig.Session
}

// New validates the configuration and wires the container.
func New(cfg runtimeconfig.Config, deps Dependencies) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := buildLoggerProvider(cfg, deps.LoggerProvider)
	if err != nil {
		return nil, err
	}

	client := httpapi.New(httpapi.Options{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		Routes:      cfg.API.Routes,
		HTTPClient:  deps.HTTPClient,
		Credentials: deps.Credentials,
		Logger:      logging.TransportLogger(provider),
	})

	c := &Container{
		config:       cfg,
		provider:     provider,
		identity:     deps.Identity,
		client:       client,
		pageSessions: map[string]*internalbuilder.Session{},
	}

	transportLogger := logging.TransportLogger(provider)
	c.blockCatalog = internalblocks.NewCatalog(client, transportLogger)
	c.themeCatalog = internalthemes.NewCatalog(client, transportLogger)
	c.templateCatalog = internaltemplates.NewCatalog(client, transportLogger)
	c.pageStore = internalbuilder.NewStore(client, logging.BuilderLogger(provider))
	c.configStore = internalsiteconfig.NewStore(client, logging.SiteConfigLogger(provider))
	c.fetcher = internalexperience.NewFetcher(client, logging.ExperienceLogger(provider))

	c.adapter = internalexperience.NewAdapter(c.fetcher, logging.ExperienceLogger(provider))
	c.renderer = preview.NewRenderer()
	return c, nil
}

// Config returns the validated runtime configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider returns the wired logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// Client returns the shared transport client.
func (c *Container) Client() *httpapi.Client {
	return c.client
}

// IdentitySource returns the host's identity collaborator, or nil.
func (c *Container) IdentitySource() interfaces.IdentitySource {
	return c.identity
}

// BuilderSession returns the open builder session for a page, creating one
// on first use. Sessions stay registered until released.
func (c *Container) BuilderSession(pageID string) (builder.Session, error) {
	if !c.config.Features.Builder {
		return nil, ErrBuilderDisabled
	}
	if strings.TrimSpace(pageID) == "" {
		return nil, fmt.Errorf("sitebuilder: page id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if session, ok := c.pageSessions[pageID]; ok {
		return session, nil
	}
	session := internalbuilder.NewSession(internalbuilder.SessionOptions{
		PageID:         pageID,
		Blocks:         c.blockCatalog,
		Themes:         c.themeCatalog,
		Templates:      c.templateCatalog,
		Store:          c.pageStore,
		ValidateOnSave: c.config.Builder.ValidateOnSave,
		Logger:         logging.BuilderLogger(c.provider),
	})
	c.pageSessions[pageID] = session
	return session, nil
}

// ReleaseBuilderSession closes and forgets the session for a page.
func (c *Container) ReleaseBuilderSession(pageID string) {
	c.mu.Lock()
	session, ok := c.pageSessions[pageID]
	delete(c.pageSessions, pageID)
	c.mu.Unlock()
	if ok {
		session.Close()
	}
}

// SiteConfigSession returns the site configuration session, creating it on
// first use.
func (c *Container) SiteConfigSession() (siteconfig.Session, error) {
	if !c.config.Features.SiteConfig {
		return nil, ErrSiteConfigDisabled
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configSession == nil {
		c.configSession = internalsiteconfig.NewSession(internalsiteconfig.SessionOptions{
			Store:         c.configStore,
			MaxImageBytes: c.config.SiteConfig.MaxImageBytes,
			Logger:        logging.SiteConfigLogger(c.provider),
		})
	}
	return c.configSession, nil
}

// Experience returns the tenant experience adapter.
func (c *Container) Experience() (experience.Adapter, error) {
	if !c.config.Features.Experience {
		return nil, ErrExperienceDisabled
	}
	return c.adapter, nil
}

// Renderer returns the preview renderer.
func (c *Container) Renderer() (*preview.Renderer, error) {
	if !c.config.Features.Preview {
		return nil, ErrPreviewDisabled
	}
	return c.renderer, nil
}

// SavePageHandler builds the command handler dispatching page saves onto
// open sessions.
func (c *Container) SavePageHandler() *commands.Handler[commands.SavePage] {
	resolve := func(pageID string) (builder.Session, bool) {
		c.mu.Lock()
		defer c.mu.Unlock()
		session, ok := c.pageSessions[pageID]
		return session, ok
	}
	return commands.NewSavePageHandler(resolve,
		commands.WithLogger[commands.SavePage](logging.BuilderLogger(c.provider)))
}

// SaveSiteConfigHandler builds the command handler dispatching site config
// saves. The session is created on first use when absent.
func (c *Container) SaveSiteConfigHandler() (*commands.Handler[commands.SaveSiteConfig], error) {
	session, err := c.SiteConfigSession()
	if err != nil {
		return nil, err
	}
	return commands.NewSaveSiteConfigHandler(session,
		commands.WithLogger[commands.SaveSiteConfig](logging.SiteConfigLogger(c.provider))), nil
}

// Close releases every open session.
func (c *Container) Close() {
	c.mu.Lock()
	sessions := c.pageSessions
	c.pageSessions = map[string]*internalbuilder.Session{}
	configSession := c.configSession
	c.configSession = nil
	c.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	if configSession != nil {
		configSession.Close()
	}
}

func buildLoggerProvider(cfg runtimeconfig.Config, override interfaces.LoggerProvider) (interfaces.LoggerProvider, error) {
	if override != nil {
		return override, nil
	}
	if !cfg.Logging.Enabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "noop":
		return nil, nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	default:
		return nil, runtimeconfig.ErrLoggingProviderUnknown
	}
}
