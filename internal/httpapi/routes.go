package httpapi

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route group and name constants for the platform API surface.
const (
	GroupCMS      = "cms"
	GroupPlatform = "platform"

	RouteBlocks      = "blocks"
	RouteThemes      = "themes"
	RouteTemplates   = "page-templates"
	RoutePageBuilder = "page-builder"
	RouteSiteConfig  = "site-config"
	RouteExperience  = "experience"
)

// DefaultRouteConfig returns the canonical endpoint layout rooted at baseURL.
// Hosts with relocated endpoints supply their own urlkit config instead.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupCMS,
				BaseURL: base,
				Paths: map[string]string{
					RouteBlocks:      "/cms/coworking/blocks",
					RouteThemes:      "/cms/coworking/themes",
					RouteTemplates:   "/cms/coworking/page-templates",
					RoutePageBuilder: "/cms/pages/:pageId/builder",
					RouteSiteConfig:  "/cms/site-config",
				},
			},
			{
				Name:    GroupPlatform,
				BaseURL: base,
				Paths: map[string]string{
					RouteExperience: "/platform/experience",
				},
			},
		},
	}
}

// buildURL resolves one route through the manager. urlkit panics on unknown
// groups and routes, so lookups are fenced the same way the menu resolver
// fences them.
func buildURL(manager *urlkit.RouteManager, group, route string, params map[string]any) (url string, err error) {
	if manager == nil {
		return "", fmt.Errorf("httpapi: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("httpapi: route %s.%s not configured: %v", group, route, rec)
		}
	}()
	builder := manager.Group(group).Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}
