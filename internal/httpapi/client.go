// Package httpapi is the JSON REST transport shared by every catalog client
// and session store. It attaches the bearer credential supplied by the host's
// auth collaborator and normalizes HTTP failures into category-tagged errors.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ErrNotFound marks a 404 response. Callers translate it into their own
// "no saved state" sentinels; it is never fatal on its own.
var ErrNotFound = errors.New("httpapi: resource not found")

const (
	textCodeRequestFailed  = "API_REQUEST_FAILED"
	textCodeStatusRejected = "API_STATUS_REJECTED"
	textCodeDecodeFailed   = "API_DECODE_FAILED"
)

// Options configures the transport client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Routes      *urlkit.Config
	HTTPClient  *http.Client
	Credentials interfaces.CredentialSource
	Logger      interfaces.Logger
}

// Client performs authenticated JSON requests against the platform API.
type Client struct {
	http        *http.Client
	routes      *urlkit.RouteManager
	credentials interfaces.CredentialSource
	logger      interfaces.Logger
}

// New constructs a transport client. When Routes is nil the canonical layout
// rooted at BaseURL is used.
func New(opts Options) *Client {
	routeConfig := opts.Routes
	if routeConfig == nil {
		routeConfig = DefaultRouteConfig(opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Client{
		http:        httpClient,
		routes:      urlkit.NewRouteManager(routeConfig),
		credentials: opts.Credentials,
		logger:      logger,
	}
}

// GetJSON issues a GET against a configured route and decodes the JSON
// response into out. A 404 returns ErrNotFound.
func (c *Client) GetJSON(ctx context.Context, group, route string, params map[string]any, out any) error {
	return c.do(ctx, http.MethodGet, group, route, params, nil, out)
}

// PostJSON issues a POST with a JSON body against a configured route. The
// response body, when present, is decoded into out; pass nil to discard it.
func (c *Client) PostJSON(ctx context.Context, group, route string, params map[string]any, body, out any) error {
	return c.do(ctx, http.MethodPost, group, route, params, body, out)
}

func (c *Client) do(ctx context.Context, method, group, route string, params map[string]any, body, out any) error {
	url, err := buildURL(c.routes, group, route, params)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api route resolution failed").
			WithTextCode(textCodeRequestFailed)
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryExternal, "api request encoding failed").
				WithTextCode(textCodeRequestFailed)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api request construction failed").
			WithTextCode(textCodeRequestFailed)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credentials != nil {
		token, err := c.credentials.Token(ctx)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryExternal, "api credential lookup failed").
				WithTextCode(textCodeRequestFailed)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api.request.failed", "method", method, "url", url, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api request failed").
			WithTextCode(textCodeRequestFailed)
	}
	defer res.Body.Close()

	c.logger.Debug("api.request.complete",
		"method", method,
		"url", url,
		"status", res.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	switch {
	case res.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, res.Body)
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		io.Copy(io.Discard, res.Body)
		return goerrors.Wrap(
			fmt.Errorf("httpapi: unexpected status %d for %s %s", res.StatusCode, method, url),
			goerrors.CategoryExternal, "api rejected request").
			WithTextCode(textCodeStatusRejected)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "api response decoding failed").
			WithTextCode(textCodeDecodeFailed)
	}
	return nil
}
