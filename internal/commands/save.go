package commands

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sitebuilder/builder"
	"github.com/goliatone/go-sitebuilder/siteconfig"
)

// SavePage requests persistence of one page builder session.
type SavePage struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (SavePage) Type() string { return "sitebuilder.page.save" }

// Validate implements command.Message.
func (m SavePage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, validation.Required),
	)
}

// SaveSiteConfig requests persistence of the site configuration session.
type SaveSiteConfig struct{}

// Type implements command.Message.
func (SaveSiteConfig) Type() string { return "sitebuilder.siteconfig.save" }

// Validate implements command.Message.
func (SaveSiteConfig) Validate() error { return nil }

// PageSessionResolver locates the open builder session for a page.
type PageSessionResolver func(pageID string) (builder.Session, bool)

var errNoOpenSession = errors.New("commands: no open session for page")

// NewSavePageHandler builds the handler dispatching SavePage messages onto
// their open builder session.
func NewSavePageHandler(resolve PageSessionResolver, opts ...HandlerOption[SavePage]) *Handler[SavePage] {
	if resolve == nil {
		panic("commands: page session resolver cannot be nil")
	}
	exec := func(ctx context.Context, msg SavePage) error {
		session, ok := resolve(msg.PageID)
		if !ok {
			return goerrors.Wrap(errNoOpenSession, goerrors.CategoryNotFound, "page session not found").
				WithTextCode(commandSessionMissing)
		}
		return session.Save(ctx)
	}
	return NewHandler(exec, append([]HandlerOption[SavePage]{WithOperation[SavePage]("page.save")}, opts...)...)
}

// NewSaveSiteConfigHandler builds the handler dispatching SaveSiteConfig
// messages onto the site configuration session.
func NewSaveSiteConfigHandler(session siteconfig.Session, opts ...HandlerOption[SaveSiteConfig]) *Handler[SaveSiteConfig] {
	if session == nil {
		panic("commands: site config session cannot be nil")
	}
	exec := func(ctx context.Context, _ SaveSiteConfig) error {
		return session.Save(ctx)
	}
	return NewHandler(exec, append([]HandlerOption[SaveSiteConfig]{WithOperation[SaveSiteConfig]("siteconfig.save")}, opts...)...)
}
