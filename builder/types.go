package builder

import (
	"context"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/templates"
	"github.com/goliatone/go-sitebuilder/themes"
)

// Payload is the persisted builder sub-document for one page. The whole
// collection is transmitted on save; no partial-update variant exists.
type Payload struct {
	Blocks []blocks.Instance `json:"blocks"`
	Theme  *themes.Theme     `json:"theme,omitempty"`
}

// State is a point-in-time snapshot of a session, safe to hand to UI code.
type State struct {
	Ready       bool
	Saving      bool
	PreviewMode bool
	Blocks      []blocks.Instance
	Theme       *themes.Theme
	EditingID   string
}

// Store reads and writes a page's builder payload. Load returns
// ErrPageNotFound when the page has no saved builder state, which sessions
// treat as "start from an empty canvas".
type Store interface {
	LoadPage(ctx context.Context, pageID string) (Payload, error)
	SavePage(ctx context.Context, pageID string, payload Payload) error
}

// Session is the stateful in-memory composition for one page: an ordered
// block list plus a selected theme, layered on the block/theme/template
// catalogs. Mutations apply strictly in call order; Save is the only
// operation that writes shared state and is never dispatched while a
// previous save is in flight. Concurrent saves from two sessions on the same
// page overwrite each other last-write-wins; the payload carries no version
// field.
type Session interface {
	// Initialize concurrently fetches the block, theme, and template catalogs
	// plus any previously saved payload. Catalog failures abort initialization
	// with one aggregate, retryable error; a missing saved payload is not an
	// error. Re-invoking after a failure retries all fetches.
	Initialize(ctx context.Context) error
	Ready() bool

	Definitions() []blocks.Definition
	Themes() []themes.Theme
	Templates() []templates.PageTemplate

	Blocks() []blocks.Instance
	Theme() *themes.Theme
	State() State
	SelectTheme(themeID string) error

	AddBlock(definitionID string) (blocks.Instance, error)
	InsertBlock(definitionID string, index int) (blocks.Instance, error)
	RemoveBlock(instanceID string) error
	Reorder(fromIndex, toIndex int) error

	EditBlock(instanceID string) (blocks.Instance, error)
	EditingBlock() (blocks.Instance, bool)
	CancelEdit()
	SaveBlockConfig(instanceID string, config map[string]any) error
	AddRepeaterItem(instanceID, field string) (map[string]any, error)
	RemoveRepeaterItem(instanceID, field string, index int) error

	ApplyTemplate(templateID string) error

	SetPreviewMode(enabled bool)
	PreviewMode() bool

	Save(ctx context.Context) error
	Saving() bool

	// Close tears the session down; results of still-pending fetches are
	// discarded.
	Close()
}
