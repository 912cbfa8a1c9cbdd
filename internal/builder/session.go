// Package builder implements the stateful page composition session over the
// catalog and store contracts declared at the module root.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/builder"
	"github.com/goliatone/go-sitebuilder/internal/validation"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/templates"
	"github.com/goliatone/go-sitebuilder/themes"
)

// SessionOptions wires a session's collaborators.
type SessionOptions struct {
	PageID         string
	Blocks         blocks.Catalog
	Themes         themes.Catalog
	Templates      templates.Catalog
	Store          builder.Store
	ValidateOnSave bool
	Logger         interfaces.Logger
}

// Session is the in-memory page composition for one page. All methods are
// safe for concurrent use; mutations apply strictly in call order under one
// mutex.
type Session struct {
	mu sync.Mutex

	pageID         string
	blockCatalog   blocks.Catalog
	themeCatalog   themes.Catalog
	templateCata   templates.Catalog
	store          builder.Store
	validateOnSave bool
	logger         interfaces.Logger

	ready   bool
	closed  bool
	saving  bool
	preview bool

	definitions []blocks.Definition
	themeList   []themes.Theme
	templList   []templates.PageTemplate

	instances []blocks.Instance
	theme     *themes.Theme
	editingID string
}

var _ builder.Session = (*Session)(nil)

// NewSession constructs an uninitialized session. Call Initialize before any
// other operation.
func NewSession(opts SessionOptions) *Session {
	return &Session{
		pageID:         opts.PageID,
		blockCatalog:   opts.Blocks,
		themeCatalog:   opts.Themes,
		templateCata:   opts.Templates,
		store:          opts.Store,
		validateOnSave: opts.ValidateOnSave,
		logger:         opts.Logger,
	}
}

// Initialize fetches the three catalogs and the saved payload concurrently.
// Catalog failures abort with one aggregate, retryable error; a page with no
// saved builder state starts from an empty canvas.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return builder.ErrSessionClosed
	}
	s.mu.Unlock()

	var (
		wg sync.WaitGroup

		defs     []blocks.Definition
		defsErr  error
		thms     []themes.Theme
		thmsErr  error
		tmpls    []templates.PageTemplate
		tmplsErr error
		payload  builder.Payload
		loadErr  error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		defs, defsErr = s.blockCatalog.ListDefinitions(ctx)
	}()
	go func() {
		defer wg.Done()
		thms, thmsErr = s.themeCatalog.ListThemes(ctx)
	}()
	go func() {
		defer wg.Done()
		tmpls, tmplsErr = s.templateCata.ListTemplates(ctx)
	}()
	go func() {
		defer wg.Done()
		payload, loadErr = s.store.LoadPage(ctx, s.pageID)
	}()
	wg.Wait()

	if errors.Is(loadErr, builder.ErrPageNotFound) {
		payload, loadErr = builder.Payload{}, nil
	}

	if defsErr != nil || thmsErr != nil || tmplsErr != nil {
		err := &builder.InitializationError{Blocks: defsErr, Themes: thmsErr, Templates: tmplsErr}
		s.logf("builder.initialize.failed", "page_id", s.pageID, "error", err)
		return err
	}
	if loadErr != nil {
		s.logf("builder.initialize.failed", "page_id", s.pageID, "error", loadErr)
		return loadErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// Closed while fetches were in flight; drop the results.
		return builder.ErrSessionClosed
	}

	s.definitions = defs
	s.themeList = thms
	s.templList = tmpls
	s.instances = cloneInstances(payload.Blocks)
	s.resyncOrderLocked()

	switch {
	case payload.Theme != nil:
		theme := *payload.Theme
		s.theme = &theme
	case len(thms) > 0:
		theme := thms[0]
		s.theme = &theme
	default:
		s.theme = nil
	}

	s.editingID = ""
	s.ready = true
	s.logf("builder.initialized", "page_id", s.pageID,
		"definitions", len(defs), "themes", len(thms), "templates", len(tmpls),
		"blocks", len(s.instances))
	return nil
}

// Ready reports whether Initialize has completed successfully.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Definitions returns the fetched block definition catalog.
func (s *Session) Definitions() []blocks.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]blocks.Definition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

// Themes returns the fetched theme catalog.
func (s *Session) Themes() []themes.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]themes.Theme, len(s.themeList))
	copy(out, s.themeList)
	return out
}

// Templates returns the fetched page template catalog.
func (s *Session) Templates() []templates.PageTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]templates.PageTemplate, len(s.templList))
	copy(out, s.templList)
	return out
}

// Blocks returns the current ordered block list.
func (s *Session) Blocks() []blocks.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInstances(s.instances)
}

// Theme returns the currently selected theme, or nil when the catalog is
// empty.
func (s *Session) Theme() *themes.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == nil {
		return nil
	}
	theme := *s.theme
	return &theme
}

// State returns a point-in-time snapshot of the session.
func (s *Session) State() builder.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := builder.State{
		Ready:       s.ready,
		Saving:      s.saving,
		PreviewMode: s.preview,
		Blocks:      cloneInstances(s.instances),
		EditingID:   s.editingID,
	}
	if s.theme != nil {
		theme := *s.theme
		state.Theme = &theme
	}
	return state
}

// SelectTheme switches the page to a catalog theme by id.
func (s *Session) SelectTheme(themeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	for _, theme := range s.themeList {
		if theme.ID == themeID {
			selected := theme
			s.theme = &selected
			return nil
		}
	}
	return fmt.Errorf("%w: %s", themes.ErrThemeNotFound, themeID)
}

// AddBlock appends a new instance of the named definition with default
// configuration.
func (s *Session) AddBlock(definitionID string) (blocks.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(definitionID, len(s.instances))
}

// InsertBlock places a new instance at index, shifting later blocks down.
func (s *Session) InsertBlock(definitionID string, index int) (blocks.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(definitionID, index)
}

func (s *Session) insertLocked(definitionID string, index int) (blocks.Instance, error) {
	if err := s.usableLocked(); err != nil {
		return blocks.Instance{}, err
	}
	if index < 0 || index > len(s.instances) {
		return blocks.Instance{}, fmt.Errorf("%w: insert at %d of %d", builder.ErrIndexOutOfRange, index, len(s.instances))
	}
	def, ok := s.definitionLocked(definitionID)
	if !ok {
		return blocks.Instance{}, &blocks.UnknownTypeError{Type: definitionID}
	}

	instance := blocks.NewInstance(def, index)
	s.instances = append(s.instances, blocks.Instance{})
	copy(s.instances[index+1:], s.instances[index:])
	s.instances[index] = instance
	s.resyncOrderLocked()

	s.logf("builder.block.added", "page_id", s.pageID, "type", definitionID, "instance_id", instance.ID, "index", index)
	return instance.Clone(), nil
}

// RemoveBlock deletes an instance by id. Removing the instance being edited
// also cancels the edit.
func (s *Session) RemoveBlock(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	index := s.indexOfLocked(instanceID)
	if index < 0 {
		return fmt.Errorf("%w: %s", builder.ErrInstanceNotFound, instanceID)
	}
	s.instances = append(s.instances[:index], s.instances[index+1:]...)
	s.resyncOrderLocked()
	if s.editingID == instanceID {
		s.editingID = ""
	}
	s.logf("builder.block.removed", "page_id", s.pageID, "instance_id", instanceID)
	return nil
}

// Reorder moves the block at fromIndex to toIndex. Moving an index onto
// itself is a no-op.
func (s *Session) Reorder(fromIndex, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	count := len(s.instances)
	if fromIndex < 0 || fromIndex >= count || toIndex < 0 || toIndex >= count {
		return fmt.Errorf("%w: move %d to %d of %d", builder.ErrIndexOutOfRange, fromIndex, toIndex, count)
	}
	if fromIndex == toIndex {
		return nil
	}
	moved := s.instances[fromIndex]
	s.instances = append(s.instances[:fromIndex], s.instances[fromIndex+1:]...)
	s.instances = append(s.instances, blocks.Instance{})
	copy(s.instances[toIndex+1:], s.instances[toIndex:])
	s.instances[toIndex] = moved
	s.resyncOrderLocked()
	return nil
}

// EditBlock marks an instance as being edited and returns a snapshot of it.
func (s *Session) EditBlock(instanceID string) (blocks.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return blocks.Instance{}, err
	}
	index := s.indexOfLocked(instanceID)
	if index < 0 {
		return blocks.Instance{}, fmt.Errorf("%w: %s", builder.ErrInstanceNotFound, instanceID)
	}
	s.editingID = instanceID
	return s.instances[index].Clone(), nil
}

// EditingBlock returns the instance currently being edited, if any.
func (s *Session) EditingBlock() (blocks.Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == "" {
		return blocks.Instance{}, false
	}
	index := s.indexOfLocked(s.editingID)
	if index < 0 {
		return blocks.Instance{}, false
	}
	return s.instances[index].Clone(), true
}

// CancelEdit clears the editing marker without touching configuration.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}

// SaveBlockConfig replaces an instance's configuration after validating it
// against the instance's definition. The editing marker is cleared when it
// points at the same instance.
func (s *Session) SaveBlockConfig(instanceID string, config map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	index := s.indexOfLocked(instanceID)
	if index < 0 {
		return fmt.Errorf("%w: %s", builder.ErrInstanceNotFound, instanceID)
	}
	if def, ok := s.definitionLocked(s.instances[index].Type); ok {
		if err := validation.ValidateConfig(def, config); err != nil {
			return configError(def.ID, err)
		}
	}
	s.instances[index].Config = cloneConfig(config)
	if s.editingID == instanceID {
		s.editingID = ""
	}
	return nil
}

// AddRepeaterItem appends a default-populated item to a repeater field and
// returns a snapshot of the new item.
func (s *Session) AddRepeaterItem(instanceID, field string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return nil, err
	}
	index := s.indexOfLocked(instanceID)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", builder.ErrInstanceNotFound, instanceID)
	}
	fieldDef, err := s.repeaterFieldLocked(s.instances[index].Type, field)
	if err != nil {
		return nil, err
	}

	item := blocks.DefaultItem(fieldDef)
	items := repeaterItems(s.instances[index].Config[field])
	items = append(items, item)
	if s.instances[index].Config == nil {
		s.instances[index].Config = map[string]any{}
	}
	s.instances[index].Config[field] = items
	return cloneConfig(item), nil
}

// RemoveRepeaterItem deletes one item of a repeater field by position.
func (s *Session) RemoveRepeaterItem(instanceID, field string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	blockIndex := s.indexOfLocked(instanceID)
	if blockIndex < 0 {
		return fmt.Errorf("%w: %s", builder.ErrInstanceNotFound, instanceID)
	}
	if _, err := s.repeaterFieldLocked(s.instances[blockIndex].Type, field); err != nil {
		return err
	}
	items := repeaterItems(s.instances[blockIndex].Config[field])
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: item %d of %d", builder.ErrIndexOutOfRange, index, len(items))
	}
	items = append(items[:index], items[index+1:]...)
	if s.instances[blockIndex].Config == nil {
		s.instances[blockIndex].Config = map[string]any{}
	}
	s.instances[blockIndex].Config[field] = items
	return nil
}

// ApplyTemplate replaces the whole block list with fresh instances built from
// the named template. It never merges with existing blocks.
func (s *Session) ApplyTemplate(templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}

	var tmpl *templates.PageTemplate
	for i := range s.templList {
		if s.templList[i].ID == templateID {
			tmpl = &s.templList[i]
			break
		}
	}
	if tmpl == nil {
		return fmt.Errorf("%w: %s", templates.ErrTemplateNotFound, templateID)
	}

	instances := make([]blocks.Instance, 0, len(tmpl.Blocks))
	for i, block := range tmpl.Blocks {
		config := cloneConfig(block.Config)
		if def, ok := s.definitionLocked(block.Type); ok {
			merged := blocks.DefaultConfig(def)
			for key, value := range config {
				merged[key] = value
			}
			config = merged
		} else if config == nil {
			config = map[string]any{}
		}
		instances = append(instances, blocks.Instance{
			ID:     blocks.NewInstanceID(),
			Type:   block.Type,
			Config: config,
			Order:  i,
		})
	}

	s.instances = instances
	s.editingID = ""
	s.logf("builder.template.applied", "page_id", s.pageID, "template_id", templateID, "blocks", len(instances))
	return nil
}

// SetPreviewMode toggles the preview flag. The flag is presentation state
// only; it never gates mutations.
func (s *Session) SetPreviewMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = enabled
}

// PreviewMode reports the preview flag.
func (s *Session) PreviewMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Save persists the full composition. A save requested while another is in
// flight is dropped silently; last write wins between concurrent sessions.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.saving {
		s.mu.Unlock()
		return nil
	}
	s.saving = true
	payload := builder.Payload{Blocks: cloneInstances(s.instances)}
	if s.theme != nil {
		theme := *s.theme
		payload.Theme = &theme
	}
	definitions := s.definitions
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	if s.validateOnSave {
		for _, instance := range payload.Blocks {
			def, ok := findDefinition(definitions, instance.Type)
			if !ok {
				return &blocks.UnknownTypeError{Type: instance.Type}
			}
			if err := validation.ValidateConfig(def, instance.Config); err != nil {
				return configError(instance.Type, err)
			}
		}
	}

	if err := s.store.SavePage(ctx, s.pageID, payload); err != nil {
		return err
	}
	return nil
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Close tears the session down. Results of still-pending fetches are
// discarded when they land.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.ready = false
	s.instances = nil
	s.theme = nil
	s.editingID = ""
}

func (s *Session) usableLocked() error {
	if s.closed {
		return builder.ErrSessionClosed
	}
	if !s.ready {
		return builder.ErrNotInitialized
	}
	return nil
}

func (s *Session) definitionLocked(typeID string) (blocks.Definition, bool) {
	return findDefinition(s.definitions, typeID)
}

func (s *Session) repeaterFieldLocked(typeID, field string) (blocks.FieldDefinition, error) {
	def, ok := s.definitionLocked(typeID)
	if !ok {
		return blocks.FieldDefinition{}, &blocks.UnknownTypeError{Type: typeID}
	}
	fieldDef, ok := def.Field(field)
	if !ok {
		return blocks.FieldDefinition{}, fmt.Errorf("%w: %s has no field %q", builder.ErrFieldNotRepeater, typeID, field)
	}
	if fieldDef.Type != blocks.FieldRepeater {
		return blocks.FieldDefinition{}, fmt.Errorf("%w: %s.%s is %s", builder.ErrFieldNotRepeater, typeID, field, fieldDef.Type)
	}
	return fieldDef, nil
}

func (s *Session) indexOfLocked(instanceID string) int {
	for i := range s.instances {
		if s.instances[i].ID == instanceID {
			return i
		}
	}
	return -1
}

// resyncOrderLocked keeps the advisory Order metadata aligned with list
// position after every structural change.
func (s *Session) resyncOrderLocked() {
	for i := range s.instances {
		s.instances[i].Order = i
	}
}

func (s *Session) logf(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func configError(typeID string, err error) error {
	issues := validation.Issues(err)
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Location != "" {
			messages = append(messages, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
			continue
		}
		messages = append(messages, issue.Message)
	}
	return &blocks.ConfigValidationError{Type: typeID, Issues: messages}
}

func findDefinition(definitions []blocks.Definition, typeID string) (blocks.Definition, bool) {
	for _, def := range definitions {
		if def.ID == typeID {
			return def, true
		}
	}
	return blocks.Definition{}, false
}

func cloneInstances(instances []blocks.Instance) []blocks.Instance {
	out := make([]blocks.Instance, len(instances))
	for i, instance := range instances {
		out[i] = instance.Clone()
	}
	return out
}

// repeaterItems normalizes a stored repeater value into a mutable item list.
// Values decoded from JSON arrive as []any; values built locally arrive as
// []map[string]any; anything else (including the "" placeholder an empty
// default leaves behind) starts a fresh list.
func repeaterItems(value any) []map[string]any {
	switch typed := value.(type) {
	case []map[string]any:
		items := make([]map[string]any, len(typed))
		copy(items, typed)
		return items
	case []any:
		items := make([]map[string]any, 0, len(typed))
		for _, entry := range typed {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
		return items
	default:
		return nil
	}
}

func cloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	cloned := blocks.Instance{Config: config}.Clone()
	return cloned.Config
}
