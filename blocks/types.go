package blocks

import "context"

// FieldType identifies the editor control and value shape of a customizable field.
type FieldType string

const (
	FieldText       FieldType = "text"
	FieldTextarea   FieldType = "textarea"
	FieldSelect     FieldType = "select"
	FieldNumber     FieldType = "number"
	FieldBoolean    FieldType = "boolean"
	FieldRepeater   FieldType = "repeater"
	FieldList       FieldType = "list"
	FieldImage      FieldType = "image"
	FieldURL        FieldType = "url"
	FieldIconPicker FieldType = "icon_picker"
)

// FieldDefinition describes one customizable field exposed by a block
// definition. Fields is populated only for repeater fields and carries the
// per-item sub-field list.
type FieldDefinition struct {
	Field    string            `json:"field"`
	Type     FieldType         `json:"type"`
	Default  any               `json:"default,omitempty"`
	Options  []string          `json:"options,omitempty"`
	Required bool              `json:"required,omitempty"`
	Optional bool              `json:"optional,omitempty"`
	Min      *float64          `json:"min,omitempty"`
	Max      *float64          `json:"max,omitempty"`
	Fields   []FieldDefinition `json:"fields,omitempty"`
}

// Definition represents a catalog-supplied block type and associated metadata.
// Definitions are read-only snapshots fetched at session start.
type Definition struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Category           string            `json:"category,omitempty"`
	Description        string            `json:"description,omitempty"`
	CustomizableFields []FieldDefinition `json:"customizable_fields"`
	LayoutOptions      []string          `json:"layout_options,omitempty"`
	StylingOptions     map[string]any    `json:"styling_options,omitempty"`
}

// Field returns the definition of a named customizable field.
func (d Definition) Field(name string) (FieldDefinition, bool) {
	for _, field := range d.CustomizableFields {
		if field.Field == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Instance captures a concrete usage of a block definition on a page. Config
// keys are always a subset of the referenced definition's field names; missing
// keys mean "use default" at render time. The owning list's order is the
// source of truth for placement; Order is advisory metadata kept in sync.
type Instance struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
	Order  int            `json:"order"`
}

// Clone returns a deep copy of the instance so callers can hand out state
// without exposing internal maps to mutation.
func (i Instance) Clone() Instance {
	out := i
	out.Config = cloneConfig(i.Config)
	return out
}

// Catalog lists the block definitions available to the current tenant.
type Catalog interface {
	ListDefinitions(ctx context.Context) ([]Definition, error)
}

func cloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	out := make(map[string]any, len(config))
	for key, value := range config {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneConfig(typed)
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = cloneValue(item)
		}
		return items
	case []map[string]any:
		items := make([]map[string]any, len(typed))
		for i, item := range typed {
			items[i] = cloneConfig(item)
		}
		return items
	default:
		return typed
	}
}
