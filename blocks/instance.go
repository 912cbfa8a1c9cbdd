package blocks

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

var instanceSeq atomic.Uint64

// NewInstanceID returns a client-generated token unique for the lifetime of
// the process. A random UUID fragment plus a monotonic counter avoids the
// wall-clock collisions that rapid successive adds would otherwise produce.
func NewInstanceID() string {
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("block_%s_%d", fragment, instanceSeq.Add(1))
}

// NewInstance materializes a block instance from its definition: every
// customizable field is mapped to its declared default, or the empty string
// when the definition carries none.
func NewInstance(def Definition, order int) Instance {
	return Instance{
		ID:     NewInstanceID(),
		Type:   def.ID,
		Config: DefaultConfig(def),
		Order:  order,
	}
}

// DefaultConfig builds the initial configuration for a definition. The result
// has exactly one key per customizable field.
func DefaultConfig(def Definition) map[string]any {
	config := make(map[string]any, len(def.CustomizableFields))
	for _, field := range def.CustomizableFields {
		if field.Default != nil {
			config[field.Field] = cloneValue(field.Default)
			continue
		}
		config[field.Field] = ""
	}
	return config
}

// DefaultItem builds one repeater item from the repeater's sub-field list,
// applying the same default rule as DefaultConfig.
func DefaultItem(field FieldDefinition) map[string]any {
	item := make(map[string]any, len(field.Fields))
	for _, sub := range field.Fields {
		if sub.Default != nil {
			item[sub.Field] = cloneValue(sub.Default)
			continue
		}
		item[sub.Field] = ""
	}
	return item
}
