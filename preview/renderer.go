package preview

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/internal/identity"
	"github.com/goliatone/go-sitebuilder/themes"
)

// RenderFunc produces the preview tree for one block configuration. The
// config passed in is never nil and must not be mutated.
type RenderFunc func(config map[string]any) Node

// Renderer maps block types onto render functions and memoizes rendered
// trees by their full input fingerprint. Safe for concurrent use.
type Renderer struct {
	mu        sync.RWMutex
	renderers map[string]RenderFunc
	memo      map[uuid.UUID]Node
}

// NewRenderer returns a renderer pre-registered with the canonical coworking
// block set.
func NewRenderer() *Renderer {
	r := &Renderer{
		renderers: map[string]RenderFunc{},
		memo:      map[uuid.UUID]Node{},
	}
	for blockType, fn := range builtinRenderers() {
		r.renderers[blockType] = fn
	}
	return r
}

// Register adds or replaces the renderer for a block type and drops any
// memoized trees, since they may have been produced by the old renderer.
func (r *Renderer) Register(blockType string, fn RenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[blockType] = fn
	r.memo = map[uuid.UUID]Node{}
}

// Render renders one block configuration under a color scheme. Unknown block
// types render a labelled placeholder rather than failing, so one stale block
// never blanks a page. Results are memoized by the full render input: type,
// config, scheme, and width.
func (r *Renderer) Render(blockType string, config map[string]any, scheme themes.ColorScheme, fullWidth bool) Node {
	key := identity.PreviewUUID(fingerprint(blockType, config, scheme, fullWidth))

	r.mu.RLock()
	cached, hit := r.memo[key]
	fn, known := r.renderers[blockType]
	r.mu.RUnlock()
	if hit {
		return cached
	}

	var node Node
	if known {
		if config == nil {
			config = map[string]any{}
		}
		node = fn(config)
	} else {
		node = Node{
			Kind:  KindPlaceholder,
			Text:  fmt.Sprintf("Unknown block type: %s", blockType),
			Attrs: map[string]string{"block_type": blockType},
		}
	}
	node = decorate(node, scheme, fullWidth)

	r.mu.Lock()
	r.memo[key] = node
	r.mu.Unlock()
	return node
}

// RenderBlock renders one instance without theme styling.
func (r *Renderer) RenderBlock(instance blocks.Instance) Node {
	return r.Render(instance.Type, instance.Config, themes.ColorScheme{}, false)
}

// RenderPage renders an ordered block list under a single root. The theme,
// when present, styles every block with its primary palette and contributes
// root attributes.
func (r *Renderer) RenderPage(instances []blocks.Instance, theme *themes.Theme) Node {
	var scheme themes.ColorScheme
	if theme != nil {
		scheme = theme.PrimaryScheme()
	}

	children := make([]Node, len(instances))
	for i, instance := range instances {
		children[i] = r.Render(instance.Type, instance.Config, scheme, false)
	}

	root := Node{Kind: "page", Children: children}
	if theme != nil {
		root.Attrs = map[string]string{
			"theme":      theme.ID,
			"primary":    scheme.Primary,
			"secondary":  scheme.Secondary,
			"accent":     scheme.Accent,
			"background": scheme.Background,
			"text":       scheme.Text,
		}
	}
	return root
}

// decorate attaches scheme and width attributes to a rendered root without
// touching the renderer's output maps.
func decorate(node Node, scheme themes.ColorScheme, fullWidth bool) Node {
	if scheme == (themes.ColorScheme{}) && !fullWidth {
		return node
	}
	attrs := make(map[string]string, len(node.Attrs)+5)
	for key, value := range node.Attrs {
		attrs[key] = value
	}
	if scheme.Primary != "" {
		attrs["primary"] = scheme.Primary
	}
	if scheme.Accent != "" {
		attrs["accent"] = scheme.Accent
	}
	if scheme.Background != "" {
		attrs["background"] = scheme.Background
	}
	if scheme.Text != "" {
		attrs["text"] = scheme.Text
	}
	if fullWidth {
		attrs["full_width"] = "true"
	}
	node.Attrs = attrs
	return node
}

// fingerprint canonicalizes the full render input. Map iteration order must
// not leak into the key, so config keys are serialized sorted.
func fingerprint(blockType string, config map[string]any, scheme themes.ColorScheme, fullWidth bool) string {
	var sb strings.Builder
	sb.WriteString(blockType)
	sb.WriteByte('|')
	writeCanonical(&sb, config)
	fmt.Fprintf(&sb, "|%s/%s/%s/%s/%s|%t",
		scheme.Primary, scheme.Secondary, scheme.Accent, scheme.Background, scheme.Text, fullWidth)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, value any) {
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for _, key := range keys {
			sb.WriteString(key)
			sb.WriteByte('=')
			writeCanonical(sb, typed[key])
			sb.WriteByte(',')
		}
		sb.WriteByte('}')
	case []any:
		sb.WriteByte('[')
		for _, entry := range typed {
			writeCanonical(sb, entry)
			sb.WriteByte(',')
		}
		sb.WriteByte(']')
	case []map[string]any:
		sb.WriteByte('[')
		for _, entry := range typed {
			writeCanonical(sb, entry)
			sb.WriteByte(',')
		}
		sb.WriteByte(']')
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			fmt.Fprintf(sb, "%v", typed)
			return
		}
		sb.Write(encoded)
	}
}
