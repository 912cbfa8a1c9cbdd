// Package preview renders block compositions into a display-agnostic node
// tree. Rendering is pure: the same blocks and theme always produce the same
// tree, and no renderer touches the network or mutates its input.
package preview

// Node is one element of a rendered preview. Hosts walk the tree and map
// kinds onto their own widget or markup vocabulary.
type Node struct {
	Kind     string            `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Node kinds produced by the built-in block renderers.
const (
	KindSection     = "section"
	KindHeading     = "heading"
	KindText        = "text"
	KindButton      = "button"
	KindImage       = "image"
	KindList        = "list"
	KindItem        = "item"
	KindBadge       = "badge"
	KindStat        = "stat"
	KindPlaceholder = "placeholder"
)

func section(blockType string, children ...Node) Node {
	return Node{
		Kind:     KindSection,
		Attrs:    map[string]string{"block_type": blockType},
		Children: children,
	}
}

func heading(text string) Node {
	return Node{Kind: KindHeading, Text: text}
}

func text(value string) Node {
	return Node{Kind: KindText, Text: value}
}

func button(label, url string) Node {
	node := Node{Kind: KindButton, Text: label}
	if url != "" {
		node.Attrs = map[string]string{"url": url}
	}
	return node
}

func image(src, alt string) Node {
	attrs := map[string]string{"src": src}
	if alt != "" {
		attrs["alt"] = alt
	}
	return Node{Kind: KindImage, Attrs: attrs}
}

func list(children []Node) Node {
	return Node{Kind: KindList, Children: children}
}

func item(children ...Node) Node {
	return Node{Kind: KindItem, Children: children}
}

func badge(value string) Node {
	return Node{Kind: KindBadge, Text: value}
}

func stat(value, label string) Node {
	return Node{Kind: KindStat, Text: value, Attrs: map[string]string{"label": label}}
}
