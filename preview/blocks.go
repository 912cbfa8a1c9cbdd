package preview

import (
	"fmt"
	"strconv"
)

// Canonical coworking block types with built-in renderers.
const (
	TypeHero         = "coworking_hero"
	TypePricing      = "membership_pricing"
	TypeTestimonials = "member_testimonials"
	TypeGallery      = "space_gallery"
	TypeEvents       = "community_events"
	TypeAmenities    = "amenities_grid"
	TypeStats        = "community_stats"
	TypeCTA          = "cta_membership"
	TypePageHeader   = "page_header"
)

func builtinRenderers() map[string]RenderFunc {
	return map[string]RenderFunc{
		TypeHero:         renderHero,
		TypePricing:      renderPricing,
		TypeTestimonials: renderTestimonials,
		TypeGallery:      renderGallery,
		TypeEvents:       renderEvents,
		TypeAmenities:    renderAmenities,
		TypeStats:        renderStats,
		TypeCTA:          renderCTA,
		TypePageHeader:   renderPageHeader,
	}
}

func renderHero(config map[string]any) Node {
	return section(TypeHero,
		heading(stringValue(config, "title", "Where Innovation Meets Community")),
		text(stringValue(config, "subtitle", "Join our vibrant coworking community")),
		button(
			stringValue(config, "cta_text", "Tour Our Space"),
			stringValue(config, "cta_url", ""),
		),
	)
}

func renderPricing(config map[string]any) Node {
	plans := itemsValue(config, "plans")
	if len(plans) == 0 {
		plans = []map[string]any{
			{"name": "Hot Desk", "price": 25, "billing": "per day"},
			{"name": "Dedicated Desk", "price": 150, "billing": "per month"},
			{"name": "Private Office", "price": 500, "billing": "per month"},
		}
	}
	entries := make([]Node, len(plans))
	for i, plan := range plans {
		entries[i] = item(
			heading(stringValue(plan, "name", "Membership")),
			stat(
				"$"+numberValue(plan, "price", "0"),
				stringValue(plan, "billing", "per month"),
			),
		)
	}
	return section(TypePricing,
		heading(stringValue(config, "title", "Choose Your Membership")),
		list(entries),
	)
}

func renderTestimonials(config map[string]any) Node {
	quotes := itemsValue(config, "testimonials")
	entries := make([]Node, len(quotes))
	for i, quote := range quotes {
		entries[i] = item(
			text(stringValue(quote, "quote", "")),
			badge(stringValue(quote, "author", "Community Member")),
		)
	}
	return section(TypeTestimonials,
		heading(stringValue(config, "title", "What Our Members Say")),
		list(entries),
	)
}

func renderGallery(config map[string]any) Node {
	images := itemsValue(config, "images")
	entries := make([]Node, len(images))
	for i, entry := range images {
		entries[i] = image(
			stringValue(entry, "url", ""),
			stringValue(entry, "caption", ""),
		)
	}
	return section(TypeGallery,
		heading(stringValue(config, "title", "Explore Our Space")),
		list(entries),
	)
}

func renderEvents(config map[string]any) Node {
	events := itemsValue(config, "events")
	entries := make([]Node, len(events))
	for i, event := range events {
		entries[i] = item(
			heading(stringValue(event, "name", "Community Event")),
			badge(stringValue(event, "date", "")),
			text(stringValue(event, "description", "")),
		)
	}
	return section(TypeEvents,
		heading(stringValue(config, "title", "Upcoming Events")),
		list(entries),
	)
}

func renderAmenities(config map[string]any) Node {
	amenities := itemsValue(config, "amenities")
	entries := make([]Node, len(amenities))
	for i, amenity := range amenities {
		entries[i] = item(
			badge(stringValue(amenity, "icon", "")),
			text(stringValue(amenity, "name", "")),
		)
	}
	return section(TypeAmenities,
		heading(stringValue(config, "title", "Everything You Need")),
		list(entries),
	)
}

func renderStats(config map[string]any) Node {
	stats := itemsValue(config, "stats")
	entries := make([]Node, len(stats))
	for i, entry := range stats {
		entries[i] = stat(
			stringValue(entry, "value", "0"),
			stringValue(entry, "label", ""),
		)
	}
	return section(TypeStats,
		heading(stringValue(config, "title", "Our Community in Numbers")),
		list(entries),
	)
}

func renderCTA(config map[string]any) Node {
	return section(TypeCTA,
		heading(stringValue(config, "title", "Ready to Join?")),
		text(stringValue(config, "subtitle", "Become part of our community today")),
		button(
			stringValue(config, "button_text", "Get Started"),
			stringValue(config, "button_url", "/membership"),
		),
	)
}

func renderPageHeader(config map[string]any) Node {
	return section(TypePageHeader,
		heading(stringValue(config, "title", "")),
		text(stringValue(config, "subtitle", "")),
	)
}

// stringValue reads a string config key, falling back when the key is absent
// or holds the empty-string placeholder the editor stores for unset fields.
func stringValue(config map[string]any, key, fallback string) string {
	if raw, ok := config[key]; ok {
		if value, ok := raw.(string); ok && value != "" {
			return value
		}
	}
	return fallback
}

// numberValue formats a numeric config key. JSON decoding yields float64;
// locally built configs may carry ints.
func numberValue(config map[string]any, key, fallback string) string {
	switch value := config[key].(type) {
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case string:
		if value != "" {
			return value
		}
	case nil:
	default:
		return fmt.Sprintf("%v", value)
	}
	return fallback
}

// itemsValue normalizes a repeater config key into an item list.
func itemsValue(config map[string]any, key string) []map[string]any {
	switch value := config[key].(type) {
	case []map[string]any:
		return value
	case []any:
		items := make([]map[string]any, 0, len(value))
		for _, entry := range value {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
		return items
	default:
		return nil
	}
}
