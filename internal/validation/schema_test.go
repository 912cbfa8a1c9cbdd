package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sitebuilder/blocks"
	"github.com/goliatone/go-sitebuilder/internal/validation"
)

func heroDefinition() blocks.Definition {
	return blocks.Definition{
		ID:   "coworking_hero",
		Name: "Community Hero Section",
		CustomizableFields: []blocks.FieldDefinition{
			{Field: "title", Type: blocks.FieldText, Default: "Where Innovation Meets Community"},
			{Field: "subtitle", Type: blocks.FieldText, Default: "Join our vibrant coworking community"},
			{Field: "cta_text", Type: blocks.FieldText, Default: "Tour Our Space"},
		},
	}
}

func pricingDefinition() blocks.Definition {
	return blocks.Definition{
		ID:   "membership_pricing",
		Name: "Membership Plans",
		CustomizableFields: []blocks.FieldDefinition{
			{Field: "title", Type: blocks.FieldText, Default: "Choose Your Membership"},
			{Field: "plans", Type: blocks.FieldRepeater, Fields: []blocks.FieldDefinition{
				{Field: "name", Type: blocks.FieldText, Default: "Hot Desk"},
				{Field: "price", Type: blocks.FieldNumber, Default: 25},
				{Field: "billing", Type: blocks.FieldSelect, Options: []string{"per day", "per month", "per year"}},
			}},
		},
	}
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	def := heroDefinition()
	if err := validation.ValidateConfig(def, blocks.DefaultConfig(def)); err != nil {
		t.Fatalf("ValidateConfig() returned unexpected error: %v", err)
	}
}

func TestValidateConfig_AcceptsMissingKeys(t *testing.T) {
	err := validation.ValidateConfig(heroDefinition(), map[string]any{"title": "Welcome"})
	if err != nil {
		t.Fatalf("partial config should validate, got %v", err)
	}
}

func TestValidateConfig_RejectsUnknownKey(t *testing.T) {
	err := validation.ValidateConfig(heroDefinition(), map[string]any{"headline": "nope"})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if issues := validation.Issues(err); len(issues) == 0 {
		t.Fatal("expected at least one validation issue")
	}
}

func TestValidateConfig_RepeaterItems(t *testing.T) {
	def := pricingDefinition()
	config := map[string]any{
		"title": "Plans",
		"plans": []map[string]any{
			{"name": "Hot Desk", "price": 25, "billing": "per day"},
			{"name": "Dedicated", "price": 150, "billing": ""},
		},
	}
	if err := validation.ValidateConfig(def, config); err != nil {
		t.Fatalf("repeater config should validate, got %v", err)
	}

	config["plans"] = []map[string]any{{"name": "Hot Desk", "seats": 4}}
	if err := validation.ValidateConfig(def, config); err == nil {
		t.Fatal("expected unknown repeater sub-field to fail validation")
	}
}

func TestValidateConfig_SelectEnum(t *testing.T) {
	def := pricingDefinition()
	config := map[string]any{
		"plans": []map[string]any{{"billing": "per fortnight"}},
	}
	if err := validation.ValidateConfig(def, config); err == nil {
		t.Fatal("expected out-of-enum select value to fail validation")
	}
}

func TestValidateConfig_NumberBounds(t *testing.T) {
	min := 1.0
	max := 5.0
	def := blocks.Definition{
		ID: "member_testimonials",
		CustomizableFields: []blocks.FieldDefinition{
			{Field: "rating", Type: blocks.FieldNumber, Min: &min, Max: &max, Default: 5},
		},
	}
	if err := validation.ValidateConfig(def, map[string]any{"rating": 6}); err == nil {
		t.Fatal("expected rating above max to fail validation")
	}
	if err := validation.ValidateConfig(def, map[string]any{"rating": 3}); err != nil {
		t.Fatalf("in-range rating should validate, got %v", err)
	}
}
