// Package validation compiles block definitions into JSON Schemas and checks
// configuration payloads against them at the load/save boundary. Renderers
// never trust config shapes; this package is where shapes are enforced.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-sitebuilder/blocks"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// SchemaForDefinition derives the JSON Schema enforced for one block type's
// configuration. Config keys must be a subset of the definition's field names
// (additionalProperties false); missing keys are allowed because absent
// values mean "use default" at render time, so no field is marked required.
// Every non-string field also accepts a string value: the editor stores ""
// for fields whose definition declares no default.
func SchemaForDefinition(def blocks.Definition) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           propertiesForFields(def.CustomizableFields),
		"additionalProperties": false,
	}
}

// ValidateConfig checks an instance configuration against its definition.
func ValidateConfig(def blocks.Definition, config map[string]any) error {
	return ValidatePayload(SchemaForDefinition(def), config)
}

// ValidatePayload validates payload against the provided schema.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	if schema == nil {
		return nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	normalized, err := normalizePayload(payload)
	if err != nil {
		return &PayloadValidationError{Cause: err}
	}
	if err := compiled.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &PayloadValidationError{Issues: collectValidationIssues(validationErr)}
		}
		return &PayloadValidationError{Cause: err}
	}
	return nil
}

func propertiesForFields(fields []blocks.FieldDefinition) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field.Field] = schemaForField(field)
	}
	return properties
}

func schemaForField(field blocks.FieldDefinition) map[string]any {
	switch field.Type {
	case blocks.FieldNumber:
		schema := map[string]any{"type": []any{"number", "string"}}
		if field.Min != nil {
			schema["minimum"] = *field.Min
		}
		if field.Max != nil {
			schema["maximum"] = *field.Max
		}
		return schema
	case blocks.FieldBoolean:
		return map[string]any{"type": []any{"boolean", "string"}}
	case blocks.FieldSelect:
		if len(field.Options) > 0 {
			options := make([]any, 0, len(field.Options)+1)
			// The editor stores "" until the operator picks an option.
			options = append(options, "")
			for _, option := range field.Options {
				options = append(options, option)
			}
			return map[string]any{"enum": options}
		}
		return map[string]any{"type": "string"}
	case blocks.FieldList:
		return map[string]any{
			"type": []any{"array", "string"},
			"items": map[string]any{
				"type": "string",
			},
		}
	case blocks.FieldRepeater:
		return map[string]any{
			"type": []any{"array", "string"},
			"items": map[string]any{
				"type":                 "object",
				"properties":           propertiesForFields(field.Fields),
				"additionalProperties": false,
			},
		}
	default:
		// text, textarea, image, url, icon_picker and any future editor
		// control all carry plain strings.
		return map[string]any{"type": "string"}
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("config.json")
}

// normalizePayload round-trips the payload through JSON so typed Go values
// (ints, structs, nested maps) take the shapes the validator expects.
func normalizePayload(payload map[string]any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []ValidationIssue{{
			Location: err.InstanceLocation,
			Message:  err.Message,
		}}
	}
	issues := make([]ValidationIssue, 0, len(err.Causes))
	for _, cause := range err.Causes {
		issues = append(issues, collectValidationIssues(cause)...)
	}
	return issues
}
