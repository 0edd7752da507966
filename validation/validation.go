// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidJSON = errors.New("invalid JSON")

// FieldError is one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a document does not match its schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field has at least one violation.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field || strings.HasPrefix(f.Field, field+".") {
			return true
		}
	}
	return false
}

// calculateRequestSchema is the shape of POST /api/vaa/calculate and
// /api/vaa/share bodies
const calculateRequestSchema = `{
	"type": "object",
	"required": ["answers"],
	"properties": {
		"answers": {
			"type": "object",
			"additionalProperties": {
				"type": "string",
				"enum": ["AGREE", "NEUTRAL", "DISAGREE", "SKIP"]
			}
		},
		"topicImportance": {
			"type": ["object", "null"],
			"additionalProperties": {"type": "boolean"}
		}
	}
}`

var calculateRequest = mustCompile(calculateRequestSchema)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("validation: bad schema: %v", err))
	}
	return s
}

// CalculateRequest checks body against the scoring request schema.
func CalculateRequest(body []byte) error {
	return validate(calculateRequest, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	if !json.Valid(body) {
		return ErrInvalidJSON
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	verr := &Error{}
	for _, desc := range result.Errors() {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
