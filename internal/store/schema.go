package store

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// stateSchema describes the persisted blob layout
const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["candidates"],
  "properties": {
    "candidates": {
      "type": "object",
      "required": ["list"],
      "properties": {
        "list": {
          "type": "array",
          "items": { "$ref": "#/definitions/candidate" }
        },
        "currentCandidate": {
          "oneOf": [
            { "type": "null" },
            { "$ref": "#/definitions/candidate" }
          ]
        }
      }
    }
  },
  "definitions": {
    "question": {
      "type": "object",
      "required": ["level", "time", "question"],
      "properties": {
        "level": { "enum": ["Easy", "Medium", "Hard"] },
        "time": { "type": "integer", "minimum": 1 },
        "question": { "type": "string" }
      }
    },
    "answer": {
      "type": "object",
      "required": ["question", "answer"],
      "properties": {
        "question": { "type": "string" },
        "answer": { "type": "string" },
        "score": { "type": "integer" }
      }
    },
    "candidate": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "email": { "type": "string" },
        "phone": { "type": "string" },
        "questions": {
          "type": ["array", "null"],
          "items": { "$ref": "#/definitions/question" }
        },
        "answers": {
          "type": ["array", "null"],
          "items": { "$ref": "#/definitions/answer" }
        },
        "score": { "type": "integer" },
        "summary": { "type": "string" },
        "completed": { "type": "boolean" }
      }
    }
  }
}`

// SchemaError reports a persisted blob that does not match the state layout
type SchemaError struct {
	Errors []FieldError
	Cause  error
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persisted state is unreadable: %v", e.Cause)
	}
	var sb strings.Builder
	sb.WriteString("persisted state failed validation:")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// ValidateBlob checks a persisted blob against the state schema
func ValidateBlob(blob []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(stateSchema)
	documentLoader := gojsonschema.NewBytesLoader(blob)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaError{Cause: err}
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
