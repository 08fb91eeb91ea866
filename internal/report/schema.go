package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema marks a document that does not match the report schema.
var ErrSchema = errors.New("report does not match schema")

const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["runs"],
  "properties": {
    "title": {"type": "string"},
    "units": {"type": "string"},
    "logarithmic": {"type": "boolean"},
    "param": {"type": "string"},
    "runs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["benchmarks"],
        "properties": {
          "params": {
            "type": "object",
            "additionalProperties": {"type": ["string", "number", "boolean"]}
          },
          "benchmarks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "mean": {"type": "number"},
                "stddev": {"type": "number", "minimum": 0},
                "samples": {"type": "array", "items": {"type": "number"}}
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(reportSchema)

// ValidateDocument checks raw JSON against the report schema. Every violation
// is reported in the returned error, which wraps ErrSchema.
func ValidateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(details, "; "))
}
