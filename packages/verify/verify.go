// Package verify validates response bodies against JSON Schema documents.
package verify

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

// Result is the outcome of one schema validation.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks the response body against the given JSON Schema document.
func Validate(resp *fetch.Response, schemaJSON []byte) (*Result, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewStringLoader(resp.Text())

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return &Result{Valid: true}, nil
	}

	var errors []string
	for _, desc := range result.Errors() {
		errors = append(errors, desc.String())
	}
	return &Result{Valid: false, Errors: errors}, nil
}

// ValidateFile loads a schema from disk and validates the response against it.
func ValidateFile(resp *fetch.Response, schemaPath string) (*Result, error) {
	schemaJSON, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
	}
	return Validate(resp, schemaJSON)
}
