package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

const userSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": "string"}
	},
	"required": ["id", "name"]
}`

func TestValidate_Valid(t *testing.T) {
	resp := fetch.NewResponse(200, "OK", "https://example.com", nil, `{"id": 1, "name": "ada"}`)

	result, err := Validate(resp, []byte(userSchema))

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_Invalid(t *testing.T) {
	resp := fetch.NewResponse(200, "OK", "https://example.com", nil, `{"id": "not-a-number"}`)

	result, err := Validate(resp, []byte(userSchema))

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidate_MalformedBody(t *testing.T) {
	resp := fetch.NewResponse(200, "OK", "https://example.com", nil, `not json`)

	_, err := Validate(resp, []byte(userSchema))

	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "user.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(userSchema), 0o644))

	resp := fetch.NewResponse(200, "OK", "https://example.com", nil, `{"id": 2, "name": "lin"}`)

	result, err := ValidateFile(resp, schemaPath)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = ValidateFile(resp, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
