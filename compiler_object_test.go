package schemastream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileObjectPatternProperties(t *testing.T) {
	schema := mustCompile(t, `{
		"type":"object",
		"patternProperties":{"^x-":{"type":"string"}},
		"additionalProperties":false
	}`)

	result, err := schema.Validate(map[string]any{"x-foo": "hi"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"x-foo": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate(map[string]any{"other": "hi"})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestCompileObjectDependenciesArrayForm(t *testing.T) {
	schema := mustCompile(t, `{
		"type":"object",
		"dependencies":{"credit_card":["billing_address"]}
	}`)

	result, err := schema.Validate(map[string]any{"credit_card": float64(1), "billing_address": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"credit_card": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate(map[string]any{"billing_address": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)
}

func TestCompileObjectDependenciesSchemaForm(t *testing.T) {
	schema := mustCompile(t, `{
		"type":"object",
		"dependencies":{"credit_card":{"required":["billing_address"]}}
	}`)

	result, err := schema.Validate(map[string]any{"credit_card": float64(1), "billing_address": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"credit_card": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate(map[string]any{"unrelated": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)
}

func TestCompileObjectMinMaxProperties(t *testing.T) {
	schema := mustCompile(t, `{"type":"object","minProperties":1,"maxProperties":2}`)

	result, err := schema.Validate(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate(map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestCompileObjectPropertyNamesDraft6Only(t *testing.T) {
	schema := mustCompile(t, `{
		"$schema":"http://json-schema.org/draft-06/schema#",
		"type":"object",
		"propertyNames":{"pattern":"^[a-z]+$"}
	}`)

	result, err := schema.Validate(map[string]any{"abc": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"ABC": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	_, err = NewCompiler().Compile([]byte(`{
		"$schema":"http://json-schema.org/draft-04/schema#",
		"type":"object",
		"propertyNames":{"pattern":"^[a-z]+$"}
	}`))
	require.Error(t, err)
}

func TestCompileObjectAdditionalPropertiesSchema(t *testing.T) {
	schema := mustCompile(t, `{
		"type":"object",
		"properties":{"n":{"type":"integer"}},
		"additionalProperties":{"type":"string"}
	}`)

	result, err := schema.Validate(map[string]any{"n": float64(1), "extra": "ok"})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"n": float64(1), "extra": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}
