package schemastream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileArrayTupleItemsAndAdditionalItems(t *testing.T) {
	schema := mustCompile(t, `{
		"type":"array",
		"items":[{"type":"string"},{"type":"integer"}],
		"additionalItems":false
	}`)

	result, err := schema.Validate([]any{"a", float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate([]any{"a", float64(1), "extra"})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate([]any{float64(1), "a"})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestCompileArrayContainsDraft6Only(t *testing.T) {
	schema := mustCompile(t, `{
		"$schema":"http://json-schema.org/draft-06/schema#",
		"type":"array",
		"contains":{"type":"integer","minimum":10}
	}`)

	result, err := schema.Validate([]any{"a", float64(5), float64(11)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate([]any{"a", float64(5)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	_, err = NewCompiler().Compile([]byte(`{
		"$schema":"http://json-schema.org/draft-04/schema#",
		"type":"array",
		"contains":{"type":"integer"}
	}`))
	require.Error(t, err)
}

func TestCompileArrayMinMaxItems(t *testing.T) {
	schema := mustCompile(t, `{"type":"array","minItems":1,"maxItems":2}`)

	result, err := schema.Validate([]any{})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate([]any{float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate([]any{float64(1), float64(2), float64(3)})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}
