package schemastream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, doc string) *Schema {
	t.Helper()
	schema, err := NewCompiler().SetDefaultVersion(VersionDraft06).Compile([]byte(doc))
	require.NoError(t, err)
	return schema
}

// TestValidateConcreteScenarios walks spec §8's six numbered scenarios.
func TestValidateConcreteScenarios(t *testing.T) {
	t.Run("integer bounds and multipleOf", func(t *testing.T) {
		schema := mustCompile(t, `{"type":"integer","minimum":1,"maximum":10,"multipleOf":3}`)

		result, err := schema.Validate(float64(6))
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate(float64(7))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate(float64(0))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate(float64(12))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	})

	t.Run("array items and uniqueItems", func(t *testing.T) {
		schema := mustCompile(t, `{"type":"array","items":{"type":"string"},"uniqueItems":true}`)

		result, err := schema.Validate([]any{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate([]any{"a", "a"})
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate([]any{"a", float64(1)})
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	})

	t.Run("object required and additionalProperties", func(t *testing.T) {
		schema := mustCompile(t, `{
			"type":"object",
			"properties":{"n":{"type":"integer"}},
			"required":["n"],
			"additionalProperties":false
		}`)

		result, err := schema.Validate(map[string]any{"n": float64(1)})
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate(map[string]any{"n": float64(1), "x": float64(0)})
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate(map[string]any{"n": "x"})
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	})

	t.Run("anyOf", func(t *testing.T) {
		schema := mustCompile(t, `{"anyOf":[{"type":"integer","maximum":5},{"type":"string"}]}`)

		result, err := schema.Validate(float64(3))
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate("hello")
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate(float64(7))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate(true)
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	})

	t.Run("oneOf", func(t *testing.T) {
		schema := mustCompile(t, `{"oneOf":[{"type":"integer"},{"multipleOf":2}]}`)

		result, err := schema.Validate(float64(3))
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate(float64(4))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		// "a" is neither an integer nor a multiple of anything (multipleOf
		// doesn't apply to non-numeric instances), so exactly one branch
		// (the untyped multipleOf schema) is vacuously satisfied.
		result, err = schema.Validate("a")
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)
	})

	t.Run("$ref into definitions", func(t *testing.T) {
		schema := mustCompile(t, `{
			"definitions":{"pos":{"type":"integer","minimum":1}},
			"$ref":"#/definitions/pos"
		}`)

		result, err := schema.Validate(float64(5))
		require.NoError(t, err)
		assert.Equal(t, ResultValid, result)

		result, err = schema.Validate(float64(0))
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)

		result, err = schema.Validate("x")
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	})
}

func TestDraft4ExclusiveBoolean(t *testing.T) {
	schema, err := NewCompiler().Compile([]byte(`{
		"$schema":"http://json-schema.org/draft-04/schema#",
		"type":"integer","minimum":5,"exclusiveMinimum":true
	}`))
	require.NoError(t, err)

	result, err := schema.Validate(float64(5))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate(float64(6))
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)
}

func TestDoubleWithZeroFractionSatisfiesInteger(t *testing.T) {
	schema := mustCompile(t, `{"type":"integer"}`)

	result, err := schema.Validate(float64(4.0))
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(float64(4.5))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestEmptyApplicatorArraysFailCompile(t *testing.T) {
	_, err := NewCompiler().Compile([]byte(`{"$schema":"http://json-schema.org/draft-06/schema#","allOf":[]}`))
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, ErrValueDataDeps, compileErr.Err)
}

func TestUniqueItemsDeepEqualityAcrossKeyOrder(t *testing.T) {
	schema := mustCompile(t, `{"type":"array","uniqueItems":true}`)

	result, err := schema.Validate([]any{
		map[string]any{"a": float64(1), "b": float64(2)},
		map[string]any{"b": float64(2), "a": float64(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestValidateIsIdempotent(t *testing.T) {
	schema := mustCompile(t, `{"type":"string","minLength":2}`)

	first, err := schema.Validate("ab")
	require.NoError(t, err)
	second, err := schema.Validate("ab")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstBad, err := schema.Validate("a")
	require.NoError(t, err)
	secondBad, err := schema.Validate("a")
	require.NoError(t, err)
	assert.Equal(t, firstBad, secondBad)
}

func TestVersionSelection(t *testing.T) {
	_, err := NewCompiler().Compile([]byte(`{"type":"string"}`))
	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, ErrVersion, compileErr.Err)

	_, err = NewCompiler().Compile([]byte(`{"$schema":"http://json-schema.org/draft-07/schema#","type":"string"}`))
	require.Error(t, err)
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, ErrVersion, compileErr.Err)

	schema, err := NewCompiler().Compile([]byte(`{"$schema":"http://json-schema.org/draft-04/schema#","type":"string"}`))
	require.NoError(t, err)
	assert.Equal(t, VersionDraft04, schema.Version())
}

func TestBooleanSchemaDraft6(t *testing.T) {
	trueSchema, err := NewCompiler().CompileValue(true)
	require.NoError(t, err)
	result, err := trueSchema.Validate(map[string]any{"anything": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	falseSchema, err := NewCompiler().CompileValue(false)
	require.NoError(t, err)
	result, err = falseSchema.Validate(float64(1))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

func TestExplainInvalid(t *testing.T) {
	schema := mustCompile(t, `{"type":"integer","minimum":5}`)
	stream, err := NewValidationStream(schema, 4)
	require.NoError(t, err)
	require.NoError(t, stream.Value(float64(1)))
	assert.Equal(t, ResultInvalid, stream.FinalResult())
	assert.Equal(t, "instance failed a keyword constraint", stream.ExplainInvalid(nil))
}

// TestNestedCompositionExpandsInOneEvent exercises an allOf branch whose
// $ref target itself carries a further allOf (three levels of applicator
// nesting: allOf -> $ref -> allOf), which all must expand within the
// single Value() call that validates a leaf instance.
func TestNestedCompositionExpandsInOneEvent(t *testing.T) {
	schema := mustCompile(t, `{
		"definitions":{"pos":{"allOf":[{"type":"integer"},{"minimum":5}]}},
		"allOf":[{"$ref":"#/definitions/pos"}]
	}`)

	result, err := schema.Validate(float64(6))
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(float64(1))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate("x")
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

// TestContainerTypeRejectsScalarInstance guards against a scalar instance
// silently validating as Valid against an object- or array-typed schema: a
// Value() event reaching an object/array frame must be treated as a type
// mismatch, since driveValidate (schema.go) only ever routes a
// map[string]any/[]any instance into ObjectStart/ArrayStart.
func TestContainerTypeRejectsScalarInstance(t *testing.T) {
	objectSchema := mustCompile(t, `{"type":"object"}`)
	for _, instance := range []any{"hello", float64(5), true} {
		result, err := objectSchema.Validate(instance)
		require.NoError(t, err)
		assert.Equal(t, ResultInvalid, result)
	}

	arraySchema := mustCompile(t, `{"type":"array"}`)
	result, err := arraySchema.Validate(float64(5))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}

// TestTypeListRejectsScalarForContainerMember exercises a type array
// containing "object"/"array" alongside a scalar type: the container member
// must not wrongly set TypeValid for a scalar instance.
func TestTypeListRejectsScalarForContainerMember(t *testing.T) {
	schema := mustCompile(t, `{"type":["object","string"]}`)

	result, err := schema.Validate(float64(5))
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)

	result, err = schema.Validate("hello")
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)
}

// TestNotRejectsContainerTypeAgainstScalar exercises negation: a string
// instance is not an object, so `{"not":{"type":"object"}}` must hold.
func TestNotRejectsContainerTypeAgainstScalar(t *testing.T) {
	schema := mustCompile(t, `{"not":{"type":"object"}}`)

	result, err := schema.Validate("x")
	require.NoError(t, err)
	assert.Equal(t, ResultValid, result)

	result, err = schema.Validate(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, ResultInvalid, result)
}
