package schemastream

import "math"

// validateScalar runs the per-kind scalar checks (§4.9) against instance,
// assuming commonValueChecks already ran and did not finalise pos.
// Grounded on original_source/src/schema/jso_schema_validation_scalar.c,
// including the draft4-vs-draft6 exclusiveMinimum/exclusiveMaximum
// branch (boolean companion vs numeric).
func validateScalar(schema *Schema, pos *Position, instance any) {
	if pos.IsFinal {
		return
	}
	value := pos.CurrentValue

	switch value.Kind {
	case KindNull:
		if instance != nil {
			pos.finalizeInvalid(ReasonType)
		}
	case KindBoolean:
		if _, ok := instance.(bool); !ok {
			pos.finalizeInvalid(ReasonType)
		}
	case KindInteger:
		n, ok := numberFromInstance(instance, true)
		if !ok {
			pos.finalizeInvalid(ReasonType)
			return
		}
		validateNumericBounds(schema, pos, value.Integer, n)
	case KindNumber:
		n, ok := numberFromInstance(instance, false)
		if !ok {
			pos.finalizeInvalid(ReasonType)
			return
		}
		validateNumericBounds(schema, pos, value.Number, n)
	case KindString:
		validateString(pos, value.String, instance)
	case KindBooleanSchema:
		if !value.Flags.Has(ValueFlagBooleanSchemaTrue) {
			pos.finalizeInvalid(ReasonKeyword)
		}
	case KindObject, KindArray:
		// driveValidate (schema.go) routes every map[string]any to
		// ObjectStart and every []any to ArrayStart; a frame reaching
		// here via Value() is therefore always a scalar instance, which
		// can never satisfy an object/array-typed schema. Mirrors
		// jso_schema_validation_object.c's object_value and
		// jso_schema_validation_array.c's array_value, which both begin
		// by rejecting a type mismatch before any keyword check.
		pos.finalizeInvalid(ReasonType)
	}
}

// numberFromInstance extracts a Number from a decoded JSON instance,
// requiring a whole-valued float when requireInteger is set (draft 4/6
// allow "a double whose nearbyint equals itself", per spec §4.9).
func numberFromInstance(instance any, requireInteger bool) (Number, bool) {
	f, ok := instance.(float64)
	if !ok {
		return Number{}, false
	}
	if requireInteger && f != math.Trunc(f) {
		return Number{}, false
	}
	return NumberFromJSON(f), true
}

func validateNumericBounds(schema *Schema, pos *Position, data *IntegerData, n Number) {
	if data == nil {
		return
	}
	if data.Minimum != nil {
		if data.ExclusiveMinimumBool {
			if !n.Less(*data.Minimum) && n.Equal(*data.Minimum) {
				pos.finalizeInvalid(ReasonKeyword)
				return
			}
		}
		if n.Less(*data.Minimum) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
	if data.Maximum != nil {
		if data.ExclusiveMaximumBool && n.Equal(*data.Maximum) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
		if data.Maximum.Less(n) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
	if data.ExclusiveMinimum != nil {
		if !data.ExclusiveMinimum.Less(n) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
	if data.ExclusiveMaximum != nil {
		if !n.Less(*data.ExclusiveMaximum) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
	if data.MultipleOf != nil {
		if !n.IsMultipleOf(*data.MultipleOf) {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
}

func validateString(pos *Position, data *StringData, instance any) {
	s, ok := instance.(string)
	if !ok {
		pos.finalizeInvalid(ReasonType)
		return
	}
	if data == nil {
		return
	}
	length := len([]rune(s))
	if data.MinLength != nil && length < *data.MinLength {
		pos.finalizeInvalid(ReasonKeyword)
		return
	}
	if data.MaxLength != nil && length > *data.MaxLength {
		pos.finalizeInvalid(ReasonKeyword)
		return
	}
	if data.Pattern != nil && !data.Pattern.MatchString(s) {
		pos.finalizeInvalid(ReasonKeyword)
		return
	}
}
