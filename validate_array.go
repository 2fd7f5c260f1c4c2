package schemastream

// arrayAppendHandler implements spec §4.8's array_start/array_append
// item-schema selection, unified here into a single per-index handler
// (this module's deliberate simplification over the original's
// item-0-special-cased-in-array_start shape). Grounded on
// original_source/src/schema/jso_schema_validation_array.c.
func arrayAppendHandler(schema *Schema, stack *ValidationStack, pos *Position, index int) error {
	if pos.IsFinal {
		return nil
	}
	data := pos.CurrentValue.Array
	if data == nil {
		return nil
	}

	if data.MaxItems != nil && pos.Count > *data.MaxItems {
		pos.finalizeInvalid(ReasonKeyword)
		return nil
	}

	switch {
	case data.Items != nil:
		stack.PushBasic(data.Items, pos)
	case index < len(data.ItemsList):
		stack.PushBasic(data.ItemsList[index], pos)
	case data.AdditionalItemsFalse:
		pos.finalizeInvalid(ReasonKeyword)
	case data.AdditionalItems != nil:
		stack.PushBasic(data.AdditionalItems, pos)
	}
	return nil
}

// arrayFinalChecks implements spec §4.8's final-value checks: minItems,
// uniqueItems (deep equality across items), then contains. Grounded on
// jso_schema_validation_array.c's jso_schema_validation_array_value.
func arrayFinalChecks(schema *Schema, stack *ValidationStack, pos *Position) {
	data := pos.CurrentValue.Array
	if data == nil {
		return
	}

	count := len(pos.seenItems)
	if data.MinItems != nil && count < *data.MinItems {
		pos.finalizeInvalid(ReasonKeyword)
		return
	}

	if data.UniqueItems {
		for i := 0; i < len(pos.seenItems); i++ {
			for j := i + 1; j < len(pos.seenItems); j++ {
				if deepEqualJSON(pos.seenItems[i], pos.seenItems[j]) {
					pos.finalizeInvalid(ReasonKeyword)
					return
				}
			}
		}
	}

	if data.Contains != nil {
		matched := false
		for _, item := range pos.seenItems {
			if evaluateSubschema(schema, stack, data.Contains, item) == ResultValid {
				matched = true
				break
			}
		}
		if !matched {
			pos.finalizeInvalid(ReasonKeyword)
			return
		}
	}
}
